// internal/models/connect_log.go
package models

import "time"

// ConnectLog is a best-effort audit row for notification-relay connections.
// Writes to it must never fail the connection they describe.
type ConnectLog struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    *string          `json:"user_id" gorm:"size:255;index"`
	EventType ConnectEventType `json:"event_type" gorm:"size:20;not null"`
	EventTime time.Time        `json:"event_time" gorm:"not null"`
	ClientID  string           `json:"client_id" gorm:"size:100;index"`
	IPAddress string           `json:"ip_address" gorm:"size:100"`
	UserAgent string           `json:"user_agent" gorm:"size:500"`
}
