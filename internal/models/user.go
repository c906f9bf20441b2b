// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Department uses its name as the natural primary key; the identity service is
// authoritative for department data.
type Department struct {
	Name        string    `json:"name" gorm:"primaryKey;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	TeamLeader  string    `json:"team_leader" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:Department;references:Name"`
}

// User mirrors an account in the external identity service. Synced fields are
// overwritten on every sync run; local edits to them do not survive.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	EmployeeCode string    `json:"employee_code" gorm:"size:50;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Department   string    `json:"department" gorm:"size:255;index"`
	Position     string    `json:"position" gorm:"size:255"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex"`
	Avatar       string    `json:"avatar" gorm:"size:500"`
	PhoneNumber  string    `json:"phone_number" gorm:"size:50"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	Sex          string    `json:"sex" gorm:"size:20"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
