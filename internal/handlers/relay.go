// internal/handlers/relay.go
package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/models"
	"github.com/dkpharma/asset-registry/internal/relay"
	"github.com/dkpharma/asset-registry/internal/services"
	"github.com/dkpharma/asset-registry/internal/utils"
)

// RelayHandler exposes the notification relay: an SSE stream endpoint clients
// subscribe to, and a publish endpoint that fans events out to a room. A
// publish may also carry an email copy, forwarded to the mail webhook without
// blocking the response.
type RelayHandler struct {
	hub    *relay.Hub
	db     *gorm.DB
	mailer *services.Mailer
}

func NewRelayHandler(hub *relay.Hub, db *gorm.DB, mailer *services.Mailer) *RelayHandler {
	return &RelayHandler{hub: hub, db: db, mailer: mailer}
}

type publishRequest struct {
	Room  string                 `json:"room" validate:"required,max=100"`
	Event string                 `json:"event" validate:"required,max=100"`
	Data  interface{}            `json:"data"`
	Email *services.EmailMessage `json:"email,omitempty"`
}

// GET /notifications/stream?room=general
func (h *RelayHandler) Stream(c *gin.Context) {
	room := c.DefaultQuery("room", "general")

	var userID *string
	if code, exists := c.Get("employee_code"); exists {
		if s, ok := code.(string); ok && s != "" {
			userID = &s
		}
	}

	client := &relay.Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Room:   room,
		Events: make(chan relay.Event, 64),
	}
	h.hub.Join(client)
	h.logConnect(client, c, models.ConnectEventConnect)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(c.Writer, "event: connected\ndata: {\"client_id\":%q,\"room\":%q}\n\n", client.ID, room)
	c.Writer.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			h.hub.Leave(client)
			h.logConnect(client, c, models.ConnectEventDisconnect)
			return
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.EventType, event.Data)
			c.Writer.Flush()
		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}

// POST /notifications/publish
func (h *RelayHandler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	data, err := json.Marshal(req.Data)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid event data")
		return
	}

	delivered := h.hub.Publish(req.Room, relay.Event{
		EventType: req.Event,
		Data:      string(data),
	})

	if req.Email != nil && len(req.Email.To) > 0 {
		h.mailer.Send(*req.Email)
	}

	utils.SuccessMessageResponse(c, "Notification published", gin.H{
		"room":      req.Room,
		"delivered": delivered,
	})
}

// logConnect writes the audit row asynchronously; failures are logged and
// never affect the connection.
func (h *RelayHandler) logConnect(client *relay.Client, c *gin.Context, eventType models.ConnectEventType) {
	log := &models.ConnectLog{
		UserID:    client.UserID,
		EventType: eventType,
		EventTime: time.Now(),
		ClientID:  client.ID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	go func() {
		if err := h.db.Create(log).Error; err != nil {
			logrus.WithError(err).Warn("failed to write connect log")
		}
	}()
}
