// internal/services/mailer.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dkpharma/asset-registry/internal/config"
)

// Mailer forwards notification emails to an external webhook. Delivery is fire
// and forget: failures are logged, never surfaced to the caller.
type Mailer struct {
	webhookURL string
	fromName   string
	httpClient *http.Client
}

type EmailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	From    string   `json:"from,omitempty"`
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		webhookURL: cfg.Email.WebhookURL,
		fromName:   cfg.Email.FromName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the message to the webhook in a goroutine and returns
// immediately.
func (m *Mailer) Send(msg EmailMessage) {
	if m.webhookURL == "" {
		logrus.Debug("email webhook not configured, dropping message")
		return
	}
	if msg.From == "" {
		msg.From = m.fromName
	}

	go func() {
		if err := m.deliver(msg); err != nil {
			logrus.WithError(err).WithField("subject", msg.Subject).Warn("failed to deliver email notification")
		}
	}()
}

func (m *Mailer) deliver(msg EmailMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	resp, err := m.httpClient.Post(m.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to post email webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email webhook returned status %d", resp.StatusCode)
	}
	return nil
}
