// Package notifier delivers one-time credentials and welcome content over
// email via an HTTP transactional-mail API.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// Message is a single outbound email.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Mailer sends email. Implementations must not log message bodies: welcome
// mail carries a plaintext one-time password.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPClient sends mail through a JSON-over-HTTP transactional-mail API.
type HTTPClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient returns a client that posts messages to baseURL with the
// given API key as the Authorization header.
func NewHTTPClient(apiKey, baseURL string) *HTTPClient {
	return &HTTPClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Send posts the message to the mail API. Does not log the message body.
func (c *HTTPClient) Send(ctx context.Context, msg Message) error {
	if c.APIKey == "" {
		return fmt.Errorf("mail: API key not configured")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("mail: base URL not configured")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail: request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}

// LogMailer is the no-credential fallback used in development: it records
// that a message would have been sent without exposing the body.
type LogMailer struct {
	Logger *slog.Logger
}

// Send logs the delivery attempt. The message body is never logged.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("mail delivery skipped (no MAIL_API_KEY)", "to", msg.To, "subject", msg.Subject)
	return nil
}

// WelcomeMessage composes the welcome email for a newly provisioned student
// account. password is the plaintext one-time password; it appears only in
// the message body, never in logs or events.
func WelcomeMessage(from, email, fullName, password string) Message {
	text := fmt.Sprintf(
		"Dear %s,\n\nWelcome to LearnAI!\n\nYour account has been created.\n\nEmail: %s\nPassword: %s\n\nPlease log in with these credentials and change your password.\n\nBest regards,\nThe LearnAI Team",
		fullName, email, password)
	return Message{
		From:    from,
		To:      email,
		Subject: "Welcome to LearnAI!",
		Text:    text,
	}
}
