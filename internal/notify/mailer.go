// Package notify sends outbound notifications through a transactional mail
// HTTP API. Demo requests go to a fixed recipient; password resets go to the
// requesting user.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Mailer is the outbound notification interface the services depend on.
type Mailer interface {
	// SendDemoRequest notifies the fixed recipient that someone asked for a demo.
	SendDemoRequest(ctx context.Context, email string) error

	// SendPasswordReset delivers a reset token to the user's email.
	SendPasswordReset(ctx context.Context, email, token string) error
}

// HTTPMailer sends mail through a transactional mail API endpoint.
type HTTPMailer struct {
	http     *http.Client
	endpoint string
	apiKey   string
	from     string
	// demoRecipient receives every demo request, regardless of who asked.
	demoRecipient string
}

var _ Mailer = (*HTTPMailer)(nil)

// NewHTTPMailer creates a mailer for the given mail API endpoint.
func NewHTTPMailer(endpoint, apiKey, from, demoRecipient string) *HTTPMailer {
	return &HTTPMailer{
		http:          &http.Client{Timeout: 15 * time.Second},
		endpoint:      endpoint,
		apiKey:        apiKey,
		from:          from,
		demoRecipient: demoRecipient,
	}
}

// message is the mail API's send payload.
type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SendDemoRequest notifies the fixed recipient of a new demo request.
func (m *HTTPMailer) SendDemoRequest(ctx context.Context, email string) error {
	body := fmt.Sprintf(
		"<h2>New Demo Request</h2>"+
			"<p>A new user has requested a demo of Global Pocket.</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Date:</strong> %s</p>",
		email, time.Now().Format(time.RFC1123),
	)

	return m.send(ctx, message{
		From:    m.from,
		To:      m.demoRecipient,
		Subject: "New Demo Request - Global Pocket",
		HTML:    body,
	})
}

// SendPasswordReset delivers a reset token to the user.
func (m *HTTPMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"<h2>Password Reset</h2>"+
			"<p>Use this token to reset your Global Pocket password. It expires in one hour.</p>"+
			"<p><strong>Token:</strong> %s</p>",
		token,
	)

	return m.send(ctx, message{
		From:    m.from,
		To:      email,
		Subject: "Password Reset - Global Pocket",
		HTML:    body,
	})
}

func (m *HTTPMailer) send(ctx context.Context, msg message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail API returned %s", resp.Status)
	}

	return nil
}
