// Package invite delivers invite codes and password reset codes through
// an outbound mail gateway. Delivery failures are reported to the
// caller; nothing is retried automatically.
package invite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Invitation carries everything the recipient needs to join a ledger.
type Invitation struct {
	To         string `json:"to"`
	LedgerName string `json:"ledger_name"`
	InviteCode string `json:"invite_code"`
	InvitedBy  string `json:"invited_by"`
	Message    string `json:"message,omitempty"`
	InviteLink string `json:"invite_link,omitempty"`
}

// Sender delivers outbound mail.
type Sender interface {
	SendInvite(ctx context.Context, inv Invitation) error
	SendResetCode(ctx context.Context, email, code string) error
}

// WebhookSender posts JSON payloads to a mail-gateway endpoint.
type WebhookSender struct {
	url     string
	baseURL string
	client  *http.Client
}

// NewWebhookSender builds a sender targeting url. baseURL, when set, is
// used to compose a clickable join link in invitations.
func NewWebhookSender(url, baseURL string) *WebhookSender {
	return &WebhookSender{
		url:     url,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *WebhookSender) SendInvite(ctx context.Context, inv Invitation) error {
	if s.baseURL != "" && inv.InviteLink == "" {
		inv.InviteLink = fmt.Sprintf("%s/join?code=%s", s.baseURL, inv.InviteCode)
	}
	return s.post(ctx, map[string]any{
		"template": "invite",
		"payload":  inv,
	})
}

func (s *WebhookSender) SendResetCode(ctx context.Context, email, code string) error {
	return s.post(ctx, map[string]any{
		"template": "password_reset",
		"payload": map[string]string{
			"to":         email,
			"reset_code": code,
		},
	})
}

func (s *WebhookSender) post(ctx context.Context, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// NopSender is used when no gateway is configured; every delivery fails
// with a clear message instead of silently vanishing.
type NopSender struct{}

func (NopSender) SendInvite(context.Context, Invitation) error {
	return fmt.Errorf("mail delivery is not configured")
}

func (NopSender) SendResetCode(context.Context, string, string) error {
	return fmt.Errorf("mail delivery is not configured")
}
