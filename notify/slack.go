// Package notify reports run results to Slack through an incoming
// webhook. Notification is optional; without a webhook URL every call
// is a no-op.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Slack posts short run summaries as plain text messages.
type Slack struct {
	WebhookURL string
	client     *http.Client
}

// NewSlack builds a notifier. client may be nil, in which case a
// default with a 10s timeout is used.
func NewSlack(webhookURL string, client *http.Client) *Slack {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Slack{WebhookURL: webhookURL, client: client}
}

func (s *Slack) Notify(ctx context.Context, message string) error {
	if s.WebhookURL == "" {
		return nil
	}
	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack returned non-2xx status: %d", resp.StatusCode)
	}
	return nil
}
