package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"taskbot/internal/domain"
)

// Webhook posts replies to the platform's return URL. Fire-and-forget:
// the response body is discarded and no timeout is imposed, so a hanging
// endpoint stalls only the drain loop while the queue keeps buffering.
type Webhook struct {
	returnURL string
	client    *http.Client
}

func NewWebhook(returnURL string) *Webhook {
	return &Webhook{returnURL: returnURL, client: &http.Client{}}
}

func (w *Webhook) Send(ctx context.Context, channelID string, r domain.Reply) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	url := w.returnURL + "/" + channelID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to channel: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
