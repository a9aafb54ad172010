package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"meetingbot/internal/logger"
	"meetingbot/internal/service"
)

// WebhookNotifier posts a JSON payload to a configured URL whenever a
// response is scheduled. An empty URL disables it.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewWebhookNotifier(url string, logger *logger.Logger) service.Notifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (n *WebhookNotifier) NotifyResponseCreated(ctx context.Context, notification *service.ResponseNotification) error {
	if n.url == "" {
		return nil
	}

	jsonData, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.logger.Debug("Delivered response notification for", notification.ResponseID)
	return nil
}
