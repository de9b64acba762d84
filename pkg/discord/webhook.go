package discord

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

const (
	contentTypeJSON = "application/json"
	userAgent       = "Mozilla/5.0"
)

// WebhookClient delivers messages by POSTing them to a Discord webhook URL. Each Send is a single synchronous HTTP
// transaction with no retry, so delivery is at-most-once and a failure is the caller's to observe.
type WebhookClient struct {
	url    string
	client *http.Client
}

// Assert that WebhookClient implements the [Sender] interface.
var _ Sender = (*WebhookClient)(nil)

// NewWebhookClient creates a new WebhookClient posting to the given webhook URL. It uses a default [http.Client]
// without a timeout; use [WebhookClient.WithHTTPClient] to bound the round trip.
func NewWebhookClient(url string) *WebhookClient {
	return &WebhookClient{
		url:    url,
		client: &http.Client{},
	}
}

// WithHTTPClient returns a new WebhookClient using the given HTTP client. The original client is not modified.
func (webhookClient *WebhookClient) WithHTTPClient(httpClient *http.Client) *WebhookClient {
	return &WebhookClient{
		url:    webhookClient.url,
		client: httpClient,
	}
}

// Send encodes the message as a webhook payload and POSTs it, blocking until the HTTP transaction completes. A non-2xx
// response is returned as a [StatusError]; transport errors are returned as-is.
func (webhookClient *WebhookClient) Send(ctx context.Context, message Message) error {
	buf, err := message.Encode()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookClient.url, bytes.NewReader(buf))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("User-Agent", userAgent)

	resp, err := webhookClient.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	return nil
}
