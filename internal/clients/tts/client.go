// Package tts is a thin HTTP client for the speech synthesis collaborator
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client calls the external text-to-speech service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new TTS client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Synthesize converts text into spoken audio bytes
//
// The upstream service returns audio/mpeg; the bytes are passed through
// untouched so the handler can stream them to the browser.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/synthesize?text=%s", c.baseURL, url.QueryEscape(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build TTS request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call TTS service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS service returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response: %w", err)
	}

	return audio, nil
}
