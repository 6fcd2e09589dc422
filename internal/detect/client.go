// Package detect finds UI elements in screenshots, either by asking a
// vision-language model served by Ollama or with a local contour-based
// fallback detector.
package detect

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// ClientOptions configures the model-backed detector.
type ClientOptions struct {
	Model   string
	Timeout time.Duration
}

// DefaultClientOptions returns the stock model settings.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Model:   "llava:13b",
		Timeout: 300 * time.Second, // vision models on CPU are slow
	}
}

// Client asks an Ollama-served vision model to find UI elements.
type Client struct {
	client *api.Client
	opts   ClientOptions
}

// NewClient creates a detector talking to the Ollama server at ollamaURL.
// Any path component of the URL is discarded.
func NewClient(ollamaURL string, opts ClientOptions) (*Client, error) {
	parsed, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}

	base := &url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
	}

	return &Client{
		client: api.NewClient(base, http.DefaultClient),
		opts:   opts,
	}, nil
}

// Detect sends the screenshot to the vision model and returns the parsed
// element list. The element collection of the caller must be left alone
// on error; Detect never returns partial results.
func (c *Client) Detect(ctx context.Context, img image.Image) ([]Element, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to analyze")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: c.opts.Model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: systemPrompt,
				Images:  []api.ImageData{api.ImageData(buf.Bytes())},
			},
		},
		Stream: &streamFalse,
	}

	var content string
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}
	if content == "" {
		return nil, fmt.Errorf("model returned an empty response")
	}

	return ParseElements(content)
}
