package webhook

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relwatch/pkg/domain/interfaces"
	"github.com/m-mizutani/relwatch/pkg/domain/model"
	"github.com/m-mizutani/relwatch/pkg/domain/types"
)

// Client posts notifications to a webhook sink. Redirects are followed by
// the underlying http.Client.
type Client struct {
	httpClient *http.Client
}

// Option is a functional option for Client configuration.
type Option func(*Client)

// WithTimeout sets a per-delivery timeout. Zero keeps the default of
// blocking until the transport gives up.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a webhook client.
func New(opts ...Option) interfaces.Notifier {
	c := &Client{
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deliver performs one POST to the sink. The body is the rendered content
// when present, otherwise the sink's static data payload form-encoded.
// A non-2xx response is a delivery failure.
func (c *Client) Deliver(ctx context.Context, sink *model.WebhookSink, content string) error {
	var body io.Reader
	var contentType string

	switch {
	case content != "":
		body = strings.NewReader(content)
	case len(sink.Data) > 0:
		form := url.Values{}
		for k, v := range sink.Data {
			form.Set(k, v)
		}
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sink.URL, body)
	if err != nil {
		return goerr.Wrap(err, "failed to create webhook request", goerr.V("url", sink.URL))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range sink.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send webhook request", goerr.V("url", sink.URL))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return goerr.New("webhook returned non-2xx status",
			goerr.V("url", sink.URL),
			goerr.V("status", resp.StatusCode),
			goerr.T(types.ErrTagBadResponse))
	}

	return nil
}
