package central

import (
	"context"
	"fmt"
	"net/url"
)

// ListWebhooks returns the configured webhook destinations.
func (c *Client) ListWebhooks(ctx context.Context) *Response {
	return c.GetAll(ctx, "/central/v1/webhooks", "settings")
}

// CreateWebhook registers a webhook with the given name and target URLs.
func (c *Client) CreateWebhook(ctx context.Context, name string, urls []string) *Response {
	return c.Post(ctx, "/central/v1/webhooks",
		WithBody(map[string]any{
			"name": name,
			"urls": urls,
		}),
	)
}

// DeleteWebhook removes the webhook with the given ID.
func (c *Client) DeleteWebhook(ctx context.Context, wid string) *Response {
	return c.Delete(ctx, fmt.Sprintf("/central/v1/webhooks/%s", url.PathEscape(wid)))
}

// TestWebhook asks the server to send a test ping to the webhook's URLs.
func (c *Client) TestWebhook(ctx context.Context, wid string) *Response {
	return c.Get(ctx, fmt.Sprintf("/central/v1/webhooks/%s/ping", url.PathEscape(wid)))
}
