package central

import (
	"context"
	"fmt"
	"net/url"
)

// ListTemplates returns the configuration templates in a template group.
func (c *Client) ListTemplates(ctx context.Context, group string) *Response {
	return c.GetAll(ctx, fmt.Sprintf("/configuration/v1/groups/%s/templates", url.PathEscape(group)), "data")
}

// GetTemplate fetches the body of one template. The response body is the
// raw template text, not JSON.
func (c *Client) GetTemplate(ctx context.Context, group, template string) *Response {
	return c.Get(ctx, fmt.Sprintf("/configuration/v1/groups/%s/templates/%s",
		url.PathEscape(group), url.PathEscape(template)))
}
