package central

import (
	"context"
	"fmt"
	"net/url"
)

// ListGroups returns all configuration group names. The endpoint returns
// names wrapped in single-element arrays under "data".
func (c *Client) ListGroups(ctx context.Context) *Response {
	return c.GetAll(ctx, "/configuration/v2/groups", "data")
}

// CreateGroup creates a configuration group. templateGroup marks the group
// as template-based for the given device families ("Wired", "Wireless").
func (c *Client) CreateGroup(ctx context.Context, req GroupRequest) *Response {
	return c.Post(ctx, "/configuration/v2/groups", WithBody(req))
}

// DeleteGroup deletes the named configuration group.
func (c *Client) DeleteGroup(ctx context.Context, group string) *Response {
	return c.Delete(ctx, fmt.Sprintf("/configuration/v1/groups/%s", url.PathEscape(group)))
}

// GetGroupProperties fetches the properties of the named group.
func (c *Client) GetGroupProperties(ctx context.Context, group string) *Response {
	return c.Get(ctx, fmt.Sprintf("/configuration/v1/groups/%s/properties", url.PathEscape(group)))
}
