package central

import "context"

// ListSubscriptions returns the tenant's license subscriptions.
func (c *Client) ListSubscriptions(ctx context.Context) *Response {
	return c.GetAll(ctx, "/platform/licensing/v1/subscriptions", "subscriptions")
}

// AssignLicense assigns the named license services to the given serials.
func (c *Client) AssignLicense(ctx context.Context, serials, services []string) *Response {
	return c.Post(ctx, "/platform/licensing/v1/subscriptions/assign",
		WithBody(map[string]any{
			"serials":  serials,
			"services": services,
		}),
	)
}

// UnassignLicense removes the named license services from the given serials.
func (c *Client) UnassignLicense(ctx context.Context, serials, services []string) *Response {
	return c.Post(ctx, "/platform/licensing/v1/subscriptions/unassign",
		WithBody(map[string]any{
			"serials":  serials,
			"services": services,
		}),
	)
}
