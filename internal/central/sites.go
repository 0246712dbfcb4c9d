package central

import (
	"context"
	"fmt"
)

// ListSites returns all sites.
func (c *Client) ListSites(ctx context.Context) *Response {
	return c.GetAll(ctx, "/central/v2/sites", "sites")
}

// CreateSite creates a site from the given request. The server requires
// either a street address or a geolocation.
func (c *Client) CreateSite(ctx context.Context, req SiteRequest) *Response {
	return c.Post(ctx, "/central/v2/sites", WithBody(req))
}

// DeleteSite deletes the site with the given ID.
func (c *Client) DeleteSite(ctx context.Context, siteID int) *Response {
	return c.Delete(ctx, fmt.Sprintf("/central/v2/sites/%d", siteID))
}

// AssignSiteToDevices associates devices (by serial) of one device family
// ("IAP", "SWITCH", "CONTROLLER") with a site.
func (c *Client) AssignSiteToDevices(ctx context.Context, siteID int, deviceType string, serials []string) *Response {
	return c.Post(ctx, "/central/v2/sites/associations",
		WithBody(map[string]any{
			"site_id":     siteID,
			"device_ids":  serials,
			"device_type": deviceType,
		}),
	)
}
