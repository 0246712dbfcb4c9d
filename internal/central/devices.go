package central

import (
	"context"
	"fmt"
)

// Each wrapper builds the endpoint path, params, and payload, and calls the
// shared helper. Filters with empty values are dropped by WithParam.

// ListAPs returns all access points, optionally filtered by group and site.
func (c *Client) ListAPs(ctx context.Context, group, site string) *Response {
	return c.GetAll(ctx, "/monitoring/v2/aps", "aps",
		WithParam("group", group),
		WithParam("site", site),
	)
}

// ListSwitches returns all switches, optionally filtered by group and site.
func (c *Client) ListSwitches(ctx context.Context, group, site string) *Response {
	return c.GetAll(ctx, "/monitoring/v1/switches", "switches",
		WithParam("group", group),
		WithParam("site", site),
	)
}

// ListGateways returns all gateways, optionally filtered by group and site.
func (c *Client) ListGateways(ctx context.Context, group, site string) *Response {
	return c.GetAll(ctx, "/monitoring/v1/gateways", "gateways",
		WithParam("group", group),
		WithParam("site", site),
	)
}

// GetInventory returns the platform device inventory. devType filters by
// device family (ap, switch, gateway); empty returns everything.
func (c *Client) GetInventory(ctx context.Context, devType string) *Response {
	sku := "all"
	switch devType {
	case "ap":
		sku = "IAP"
	case "switch":
		sku = "SWITCH"
	case "gateway":
		sku = "GATEWAY"
	}
	return c.GetAll(ctx, "/platform/device_inventory/v1/devices", "devices",
		WithParam("sku_type", sku),
	)
}

// MoveDevices moves serials into the named configuration group.
func (c *Client) MoveDevices(ctx context.Context, group string, serials []string) *Response {
	return c.Post(ctx, "/configuration/v1/devices/move",
		WithBody(map[string]any{
			"group":   group,
			"serials": serials,
		}),
	)
}

// RenameAP sets the hostname of the AP with the given serial.
func (c *Client) RenameAP(ctx context.Context, serial, name string) *Response {
	return c.Post(ctx, fmt.Sprintf("/configuration/v2/ap_settings/%s", serial),
		WithBody(map[string]string{"hostname": name}),
	)
}

// RebootDevice issues a reboot action for the device with the given serial.
func (c *Client) RebootDevice(ctx context.Context, serial string) *Response {
	return c.Post(ctx, fmt.Sprintf("/device_management/v1/device/%s/action/reboot", serial))
}
