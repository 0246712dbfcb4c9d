// Package cleaner reshapes raw API JSON into table-friendly headers and
// rows. Each function is pure: body bytes in, ordered columns out. Missing
// fields render as "-" so tables stay aligned when the vendor omits keys.
package cleaner

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Table is what the output layer renders.
type Table struct {
	Headers []string
	Rows    [][]any
}

// Devices reshapes a monitoring device array (aps/switches/gateways).
func Devices(body []byte) Table {
	t := Table{Headers: []string{"name", "serial", "mac", "model", "ip", "group", "site", "status", "firmware", "uptime"}}
	gjson.ParseBytes(body).ForEach(func(_, d gjson.Result) bool {
		t.Rows = append(t.Rows, []any{
			str(d, "name"),
			str(d, "serial"),
			str(d, "macaddr"),
			str(d, "model"),
			str(d, "ip_address"),
			str(d, "group_name"),
			str(d, "site"),
			str(d, "status"),
			str(d, "firmware_version"),
			uptime(d.Get("uptime").Int()),
		})
		return true
	})
	return t
}

// Inventory reshapes a platform inventory device array.
func Inventory(body []byte) Table {
	t := Table{Headers: []string{"serial", "mac", "type", "model", "sku", "services"}}
	gjson.ParseBytes(body).ForEach(func(_, d gjson.Result) bool {
		t.Rows = append(t.Rows, []any{
			str(d, "serial"),
			str(d, "macaddr"),
			str(d, "type"),
			str(d, "model"),
			str(d, "aruba_part_no"),
			str(d, "services"),
		})
		return true
	})
	return t
}

// Groups reshapes the group list, which arrives as single-element name
// arrays under "data".
func Groups(body []byte) Table {
	t := Table{Headers: []string{"group"}}
	gjson.ParseBytes(body).ForEach(func(_, row gjson.Result) bool {
		if arr := row.Array(); len(arr) > 0 && arr[0].String() != "" {
			t.Rows = append(t.Rows, []any{arr[0].String()})
		}
		return true
	})
	return t
}

// Sites reshapes the site list.
func Sites(body []byte) Table {
	t := Table{Headers: []string{"id", "name", "address", "city", "state", "country", "devices"}}
	gjson.ParseBytes(body).ForEach(func(_, s gjson.Result) bool {
		t.Rows = append(t.Rows, []any{
			s.Get("site_id").Int(),
			str(s, "site_name"),
			str(s, "address"),
			str(s, "city"),
			str(s, "state"),
			str(s, "country"),
			s.Get("associated_device_count").Int(),
		})
		return true
	})
	return t
}

// Templates reshapes the template list for one group.
func Templates(body []byte) Table {
	t := Table{Headers: []string{"name", "group", "device type", "model", "version"}}
	gjson.ParseBytes(body).ForEach(func(_, tpl gjson.Result) bool {
		t.Rows = append(t.Rows, []any{
			str(tpl, "name"),
			str(tpl, "group"),
			str(tpl, "device_type"),
			str(tpl, "model"),
			str(tpl, "version"),
		})
		return true
	})
	return t
}

// Subscriptions reshapes the license subscription list.
func Subscriptions(body []byte) Table {
	t := Table{Headers: []string{"key", "license", "status", "quantity", "available", "expires"}}
	gjson.ParseBytes(body).ForEach(func(_, s gjson.Result) bool {
		t.Rows = append(t.Rows, []any{
			str(s, "subscription_key"),
			str(s, "license_type"),
			str(s, "status"),
			s.Get("quantity").Int(),
			s.Get("available").Int(),
			epoch(s.Get("end_date").Int()),
		})
		return true
	})
	return t
}

// Webhooks reshapes the webhook settings list.
func Webhooks(body []byte) Table {
	t := Table{Headers: []string{"id", "name", "urls"}}
	gjson.ParseBytes(body).ForEach(func(_, w gjson.Result) bool {
		var urls []string
		w.Get("urls").ForEach(func(_, u gjson.Result) bool {
			urls = append(urls, u.String())
			return true
		})
		t.Rows = append(t.Rows, []any{
			str(w, "wid"),
			str(w, "name"),
			strings.Join(urls, ", "),
		})
		return true
	})
	return t
}

// str returns the string at path, "-" when absent or empty.
func str(r gjson.Result, path string) string {
	v := r.Get(path).String()
	if v == "" {
		return "-"
	}
	return v
}

// epoch renders an epoch-ms or epoch-s timestamp as local time; "-" for zero.
func epoch(v int64) string {
	if v == 0 {
		return "-"
	}
	// The vendor mixes ms and s epochs across endpoints.
	if v > 1e12 {
		v /= 1000
	}
	return time.Unix(v, 0).Local().Format("2006-01-02 15:04")
}

// uptime renders seconds as d/h/m; "-" for zero.
func uptime(secs int64) string {
	if secs <= 0 {
		return "-"
	}
	d := secs / 86400
	h := (secs % 86400) / 3600
	m := (secs % 3600) / 60
	if d > 0 {
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
