package cleaner

import (
	"strconv"
	"testing"
	"time"
)

func TestDevices(t *testing.T) {
	body := []byte(`[
		{"name":"lab-ap-1","serial":"CN12345678","macaddr":"aa:bb:cc:dd:ee:01","model":"AP-515",
		 "ip_address":"10.0.0.5","group_name":"lab","site":"HQ","status":"Up",
		 "firmware_version":"10.4.0.0","uptime":90061},
		{"serial":"CN9","status":"Down"}
	]`)
	tab := Devices(body)
	if len(tab.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tab.Rows))
	}
	if len(tab.Headers) != len(tab.Rows[0]) {
		t.Fatalf("headers %d != columns %d", len(tab.Headers), len(tab.Rows[0]))
	}
	if tab.Rows[0][0] != "lab-ap-1" || tab.Rows[0][7] != "Up" {
		t.Fatalf("row 0 = %v", tab.Rows[0])
	}
	// 90061s = 1d 1h 1m
	if tab.Rows[0][9] != "1d 1h 1m" {
		t.Fatalf("uptime = %v", tab.Rows[0][9])
	}
	// Missing fields render as "-".
	if tab.Rows[1][0] != "-" || tab.Rows[1][9] != "-" {
		t.Fatalf("row 1 = %v", tab.Rows[1])
	}
}

func TestGroups(t *testing.T) {
	tab := Groups([]byte(`[["lab"],["wired"],[""],[]]`))
	if len(tab.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (empty names skipped)", len(tab.Rows))
	}
	if tab.Rows[1][0] != "wired" {
		t.Fatalf("rows = %v", tab.Rows)
	}
}

func TestSites(t *testing.T) {
	tab := Sites([]byte(`[
		{"site_id":10,"site_name":"HQ","city":"Austin","country":"US","associated_device_count":42}
	]`))
	if len(tab.Rows) != 1 {
		t.Fatalf("rows = %d", len(tab.Rows))
	}
	row := tab.Rows[0]
	if row[0] != int64(10) || row[1] != "HQ" || row[6] != int64(42) {
		t.Fatalf("row = %v", row)
	}
	if row[2] != "-" {
		t.Fatalf("missing address should be '-', got %v", row[2])
	}
}

func TestSubscriptionsEpochRendering(t *testing.T) {
	// end_date in epoch ms.
	end := time.Date(2027, 3, 1, 12, 0, 0, 0, time.Local)
	body := []byte(`[{"subscription_key":"K1","license_type":"foundation_ap","status":"OK",
		"quantity":10,"available":4,"end_date":` + strconv.FormatInt(end.Unix()*1000, 10) + `}]`)
	tab := Subscriptions(body)
	if len(tab.Rows) != 1 {
		t.Fatalf("rows = %d", len(tab.Rows))
	}
	if got := tab.Rows[0][5]; got != end.Format("2006-01-02 15:04") {
		t.Fatalf("expires = %v, want %s", got, end.Format("2006-01-02 15:04"))
	}
}

func TestWebhooksJoinsURLs(t *testing.T) {
	tab := Webhooks([]byte(`[{"wid":"w1","name":"alerts","urls":["https://a.test/hook","https://b.test/hook"]}]`))
	if tab.Rows[0][2] != "https://a.test/hook, https://b.test/hook" {
		t.Fatalf("urls = %v", tab.Rows[0][2])
	}
}

func TestEmptyBodies(t *testing.T) {
	for name, fn := range map[string]func([]byte) Table{
		"devices":       Devices,
		"inventory":     Inventory,
		"groups":        Groups,
		"sites":         Sites,
		"templates":     Templates,
		"subscriptions": Subscriptions,
		"webhooks":      Webhooks,
	} {
		if rows := fn([]byte(`[]`)).Rows; len(rows) != 0 {
			t.Errorf("%s: rows = %d for empty input", name, len(rows))
		}
	}
}
