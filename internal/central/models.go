package central

// DTOs mirror the vendor's JSON schemas for the endpoints this CLI consumes.
// The source of truth for field semantics is server-side; these carry only
// what the commands and the local cache need.

// Device is a monitored device as returned by the monitoring endpoints
// (aps, switches, gateways share this shape for the fields we keep).
type Device struct {
	Serial    string `json:"serial"`
	Name      string `json:"name"`
	MACAddr   string `json:"macaddr"`
	Model     string `json:"model"`
	GroupName string `json:"group_name"`
	SiteName  string `json:"site"`
	Status    string `json:"status"`
	IPAddress string `json:"ip_address"`
	Firmware  string `json:"firmware_version"`
	UptimeSec int64  `json:"uptime"`
	Type      string `json:"-"`
}

// InventoryDevice is a platform inventory record (includes devices never
// brought online, so the monitoring fields are absent).
type InventoryDevice struct {
	Serial   string `json:"serial"`
	MACAddr  string `json:"macaddr"`
	Model    string `json:"model"`
	Type     string `json:"type"`
	SKU      string `json:"aruba_part_no"`
	Services string `json:"services"`
}

// Site is a Central site (a physical location devices are assigned to).
type Site struct {
	ID        int    `json:"site_id"`
	Name      string `json:"site_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Zipcode   string `json:"zipcode"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Devices   int    `json:"associated_device_count"`
}

// SiteRequest is the create-site payload. Either Address or Geolocation
// may be set; the server rejects a site with neither.
type SiteRequest struct {
	Name        string       `json:"site_name"`
	Address     *SiteAddress `json:"site_address,omitempty"`
	Geolocation *Geolocation `json:"geolocation,omitempty"`
}

type SiteAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zipcode string `json:"zipcode"`
}

type Geolocation struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// GroupRequest is the create-group payload.
type GroupRequest struct {
	Group      string          `json:"group"`
	Attributes GroupAttributes `json:"group_attributes"`
}

// GroupAttributes selects the group's configuration mode and allowed device
// families.
type GroupAttributes struct {
	TemplateGroup map[string]bool `json:"template_info,omitempty"`
	AllowedTypes  []string        `json:"allowed_dev_types,omitempty"`
}

// Template identifies a configuration template within a template group.
type Template struct {
	Name       string `json:"name"`
	Group      string `json:"group"`
	DeviceType string `json:"device_type"`
	Version    string `json:"version"`
	Model      string `json:"model"`
}

// Subscription is a license pool entry.
type Subscription struct {
	Key       string `json:"subscription_key"`
	License   string `json:"license_type"`
	Quantity  int    `json:"quantity"`
	Available int    `json:"available"`
	Status    string `json:"status"`
	EndDate   int64  `json:"end_date"`
}

// Webhook is a configured webhook destination.
type Webhook struct {
	ID   string   `json:"wid"`
	Name string   `json:"name"`
	URLs []string `json:"urls"`
}

// TaskStatus is the state of an async CaaS task.
type TaskStatus struct {
	TaskID string `json:"task_id"`
	State  string `json:"state"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}
