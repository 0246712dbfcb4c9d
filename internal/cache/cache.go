// Package cache is the local lookup store mapping human-friendly device,
// site, and group names to the serials and IDs the API wants. It is
// populated from the inventory/monitoring endpoints and queried by commands
// so operators can say "lab-ap-3" instead of a serial number.
//
// Matching is deterministic: exact serial, exact MAC, exact name, then a
// unique case-insensitive prefix or substring. Ambiguity is an error listing
// the candidates.
package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Pack3tL0ss/cencli/internal/central"
)

// DeviceEntry is one cached device.
type DeviceEntry struct {
	Serial string `gorm:"primaryKey"`
	MAC    string `gorm:"index"`
	Name   string `gorm:"index"`
	Type   string
	Model  string
	Group  string
	Site   string
	Status string
}

// SiteEntry is one cached site.
type SiteEntry struct {
	ID   int `gorm:"primaryKey"`
	Name string
}

// GroupEntry is one cached configuration group.
type GroupEntry struct {
	Name string `gorm:"primaryKey"`
}

// Meta holds single-row bookkeeping (last refresh time).
type Meta struct {
	ID          int `gorm:"primaryKey"`
	RefreshedAt time.Time
}

// Cache wraps the per-workspace sqlite file. A CLI invocation is the only
// writer; no additional locking needed.
type Cache struct {
	db *gorm.DB
}

// Open opens (or creates) the cache DB for one workspace under dir.
func Open(dir, workspace string) (*Cache, error) {
	path := filepath.Join(dir, workspace+".db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if err := db.AutoMigrate(&DeviceEntry{}, &SiteEntry{}, &GroupEntry{}, &Meta{}); err != nil {
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Refresh repopulates the cache from the monitoring, sites, and groups
// endpoints inside one transaction, so readers never see a half-loaded
// cache.
func (c *Cache) Refresh(ctx context.Context, client *central.Client) error {
	var devices []DeviceEntry
	for devType, fetch := range map[string]func(context.Context, string, string) *central.Response{
		"ap":      client.ListAPs,
		"switch":  client.ListSwitches,
		"gateway": client.ListGateways,
	} {
		resp := fetch(ctx, "", "")
		if !resp.Ok() {
			return fmt.Errorf("refresh %ss: %w", devType, resp.AsErr())
		}
		var devs []central.Device
		if err := resp.Decode(&devs); err != nil {
			return fmt.Errorf("decode %ss: %w", devType, err)
		}
		for _, d := range devs {
			devices = append(devices, DeviceEntry{
				Serial: d.Serial,
				MAC:    normMAC(d.MACAddr),
				Name:   d.Name,
				Type:   devType,
				Model:  d.Model,
				Group:  d.GroupName,
				Site:   d.SiteName,
				Status: d.Status,
			})
		}
	}

	sitesResp := client.ListSites(ctx)
	if !sitesResp.Ok() {
		return fmt.Errorf("refresh sites: %w", sitesResp.AsErr())
	}
	var sites []central.Site
	if err := sitesResp.Decode(&sites); err != nil {
		return fmt.Errorf("decode sites: %w", err)
	}

	groupsResp := client.ListGroups(ctx)
	if !groupsResp.Ok() {
		return fmt.Errorf("refresh groups: %w", groupsResp.AsErr())
	}
	// Group names come back as single-element arrays under "data".
	var groupRows [][]string
	if err := groupsResp.Decode(&groupRows); err != nil {
		return fmt.Errorf("decode groups: %w", err)
	}

	return c.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&DeviceEntry{}, &SiteEntry{}, &GroupEntry{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		if len(devices) > 0 {
			if err := tx.Create(&devices).Error; err != nil {
				return err
			}
		}
		for _, s := range sites {
			if err := tx.Create(&SiteEntry{ID: s.ID, Name: s.Name}).Error; err != nil {
				return err
			}
		}
		for _, row := range groupRows {
			if len(row) == 0 || row[0] == "" {
				continue
			}
			if err := tx.Create(&GroupEntry{Name: row[0]}).Error; err != nil {
				return err
			}
		}
		return tx.Save(&Meta{ID: 1, RefreshedAt: time.Now()}).Error
	})
}

// AmbiguousError reports a query that matched more than one entry.
type AmbiguousError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q matches multiple entries: %s", e.Query, strings.Join(e.Candidates, ", "))
}

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = gorm.ErrRecordNotFound

// LookupDevice resolves q to a cached device. Resolution order: exact
// serial, exact MAC, exact name (case-insensitive), unique name prefix,
// unique name substring.
func (c *Cache) LookupDevice(q string) (DeviceEntry, error) {
	var d DeviceEntry

	if err := c.db.Where("serial = ?", strings.ToUpper(q)).First(&d).Error; err == nil {
		return d, nil
	}
	if mac := normMAC(q); mac != "" {
		if err := c.db.Where("mac = ?", mac).First(&d).Error; err == nil {
			return d, nil
		}
	}
	if err := c.db.Where("name = ? COLLATE NOCASE", q).First(&d).Error; err == nil {
		return d, nil
	}

	for _, pattern := range []string{q + "%", "%" + q + "%"} {
		var matches []DeviceEntry
		if err := c.db.Where("name LIKE ? COLLATE NOCASE", pattern).Find(&matches).Error; err != nil {
			return d, err
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.Name
			}
			sort.Strings(names)
			return d, &AmbiguousError{Query: q, Candidates: names}
		}
	}
	return d, fmt.Errorf("device %q: %w", q, ErrNotFound)
}

// LookupSite resolves q to a cached site by exact then unique partial name.
func (c *Cache) LookupSite(q string) (SiteEntry, error) {
	var s SiteEntry
	if err := c.db.Where("name = ? COLLATE NOCASE", q).First(&s).Error; err == nil {
		return s, nil
	}
	for _, pattern := range []string{q + "%", "%" + q + "%"} {
		var matches []SiteEntry
		if err := c.db.Where("name LIKE ? COLLATE NOCASE", pattern).Find(&matches).Error; err != nil {
			return s, err
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.Name
			}
			sort.Strings(names)
			return s, &AmbiguousError{Query: q, Candidates: names}
		}
	}
	return s, fmt.Errorf("site %q: %w", q, ErrNotFound)
}

// LookupGroup resolves q to a cached group by exact then unique partial name.
func (c *Cache) LookupGroup(q string) (GroupEntry, error) {
	var g GroupEntry
	if err := c.db.Where("name = ? COLLATE NOCASE", q).First(&g).Error; err == nil {
		return g, nil
	}
	for _, pattern := range []string{q + "%", "%" + q + "%"} {
		var matches []GroupEntry
		if err := c.db.Where("name LIKE ? COLLATE NOCASE", pattern).Find(&matches).Error; err != nil {
			return g, err
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.Name
			}
			sort.Strings(names)
			return g, &AmbiguousError{Query: q, Candidates: names}
		}
	}
	return g, fmt.Errorf("group %q: %w", q, ErrNotFound)
}

// Devices returns all cached devices ordered by name.
func (c *Cache) Devices() ([]DeviceEntry, error) {
	var out []DeviceEntry
	err := c.db.Order("name").Find(&out).Error
	return out, err
}

// Sites returns all cached sites ordered by name.
func (c *Cache) Sites() ([]SiteEntry, error) {
	var out []SiteEntry
	err := c.db.Order("name").Find(&out).Error
	return out, err
}

// Groups returns all cached groups ordered by name.
func (c *Cache) Groups() ([]GroupEntry, error) {
	var out []GroupEntry
	err := c.db.Order("name").Find(&out).Error
	return out, err
}

// Stats summarizes cache contents for `cencli cache show`.
type Stats struct {
	Devices     int64
	Sites       int64
	Groups      int64
	RefreshedAt time.Time
}

// Stat returns row counts and the last refresh time.
func (c *Cache) Stat() (Stats, error) {
	var st Stats
	if err := c.db.Model(&DeviceEntry{}).Count(&st.Devices).Error; err != nil {
		return st, err
	}
	if err := c.db.Model(&SiteEntry{}).Count(&st.Sites).Error; err != nil {
		return st, err
	}
	if err := c.db.Model(&GroupEntry{}).Count(&st.Groups).Error; err != nil {
		return st, err
	}
	var m Meta
	if err := c.db.First(&m, 1).Error; err == nil {
		st.RefreshedAt = m.RefreshedAt
	}
	return st, nil
}

// Clear drops all cached rows.
func (c *Cache) Clear() error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&DeviceEntry{}, &SiteEntry{}, &GroupEntry{}, &Meta{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// normMAC strips separators and upcases so cached MACs match regardless of
// the format the operator types.
func normMAC(mac string) string {
	s := strings.ToUpper(strings.NewReplacer(":", "", "-", "", ".", "").Replace(mac))
	if len(s) != 12 {
		return ""
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return ""
		}
	}
	return s
}
