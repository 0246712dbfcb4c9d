// Package config loads and persists cencli's workspace configuration.
// A workspace points at one Aruba Central tenant: base URL, API token, and
// optionally the customer ID the CaaS endpoints require.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v2"
)

const (
	envConfig  = "CENCLI_CONFIG"
	envToken   = "CENCLI_TOKEN"
	envBaseURL = "CENCLI_BASE_URL"
)

// Workspace is one named Central tenant.
type Workspace struct {
	Name       string `mapstructure:"name" yaml:"name"`
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`
	Token      string `mapstructure:"token" yaml:"token"`
	CustomerID string `mapstructure:"customer_id" yaml:"customer_id,omitempty"`
}

// Config is the persisted CLI configuration.
type Config struct {
	DefaultWorkspace string               `mapstructure:"default_workspace" yaml:"default_workspace"`
	Workspaces       map[string]Workspace `mapstructure:"workspaces" yaml:"workspaces"`
	// LogFormat is "text" (default) or "json".
	LogFormat string `mapstructure:"log_format" yaml:"log_format,omitempty"`
	// RPS caps client-side request rate; 0 uses the client default.
	RPS float64 `mapstructure:"rps" yaml:"rps,omitempty"`

	path string
}

// DefaultPath returns the config file path: $CENCLI_CONFIG when set,
// otherwise ~/.config/cencli/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "cencli", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty). A missing
// file yields an empty config so `workspace add` can bootstrap it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := &Config{Workspaces: map[string]Workspace{}, path: path}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Workspaces == nil {
		cfg.Workspaces = map[string]Workspace{}
	}
	for name, ws := range cfg.Workspaces {
		ws.Name = name
		cfg.Workspaces[name] = ws
	}
	cfg.path = path
	return cfg, nil
}

// Get resolves a workspace by name, or the default workspace when name is
// empty. CENCLI_TOKEN / CENCLI_BASE_URL environment variables override the
// stored values.
func (c *Config) Get(name string) (Workspace, error) {
	if name == "" {
		name = c.DefaultWorkspace
	}
	if name == "" {
		if len(c.Workspaces) == 1 {
			for _, ws := range c.Workspaces {
				return c.withEnv(ws), nil
			}
		}
		return Workspace{}, fmt.Errorf("no workspace selected: pass --workspace or set default_workspace in %s", c.path)
	}
	ws, ok := c.Workspaces[name]
	if !ok {
		return Workspace{}, fmt.Errorf("workspace %q not found (have: %s)", name, strings.Join(c.Names(), ", "))
	}
	return c.withEnv(ws), nil
}

func (c *Config) withEnv(ws Workspace) Workspace {
	if t := os.Getenv(envToken); t != "" {
		ws.Token = t
	}
	if u := os.Getenv(envBaseURL); u != "" {
		ws.BaseURL = u
	}
	return ws
}

// Names returns workspace names sorted for stable output.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Workspaces))
	for n := range c.Workspaces {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Add inserts or replaces a workspace. The first workspace added becomes
// the default.
func (c *Config) Add(ws Workspace) {
	if c.Workspaces == nil {
		c.Workspaces = map[string]Workspace{}
	}
	c.Workspaces[ws.Name] = ws
	if c.DefaultWorkspace == "" {
		c.DefaultWorkspace = ws.Name
	}
}

// Remove deletes a workspace; removing the default clears the default.
func (c *Config) Remove(name string) error {
	if _, ok := c.Workspaces[name]; !ok {
		return fmt.Errorf("workspace %q not found", name)
	}
	delete(c.Workspaces, name)
	if c.DefaultWorkspace == name {
		c.DefaultWorkspace = ""
	}
	return nil
}

// SetDefault marks an existing workspace as the default.
func (c *Config) SetDefault(name string) error {
	if _, ok := c.Workspaces[name]; !ok {
		return fmt.Errorf("workspace %q not found", name)
	}
	c.DefaultWorkspace = name
	return nil
}

// Save writes the config back to its file with 0600 permissions (the file
// holds API tokens).
func (c *Config) Save() error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.path, out, 0o600)
}

// Path returns the config file location this Config was loaded from.
func (c *Config) Path() string { return c.path }

// CacheDir returns the per-workspace cache directory, creating it if needed.
func (c *Config) CacheDir() (string, error) {
	dir := filepath.Join(filepath.Dir(c.path), "cache")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
