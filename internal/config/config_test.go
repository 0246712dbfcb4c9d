package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleConfig = `default_workspace: prod
workspaces:
  prod:
    base_url: https://apigw-uswest4.central.arubanetworks.com
    token: prod-token
    customer_id: "123456"
  lab:
    base_url: https://apigw-eucentral3.central.arubanetworks.com
    token: lab-token
`

func TestLoad_SelectsDefaultWorkspace(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ws, err := cfg.Get("")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ws.Name != "prod" || ws.Token != "prod-token" || ws.CustomerID != "123456" {
		t.Fatalf("unexpected workspace: %+v", ws)
	}
}

func TestLoad_GetByName(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ws, err := cfg.Get("lab")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ws.BaseURL != "https://apigw-eucentral3.central.arubanetworks.com" {
		t.Fatalf("BaseURL = %q", ws.BaseURL)
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Fatal("expected error for unknown workspace")
	}
}

func TestGet_EnvOverridesToken(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Setenv("CENCLI_TOKEN", "env-token")
	ws, err := cfg.Get("prod")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ws.Token != "env-token" {
		t.Fatalf("Token = %q, want env override", ws.Token)
	}
}

func TestLoad_MissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Workspaces) != 0 {
		t.Fatalf("workspaces = %d, want 0", len(cfg.Workspaces))
	}
	if _, err := cfg.Get(""); err == nil {
		t.Fatal("expected error selecting workspace from empty config")
	}
}

func TestAddSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg.Add(Workspace{Name: "first", BaseURL: "https://example.test", Token: "tok"})
	if cfg.DefaultWorkspace != "first" {
		t.Fatalf("first workspace should become default, got %q", cfg.DefaultWorkspace)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perms = %o, want 600 (file holds tokens)", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("re-Load: %v", err)
	}
	ws, err := loaded.Get("first")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ws.Token != "tok" {
		t.Fatalf("Token = %q after roundtrip", ws.Token)
	}
}

func TestRemove_ClearsDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Remove("prod"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if cfg.DefaultWorkspace != "" {
		t.Fatalf("default = %q, want cleared", cfg.DefaultWorkspace)
	}
	if err := cfg.SetDefault("lab"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	ws, err := cfg.Get("")
	if err != nil || ws.Name != "lab" {
		t.Fatalf("Get after SetDefault = %+v, %v", ws, err)
	}
}

func TestGet_SingleWorkspaceNeedsNoDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, `workspaces:
  only:
    base_url: https://example.test
    token: tok
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ws, err := cfg.Get("")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ws.Name != "only" {
		t.Fatalf("Name = %q", ws.Name)
	}
}
