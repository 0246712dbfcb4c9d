package root

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureOutput captures stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// setupWorkspace writes a config file pointing the "test" workspace at srv
// and selects it via CENCLI_CONFIG.
func setupWorkspace(t *testing.T, srv *httptest.Server) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`default_workspace: test
workspaces:
  test:
    base_url: %s
    token: test-token
    customer_id: "42"
`, srv.URL)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CENCLI_CONFIG", path)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	cmd.SetArgs(args)
	var err error
	out := captureOutput(t, func() {
		err = cmd.Execute()
	})
	return out, err
}

func TestShowAPs_TableOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/monitoring/v2/aps" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, `{"aps":[
			{"name":"lab-ap-1","serial":"CN12345678","status":"Up"},
			{"name":"lab-ap-2","serial":"CN23456789","status":"Down"}
		]}`)
	}))
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "show", "aps")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "lab-ap-1") || !strings.Contains(out, "lab-ap-2") {
		t.Fatalf("expected device names in output, got:\n%s", out)
	}
	if !strings.Contains(out, "CN12345678") {
		t.Fatalf("expected serial in output, got:\n%s", out)
	}
}

func TestShowAPs_JSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"aps":[{"name":"lab-ap-1","serial":"CN12345678"}]}`)
	}))
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "show", "aps", "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"serial": "CN12345678"`) {
		t.Fatalf("expected indented JSON, got:\n%s", out)
	}
}

func TestShowAPs_Limit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"aps":[
			{"name":"ap-a","serial":"S1"},{"name":"ap-b","serial":"S2"},{"name":"ap-c","serial":"S3"}
		]}`)
	}))
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "show", "aps", "--limit", "2")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.Contains(out, "ap-c") {
		t.Fatalf("limit not applied:\n%s", out)
	}
	if !strings.Contains(out, "showing 2 of 3") {
		t.Fatalf("expected truncation note, got:\n%s", out)
	}
}

func TestShowAPs_APIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"description":"invalid token"}`)
	}))
	defer srv.Close()
	setupWorkspace(t, srv)

	_, err := run(t, "show", "aps")
	if err == nil || !strings.Contains(err.Error(), "invalid token") {
		t.Fatalf("err = %v, want vendor description", err)
	}
}

func TestDeviceMove_LiteralSerialFallback(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/configuration/v1/devices/move" {
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			fmt.Fprint(w, `{}`)
			return
		}
		// Cache lookups may hit monitoring endpoints; return nothing.
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "device", "move", "CN12345678", "--group", "lab")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(gotBody, `"CN12345678"`) || !strings.Contains(gotBody, `"lab"`) {
		t.Fatalf("move payload = %s", gotBody)
	}
	if !strings.Contains(out, "moved 1 device(s) to group lab") {
		t.Fatalf("output = %s", out)
	}
}

func TestWorkspaceList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "workspace", "list")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "test") || !strings.Contains(out, srv.URL) {
		t.Fatalf("output = %s", out)
	}
	if !strings.Contains(out, "*") {
		t.Fatalf("default marker missing:\n%s", out)
	}
}

func TestBatchAddSites_ContinueOnFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/central/v2/sites" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		if strings.Contains(string(b), "Bad Site") {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"description":"duplicate site"}`)
			return
		}
		fmt.Fprint(w, `{"site_id":99}`)
	}))
	defer srv.Close()
	setupWorkspace(t, srv)

	file := filepath.Join(t.TempDir(), "sites.yaml")
	data := `- name: Good Site
  address: 1 Main St
  city: Austin
  state: TX
  country: US
- name: Bad Site
  address: 2 Main St
  city: Austin
  state: TX
  country: US
`
	if err := os.WriteFile(file, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "batch", "add", "sites", file, "--continue-on-fail")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 items failed") {
		t.Fatalf("err = %v, want partial failure", err)
	}
	if !strings.Contains(out, "Good Site") || !strings.Contains(out, "duplicate site") {
		t.Fatalf("output = %s", out)
	}
	if !strings.Contains(out, "1 succeeded, 1 failed") {
		t.Fatalf("summary missing:\n%s", out)
	}
}

func TestUnknownWorkspace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	setupWorkspace(t, srv)

	_, err := run(t, "show", "aps", "--workspace", "nope")
	if err == nil || !strings.Contains(err.Error(), `workspace "nope" not found`) {
		t.Fatalf("err = %v", err)
	}
}

func TestWorkspaceAdd_SavesConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "workspace", "add", "staging",
		"--base-url", "https://apigw-staging.example.test",
		"--token", "staging-token")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "workspace staging saved") {
		t.Fatalf("output = %s", out)
	}

	data, err := os.ReadFile(os.Getenv("CENCLI_CONFIG"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "staging-token") {
		t.Fatalf("token not persisted:\n%s", data)
	}

	out, err = run(t, "workspace", "list")
	if err != nil {
		t.Fatalf("list after add: %v", err)
	}
	if !strings.Contains(out, "staging") {
		t.Fatalf("new workspace missing from list:\n%s", out)
	}
}

func TestCacheShow_EmptyStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "cache", "show")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "devices: 0") || !strings.Contains(out, "refreshed: never") {
		t.Fatalf("output = %s", out)
	}
}

func TestGroupAdd_TemplateGroup(t *testing.T) {
	var body []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/configuration/v2/groups", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		body, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `"Created"`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "group", "add", "branch-tmpl", "--template")
	if err != nil {
		t.Fatalf("group add: %v", err)
	}
	if !strings.Contains(out, "group branch-tmpl created") {
		t.Fatalf("output = %s", out)
	}
	if !strings.Contains(string(body), `"Wireless":true`) {
		t.Fatalf("request body = %s", body)
	}
}

func TestSiteAssign_NumericIDFallback(t *testing.T) {
	var assoc []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/central/v2/sites/associations", func(w http.ResponseWriter, r *http.Request) {
		assoc, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `{"success": true}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	setupWorkspace(t, srv)

	out, err := run(t, "site", "assign", "17", "CN12345678")
	if err != nil {
		t.Fatalf("site assign: %v", err)
	}
	if !strings.Contains(out, "assigned 1 device(s) to site 17") {
		t.Fatalf("output = %s", out)
	}
	if !strings.Contains(string(assoc), `"site_id":17`) {
		t.Fatalf("request body = %s", assoc)
	}
}
