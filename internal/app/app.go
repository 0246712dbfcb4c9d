// Package app carries per-invocation CLI state: loaded config, the selected
// workspace, and lazily-built API client and cache handles. The root command
// stores an *App in the command context; topic commands pull it back out.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/internal/cache"
	"github.com/Pack3tL0ss/cencli/internal/central"
	"github.com/Pack3tL0ss/cencli/internal/config"
)

type ctxKey struct{}

// App is the per-invocation state shared by all commands.
type App struct {
	Cfg *config.Config

	// WorkspaceName is the --workspace flag value; empty means the default.
	WorkspaceName string
	// JSON mirrors the --json flag.
	JSON bool
	// Limit mirrors the --limit flag (0 = no client-side truncation).
	Limit int

	client *central.Client
	ws     *config.Workspace
	cache  *cache.Cache
}

// Into returns ctx with the app attached.
func Into(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromCmd returns the App stored by the root command. Panics when called
// outside a cencli command tree, which is a programming error.
func FromCmd(cmd *cobra.Command) *App {
	a, ok := cmd.Context().Value(ctxKey{}).(*App)
	if !ok {
		panic("app: command context has no App; root PersistentPreRunE did not run")
	}
	return a
}

// Workspace resolves the selected workspace once and memoizes it.
func (a *App) Workspace() (config.Workspace, error) {
	if a.ws != nil {
		return *a.ws, nil
	}
	ws, err := a.Cfg.Get(a.WorkspaceName)
	if err != nil {
		return config.Workspace{}, err
	}
	a.ws = &ws
	return ws, nil
}

// API returns the Central client for the selected workspace, building it on
// first use so commands that never call the API (workspace list, cache show)
// work without credentials.
func (a *App) API() (*central.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	ws, err := a.Workspace()
	if err != nil {
		return nil, err
	}
	client, err := central.New(central.Config{
		BaseURL:    ws.BaseURL,
		Token:      ws.Token,
		CustomerID: ws.CustomerID,
		RPS:        a.Cfg.RPS,
	})
	if err != nil {
		return nil, fmt.Errorf("workspace %q: %w", ws.Name, err)
	}
	a.client = client
	return client, nil
}

// Cache opens the selected workspace's lookup cache on first use.
func (a *App) Cache() (*cache.Cache, error) {
	if a.cache != nil {
		return a.cache, nil
	}
	ws, err := a.Workspace()
	if err != nil {
		return nil, err
	}
	dir, err := a.Cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	c, err := cache.Open(dir, ws.Name)
	if err != nil {
		return nil, err
	}
	a.cache = c
	return c, nil
}

// ResolveDevice turns a friendly name, MAC, or serial into a serial. Cache
// misses fall back to treating the argument as a literal serial so commands
// work before the cache is ever populated.
func (a *App) ResolveDevice(q string) (string, error) {
	c, err := a.Cache()
	if err != nil {
		return q, nil
	}
	d, err := c.LookupDevice(q)
	if err != nil {
		var amb *cache.AmbiguousError
		if errors.As(err, &amb) {
			return "", err
		}
		return q, nil
	}
	return d.Serial, nil
}

// ResolveGroup resolves a group name through the cache, falling back to the
// literal argument.
func (a *App) ResolveGroup(q string) (string, error) {
	c, err := a.Cache()
	if err != nil {
		return q, nil
	}
	g, err := c.LookupGroup(q)
	if err != nil {
		var amb *cache.AmbiguousError
		if errors.As(err, &amb) {
			return "", err
		}
		return q, nil
	}
	return g.Name, nil
}

// ResolveSite resolves a site name through the cache to its numeric ID;
// ok is false when the cache has no match.
func (a *App) ResolveSite(q string) (cache.SiteEntry, bool, error) {
	c, err := a.Cache()
	if err != nil {
		return cache.SiteEntry{}, false, nil
	}
	s, err := c.LookupSite(q)
	if err != nil {
		var amb *cache.AmbiguousError
		if errors.As(err, &amb) {
			return cache.SiteEntry{}, false, err
		}
		return cache.SiteEntry{}, false, nil
	}
	return s, true, nil
}
