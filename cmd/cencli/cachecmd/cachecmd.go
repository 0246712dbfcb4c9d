// Package cachecmd manages the local name-to-serial lookup cache.
package cachecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
	"github.com/Pack3tL0ss/cencli/internal/cleaner"
)

// New builds the "cache" command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local name lookup cache",
		Long: `cencli keeps a per-workspace cache mapping device, site, and group
names to serials and IDs so commands accept friendly names. "cache refresh"
repopulates it from the API; other commands read it without network access.`,
	}
	cmd.AddCommand(showCmd(), refreshCmd(), clearCmd())
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "show [devices|sites|groups]",
		Short:     "Show cache contents or summary stats",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"devices", "sites", "groups"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			c, err := a.Cache()
			if err != nil {
				return err
			}

			what := ""
			if len(args) == 1 {
				what = args[0]
			}
			switch what {
			case "devices":
				devs, err := c.Devices()
				if err != nil {
					return err
				}
				t := cleaner.Table{Headers: []string{"name", "serial", "mac", "type", "group", "site", "status"}}
				for _, d := range devs {
					t.Rows = append(t.Rows, []any{d.Name, d.Serial, d.MAC, d.Type, d.Group, d.Site, d.Status})
				}
				output.RenderTable(t)
			case "sites":
				sites, err := c.Sites()
				if err != nil {
					return err
				}
				t := cleaner.Table{Headers: []string{"id", "name"}}
				for _, s := range sites {
					t.Rows = append(t.Rows, []any{s.ID, s.Name})
				}
				output.RenderTable(t)
			case "groups":
				groups, err := c.Groups()
				if err != nil {
					return err
				}
				t := cleaner.Table{Headers: []string{"group"}}
				for _, g := range groups {
					t.Rows = append(t.Rows, []any{g.Name})
				}
				output.RenderTable(t)
			default:
				st, err := c.Stat()
				if err != nil {
					return err
				}
				refreshed := "never"
				if !st.RefreshedAt.IsZero() {
					refreshed = st.RefreshedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Printf("devices: %d\nsites: %d\ngroups: %d\nrefreshed: %s\n",
					st.Devices, st.Sites, st.Groups, refreshed)
			}
			return nil
		},
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Repopulate the cache from the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			c, err := a.Cache()
			if err != nil {
				return err
			}
			if err := c.Refresh(cmd.Context(), api); err != nil {
				return err
			}
			st, err := c.Stat()
			if err != nil {
				return err
			}
			fmt.Printf("cache refreshed: %d devices, %d sites, %d groups\n",
				st.Devices, st.Sites, st.Groups)
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			c, err := a.Cache()
			if err != nil {
				return err
			}
			if err := c.Clear(); err != nil {
				return err
			}
			fmt.Println("cache cleared")
			return nil
		},
	}
}
