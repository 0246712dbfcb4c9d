// Package show implements the read-only command surface: device, inventory,
// group, site, template, license, and webhook listings.
package show

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
	"github.com/Pack3tL0ss/cencli/internal/central"
	"github.com/Pack3tL0ss/cencli/internal/cleaner"
)

// New builds the "show" command and its subcommands.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show devices, groups, sites, and other resources",
	}

	cmd.AddCommand(
		devicesCmd("aps", "Show access points", (*central.Client).ListAPs),
		devicesCmd("switches", "Show switches", (*central.Client).ListSwitches),
		devicesCmd("gateways", "Show gateways", (*central.Client).ListGateways),
		inventoryCmd(),
		groupsCmd(),
		sitesCmd(),
		templatesCmd(),
		licensesCmd(),
		webhooksCmd(),
	)

	return cmd
}

// devicesCmd builds one monitoring listing command; aps/switches/gateways
// share flags, cleaner, and shape.
func devicesCmd(use, short string, list func(*central.Client, context.Context, string, string) *central.Response) *cobra.Command {
	var group, site string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			if group != "" {
				if group, err = a.ResolveGroup(group); err != nil {
					return err
				}
			}
			resp := list(api, cmd.Context(), group, site)
			return output.Print(resp, a.JSON, a.Limit, cleaner.Devices)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "filter by group")
	cmd.Flags().StringVar(&site, "site", "", "filter by site")

	return cmd
}

func inventoryCmd() *cobra.Command {
	var devType string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show the platform device inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.GetInventory(cmd.Context(), devType)
			return output.Print(resp, a.JSON, a.Limit, cleaner.Inventory)
		},
	}

	cmd.Flags().StringVar(&devType, "type", "", "filter by device type (ap|switch|gateway)")

	return cmd
}

func groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Show configuration groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.ListGroups(cmd.Context())
			return output.Print(resp, a.JSON, a.Limit, cleaner.Groups)
		},
	}
}

func sitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "Show sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.ListSites(cmd.Context())
			return output.Print(resp, a.JSON, a.Limit, cleaner.Sites)
		},
	}
}

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates GROUP [TEMPLATE]",
		Short: "Show templates in a group, or one template's body",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			group, err := a.ResolveGroup(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				// Template bodies are raw config text, not JSON.
				resp := api.GetTemplate(cmd.Context(), group, args[1])
				if !resp.Ok() {
					return resp.AsErr()
				}
				cmd.Println(string(resp.Body))
				return nil
			}
			resp := api.ListTemplates(cmd.Context(), group)
			return output.Print(resp, a.JSON, a.Limit, cleaner.Templates)
		},
	}
	return cmd
}

func licensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "licenses",
		Aliases: []string{"subscriptions"},
		Short:   "Show license subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.ListSubscriptions(cmd.Context())
			return output.Print(resp, a.JSON, a.Limit, cleaner.Subscriptions)
		},
	}
}

func webhooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "webhooks",
		Short: "Show configured webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.ListWebhooks(cmd.Context())
			return output.Print(resp, a.JSON, a.Limit, cleaner.Webhooks)
		},
	}
}
