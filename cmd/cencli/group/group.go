// Package group manages configuration groups.
package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
	"github.com/Pack3tL0ss/cencli/internal/central"
)

// New builds the "group" command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage configuration groups",
	}
	cmd.AddCommand(addCmd(), deleteCmd(), propertiesCmd())
	return cmd
}

func addCmd() *cobra.Command {
	var (
		template     bool
		allowedTypes []string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			req := central.GroupRequest{Group: args[0]}
			if template {
				req.Attributes.TemplateGroup = map[string]bool{"Wired": true, "Wireless": true}
			}
			req.Attributes.AllowedTypes = allowedTypes
			resp := api.CreateGroup(cmd.Context(), req)
			if !resp.Ok() {
				return resp.AsErr()
			}
			fmt.Printf("group %s created\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, "create as a template group")
	cmd.Flags().StringSliceVar(&allowedTypes, "allowed-types", nil, "allowed device families (AccessPoints,Gateways,Switches)")

	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete GROUP",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			name, err := a.ResolveGroup(args[0])
			if err != nil {
				return err
			}
			if !yes {
				fmt.Printf("delete group %s? [y/N] ", name)
				var answer string
				fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					return nil
				}
			}
			resp := api.DeleteGroup(cmd.Context(), name)
			if !resp.Ok() {
				return resp.AsErr()
			}
			fmt.Printf("group %s deleted\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func propertiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "properties GROUP",
		Short: "Show a group's properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			name, err := a.ResolveGroup(args[0])
			if err != nil {
				return err
			}
			resp := api.GetGroupProperties(cmd.Context(), name)
			if !resp.Ok() {
				return resp.AsErr()
			}
			output.RenderJSON(resp.Body)
			return nil
		},
	}
}
