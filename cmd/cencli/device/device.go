// Package device implements imperative device actions: move between groups,
// rename, reboot. Identifier arguments accept friendly names resolved
// through the local cache, falling back to literal serials.
package device

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
)

// New builds the "device" command and its subcommands.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage devices",
	}
	cmd.AddCommand(moveCmd(), renameCmd(), rebootCmd())
	return cmd
}

func moveCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "move DEVICE... --group GROUP",
		Short: "Move devices into a configuration group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			group, err := a.ResolveGroup(group)
			if err != nil {
				return err
			}
			serials := make([]string, 0, len(args))
			for _, arg := range args {
				serial, err := a.ResolveDevice(arg)
				if err != nil {
					return err
				}
				serials = append(serials, serial)
			}
			resp := api.MoveDevices(cmd.Context(), group, serials)
			if !resp.Ok() {
				return resp.AsErr()
			}
			if a.JSON {
				output.RenderJSON(resp.Body)
				return nil
			}
			fmt.Printf("moved %d device(s) to group %s\n", len(serials), group)
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "destination group (required)")
	cmd.MarkFlagRequired("group")

	return cmd
}

func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename AP NAME",
		Short: "Rename an access point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			serial, err := a.ResolveDevice(args[0])
			if err != nil {
				return err
			}
			resp := api.RenameAP(cmd.Context(), serial, args[1])
			if !resp.Ok() {
				return resp.AsErr()
			}
			fmt.Printf("renamed %s to %s\n", serial, args[1])
			return nil
		},
	}
}

func rebootCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reboot DEVICE",
		Short: "Reboot a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			serial, err := a.ResolveDevice(args[0])
			if err != nil {
				return err
			}
			if !yes {
				fmt.Printf("Reboot %s? [y/N]: ", serial)
				var answer string
				fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					fmt.Println("aborted")
					return nil
				}
			}
			resp := api.RebootDevice(cmd.Context(), serial)
			if !resp.Ok() {
				return resp.AsErr()
			}
			fmt.Printf("reboot requested for %s\n", serial)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}
