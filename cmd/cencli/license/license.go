// Package license assigns and unassigns license services on devices.
package license

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
)

// New builds the "license" command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Assign or unassign license services",
	}
	cmd.AddCommand(assignCmd("assign"), assignCmd("unassign"))
	return cmd
}

// assignCmd builds assign or unassign; they differ only in direction.
func assignCmd(verb string) *cobra.Command {
	var services []string

	cmd := &cobra.Command{
		Use:   verb + " DEVICE... --service SERVICE...",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " license services on devices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
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

			fn := api.AssignLicense
			if verb == "unassign" {
				fn = api.UnassignLicense
			}
			resp := fn(cmd.Context(), serials, services)
			if !resp.Ok() {
				return resp.AsErr()
			}
			if a.JSON {
				output.RenderJSON(resp.Body)
				return nil
			}
			fmt.Printf("%sed %s on %d device(s)\n", verb, strings.Join(services, ","), len(serials))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&services, "service", nil, "license service, e.g. foundation_ap (repeatable)")
	cmd.MarkFlagRequired("service")

	return cmd
}
