// Package site manages sites: create, delete, and device assignment.
package site

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
	"github.com/Pack3tL0ss/cencli/internal/central"
)

// New builds the "site" command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage sites",
	}
	cmd.AddCommand(addCmd(), deleteCmd(), assignCmd())
	return cmd
}

func addCmd() *cobra.Command {
	var (
		address, city, state, country, zipcode string
		lat, lon                               string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			req := central.SiteRequest{Name: args[0]}
			if lat != "" && lon != "" {
				req.Geolocation = &central.Geolocation{Latitude: lat, Longitude: lon}
			} else if address != "" {
				req.Address = &central.SiteAddress{
					Address: address,
					City:    city,
					State:   state,
					Country: country,
					Zipcode: zipcode,
				}
			} else {
				return fmt.Errorf("either --address or --lat/--lon is required")
			}
			resp := api.CreateSite(cmd.Context(), req)
			if !resp.Ok() {
				return resp.AsErr()
			}
			if a.JSON {
				output.RenderJSON(resp.Body)
				return nil
			}
			fmt.Printf("site %s created (id %d)\n", args[0], resp.Get("site_id").Int())
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&city, "city", "", "city")
	cmd.Flags().StringVar(&state, "state", "", "state")
	cmd.Flags().StringVar(&country, "country", "", "country")
	cmd.Flags().StringVar(&zipcode, "zipcode", "", "postal code")
	cmd.Flags().StringVar(&lat, "lat", "", "latitude (with --lon, instead of an address)")
	cmd.Flags().StringVar(&lon, "lon", "", "longitude")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SITE",
		Short: "Delete a site (by name or ID)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			id, err := siteID(a, args[0])
			if err != nil {
				return err
			}
			resp := api.DeleteSite(cmd.Context(), id)
			if !resp.Ok() {
				return resp.AsErr()
			}
			fmt.Printf("site %s deleted\n", args[0])
			return nil
		},
	}
}

func assignCmd() *cobra.Command {
	var devType string

	cmd := &cobra.Command{
		Use:   "assign SITE DEVICE...",
		Short: "Assign devices to a site",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			id, err := siteID(a, args[0])
			if err != nil {
				return err
			}
			serials := make([]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				serial, err := a.ResolveDevice(arg)
				if err != nil {
					return err
				}
				serials = append(serials, serial)
			}
			resp := api.AssignSiteToDevices(cmd.Context(), id, devType, serials)
			if !resp.Ok() {
				return resp.AsErr()
			}
			fmt.Printf("assigned %d device(s) to site %s\n", len(serials), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&devType, "type", "IAP", "device family (IAP|SWITCH|CONTROLLER)")

	return cmd
}

// siteID resolves a site argument to its numeric ID: cache lookup by name
// first, then a literal numeric ID.
func siteID(a *app.App, arg string) (int, error) {
	if s, ok, err := a.ResolveSite(arg); err != nil {
		return 0, err
	} else if ok {
		return s.ID, nil
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("site %q not in cache and not a numeric ID (try \"cencli cache refresh\")", arg)
	}
	return id, nil
}
