// Package webhook manages webhook subscriptions.
package webhook

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
)

// New builds the "webhook" command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage webhooks",
	}
	cmd.AddCommand(addCmd(), deleteCmd(), testCmd())
	return cmd
}

func addCmd() *cobra.Command {
	var urls []string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.CreateWebhook(cmd.Context(), args[0], urls)
			if !resp.Ok() {
				return resp.AsErr()
			}
			if a.JSON {
				output.RenderJSON(resp.Body)
				return nil
			}
			fmt.Printf("webhook %s created (id %s)\n", args[0], resp.Get("wid").String())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&urls, "url", nil, "destination URL (repeatable)")
	cmd.MarkFlagRequired("url")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.DeleteWebhook(cmd.Context(), args[0])
			if !resp.Ok() {
				return resp.AsErr()
			}
			fmt.Printf("webhook %s deleted\n", args[0])
			return nil
		},
	}
}

func testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test ID",
		Short: "Send a test notification to a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.TestWebhook(cmd.Context(), args[0])
			if !resp.Ok() {
				return resp.AsErr()
			}
			output.RenderJSON(resp.Body)
			return nil
		},
	}
}
