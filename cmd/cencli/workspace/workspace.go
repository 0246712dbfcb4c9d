// Package workspace manages named tenant credentials: which Central
// instance to talk to and the token to use.
package workspace

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
	"github.com/Pack3tL0ss/cencli/internal/cleaner"
	"github.com/Pack3tL0ss/cencli/internal/config"
)

// New builds the "workspace" command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"account"},
		Short:   "Manage workspaces (per-tenant credentials)",
	}
	cmd.AddCommand(listCmd(), addCmd(), removeCmd(), setDefaultCmd(), verifyCmd())
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			t := cleaner.Table{Headers: []string{"name", "base url", "customer id", "default"}}
			for _, name := range a.Cfg.Names() {
				ws := a.Cfg.Workspaces[name]
				def := ""
				if name == a.Cfg.DefaultWorkspace {
					def = "*"
				}
				custID := ws.CustomerID
				if custID == "" {
					custID = "-"
				}
				t.Rows = append(t.Rows, []any{name, ws.BaseURL, custID, def})
			}
			if len(t.Rows) == 0 {
				fmt.Printf("no workspaces configured; add one with \"cencli workspace add\" (config: %s)\n", a.Cfg.Path())
				return nil
			}
			output.RenderTable(t)
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	var (
		baseURL    string
		token      string
		customerID string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add or update a workspace",
		Long: `Add a workspace pointing at one Central tenant. The token is a static
API access token obtained from the Central UI; cencli does not perform the
vendor's OAuth flow. When --token is omitted the token is prompted with
echo disabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)

			if token == "" {
				fmt.Fprint(os.Stderr, "API token: ")
				b, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("read token: %w", err)
				}
				token = string(b)
			}
			if token == "" {
				return fmt.Errorf("token is required")
			}

			a.Cfg.Add(config.Workspace{
				Name:       args[0],
				BaseURL:    baseURL,
				Token:      token,
				CustomerID: customerID,
			})
			if err := a.Cfg.Save(); err != nil {
				return err
			}
			fmt.Printf("workspace %s saved to %s\n", args[0], a.Cfg.Path())
			if warn := tokenExpiryWarning(token); warn != "" {
				fmt.Println(warn)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "API gateway base URL, e.g. https://apigw-uswest4.central.arubanetworks.com (required)")
	cmd.Flags().StringVar(&token, "token", "", "API access token (prompted when omitted)")
	cmd.Flags().StringVar(&customerID, "customer-id", "", "customer ID (needed for caas commands)")
	cmd.MarkFlagRequired("base-url")

	return cmd
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			if err := a.Cfg.Remove(args[0]); err != nil {
				return err
			}
			if err := a.Cfg.Save(); err != nil {
				return err
			}
			fmt.Printf("workspace %s removed\n", args[0])
			return nil
		},
	}
}

func setDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default NAME",
		Short: "Set the default workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			if err := a.Cfg.SetDefault(args[0]); err != nil {
				return err
			}
			if err := a.Cfg.Save(); err != nil {
				return err
			}
			fmt.Printf("default workspace is now %s\n", args[0])
			return nil
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [NAME]",
		Short: "Check that a workspace's credentials work",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			if len(args) == 1 {
				a.WorkspaceName = args[0]
			}
			ws, err := a.Workspace()
			if err != nil {
				return err
			}
			api, err := a.API()
			if err != nil {
				return err
			}
			resp := api.ListGroups(cmd.Context())
			if !resp.Ok() {
				return fmt.Errorf("workspace %s: %s", ws.Name, resp.Error())
			}
			fmt.Printf("workspace %s ok (%s)\n", ws.Name, ws.BaseURL)
			if warn := tokenExpiryWarning(ws.Token); warn != "" {
				fmt.Println(warn)
			}
			return nil
		},
	}
}

// tokenExpiryWarning decodes the token's JWT claims without verification
// (we have no vendor key and need none) just to report expiry. Opaque
// tokens yield no warning.
func tokenExpiryWarning(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ""
	}
	switch remaining := time.Until(exp.Time); {
	case remaining <= 0:
		return fmt.Sprintf("warning: token expired %s", exp.Time.Format(time.RFC3339))
	case remaining < 24*time.Hour:
		return fmt.Sprintf("warning: token expires in %s", remaining.Round(time.Minute))
	}
	return ""
}
