// Package root assembles the cencli command tree and wires per-invocation
// state (config, workspace selection, logging) into the command context.
package root

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/batch"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/caas"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/cachecmd"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/device"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/group"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/license"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/show"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/site"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/webhook"
	"github.com/Pack3tL0ss/cencli/cmd/cencli/workspace"
	"github.com/Pack3tL0ss/cencli/internal/app"
	"github.com/Pack3tL0ss/cencli/internal/config"
)

// New builds the root command.
func New() *cobra.Command {
	a := &app.App{}
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "cencli",
		Short: "CLI for the Aruba Central cloud management API",
		Long: `cencli lets network administrators drive Aruba Central from the
command line: inspect device inventory, move devices between groups, push
CLI configuration to gateways, manage licenses, and batch-import sites,
groups, and devices.

Workspaces (named tenant credentials) live in ~/.config/cencli/config.yaml;
manage them with "cencli workspace".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a.Cfg = cfg
			setupLogging(cfg.LogFormat, debug)
			cmd.SetContext(app.Into(cmd.Context(), a))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ~/.config/cencli/config.yaml)")
	pf.StringVarP(&a.WorkspaceName, "workspace", "w", "", "workspace (tenant) to use")
	pf.BoolVarP(&a.JSON, "json", "j", false, "output raw JSON instead of tables")
	pf.IntVar(&a.Limit, "limit", 0, "max rows to display (0 = all)")
	pf.BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		show.New(),
		device.New(),
		site.New(),
		group.New(),
		caas.New(),
		license.New(),
		webhook.New(),
		batch.New(),
		cachecmd.New(),
		workspace.New(),
	)

	return cmd
}

// setupLogging configures the process-wide slog default. Logs go to stderr
// so table/JSON output on stdout stays pipeable.
func setupLogging(format string, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
