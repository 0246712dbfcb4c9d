// Package caas pushes CLI configuration to gateways through Central's
// config-as-a-service API. The server applies commands asynchronously, so
// send-cmds polls the resulting task until it settles.
package caas

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/output"
	"github.com/Pack3tL0ss/cencli/internal/app"
	"github.com/Pack3tL0ss/cencli/internal/central"
)

const (
	pollInterval = 2 * time.Second
	pollTimeout  = 60 * time.Second
)

// New builds the "caas" command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caas",
		Short: "Push CLI configuration to gateways (config as a service)",
	}
	cmd.AddCommand(sendCmdsCmd())
	return cmd
}

func sendCmdsCmd() *cobra.Command {
	var (
		cmds   []string
		file   string
		noWait bool
	)

	cmd := &cobra.Command{
		Use:   "send-cmds TARGET",
		Short: "Send CLI commands to a gateway or a group of gateways",
		Long: `Send configuration CLI lines to a gateway (by name or serial) or to
every gateway in a group. Commands come from repeated --cmd flags or from a
file (one command per line). The task is polled until it completes unless
--no-wait is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.FromCmd(cmd)
			api, err := a.API()
			if err != nil {
				return err
			}

			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				for _, line := range strings.Split(string(data), "\n") {
					if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
						cmds = append(cmds, line)
					}
				}
			}
			if len(cmds) == 0 {
				return fmt.Errorf("no commands given: use --cmd or --file")
			}

			target := args[0]
			if resolved, err := a.ResolveDevice(target); err == nil {
				target = resolved
			} else {
				return err
			}

			resp := api.SendCommands(cmd.Context(), target, cmds)
			if !resp.Ok() {
				return resp.AsErr()
			}
			taskID := resp.Get("task_id").String()
			if taskID == "" {
				output.RenderJSON(resp.Body)
				return nil
			}
			fmt.Printf("task %s accepted (%d commands)\n", taskID, len(cmds))
			if noWait {
				return nil
			}
			return waitForTask(cmd, api, taskID, a.JSON)
		},
	}

	cmd.Flags().StringArrayVar(&cmds, "cmd", nil, "CLI command to send (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with one CLI command per line")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "do not poll task status")

	return cmd
}

func waitForTask(cmd *cobra.Command, api *central.Client, taskID string, jsonOut bool) error {
	deadline := time.Now().Add(pollTimeout)
	for {
		resp := api.GetTaskStatus(cmd.Context(), taskID)
		if !resp.Ok() {
			return resp.AsErr()
		}
		var ts central.TaskStatus
		if err := resp.Decode(&ts); err != nil {
			return err
		}
		switch strings.ToUpper(ts.State) {
		case "QUEUED", "RUNNING", "":
			if time.Now().After(deadline) {
				return fmt.Errorf("task %s still %s after %s; check later with the API", taskID, ts.State, pollTimeout)
			}
		default:
			if jsonOut {
				output.RenderJSON(resp.Body)
				return nil
			}
			fmt.Printf("task %s: %s %s\n", taskID, ts.State, ts.Status)
			if ts.Reason != "" {
				fmt.Println(ts.Reason)
			}
			if !strings.EqualFold(ts.State, "SUCCESS") && !strings.EqualFold(ts.Status, "completed") {
				return fmt.Errorf("task %s did not succeed", taskID)
			}
			return nil
		}

		t := time.NewTimer(pollInterval)
		select {
		case <-cmd.Context().Done():
			t.Stop()
			return cmd.Context().Err()
		case <-t.C:
		}
	}
}
