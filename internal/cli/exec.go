/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/floof-os/floofterm/internal/audit"
	"github.com/floof-os/floofterm/internal/shell"
)

var execCmd = &cobra.Command{
	Use:   "exec <command>...",
	Short: "Run commands in a fresh session and print the transcript",
	Long: `Runs each argument as one line typed at the prompt, in order, against a
fresh session, then prints what the terminal would have shown.

Example:
  floofterm exec "cd /var/www/html" "ls" "ip addr show"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := audit.Open(cfg.Audit.Path, getVerboseFlag(cmd))
	if err != nil {
		return err
	}
	defer logger.Close()

	opts, err := terminalOptions(cfg, logger)
	if err != nil {
		return err
	}

	script := strings.NewReader(strings.Join(args, "\n"))
	return shell.RunScript(script, cmd.OutOrStdout(), opts...)
}
