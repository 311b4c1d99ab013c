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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floof-os/floofterm/internal/audit"
	"github.com/floof-os/floofterm/internal/config"
	"github.com/floof-os/floofterm/internal/shell"
	"github.com/floof-os/floofterm/internal/terminal"
	"github.com/floof-os/floofterm/internal/vfs"
)

var rootFlags struct {
	configPath string
	envFile    string
	mode       string
	editor     string
	user       string
	hostname   string
	auditPath  string
	noColor    bool
}

var rootCmd = &cobra.Command{
	Use:   "floofterm",
	Short: "A fake Unix terminal",
	Long: `floofterm pretends to be a shell on a small Linux server.

Commands such as ls, cd, cat, find, ip addr and tail -f answer from an
in-memory filesystem; nothing touches the real machine.

Modes:
  line    interactive prompt (readline, liner or raw editor)
  page    full-screen terminal
  script  read commands from stdin, print the transcript
  auto    line on a terminal, script otherwise (default)

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runRoot,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootFlags.configPath, "config", "c", "", "Config file (default ./"+config.ConfigFileName+" if present)")
	flags.StringVar(&rootFlags.envFile, "env-file", ".env", "Load FLOOFTERM_* variables from this file")
	flags.StringVarP(&rootFlags.user, "user", "u", "", "Login name")
	flags.StringVar(&rootFlags.hostname, "hostname", "", "Host name shown in the prompt")
	flags.StringVar(&rootFlags.auditPath, "audit-log", "", "Append an audit log of the session to this file")
	flags.BoolVar(&rootFlags.noColor, "no-color", false, "Disable colored output")
	flags.BoolP("verbose", "v", false, "Enable verbose output for all commands")

	rootCmd.Flags().StringVarP(&rootFlags.mode, "mode", "m", "", "Front-end: auto, line, page or script")
	rootCmd.Flags().StringVarP(&rootFlags.editor, "editor", "e", "", "Line editor: readline, liner or raw")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// loadConfig layers defaults, the config file, the .env file, FLOOFTERM_*
// variables and finally flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvFile(rootFlags.envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	path := rootFlags.configPath
	if path == "" {
		path = config.ConfigFileName
	}

	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrConfigNotFound) && rootFlags.configPath == "" {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if rootFlags.user != "" {
		cfg.User = rootFlags.user
	}
	if rootFlags.hostname != "" {
		cfg.Hostname = rootFlags.hostname
	}
	if rootFlags.mode != "" {
		cfg.Shell.Mode = rootFlags.mode
	}
	if rootFlags.editor != "" {
		cfg.Shell.Editor = rootFlags.editor
	}
	if rootFlags.auditPath != "" {
		cfg.Audit.Path = rootFlags.auditPath
	}
	if rootFlags.noColor {
		cfg.Shell.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// terminalOptions turns a config into terminal options.
func terminalOptions(cfg *config.Config, logger *audit.Logger) ([]terminal.Option, error) {
	opts := []terminal.Option{
		terminal.WithUser(cfg.User),
		terminal.WithHostname(cfg.Hostname),
		terminal.WithCwd(cfg.Cwd),
		terminal.WithNetwork(cfg.NetworkIdentity()),
		terminal.WithFeedInterval(cfg.Feed.Interval),
		terminal.WithLogger(logger),
	}

	if cfg.Layout != "" {
		layout, err := vfs.LoadLayoutFile(cfg.Layout)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		opts = append(opts, terminal.WithLayout(layout))
	}
	return opts, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	mode, err := shell.ParseMode(cfg.Shell.Mode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
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

	if getVerboseFlag(cmd) {
		fmt.Fprintf(os.Stderr, "floofterm: mode=%s editor=%s user=%s host=%s\n",
			cfg.Shell.Mode, cfg.Shell.Editor, cfg.User, cfg.Hostname)
	}

	return shell.Run(shell.Options{
		Mode:        mode,
		Editor:      cfg.Shell.Editor,
		HistoryFile: cfg.Shell.HistoryFile,
		Color:       cfg.Shell.Color,
		Terminal:    opts,
	})
}
