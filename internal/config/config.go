/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/floof-os/floofterm/internal/feed"
	"github.com/floof-os/floofterm/internal/session"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "floofterm.yaml"
	EnvPrefix      = "FLOOFTERM_"
)

type NetworkConfig struct {
	IP      string `yaml:"ip"`
	Netmask string `yaml:"netmask"`
	Gateway string `yaml:"gateway"`
}

type FeedConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type ShellConfig struct {
	Mode        string `yaml:"mode"`
	Editor      string `yaml:"editor"`
	HistoryFile string `yaml:"history_file,omitempty"`
	Color       bool   `yaml:"color"`
}

type AuditConfig struct {
	Path string `yaml:"path,omitempty"`
}

type Config struct {
	User     string        `yaml:"user"`
	Hostname string        `yaml:"hostname"`
	Cwd      string        `yaml:"cwd"`
	Network  NetworkConfig `yaml:"network"`
	Feed     FeedConfig    `yaml:"feed"`
	Shell    ShellConfig   `yaml:"shell"`
	Audit    AuditConfig   `yaml:"audit"`
	Layout   string        `yaml:"layout,omitempty"`
}

var (
	validModes   = []string{"auto", "line", "page", "script"}
	validEditors = []string{"readline", "liner", "raw"}
)

func Default() *Config {
	return &Config{
		User:     session.DefaultUser,
		Hostname: session.DefaultHostname,
		Cwd:      session.DefaultCwd,
		Network: NetworkConfig{
			IP:      session.DefaultIP,
			Netmask: session.DefaultNetmask,
			Gateway: session.DefaultGateway,
		},
		Feed:  FeedConfig{Interval: feed.DefaultInterval},
		Shell: ShellConfig{Mode: "auto", Editor: "readline", Color: true},
	}
}

// Load reads path over the defaults. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from FLOOFTERM_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	strs := map[string]*string{
		"USER":     &c.User,
		"HOSTNAME": &c.Hostname,
		"CWD":      &c.Cwd,
		"IP":       &c.Network.IP,
		"NETMASK":  &c.Network.Netmask,
		"GATEWAY":  &c.Network.Gateway,
		"MODE":     &c.Shell.Mode,
		"EDITOR":   &c.Shell.Editor,
		"HISTORY":  &c.Shell.HistoryFile,
		"AUDIT":    &c.Audit.Path,
		"LAYOUT":   &c.Layout,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "FEED_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sFEED_INTERVAL: %w", EnvPrefix, err)
		}
		c.Feed.Interval = d
	}

	if v, ok := lookup(EnvPrefix + "COLOR"); ok {
		c.Shell.Color = v != "0" && !strings.EqualFold(v, "false")
	}
	if _, ok := lookup("NO_COLOR"); ok {
		c.Shell.Color = false
	}

	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("user must not be empty")
	}
	if strings.ContainsAny(c.User, " /") {
		return fmt.Errorf("user %q must not contain spaces or slashes", c.User)
	}
	if !strings.HasPrefix(c.Cwd, "/") {
		return fmt.Errorf("cwd %q must be an absolute path", c.Cwd)
	}
	if c.Feed.Interval <= 0 {
		return fmt.Errorf("feed interval must be positive, got %s", c.Feed.Interval)
	}
	if !contains(validModes, c.Shell.Mode) {
		return fmt.Errorf("unknown mode %q (valid: %s)", c.Shell.Mode, strings.Join(validModes, ", "))
	}
	if !contains(validEditors, c.Shell.Editor) {
		return fmt.Errorf("unknown editor %q (valid: %s)", c.Shell.Editor, strings.Join(validEditors, ", "))
	}
	return nil
}

func (c *Config) NetworkIdentity() session.Network {
	return session.Network{IP: c.Network.IP, Netmask: c.Network.Netmask, Gateway: c.Network.Gateway}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
