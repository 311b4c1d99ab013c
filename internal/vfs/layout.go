/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package vfs

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayout []byte

type DirectoryEntry struct {
	Path    string   `yaml:"path"`
	Entries []string `yaml:"entries"`
}

type FileEntry struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// Layout is the seed of a Filesystem. Directory order in the YAML list is the
// enumeration order used by find.
type Layout struct {
	Directories []DirectoryEntry `yaml:"directories"`
	Files       []FileEntry      `yaml:"files"`
}

func DefaultLayout() *Layout {
	layout, err := LoadLayout(bytes.NewReader(defaultLayout))
	if err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return layout
}

func LoadLayout(r io.Reader) (*Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

func LoadLayoutFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()

	return LoadLayout(f)
}

func (l *Layout) Validate() error {
	if len(l.Directories) == 0 {
		return fmt.Errorf("%w: no directories", ErrInvalidLayout)
	}

	seen := make(map[string]bool)
	for _, d := range l.Directories {
		if !strings.HasPrefix(d.Path, "/") {
			return fmt.Errorf("%w: directory %q is not absolute", ErrInvalidLayout, d.Path)
		}
		if seen[d.Path] {
			return fmt.Errorf("%w: duplicate directory %q", ErrInvalidLayout, d.Path)
		}
		seen[d.Path] = true
	}

	for _, f := range l.Files {
		if !strings.HasPrefix(f.Path, "/") {
			return fmt.Errorf("%w: file %q is not absolute", ErrInvalidLayout, f.Path)
		}
		if seen[f.Path] {
			return fmt.Errorf("%w: %q is both a directory and a file", ErrInvalidLayout, f.Path)
		}
	}

	return nil
}
