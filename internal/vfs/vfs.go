/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

// Package vfs holds the fake server's directory tree and file contents.
//
// Directories are an ordered path -> entries table; listing and find follow
// that order. File contents live in an in-memory afero filesystem, keyed by
// the exact path string so lookups never normalize what the user typed.
package vfs

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

const NetworkConfigPath = "/etc/network.conf"

type Filesystem struct {
	mu    sync.RWMutex
	order []string
	dirs  map[string][]string
	files map[string]struct{}
	store afero.Fs
}

func New(layout *Layout) (*Filesystem, error) {
	if layout == nil {
		layout = DefaultLayout()
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	fsys := &Filesystem{
		dirs:  make(map[string][]string, len(layout.Directories)),
		files: make(map[string]struct{}, len(layout.Files)),
		store: afero.NewMemMapFs(),
	}

	for _, d := range layout.Directories {
		entries := make([]string, len(d.Entries))
		copy(entries, d.Entries)
		fsys.order = append(fsys.order, d.Path)
		fsys.dirs[d.Path] = entries
	}

	for _, f := range layout.Files {
		if err := fsys.write(f.Path, f.Content); err != nil {
			return nil, err
		}
	}

	return fsys, nil
}

func (f *Filesystem) write(p, content string) error {
	if err := f.store.MkdirAll(path.Dir(p), 0755); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", p, err)
	}
	if err := afero.WriteFile(f.store, p, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	f.files[p] = struct{}{}
	return nil
}

func (f *Filesystem) ListDirectory(p string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, ok := f.dirs[p]
	if !ok {
		return nil, notFound("list", p)
	}

	out := make([]string, len(entries))
	copy(out, entries)
	return out, nil
}

func (f *Filesystem) IsDir(p string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, ok := f.dirs[p]
	return ok
}

// Directories returns every directory key in enumeration order.
func (f *Filesystem) Directories() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func (f *Filesystem) ReadFile(p string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if _, ok := f.files[p]; !ok {
		return "", notFound("read", p)
	}

	data, err := afero.ReadFile(f.store, p)
	if err != nil {
		return "", &Error{Op: "read", Path: p, Err: err}
	}
	return string(data), nil
}

// FindByExtension returns "{dir}/{entry}" for every listed entry ending in
// ext, scanning directories whose path starts with base. The prefix test is
// a plain string match, so base "/var" also covers "/var2".
func (f *Filesystem) FindByExtension(base, ext string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []string
	for _, dir := range f.order {
		if !strings.HasPrefix(dir, base) {
			continue
		}
		for _, name := range f.dirs[dir] {
			if strings.HasSuffix(name, ext) {
				result = append(result, dir+"/"+name)
			}
		}
	}
	return result
}

func NetworkConfig(ip, netmask, gateway string) string {
	return fmt.Sprintf("DEVICE=eth0\nIPADDR=%s\nNETMASK=%s\nGATEWAY=%s", ip, netmask, gateway)
}

// RegenerateNetworkConfig rewrites /etc/network.conf from the given identity.
func (f *Filesystem) RegenerateNetworkConfig(ip, netmask, gateway string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(NetworkConfigPath, NetworkConfig(ip, netmask, gateway))
}
