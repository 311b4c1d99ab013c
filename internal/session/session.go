/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/floof-os/floofterm/internal/vfs"
	"github.com/google/uuid"
)

const (
	DefaultUser     = "user"
	DefaultHostname = "server"
	DefaultCwd      = "/home/user"
	DefaultIP       = "192.168.1.100"
	DefaultNetmask  = "255.255.255.0"
	DefaultGateway  = "192.168.1.1"

	Interface = "eth0"
)

type Network struct {
	IP      string
	Netmask string
	Gateway string
}

func DefaultNetwork() Network {
	return Network{IP: DefaultIP, Netmask: DefaultNetmask, Gateway: DefaultGateway}
}

// Session is the mutable state of one terminal run. User never changes once
// the session exists; a logout replaces the whole session.
type Session struct {
	ID       uuid.UUID
	User     string
	Hostname string
	Cwd      string
	Net      Network
	Started  time.Time
}

func New(user, hostname, cwd string, net Network) *Session {
	return &Session{
		ID:       uuid.New(),
		User:     user,
		Hostname: hostname,
		Cwd:      cwd,
		Net:      net,
		Started:  time.Now(),
	}
}

func (s *Session) Prompt() string {
	return fmt.Sprintf("%s@%s:%s$", s.User, s.Hostname, s.Cwd)
}

func (s *Session) Home() string {
	return "/home/" + s.User
}

func (s *Session) ChangeDirectory(fsys *vfs.Filesystem, target string) error {
	next := ResolvePath(s.Cwd, target)
	if !fsys.IsDir(next) {
		return &vfs.Error{Op: "cd", Path: next, Err: vfs.ErrNotFound}
	}
	s.Cwd = next
	return nil
}

// SetIP assigns the address, rewrites /etc/network.conf and returns the
// interface bounce events in the order they happened.
func (s *Session) SetIP(fsys *vfs.Filesystem, ip string) ([]string, error) {
	s.Net.IP = ip
	if err := fsys.RegenerateNetworkConfig(s.Net.IP, s.Net.Netmask, s.Net.Gateway); err != nil {
		return nil, err
	}
	return []string{
		Interface + ": link down",
		Interface + ": link up",
	}, nil
}

// ResolvePath joins target onto cwd. ".." drops the last segment, absolute
// targets are taken as-is and every run of slashes in a relative join
// collapses to one.
func ResolvePath(cwd, target string) string {
	if target == ".." {
		i := strings.LastIndex(cwd, "/")
		if i <= 0 {
			return "/"
		}
		return cwd[:i]
	}
	if strings.HasPrefix(target, "/") {
		return target
	}
	return collapseSlashes(cwd + "/" + target)
}

func collapseSlashes(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	prev := byte(0)
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && prev == '/' {
			continue
		}
		prev = p[i]
		b.WriteByte(p[i])
	}
	return b.String()
}
