/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

// Package terminal is the read-eval-print core shared by every front-end.
// A front-end feeds it submitted lines and interrupts; everything the user
// should see comes out through an Output.
package terminal

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/floof-os/floofterm/internal/audit"
	"github.com/floof-os/floofterm/internal/commands"
	"github.com/floof-os/floofterm/internal/feed"
	"github.com/floof-os/floofterm/internal/lineedit"
	"github.com/floof-os/floofterm/internal/session"
	"github.com/floof-os/floofterm/internal/vfs"
)

const InterruptMark = "^C"

type Terminal struct {
	opts     options
	out      Output
	registry *commands.Registry
	feed     *feed.Feed

	// mu guards the fields below. Feed output never takes it.
	mu      sync.Mutex
	session *session.Session
	fs      *vfs.Filesystem
	history *lineedit.History
	log     *audit.Logger
}

func New(out Output, opts ...Option) (*Terminal, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Terminal{
		opts:     o,
		out:      out,
		registry: commands.NewRegistry(),
	}
	t.feed = feed.New(o.sched, o.interval, out.Println)

	if err := t.boot(); err != nil {
		return nil, err
	}
	return t, nil
}

// boot builds a fresh session, filesystem and history. Callers hold mu or
// own t exclusively.
func (t *Terminal) boot() error {
	fsys, err := vfs.New(t.opts.layout)
	if err != nil {
		return fmt.Errorf("failed to build filesystem: %w", err)
	}
	if !fsys.IsDir(t.opts.cwd) {
		return fmt.Errorf("starting directory %s: %w", t.opts.cwd, vfs.ErrNotFound)
	}

	s := session.New(t.opts.user, t.opts.hostname, t.opts.cwd, t.opts.network)
	if err := fsys.RegenerateNetworkConfig(s.Net.IP, s.Net.Netmask, s.Net.Gateway); err != nil {
		return err
	}

	t.session = s
	t.fs = fsys
	t.history = lineedit.NewHistory()
	t.log = t.opts.logger.ForSession(s.User, s.ID.String())
	t.log.Info("session started",
		zap.String("hostname", s.Hostname),
		zap.String("cwd", s.Cwd),
		zap.String("ip", s.Net.IP))
	return nil
}

func (t *Terminal) Prompt() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.opts.decorate(t.session.Prompt())
}

// Submit runs one entered line. The line is always echoed after the prompt
// it was typed at, even when it is empty.
func (t *Terminal) Submit(raw string) {
	text := strings.TrimSpace(raw)

	t.mu.Lock()
	t.out.Println(t.opts.decorate(t.session.Prompt()) + " " + text)
	if text == "" {
		t.mu.Unlock()
		return
	}

	t.history.Add(text)
	t.log.Command(text)

	before := t.session.Net
	env := &commands.Env{
		Session:   t.session,
		FS:        t.fs,
		Now:       t.opts.now,
		Following: t.feed.Active(),
		History:   t.history.Entries(),
	}
	res := t.registry.Dispatch(env, text)

	for _, event := range res.Events {
		t.out.Println(event)
	}
	if res.Output != "" {
		t.out.Println(res.Output)
	}
	if after := t.session.Net; after != before {
		t.log.Config("network changed",
			zap.String("old_ip", before.IP),
			zap.String("ip", after.IP))
	}
	t.mu.Unlock()

	t.apply(res.Effect)
}

// apply carries out a command's effect on the terminal. It reports whether
// the effect changed anything.
func (t *Terminal) apply(effect commands.Effect) bool {
	switch effect {
	case commands.EffectClear:
		t.out.Clear()
	case commands.EffectReload:
		t.Reset()
	case commands.EffectStartFeed:
		if !t.feed.Start() {
			t.out.Println(commands.AlreadyFollowing)
			return false
		}
		t.logger().Info("feed started", zap.String("path", commands.SyslogPath))
	case commands.EffectCancelFeed:
		if !t.feed.Stop() {
			return false
		}
		t.out.Println(InterruptMark)
		t.logger().Info("feed interrupted")
	default:
		return false
	}
	return true
}

// Interrupt cancels a running feed and marks it with ^C. It reports whether
// there was anything to interrupt.
func (t *Terminal) Interrupt() bool {
	return t.apply(commands.EffectCancelFeed)
}

func (t *Terminal) Following() bool {
	return t.feed.Active()
}

// HistoryBack and HistoryForward walk the submitted lines for front-ends
// that do not keep their own history.
func (t *Terminal) HistoryBack() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.history.Back()
}

func (t *Terminal) HistoryForward() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.history.Forward()
}

func (t *Terminal) History() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.history.Entries()
}

// Reset is what logout does: the feed stops, and the session, filesystem
// and history start over on a cleared screen.
func (t *Terminal) Reset() {
	t.feed.Stop()

	t.mu.Lock()
	old := t.log
	old.Info("logout")
	if err := t.boot(); err != nil {
		// The layout booted once already, so this only fails if the
		// content store cannot be written.
		old.Error("reload failed", zap.Error(err))
	}
	t.mu.Unlock()

	t.out.Clear()
	if t.opts.onReload != nil {
		t.opts.onReload()
	}
}

// Close stops the feed and flushes the audit log. The log itself belongs to
// whoever passed it in.
func (t *Terminal) Close() error {
	t.feed.Stop()
	return t.logger().Sync()
}

// Completions returns command names and entries of the current directory
// that start with prefix. The first word completes to command names only.
func (t *Terminal) Completions(line string) []string {
	words := strings.Split(line, " ")
	prefix := words[len(words)-1]

	var candidates []string
	if len(words) == 1 {
		candidates = t.registry.Names()
	} else {
		t.mu.Lock()
		entries, err := t.fs.ListDirectory(t.session.Cwd)
		t.mu.Unlock()
		if err == nil {
			candidates = entries
		}
	}

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (t *Terminal) Session() session.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	return *t.session
}

func (t *Terminal) Filesystem() *vfs.Filesystem {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.fs
}

func (t *Terminal) logger() *audit.Logger {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.log
}
