/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package terminal

import (
	"time"

	"github.com/floof-os/floofterm/internal/audit"
	"github.com/floof-os/floofterm/internal/feed"
	"github.com/floof-os/floofterm/internal/session"
	"github.com/floof-os/floofterm/internal/vfs"
)

type options struct {
	user     string
	hostname string
	cwd      string
	network  session.Network
	sched    feed.Scheduler
	now      func() time.Time
	interval time.Duration
	layout   *vfs.Layout
	logger   *audit.Logger
	onReload func()
	decorate func(string) string
}

func defaultOptions() options {
	return options{
		user:     session.DefaultUser,
		hostname: session.DefaultHostname,
		cwd:      session.DefaultCwd,
		network:  session.DefaultNetwork(),
		now:      time.Now,
		interval: feed.DefaultInterval,
		logger:   audit.Nop(),
		decorate: func(p string) string { return p },
	}
}

type Option func(*options)

func WithUser(user string) Option {
	return func(o *options) { o.user = user }
}

func WithHostname(hostname string) Option {
	return func(o *options) { o.hostname = hostname }
}

// WithCwd sets the starting directory. It must exist in the layout.
func WithCwd(cwd string) Option {
	return func(o *options) { o.cwd = cwd }
}

func WithNetwork(n session.Network) Option {
	return func(o *options) { o.network = n }
}

func WithScheduler(s feed.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithFeedInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

func WithLayout(l *vfs.Layout) Option {
	return func(o *options) { o.layout = l }
}

func WithLogger(l *audit.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReloadHook runs fn after every logout, once the new session is ready.
func WithReloadHook(fn func()) Option {
	return func(o *options) { o.onReload = fn }
}

// WithPromptDecorator wraps the prompt text wherever it is displayed, e.g.
// to color it.
func WithPromptDecorator(fn func(string) string) Option {
	return func(o *options) {
		if fn != nil {
			o.decorate = fn
		}
	}
}
