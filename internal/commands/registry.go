/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package commands

import (
	"sort"
	"strings"
	"time"

	"github.com/floof-os/floofterm/internal/session"
	"github.com/floof-os/floofterm/internal/vfs"
)

const NotFound = "command not found"

// Effect is a side effect a handler asks the terminal to perform after its
// output has been printed.
type Effect int

const (
	EffectNone Effect = iota
	EffectClear
	EffectReload
	EffectStartFeed
	EffectCancelFeed
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectClear:
		return "clear"
	case EffectReload:
		return "reload"
	case EffectStartFeed:
		return "start-feed"
	case EffectCancelFeed:
		return "cancel-feed"
	default:
		return "unknown"
	}
}

// Result is what a command produced. Events are printed before Output.
type Result struct {
	Output string
	Events []string
	Effect Effect
}

func Text(s string) Result {
	return Result{Output: s}
}

// Env is everything a handler may read or change.
type Env struct {
	Session   *session.Session
	FS        *vfs.Filesystem
	Now       func() time.Time
	Following bool
	History   []string
}

type Handler func(env *Env, args []string) Result

type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	registerBuiltins(r)
	return r
}

func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Split breaks a line on single spaces. There is no quoting, so repeated
// spaces produce empty arguments.
func Split(line string) (string, []string) {
	parts := strings.Split(line, " ")
	return parts[0], parts[1:]
}

func (r *Registry) Dispatch(env *Env, line string) Result {
	name, args := Split(line)

	h, ok := r.handlers[name]
	if !ok {
		return Text(NotFound)
	}
	return h(env, args)
}
