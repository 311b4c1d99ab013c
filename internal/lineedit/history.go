/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package lineedit

import "sync"

// History keeps submitted lines in order. The cursor ranges over
// [0, Len()]; Len() means fresh input rather than a recalled entry.
type History struct {
	mu      sync.Mutex
	entries []string
	cursor  int
}

func NewHistory() *History {
	return &History{entries: make([]string, 0)}
}

func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if line != "" {
		h.entries = append(h.entries, line)
	}
	h.cursor = len(h.entries)
}

// Back moves one entry toward the oldest and returns it. At the oldest entry
// the cursor stays put and the same entry comes back.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Forward moves one entry toward the newest. Past the newest it returns the
// empty line and pins the cursor at Len().
func (h *History) Forward() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor >= len(h.entries) {
		h.cursor = len(h.entries)
		return ""
	}
	return h.entries[h.cursor]
}

func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.cursor
}
