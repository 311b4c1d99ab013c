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
	"fmt"
	"io"
	"strings"
	"sync"
)

const clearScreen = "\033[2J\033[H"

// Output is the append-only display. Println may be called from the feed
// goroutine while a command is running.
type Output interface {
	Println(line string)
	Clear()
}

// Buffer keeps every printed line in memory and signals changes to whoever
// is redrawing it.
type Buffer struct {
	mu      sync.Mutex
	lines   []string
	changed chan struct{}
}

func NewBuffer() *Buffer {
	return &Buffer{changed: make(chan struct{}, 1)}
}

func (b *Buffer) Println(line string) {
	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()
	b.notify()
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	b.lines = nil
	b.mu.Unlock()
	b.notify()
}

func (b *Buffer) notify() {
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

// Changed fires at least once after any number of writes since the last
// receive.
func (b *Buffer) Changed() <-chan struct{} {
	return b.changed
}

func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Tail returns the last n display rows, splitting multi-line entries.
func (b *Buffer) Tail(n int) []string {
	rows := strings.Split(b.String(), "\n")
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// WriterOutput prints to a stream such as stdout.
type WriterOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterOutput(w io.Writer) *WriterOutput {
	return &WriterOutput{w: w}
}

func (o *WriterOutput) Println(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	fmt.Fprintln(o.w, line)
}

func (o *WriterOutput) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()

	fmt.Fprint(o.w, clearScreen)
}
