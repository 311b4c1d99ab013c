/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package shell

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/term"

	"github.com/floof-os/floofterm/internal/lineedit"
)

// rawEditor draws its own edit line. Up and Down walk the terminal's history
// and Ctrl-C interrupts without leaving the prompt, so a half-typed line
// survives stopping the feed.
type rawEditor struct {
	fd    int
	isTTY bool
	in    *bufio.Reader
	hooks hooks

	mu      sync.Mutex
	out     io.Writer
	prompt  string
	line    lineedit.Line
	editing bool
	raw     bool
}

func newRawEditor(in io.Reader, out io.Writer, h hooks) *rawEditor {
	e := &rawEditor{in: bufio.NewReader(in), out: out, hooks: h}
	if f, ok := in.(*os.File); ok {
		e.fd = int(f.Fd())
		e.isTTY = term.IsTerminal(e.fd)
	}
	return e
}

func (e *rawEditor) Readline(prompt string) (string, error) {
	var restore func()
	if e.isTTY {
		if oldState, err := term.MakeRaw(e.fd); err == nil {
			restore = func() { term.Restore(e.fd, oldState) }
		}
	}

	e.mu.Lock()
	e.raw = restore != nil
	e.prompt = prompt
	e.line.Take()
	e.editing = true
	e.redraw()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.editing = false
		e.raw = false
		e.mu.Unlock()
		if restore != nil {
			restore()
		}
	}()

	for {
		r, _, err := e.in.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case '\r', '\n':
			e.mu.Lock()
			e.editing = false
			text := e.line.Take()
			fmt.Fprint(e.out, "\r\033[K")
			e.mu.Unlock()
			return text, nil

		case 3:
			if e.hooks.interrupt != nil {
				e.hooks.interrupt()
			}

		case 4:
			e.mu.Lock()
			empty := e.line.Len() == 0
			e.mu.Unlock()
			if empty {
				return "", io.EOF
			}

		case 127, 8:
			e.edit(func(l *lineedit.Line) { l.Backspace() })

		case 9:
			e.completeLine()

		case 27:
			e.escape()

		default:
			if unicode.IsPrint(r) {
				e.edit(func(l *lineedit.Line) { l.Insert(r) })
			}
		}
	}
}

func (e *rawEditor) escape() {
	if b, err := e.in.ReadByte(); err != nil || b != '[' {
		return
	}
	code, err := e.in.ReadByte()
	if err != nil {
		return
	}

	switch code {
	case 'A':
		if e.hooks.back == nil {
			return
		}
		if line, ok := e.hooks.back(); ok {
			e.edit(func(l *lineedit.Line) { l.Set(line) })
		}
	case 'B':
		if e.hooks.forward == nil {
			return
		}
		line := e.hooks.forward()
		e.edit(func(l *lineedit.Line) { l.Set(line) })
	case 'C':
		e.edit(func(l *lineedit.Line) { l.Right() })
	case 'D':
		e.edit(func(l *lineedit.Line) { l.Left() })
	}
}

func (e *rawEditor) completeLine() {
	if e.hooks.complete == nil {
		return
	}

	e.mu.Lock()
	current := e.line.String()
	e.mu.Unlock()

	completions := uniqueStrings(e.hooks.complete(current))
	prefix := lastWord(current)

	switch len(completions) {
	case 0:
		return
	case 1:
		suffix := completions[0][len(prefix):] + " "
		e.edit(func(l *lineedit.Line) { l.Set(current + suffix) })
	default:
		e.mu.Lock()
		fmt.Fprint(e.out, "\r\033[K")
		for _, c := range completions {
			fmt.Fprint(e.out, "  "+c+e.newline())
		}
		if common := findCommonPrefix(completions); len(common) > len(prefix) {
			e.line.Set(current + common[len(prefix):])
		}
		e.redraw()
		e.mu.Unlock()
	}
}

func (e *rawEditor) edit(fn func(*lineedit.Line)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn(&e.line)
	e.redraw()
}

// redraw repaints prompt and line and puts the cursor back. Callers hold mu.
func (e *rawEditor) redraw() {
	fmt.Fprint(e.out, "\r\033[K")
	fmt.Fprint(e.out, e.prompt)
	fmt.Fprint(e.out, e.line.String())
	if back := e.line.Len() - e.line.Pos(); back > 0 {
		fmt.Fprintf(e.out, "\033[%dD", back)
	}
}

func (e *rawEditor) newline() string {
	if e.raw {
		return "\r\n"
	}
	return "\n"
}

// Write prints above the edit line and repaints it.
func (e *rawEditor) Write(p []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.editing {
		return e.out.Write(p)
	}

	fmt.Fprint(e.out, "\r\033[K")
	text := p
	if e.raw {
		text = bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	}
	if _, err := e.out.Write(text); err != nil {
		return 0, err
	}
	if !strings.HasSuffix(string(p), "\n") {
		fmt.Fprint(e.out, e.newline())
	}
	e.redraw()
	return len(p), nil
}

func (e *rawEditor) Output() io.Writer {
	return e
}

// ResetHistory is a no-op: Up and Down walk the terminal's own history.
func (e *rawEditor) ResetHistory() {}

func (e *rawEditor) Close() error {
	return nil
}
