/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

// Package shell runs a terminal.Terminal against a real console: an
// interactive line editor, a full-screen page, or a plain script on stdin.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/floof-os/floofterm/internal/terminal"
)

type Options struct {
	Mode        Mode
	Editor      string
	HistoryFile string
	Color       bool
	Stdin       *os.File
	Stdout      *os.File
	Terminal    []terminal.Option
}

func Run(opts Options) error {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	color.NoColor = !opts.Color

	switch opts.Mode.Resolve(int(opts.Stdin.Fd()), int(opts.Stdout.Fd())) {
	case LineMode:
		return RunLine(opts)
	case PageMode:
		return RunPage(opts.Terminal...)
	default:
		return RunScript(opts.Stdin, opts.Stdout, opts.Terminal...)
	}
}

// RunLine reads lines with the chosen editor until EOF. Ctrl-C stops a
// running feed and is otherwise ignored. History is only written to disk
// when opts.HistoryFile is set.
func RunLine(opts Options) error {
	var term *terminal.Terminal

	ed, err := newEditor(opts.Editor, opts.HistoryFile, hooks{
		complete:  func(line string) []string { return term.Completions(line) },
		interrupt: func() { term.Interrupt() },
		back:      func() (string, bool) { return term.HistoryBack() },
		forward:   func() string { return term.HistoryForward() },
	})
	if err != nil {
		return err
	}
	defer ed.Close()

	term, err = newLineTerminal(ed, opts)
	if err != nil {
		return err
	}
	defer term.Close()

	displayWelcome(ed.Output())
	return readLoop(ed, term)
}

// newLineTerminal builds the terminal an editor reads for. Logout wipes the
// editor's recall list along with the terminal's history.
func newLineTerminal(ed editor, opts Options) (*terminal.Terminal, error) {
	termOpts := append([]terminal.Option{}, opts.Terminal...)
	if opts.Editor != EditorLiner {
		// liner measures the prompt in bytes, escape codes included.
		termOpts = append(termOpts, terminal.WithPromptDecorator(colorPrompt))
	}
	termOpts = append(termOpts, terminal.WithReloadHook(ed.ResetHistory))

	return terminal.New(terminal.NewWriterOutput(ed.Output()), termOpts...)
}

func readLoop(ed editor, term *terminal.Terminal) error {
	for {
		line, err := ed.Readline(term.Prompt() + " ")
		if err != nil {
			if errors.Is(err, errInterrupt) {
				term.Interrupt()
				continue
			} else if err == io.EOF {
				return nil
			}
			return fmt.Errorf("error reading input: %w", err)
		}

		term.Submit(line)
	}
}

func displayWelcome(w io.Writer) {
	banner := color.New(color.FgCyan, color.Bold)
	banner.Fprintln(w, "   ______          ___ __")
	banner.Fprintln(w, "  / __/ /__  ___  / _// /____ ______ _")
	banner.Fprintln(w, " / _/ / _ \\/ _ \\/ _// __/ -_) __/  ' \\")
	banner.Fprintln(w, "/_/ /_/\\___/\\___/_/  \\__/\\__/_/ /_/_/_/")
	fmt.Fprintln(w)
	color.New(color.Faint).Fprintln(w, "Type 'help' for commands, Ctrl-C stops tail -f, Ctrl-D exits.")
	fmt.Fprintln(w)
}

// colorPrompt paints "user@host" green and the directory blue.
func colorPrompt(prompt string) string {
	i := strings.Index(prompt, ":")
	if i < 0 {
		return prompt
	}

	who := color.New(color.FgGreen, color.Bold).Sprint(prompt[:i])
	where := color.New(color.FgBlue, color.Bold).Sprint(strings.TrimSuffix(prompt[i+1:], "$"))
	return who + ":" + where + "$"
}
