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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/peterh/liner"
)

const (
	EditorReadline = "readline"
	EditorLiner    = "liner"
	EditorRaw      = "raw"
)

// errInterrupt is what an editor returns when Ctrl-C ends the prompt.
var errInterrupt = errors.New("interrupted")

// editor reads one line at a time. Output is where the terminal should print
// so that text written during a prompt does not garble the edit line.
// ResetHistory forgets whatever recall list the editor keeps for itself.
type editor interface {
	Readline(prompt string) (string, error)
	Output() io.Writer
	ResetHistory()
	Close() error
}

// hooks connect an editor back to the terminal it is reading for.
type hooks struct {
	complete  CompleteFunc
	interrupt func()
	back      func() (string, bool)
	forward   func() string
}

func newEditor(name, historyFile string, h hooks) (editor, error) {
	switch name {
	case "", EditorReadline:
		return newReadlineEditor(historyFile, h.complete)
	case EditorLiner:
		return newLinerEditor(historyFile, h.complete), nil
	case EditorRaw:
		return newRawEditor(os.Stdin, os.Stdout, h), nil
	default:
		return nil, fmt.Errorf("unknown editor %q", name)
	}
}

type readlineEditor struct {
	rl *readline.Instance
}

func newReadlineEditor(historyFile string, complete CompleteFunc) (*readlineEditor, error) {
	config := &readline.Config{
		HistoryFile:       historyFile,
		AutoComplete:      NewCompleter(complete),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		UniqueEditLine:    true,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize shell: %w", err)
	}
	return &readlineEditor{rl: rl}, nil
}

func (e *readlineEditor) Readline(prompt string) (string, error) {
	e.rl.SetPrompt(prompt)

	line, err := e.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", errInterrupt
	}
	return line, err
}

// Output refreshes the edit line around every write.
func (e *readlineEditor) Output() io.Writer {
	return e.rl.Stdout()
}

// ResetHistory only clears memory; a configured history file keeps its lines.
func (e *readlineEditor) ResetHistory() {
	e.rl.ResetHistory()
}

func (e *readlineEditor) Close() error {
	return e.rl.Close()
}

type linerEditor struct {
	state       *liner.State
	historyFile string
}

func newLinerEditor(historyFile string, complete CompleteFunc) *linerEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(LinerCompleter(complete))

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}

	return &linerEditor{state: state, historyFile: historyFile}
}

func (e *linerEditor) Readline(prompt string) (string, error) {
	line, err := e.state.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", errInterrupt
	}
	if err != nil {
		return "", err
	}

	if line != "" {
		e.state.AppendHistory(line)
	}
	// liner leaves the typed line on screen; the terminal echoes it itself.
	fmt.Fprint(os.Stdout, "\033[1A\033[2K")
	return line, nil
}

func (e *linerEditor) Output() io.Writer {
	return os.Stdout
}

func (e *linerEditor) ResetHistory() {
	e.state.ClearHistory()
}

func (e *linerEditor) Close() error {
	if e.historyFile != "" {
		if f, err := os.Create(e.historyFile); err == nil {
			e.state.WriteHistory(f)
			f.Close()
		} else {
			fmt.Fprintf(os.Stderr, "Warning: Failed to save history: %v\n", err)
		}
	}
	return e.state.Close()
}
