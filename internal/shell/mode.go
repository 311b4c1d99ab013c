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
	"fmt"

	"golang.org/x/term"
)

// Mode selects the front-end that drives the terminal.
type Mode int

const (
	AutoMode Mode = iota
	LineMode
	PageMode
	ScriptMode
)

func (m Mode) String() string {
	switch m {
	case AutoMode:
		return "auto"
	case LineMode:
		return "line"
	case PageMode:
		return "page"
	case ScriptMode:
		return "script"
	default:
		return "unknown"
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return AutoMode, nil
	case "line":
		return LineMode, nil
	case "page":
		return PageMode, nil
	case "script":
		return ScriptMode, nil
	default:
		return AutoMode, fmt.Errorf("unknown mode %q", s)
	}
}

// Resolve turns AutoMode into LineMode when both ends are terminals and
// ScriptMode otherwise. Explicit modes are returned unchanged.
func (m Mode) Resolve(inFd, outFd int) Mode {
	if m != AutoMode {
		return m
	}
	if term.IsTerminal(inFd) && term.IsTerminal(outFd) {
		return LineMode
	}
	return ScriptMode
}
