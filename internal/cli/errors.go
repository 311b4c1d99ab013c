/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package cli

import (
	"errors"
	"strings"
)

// ErrInvalidConfig marks errors caused by the config file, environment or
// flags rather than by the session itself.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitPanic        = 3
	ExitConfigError  = 10
)

// ExitCodeForError maps an error returned by Execute to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrInvalidConfig) {
		return ExitConfigError
	}

	errStr := err.Error()
	for _, pattern := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "accepts", "requires at least"} {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}
	return ExitGeneralError
}
