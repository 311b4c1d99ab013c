/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package vfs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for paths that are not in the layout.
	ErrNotFound = errors.New("not found")

	// ErrInvalidLayout is returned when a layout cannot be applied.
	ErrInvalidLayout = errors.New("invalid layout")
)

// Error records the operation and path that failed.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func notFound(op, path string) error {
	return &Error{Op: op, Path: path, Err: ErrNotFound}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
