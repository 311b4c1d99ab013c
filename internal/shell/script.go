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
	"fmt"
	"io"

	"github.com/floof-os/floofterm/internal/terminal"
)

// RunScript submits every line of in and writes the transcript to out. A
// feed left running is stopped at EOF.
func RunScript(in io.Reader, out io.Writer, opts ...terminal.Option) error {
	term, err := terminal.New(terminal.NewWriterOutput(out), opts...)
	if err != nil {
		return err
	}
	defer term.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		term.Submit(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}
