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
	"fmt"
	"strings"
)

const termWidth = 80

// FormatColumns lays names out in fixed-width columns, at most six per row.
func FormatColumns(names []string, width int) string {
	if len(names) == 0 {
		return ""
	}

	maxLen := 0
	for _, name := range names {
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}

	colWidth := maxLen + 4
	if colWidth < 12 {
		colWidth = 12
	}

	if width == 0 {
		width = termWidth
	}
	numCols := width / colWidth
	if numCols < 1 {
		numCols = 1
	}
	if numCols > 6 {
		numCols = 6
	}

	var rows []string
	var row strings.Builder
	for i, name := range names {
		if (i+1)%numCols == 0 || i == len(names)-1 {
			row.WriteString(name)
			rows = append(rows, row.String())
			row.Reset()
			continue
		}
		row.WriteString(fmt.Sprintf("%-*s", colWidth, name))
	}

	return strings.Join(rows, "\n")
}
