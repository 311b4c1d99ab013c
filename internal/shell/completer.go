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
	"strings"

	"github.com/chzyer/readline"
)

// CompleteFunc returns the candidates for the last word of line.
type CompleteFunc func(line string) []string

type Completer struct {
	complete CompleteFunc
}

var _ readline.AutoCompleter = (*Completer)(nil)

func NewCompleter(complete CompleteFunc) *Completer {
	return &Completer{complete: complete}
}

// Do returns the missing suffix of each candidate. A single candidate also
// gets a trailing space.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	prefix := lastWord(lineStr)

	completions := uniqueStrings(c.complete(lineStr))
	if len(completions) == 0 {
		return [][]rune{}, 0
	}

	if len(completions) == 1 {
		return [][]rune{[]rune(completions[0][len(prefix):] + " ")}, len([]rune(prefix))
	}

	newLine = make([][]rune, len(completions))
	for i, completion := range completions {
		newLine[i] = []rune(completion[len(prefix):])
	}
	return newLine, len([]rune(prefix))
}

// LinerCompleter adapts complete to liner, which wants whole lines back.
func LinerCompleter(complete CompleteFunc) func(string) []string {
	return func(line string) []string {
		head := line[:len(line)-len(lastWord(line))]

		var out []string
		for _, c := range uniqueStrings(complete(line)) {
			out = append(out, head+c)
		}
		return out
	}
}

func lastWord(line string) string {
	if i := strings.LastIndex(line, " "); i >= 0 {
		return line[i+1:]
	}
	return line
}

func findCommonPrefix(completions []string) string {
	if len(completions) == 0 {
		return ""
	}

	prefix := completions[0]
	for _, comp := range completions[1:] {
		i := 0
		for i < len(prefix) && i < len(comp) && prefix[i] == comp[i] {
			i++
		}
		prefix = prefix[:i]

		if prefix == "" {
			return ""
		}
	}
	return prefix
}

func uniqueStrings(strs []string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, str := range strs {
		if !seen[str] {
			seen[str] = true
			result = append(result, str)
		}
	}
	return result
}
