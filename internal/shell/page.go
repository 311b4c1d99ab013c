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
	"strings"
	"unicode/utf8"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/floof-os/floofterm/internal/lineedit"
	"github.com/floof-os/floofterm/internal/terminal"
)

const inputHeight = 3

// page is the full-screen front-end: scrolling output above, the prompt and
// edit line in a box below.
type page struct {
	term   *terminal.Terminal
	buf    *terminal.Buffer
	line   lineedit.Line
	output *widgets.Paragraph
	input  *widgets.Paragraph
}

// RunPage takes over the screen until Ctrl-D.
func RunPage(opts ...terminal.Option) error {
	buf := terminal.NewBuffer()
	term, err := terminal.New(buf, opts...)
	if err != nil {
		return err
	}
	defer term.Close()

	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize UI: %w", err)
	}
	defer ui.Close()

	p := &page{term: term, buf: buf}
	p.output = widgets.NewParagraph()
	p.output.Title = "floofterm"
	p.output.BorderStyle.Fg = ui.ColorCyan
	p.input = widgets.NewParagraph()
	p.input.BorderStyle.Fg = ui.ColorGreen

	p.render()

	uiEvents := ui.PollEvents()
	for {
		select {
		case e := <-uiEvents:
			if e.ID == "<C-d>" {
				return nil
			}
			p.handle(e)
			p.render()

		case <-buf.Changed():
			p.render()
		}
	}
}

// handle applies one key press. It reports false for events it ignores.
func (p *page) handle(e ui.Event) bool {
	switch e.ID {
	case "<C-c>":
		p.term.Interrupt()
	case "<Enter>":
		p.term.Submit(p.line.Take())
	case "<Up>":
		if line, ok := p.term.HistoryBack(); ok {
			p.line.Set(line)
		}
	case "<Down>":
		p.line.Set(p.term.HistoryForward())
	case "<Left>":
		p.line.Left()
	case "<Right>":
		p.line.Right()
	case "<Backspace>", "<C-<Backspace>>":
		p.line.Backspace()
	case "<Space>":
		p.line.Insert(' ')
	case "<Tab>":
		p.complete()
	case "<Resize>":
		ui.Clear()
	default:
		if e.Type != ui.KeyboardEvent || utf8.RuneCountInString(e.ID) != 1 {
			return false
		}
		p.line.InsertString(e.ID)
	}
	return true
}

func (p *page) complete() {
	current := p.line.String()
	completions := uniqueStrings(p.term.Completions(current))
	prefix := lastWord(current)

	switch len(completions) {
	case 0:
	case 1:
		p.line.Set(current + completions[0][len(prefix):] + " ")
	default:
		if common := findCommonPrefix(completions); len(common) > len(prefix) {
			p.line.Set(current + common[len(prefix):])
		}
	}
}

func (p *page) render() {
	width, height := ui.TerminalDimensions()
	if height <= inputHeight+2 {
		return
	}

	p.output.SetRect(0, 0, width, height-inputHeight)
	p.input.SetRect(0, height-inputHeight, width, height)

	p.output.Text = strings.Join(p.buf.Tail(height-inputHeight-2), "\n")
	p.input.Text = p.term.Prompt() + " " + editLine(&p.line)

	func() {
		defer func() {
			if r := recover(); r != nil {
				return
			}
		}()
		ui.Render(p.output, p.input)
	}()
}

// editLine shows the buffer with a block cursor at the edit position.
func editLine(l *lineedit.Line) string {
	runes := []rune(l.String())
	pos := l.Pos()
	return string(runes[:pos]) + "█" + string(runes[pos:])
}
