/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package lineedit

// Line is the input buffer of a front-end that draws its own prompt.
type Line struct {
	buf []rune
	pos int
}

func (l *Line) Insert(r rune) {
	if l.pos == len(l.buf) {
		l.buf = append(l.buf, r)
		l.pos++
		return
	}

	l.buf = append(l.buf, 0)
	copy(l.buf[l.pos+1:], l.buf[l.pos:])
	l.buf[l.pos] = r
	l.pos++
}

func (l *Line) InsertString(s string) {
	for _, r := range s {
		l.Insert(r)
	}
}

func (l *Line) Backspace() {
	if l.pos == 0 {
		return
	}
	copy(l.buf[l.pos-1:], l.buf[l.pos:])
	l.buf = l.buf[:len(l.buf)-1]
	l.pos--
}

func (l *Line) Left() {
	if l.pos > 0 {
		l.pos--
	}
}

func (l *Line) Right() {
	if l.pos < len(l.buf) {
		l.pos++
	}
}

// Set replaces the buffer and moves the cursor to the end.
func (l *Line) Set(s string) {
	l.buf = []rune(s)
	l.pos = len(l.buf)
}

// Take returns the buffer and clears it.
func (l *Line) Take() string {
	s := string(l.buf)
	l.buf = l.buf[:0]
	l.pos = 0
	return s
}

func (l *Line) String() string {
	return string(l.buf)
}

func (l *Line) Pos() int {
	return l.pos
}

func (l *Line) Len() int {
	return len(l.buf)
}
