/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

package feed

import (
	"sync"
	"time"
)

// Token identifies a repeating task started on a Scheduler.
type Token uint64

// Scheduler runs task every interval until cancelled. The task receives the
// token Start returned for it.
type Scheduler interface {
	Start(interval time.Duration, task func(Token)) Token
	Cancel(token Token)
}

// TickerScheduler runs each task on its own goroutine driven by a time.Ticker.
type TickerScheduler struct {
	mu    sync.Mutex
	next  Token
	stops map[Token]chan struct{}
}

func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{stops: make(map[Token]chan struct{})}
}

func (s *TickerScheduler) Start(interval time.Duration, task func(Token)) Token {
	s.mu.Lock()
	s.next++
	token := s.next
	stop := make(chan struct{})
	s.stops[token] = stop
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				task(token)
			}
		}
	}()

	return token
}

func (s *TickerScheduler) Cancel(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stop, ok := s.stops[token]; ok {
		close(stop)
		delete(s.stops, token)
	}
}

// ManualScheduler only runs tasks when Tick is called.
type ManualScheduler struct {
	mu    sync.Mutex
	next  Token
	tasks map[Token]func(Token)
	order []Token
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[Token]func(Token))}
}

func (s *ManualScheduler) Start(interval time.Duration, task func(Token)) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.tasks[s.next] = task
	s.order = append(s.order, s.next)
	return s.next
}

func (s *ManualScheduler) Cancel(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, token)
}

// Tick fires every live task once, in start order.
func (s *ManualScheduler) Tick() {
	s.mu.Lock()
	var due []Token
	var tasks []func(Token)
	for _, token := range s.order {
		if task, ok := s.tasks[token]; ok {
			due = append(due, token)
			tasks = append(tasks, task)
		}
	}
	s.mu.Unlock()

	for i, task := range tasks {
		task(due[i])
	}
}

func (s *ManualScheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}
