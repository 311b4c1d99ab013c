/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

// Package feed simulates `tail -f /var/log/syslog`: while following, a fixed
// cycle of log lines is appended to the terminal at a steady interval.
package feed

import (
	"sync"
	"time"
)

const (
	DefaultInterval = 500 * time.Millisecond
	Banner          = "==> /var/log/syslog <=="
)

var Messages = []string{
	"Oct 19 10:00:01 server systemd[1]: Started Session 12 of user user.",
	"Oct 19 10:00:02 server sshd[1024]: Accepted publickey for user from 192.168.1.10 port 52144 ssh2",
	"Oct 19 10:00:03 server kernel: [ 4021.118231] eth0: link is up, 1000 Mbps full duplex",
	"Oct 19 10:00:04 server CRON[2210]: (root) CMD (command -v debian-sa1 > /dev/null && debian-sa1 1 1)",
	"Oct 19 10:00:05 server nginx[733]: 192.168.1.10 - - \"GET /index.html HTTP/1.1\" 200 612",
}

// Feed is either idle or following. Lines are written through emit, which
// must not call back into the Feed.
type Feed struct {
	mu       sync.Mutex
	sched    Scheduler
	interval time.Duration
	emit     func(string)

	active bool
	token  Token
	index  int
}

func New(sched Scheduler, interval time.Duration, emit func(string)) *Feed {
	if sched == nil {
		sched = NewTickerScheduler()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Feed{sched: sched, interval: interval, emit: emit}
}

// Start begins following. It returns false, leaving the running feed alone,
// if the feed is already active.
func (f *Feed) Start() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.active {
		return false
	}

	f.emit(Banner)
	f.active = true
	f.index = 0

	f.token = f.sched.Start(f.interval, f.tick)
	return true
}

func (f *Feed) tick(token Token) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A tick can race with Stop or belong to an earlier run. Start holds mu
	// until f.token is set, so a first tick waits for it here.
	if !f.active || f.token != token {
		return
	}

	f.emit(Messages[f.index%len(Messages)])
	f.index++
}

// Stop cancels the feed. No line is emitted once Stop has returned.
func (f *Feed) Stop() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.active {
		return false
	}

	f.sched.Cancel(f.token)
	f.active = false
	f.token = 0
	f.index = 0
	return true
}

func (f *Feed) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.active
}
