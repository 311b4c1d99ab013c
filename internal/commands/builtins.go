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
	"time"

	"github.com/floof-os/floofterm/internal/session"
)

const (
	NoSuchDirectory  = "No such directory"
	NoSuchFile       = "No such file"
	AlreadyFollowing = "already following log"
	IPUpdated        = "IP address updated"

	IPUsage   = "Usage: ip addr show | ip addr set [IP]"
	TailUsage = "Usage: tail -f /var/log/syslog"
	FindUsage = "Usage: find [path] -name [pattern]"

	SyslogPath = "/var/log/syslog"
)

const diskUsage = `Filesystem Type Size Used Avail Use%
/dev/sda1 ext4 40G 20G 18G 52%`

func registerBuiltins(r *Registry) {
	r.Register("ls", cmdLs)
	r.Register("cd", cmdCd)
	r.Register("pwd", cmdPwd)
	r.Register("clear", cmdClear)
	r.Register("date", cmdDate)
	r.Register("who", cmdWho)
	r.Register("df", cmdDf)
	r.Register("cat", cmdCat)
	r.Register("find", cmdFind)
	r.Register("ip", cmdIP)
	r.Register("tail", cmdTail)
	r.Register("logout", cmdLogout)

	r.Register("whoami", cmdWhoami)
	r.Register("hostname", cmdHostname)
	r.Register("echo", cmdEcho)
	r.Register("history", cmdHistory)
	r.Register("help", func(env *Env, args []string) Result {
		return Text(FormatColumns(r.Names(), termWidth))
	})
}

// cmdLs lists the first non-flag argument, or the working directory.
func cmdLs(env *Env, args []string) Result {
	target := env.Session.Cwd
	for _, arg := range args {
		if arg == "" || strings.HasPrefix(arg, "-") {
			continue
		}
		target = session.ResolvePath(env.Session.Cwd, arg)
		break
	}

	entries, err := env.FS.ListDirectory(target)
	if err != nil {
		return Text(NoSuchDirectory)
	}
	return Text(strings.Join(entries, "  "))
}

func cmdCd(env *Env, args []string) Result {
	target := env.Session.Home()
	if len(args) > 0 {
		target = args[0]
	}

	if err := env.Session.ChangeDirectory(env.FS, target); err != nil {
		if len(args) == 0 {
			return Text("")
		}
		return Text(NoSuchDirectory)
	}
	return Text("")
}

func cmdPwd(env *Env, args []string) Result {
	return Text(env.Session.Cwd)
}

func cmdClear(env *Env, args []string) Result {
	return Result{Effect: EffectClear}
}

func cmdDate(env *Env, args []string) Result {
	now := time.Now
	if env.Now != nil {
		now = env.Now
	}
	return Text(now().Format(time.UnixDate))
}

func cmdWho(env *Env, args []string) Result {
	return Text(env.Session.User + " tty1")
}

func cmdDf(env *Env, args []string) Result {
	return Text(diskUsage)
}

func cmdCat(env *Env, args []string) Result {
	if len(args) == 0 {
		return Text(NoSuchFile)
	}

	content, err := env.FS.ReadFile(args[0])
	if err != nil || content == "" {
		return Text(NoSuchFile)
	}
	return Text(content)
}

// cmdFind supports the one form the fake server knows: find BASE -name *EXT.
func cmdFind(env *Env, args []string) Result {
	if len(args) < 3 {
		return Text(FindUsage)
	}

	ext := strings.Replace(args[2], "*", "", 1)
	return Text(strings.Join(env.FS.FindByExtension(args[0], ext), "\n"))
}

func cmdIP(env *Env, args []string) Result {
	if len(args) < 2 || args[0] != "addr" {
		return Text(IPUsage)
	}

	switch args[1] {
	case "show":
		n := env.Session.Net
		return Text(fmt.Sprintf("%s:\n  inet %s\n  netmask %s\n  gateway %s",
			session.Interface, n.IP, n.Netmask, n.Gateway))
	case "set":
		if len(args) < 3 || args[2] == "" {
			return Text(IPUsage)
		}
		events, err := env.Session.SetIP(env.FS, args[2])
		if err != nil {
			return Text(fmt.Sprintf("ip: %v", err))
		}
		return Result{Output: IPUpdated, Events: events}
	default:
		return Text(IPUsage)
	}
}

func cmdTail(env *Env, args []string) Result {
	if len(args) != 2 || args[0] != "-f" || args[1] != SyslogPath {
		return Text(TailUsage)
	}
	if env.Following {
		return Text(AlreadyFollowing)
	}
	return Result{Effect: EffectStartFeed}
}

func cmdLogout(env *Env, args []string) Result {
	return Result{Effect: EffectReload}
}

func cmdWhoami(env *Env, args []string) Result {
	return Text(env.Session.User)
}

func cmdHostname(env *Env, args []string) Result {
	return Text(env.Session.Hostname)
}

func cmdEcho(env *Env, args []string) Result {
	return Text(strings.Join(args, " "))
}

func cmdHistory(env *Env, args []string) Result {
	lines := make([]string, len(env.History))
	for i, line := range env.History {
		lines[i] = fmt.Sprintf("%5d  %s", i+1, line)
	}
	return Text(strings.Join(lines, "\n"))
}
