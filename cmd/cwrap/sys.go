// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kortschak/cwrap/pwd"
	"github.com/kortschak/cwrap/unistd"
)

func cwdCmd(ctx context.Context, e *env, args []string) int {
	fs := e.flags("cwd")
	dir := fs.String("C", "", "change to dir before reporting")
	err := fs.Parse(args)
	if err != nil {
		return invocationError
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return invocationError
	}
	if *dir != "" {
		err = unistd.Chdir(*dir)
		if err != nil {
			return e.fail(ctx, internalError, "chdir", err)
		}
		e.log.LogAttrs(ctx, slog.LevelDebug, "chdir", slog.String("dir", *dir))
	}
	wd, err := unistd.Getwd()
	if err != nil {
		return e.fail(ctx, internalError, "getcwd", err)
	}
	fmt.Fprintln(e.stdout, wd)
	return success
}

func hostnameCmd(ctx context.Context, e *env, args []string) int {
	if len(args) != 0 {
		e.flags("hostname").Usage()
		return invocationError
	}
	name, err := unistd.Hostname()
	if err != nil {
		return e.fail(ctx, internalError, "hostname", err)
	}
	fmt.Fprintln(e.stdout, name)
	return success
}

func whoamiCmd(ctx context.Context, e *env, args []string) int {
	if len(args) != 0 {
		e.flags("whoami").Usage()
		return invocationError
	}
	p, err := pwd.Current()
	if err != nil {
		return e.fail(ctx, internalError, "lookup", err)
	}
	return e.print(ctx, p)
}

func passwdCmd(ctx context.Context, e *env, args []string) int {
	if len(args) != 1 {
		e.flags("passwd").Usage()
		return invocationError
	}
	var (
		p   *pwd.Passwd
		err error
	)
	uid, perr := strconv.ParseUint(args[0], 10, 32)
	if perr == nil {
		p, err = pwd.LookupUID(uint32(uid))
	} else {
		p, err = pwd.LookupName(args[0])
	}
	if err != nil {
		return e.fail(ctx, internalError, "lookup", err, slog.String("user", args[0]))
	}
	return e.print(ctx, p)
}

func isattyCmd(ctx context.Context, e *env, args []string) int {
	fs := e.flags("isatty")
	fd := fs.Uint("fd", 0, "file descriptor to test")
	err := fs.Parse(args)
	if err != nil {
		return invocationError
	}
	ok := unistd.IsTerminal(uintptr(*fd))
	fmt.Fprintln(e.stdout, ok)
	if !ok {
		return internalError
	}
	return success
}
