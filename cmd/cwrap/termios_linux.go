// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kortschak/cwrap/internal/slogext"
	"github.com/kortschak/cwrap/termios"
)

func termiosCmd(ctx context.Context, e *env, args []string) int {
	fs := e.flags("termios")
	fd := fs.Int("fd", 0, "terminal file descriptor")
	raw := fs.Bool("raw", false, "report attributes in raw mode, restoring afterwards")
	err := fs.Parse(args)
	if err != nil {
		return invocationError
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return invocationError
	}

	var t *termios.Termios
	if *raw {
		old, err := termios.MakeRaw(*fd)
		if err != nil {
			return e.fail(ctx, internalError, "make raw", err, slog.Int("fd", *fd))
		}
		defer func() {
			err := old.SetAttr(*fd, termios.Flush)
			if err != nil {
				e.log.LogAttrs(ctx, slog.LevelError, "restore", slog.Int("fd", *fd), slog.Any("error", slogext.Error{Err: err}))
			}
		}()
	}
	t, err = termios.GetAttr(*fd)
	if err != nil {
		return e.fail(ctx, internalError, "get attributes", err, slog.Int("fd", *fd))
	}
	cc := make([]int, len(t.CC))
	for i, c := range t.CC {
		cc[i] = int(c)
	}
	return e.print(ctx, attrs{
		Input:    flags{Bits: hex(uint32(t.Input)), Names: t.Input.Names()},
		Output:   flags{Bits: hex(uint32(t.Output)), Names: t.Output.Names()},
		Control:  flags{Bits: hex(uint32(t.Control)), Names: t.Control.Names()},
		Local:    flags{Bits: hex(uint32(t.Local)), Names: t.Local.Names()},
		InSpeed:  t.InSpeed,
		OutSpeed: t.OutSpeed,
		Line:     t.Line,
		CC:       cc,
	})
}

type attrs struct {
	Input    flags  `json:"input"`
	Output   flags  `json:"output"`
	Control  flags  `json:"control"`
	Local    flags  `json:"local"`
	InSpeed  uint32 `json:"ispeed"`
	OutSpeed uint32 `json:"ospeed"`
	Line     uint8  `json:"line"`
	CC       []int  `json:"cc"`
}

type flags struct {
	Bits  string   `json:"bits"`
	Names []string `json:"names"`
}

func hex(v uint32) string { return fmt.Sprintf("%#x", v) }
