// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"

	"github.com/kortschak/cwrap/dl"
	"github.com/kortschak/cwrap/internal/slogext"
)

// maxArgs is the largest number of arguments dl will pass to a function.
const maxArgs = 8

var int32Type = reflect.TypeFor[int32]()

func dlCmd(ctx context.Context, e *env, args []string) int {
	fs := e.flags("dl")
	mode := fs.String("mode", "", "dlopen mode flags separated by '|' (default from config or lazy)")
	void := fs.Bool("void", false, "the function does not return a value")
	err := fs.Parse(args)
	if err != nil {
		return invocationError
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return invocationError
	}
	name, symbol := fs.Arg(0), fs.Arg(1)
	cargs := make([]int32, 0, fs.NArg()-2)
	for _, a := range fs.Args()[2:] {
		v, err := strconv.ParseInt(a, 0, 32)
		if err != nil {
			return e.fail(ctx, invocationError, "invalid argument", err, slog.String("arg", a))
		}
		cargs = append(cargs, int32(v))
	}
	if len(cargs) > maxArgs {
		return e.fail(ctx, invocationError, "too many arguments", fmt.Errorf("%d > %d", len(cargs), maxArgs))
	}

	lib, code := e.open(ctx, name, *mode)
	if lib == nil {
		return code
	}
	defer e.close(ctx, lib)

	sym, err := lib.Symbol(symbol)
	if err != nil {
		return e.fail(ctx, internalError, "resolve", err, slog.String("symbol", symbol))
	}
	res, err := call(sym, cargs, *void)
	if err != nil {
		return e.fail(ctx, internalError, "call", err, slog.String("symbol", symbol))
	}
	e.log.LogAttrs(ctx, slog.LevelDebug, "call", slog.String("symbol", symbol), slog.Any("args", cargs))
	return e.print(ctx, struct {
		Lib    string  `json:"lib"`
		Symbol string  `json:"symbol"`
		Args   []int32 `json:"args"`
		Result *int32  `json:"result,omitempty"`
	}{
		Lib:    lib.Name(),
		Symbol: symbol,
		Args:   cargs,
		Result: res,
	})
}

// call calls the C function at sym with args as int parameters. If void is
// false the int result is returned.
func call(sym dl.Symbol, args []int32, void bool) (*int32, error) {
	in := make([]reflect.Type, len(args))
	vals := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = int32Type
		vals[i] = reflect.ValueOf(a)
	}
	var out []reflect.Type
	if !void {
		out = []reflect.Type{int32Type}
	}
	fn := reflect.New(reflect.FuncOf(in, out, false))
	err := dl.UnsafeFunc(sym, fn.Interface())
	if err != nil {
		return nil, err
	}
	res := fn.Elem().Call(vals)
	if void {
		return nil, nil
	}
	r := int32(res[0].Int())
	return &r, nil
}

func symCmd(ctx context.Context, e *env, args []string) int {
	fs := e.flags("sym")
	mode := fs.String("mode", "", "dlopen mode flags separated by '|' (default from config or lazy)")
	err := fs.Parse(args)
	if err != nil {
		return invocationError
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return invocationError
	}

	lib, code := e.open(ctx, fs.Arg(0), *mode)
	if lib == nil {
		return code
	}
	defer e.close(ctx, lib)

	status := success
	for _, name := range fs.Args()[1:] {
		_, err := lib.Symbol(name)
		found := err == nil
		if !found {
			if !errors.Is(err, dl.ErrSymbolNotFound) {
				return e.fail(ctx, internalError, "resolve", err, slog.String("symbol", name))
			}
			status = internalError
		}
		if code := e.print(ctx, struct {
			Symbol string `json:"symbol"`
			Found  bool   `json:"found"`
		}{
			Symbol: name,
			Found:  found,
		}); code != success {
			return code
		}
	}
	return status
}

// open opens the library named by name, resolving configured aliases.
// If mode is empty, the alias mode is used, or lazy if the alias has
// no mode.
func (e *env) open(ctx context.Context, name, mode string) (*dl.Lib, int) {
	alias := e.cfg.Lookup(name)
	if mode == "" {
		mode = alias.Mode
	}
	if mode == "" {
		mode = "lazy"
	}
	m, err := dl.ParseMode(mode)
	if err != nil {
		return nil, e.fail(ctx, invocationError, "invalid mode", err)
	}
	lib, err := dl.OpenFirst(m, alias.Names...)
	if err != nil {
		return nil, e.fail(ctx, internalError, "open", err, slog.String("lib", name))
	}
	e.log.LogAttrs(ctx, slog.LevelDebug, "open", slog.String("lib", lib.Name()), slog.Any("mode", slogext.Stringer{Stringer: m}))
	return lib, success
}

// close closes lib, logging any error.
func (e *env) close(ctx context.Context, lib *dl.Lib) {
	err := lib.Close()
	if err != nil {
		e.log.LogAttrs(ctx, slog.LevelWarn, "close", slog.String("lib", lib.Name()), slog.Any("error", slogext.Error{Err: err}))
		return
	}
	e.log.LogAttrs(ctx, slog.LevelDebug, "close", slog.String("lib", lib.Name()))
}
