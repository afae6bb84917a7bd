// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The cwrap executable exposes the cwrap libc wrappers on the command line.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/bbrks/wrap/v2"

	"github.com/kortschak/cwrap/internal/config"
	"github.com/kortschak/cwrap/internal/slogext"
	"github.com/kortschak/cwrap/internal/version"
)

// Exit status codes.
const (
	success       = 0
	internalError = 1 << (iota - 1)
	invocationError
)

const description = `cwrap runs thin wrappers around POSIX and libc primitives. ` +
	`It can load a shared object and call an integer function it exports, ` +
	`report terminal attributes, working directory and host name, and look up ` +
	`password database entries. Library names may be aliases defined in the ` +
	`configuration file.`

// commands is the set of cwrap sub-commands.
var commands = map[string]func(ctx context.Context, e *env, args []string) int{
	"dl":       dlCmd,
	"sym":      symCmd,
	"cwd":      cwdCmd,
	"hostname": hostnameCmd,
	"whoami":   whoamiCmd,
	"passwd":   passwdCmd,
	"termios":  termiosCmd,
	"isatty":   isattyCmd,
}

// help is the usage text for each command.
var help = map[string]string{
	"dl":       "open a library, resolve a symbol and call it with int arguments: dl [-mode m] [-void] <lib> <symbol> [args...]",
	"sym":      "report whether symbols resolve in a library: sym [-mode m] <lib> <symbol>...",
	"cwd":      "print the working directory, after changing to dir if given: cwd [-C dir]",
	"hostname": "print the host name",
	"whoami":   "print the passwd entry of the effective user",
	"passwd":   "print the passwd entry for a user name or uid: passwd <name|uid>",
	"termios":  "print terminal attributes, optionally in raw mode: termios [-fd n] [-raw]",
	"isatty":   "report whether a file descriptor is a terminal: isatty [-fd n]",
}

func main() { os.Exit(Main()) }

func Main() int {
	logging := flag.String("log", "", "logging level (debug, info, warn or error) (default from config or info)")
	lines := flag.Bool("lines", false, "display source line details in logs")
	cfgPath := flag.String("config", "", "configuration file path (default from XDG config directory)")
	v := flag.Bool("version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()
	if *v {
		err := version.Print(os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return internalError
		}
		return success
	}
	if flag.NArg() == 0 {
		flag.Usage()
		return invocationError
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		return invocationError
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return invocationError
	}

	var level slog.LevelVar
	switch {
	case *logging != "":
		err = level.UnmarshalText([]byte(*logging))
		if err != nil {
			flag.Usage()
			return invocationError
		}
	case cfg.LogLevel != nil:
		level.Set(*cfg.LogLevel)
	}
	addSource := slogext.NewAtomicBool(*lines || (cfg.AddSource != nil && *cfg.AddSource))
	log := slog.New(slogext.GoID{Handler: slogext.NewJSONHandler(os.Stderr, &slogext.HandlerOptions{
		Level:     &level,
		AddSource: addSource,
	})}).With(
		slog.String("component", "cwrap."+flag.Arg(0)),
	)

	ctx := context.Background()
	log.LogAttrs(ctx, slog.LevelDebug, "start", slog.Any("args", flag.Args()[1:]))
	e := &env{
		log:    log,
		cfg:    cfg,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	return cmd(ctx, e, flag.Args()[1:])
}

// env is the shared environment of a command.
type env struct {
	log    *slog.Logger
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

// flags returns a flag set for the named command that writes
// its usage to the receiver's stderr.
func (e *env) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s: %s\n", name, help[name])
		fs.PrintDefaults()
	}
	return fs
}

// fail logs err at error level and returns code.
func (e *env) fail(ctx context.Context, code int, msg string, err error, attrs ...slog.Attr) int {
	attrs = append(attrs, slog.Any("error", slogext.Error{Err: err}))
	e.log.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return code
}

// print writes v to stdout as a single line of JSON.
func (e *env) print(ctx context.Context, v any) int {
	err := json.NewEncoder(e.stdout).Encode(v)
	if err != nil {
		return e.fail(ctx, internalError, "write output", err)
	}
	return success
}

func usage() {
	w := flag.CommandLine.Output()
	wrapper := wrap.NewWrapper()
	wrapper.StripTrailingNewline = true
	fmt.Fprintf(w, "%s\n\n", wrapper.Wrap(description, 80))
	fmt.Fprintln(w, "Usage: cwrap [options] <command> [args...]")
	fmt.Fprintln(w, "\nCommands:")

	names := make([]string, 0, len(help))
	for n := range help {
		names = append(names, n)
	}
	slices.Sort(names)
	wrapper.OutputLinePrefix = strings.Repeat(" ", 12)
	for _, n := range names {
		text := strings.TrimLeft(wrapper.Wrap(help[n], 80), " ")
		fmt.Fprintf(w, "  %-9s %s\n", n, text)
	}
	fmt.Fprintln(w, "\nOptions:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "\nConfiguration files:")
	for _, p := range config.SearchPath() {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
