// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package unistd provides working directory, host name and terminal
// queries.
package unistd

import (
	"errors"

	"github.com/mattn/go-isatty"
)

// ErrInvalidUTF8 is returned when a value returned by the system is not
// valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// IsTerminal returns whether the given file descriptor is a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
