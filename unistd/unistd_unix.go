// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package unistd

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/sys/unix"
)

const (
	// pathMax is the initial getcwd buffer length.
	pathMax = 4096
	// maxPath is the largest getcwd buffer that will be tried.
	maxPath = 1 << 20
)

// Getwd returns the absolute path of the current working directory.
func Getwd() (string, error) {
	return getwd(pathMax)
}

// getwd returns the working directory using an initial buffer length of n,
// doubling the buffer while the kernel reports ERANGE.
func getwd(n int) (string, error) {
	for ; ; n *= 2 {
		buf := make([]byte, n)
		_, err := unix.Getcwd(buf)
		if err != nil {
			if errors.Is(err, unix.ERANGE) && n < maxPath {
				continue
			}
			return "", fmt.Errorf("getcwd: %w", err)
		}
		i := bytes.IndexByte(buf, 0)
		if i < 0 {
			return "", fmt.Errorf("getcwd: %w", unix.EINVAL)
		}
		buf = buf[:i]
		// Linux reports paths outside the process's root
		// with an "(unreachable)" prefix.
		if len(buf) == 0 || buf[0] != '/' {
			return "", fmt.Errorf("getcwd: %w", unix.ENOENT)
		}
		return string(buf), nil
	}
}

// Chdir changes the current working directory to dir.
func Chdir(dir string) error {
	err := unix.Chdir(dir)
	if err != nil {
		return fmt.Errorf("chdir %s: %w", dir, err)
	}
	return nil
}

// Hostname returns the host name reported by the kernel.
func Hostname() (string, error) {
	var uts unix.Utsname
	err := unix.Uname(&uts)
	if err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	name := unix.ByteSliceToString(uts.Nodename[:])
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("hostname %q: %w", name, ErrInvalidUTF8)
	}
	return name, nil
}
