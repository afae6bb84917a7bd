// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pwd provides password database lookup.
package pwd

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotFound is returned when the password database has no
	// matching entry.
	ErrNotFound = errors.New("no passwd entry")
	// ErrInvalidString is returned when a name contains a NUL byte.
	ErrInvalidString = errors.New("invalid string: contains NUL")
	// ErrInvalidUTF8 is returned when an entry field is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// Passwd is a password database entry.
type Passwd struct {
	Name   string `json:"name"`
	Passwd string `json:"passwd"`
	UID    uint32 `json:"uid"`
	GID    uint32 `json:"gid"`
	Gecos  string `json:"gecos"`
	Dir    string `json:"dir"`
	Shell  string `json:"shell"`
}

// Current returns the password database entry for the effective user ID
// of the process.
func Current() (*Passwd, error) {
	return LookupUID(geteuid())
}

// LookupUID returns the password database entry for uid.
func LookupUID(uid uint32) (*Passwd, error) {
	p, err := lookupUID(uid)
	if err != nil {
		return nil, fmt.Errorf("getpwuid(%d): %w", uid, err)
	}
	return p, nil
}

// LookupName returns the password database entry for the named user.
func LookupName(name string) (*Passwd, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return nil, fmt.Errorf("getpwnam(%q): %w", name, ErrInvalidString)
	}
	p, err := lookupName(name)
	if err != nil {
		return nil, fmt.Errorf("getpwnam(%q): %w", name, err)
	}
	return p, nil
}

// validate checks that all string fields of p are valid UTF-8.
func (p *Passwd) validate() error {
	for _, f := range []struct {
		name, val string
	}{
		{"name", p.Name},
		{"passwd", p.Passwd},
		{"gecos", p.Gecos},
		{"dir", p.Dir},
		{"shell", p.Shell},
	} {
		if !utf8.ValidString(f.val) {
			return fmt.Errorf("%s field %q: %w", f.name, f.val, ErrInvalidUTF8)
		}
	}
	return nil
}
