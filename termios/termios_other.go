// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package termios

import "errors"

var (
	ErrGet = errors.New("failed to get term attributes")
	ErrSet = errors.New("failed to set term attributes")
)

var errNotImplemented = errors.New("not implemented")

// Termios is the attribute state of a terminal.
type Termios struct{}

// Action specifies when a change of attributes takes effect.
type Action int

const (
	Now Action = iota
	Drain
	Flush
)

// GetAttr is not implemented on this platform.
func GetAttr(fd int) (*Termios, error) {
	return nil, errors.Join(ErrGet, errNotImplemented)
}

// SetAttr is not implemented on this platform.
func (t *Termios) SetAttr(fd int, act Action) error {
	return errors.Join(ErrSet, errNotImplemented)
}

// MakeRaw is not implemented on this platform.
func (t *Termios) MakeRaw() {}

// MakeRaw is not implemented on this platform.
func MakeRaw(fd int) (*Termios, error) {
	return nil, errors.Join(ErrGet, errNotImplemented)
}
