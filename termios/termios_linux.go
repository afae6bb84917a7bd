// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termios

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrGet is returned when terminal attributes cannot be read.
	ErrGet = errors.New("failed to get term attributes")
	// ErrSet is returned when terminal attributes cannot be written.
	ErrSet = errors.New("failed to set term attributes")
)

// NCCS is the number of control characters.
const NCCS = len(unix.Termios{}.Cc)

// Termios is the attribute state of a terminal.
type Termios struct {
	Input    InputMode
	Output   OutputMode
	Control  ControlMode
	Local    LocalMode
	InSpeed  uint32
	OutSpeed uint32
	// Line is the line discipline.
	Line uint8
	// CC holds the control characters indexed by
	// the unix.V* constants.
	CC [NCCS]uint8
}

// Action specifies when a change of attributes takes effect.
type Action int

const (
	// Now applies the change immediately.
	Now Action = iota
	// Drain applies the change after all pending output
	// has been transmitted.
	Drain
	// Flush applies the change after all pending output
	// has been transmitted and discards pending input.
	Flush
)

func (a Action) ioctl() (uint, error) {
	switch a {
	case Now:
		return unix.TCSETS, nil
	case Drain:
		return unix.TCSETSW, nil
	case Flush:
		return unix.TCSETSF, nil
	default:
		return 0, fmt.Errorf("invalid action: %d", a)
	}
}

// GetAttr returns the attributes of the terminal referenced by fd.
// All flag bits are retained, including those not named by this package.
func GetAttr(fd int) (*Termios, error) {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGet, err)
	}
	return &Termios{
		Input:    InputMode(t.Iflag),
		Output:   OutputMode(t.Oflag),
		Control:  ControlMode(t.Cflag),
		Local:    LocalMode(t.Lflag),
		InSpeed:  t.Ispeed,
		OutSpeed: t.Ospeed,
		Line:     t.Line,
		CC:       t.Cc,
	}, nil
}

// SetAttr sets the attributes of the terminal referenced by fd.
func (t *Termios) SetAttr(fd int, act Action) error {
	req, err := act.ioctl()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSet, err)
	}
	err = unix.IoctlSetTermios(fd, req, &unix.Termios{
		Iflag:  uint32(t.Input),
		Oflag:  uint32(t.Output),
		Cflag:  uint32(t.Control),
		Lflag:  uint32(t.Local),
		Line:   t.Line,
		Cc:     t.CC,
		Ispeed: t.InSpeed,
		Ospeed: t.OutSpeed,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSet, err)
	}
	return nil
}

// MakeRaw modifies t to put the terminal in raw mode as described in
// cfmakeraw(3).
func (t *Termios) MakeRaw() {
	t.Input &^= IgnoreBreak | BreakInterrupt | MarkParity | StripEighthBit | NewlineToCR | IgnoreCR | CRToNewline | EnableStartStopOut
	t.Output &^= PostProcess
	t.Local &^= Echo | EchoNewline | Canonical | GenerateSignals | Extended
	t.Control &^= CharSizeMask | EnableParity
	t.Control |= unix.CS8
	t.CC[unix.VMIN] = 1
	t.CC[unix.VTIME] = 0
}

// MakeRaw puts the terminal referenced by fd into raw mode and returns the
// previous state, which can be used to restore the terminal.
//
//	old, err := termios.MakeRaw(fd)
//	if err != nil {
//		return err
//	}
//	defer old.SetAttr(fd, termios.Flush)
func MakeRaw(fd int) (*Termios, error) {
	old, err := GetAttr(fd)
	if err != nil {
		return nil, err
	}
	raw := *old
	raw.MakeRaw()
	err = raw.SetAttr(fd, Flush)
	if err != nil {
		return nil, err
	}
	return old, nil
}
