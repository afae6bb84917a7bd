// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dl implements dlopen and related functionality.
//
// A [Lib] owns the mapping of a shared object and releases it exactly once
// when it is closed. A [Symbol] resolved from a Lib does not own the
// mapping; it must not be used after the Lib has been closed. Binding a
// Symbol to a Go value with [UnsafeFunc] or [UnsafeVar] checks that the Lib
// is still open, but values bound before Close remain callable and using
// them after Close is undefined behaviour.
package dl

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"
)

var (
	// ErrInvalidPath is returned when a path cannot be passed to the
	// dynamic loader.
	ErrInvalidPath = errors.New("invalid path")
	// ErrInvalidString is returned when a symbol name contains a NUL byte.
	ErrInvalidString = errors.New("invalid string: contains NUL")
	// ErrCouldNotLoad is returned when the dynamic loader rejects a
	// library. The underlying error is a [*LoadError].
	ErrCouldNotLoad = errors.New("failed to load")
	// ErrSymbolNotFound is returned when a symbol is not present.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrClosed is returned when a closed library is used.
	ErrClosed = errors.New("library closed")
)

// Error is a dlerror error message.
type Error string

func (e Error) Error() string { return string(e) }

// LoadError is the error returned when a library cannot be opened. Err holds
// the diagnostic reported by the dynamic loader.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrCouldNotLoad.
func (e *LoadError) Is(target error) bool { return target == ErrCouldNotLoad }

// Lib represents an open handle to a dynamically loaded library.
// A Lib must not be copied.
type Lib struct {
	mu     sync.RWMutex
	handle unsafe.Pointer
	name   string
	mode   Mode
}

// Open opens the dynamic library at path with the provided mode. See man 3
// dlopen for details. The empty path is passed to the dynamic loader, which
// on glibc systems opens the main program.
func Open(path string, mode Mode) (*Lib, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	h, err := open(path, mode)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &Lib{handle: h, name: path, mode: mode}, nil
}

// OpenFirst opens the dynamic library corresponding to the first name in
// names that the dynamic loader accepts. If no name can be opened, the
// returned error holds the failure for each name.
func OpenFirst(mode Mode, names ...string) (*Lib, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no library names", ErrInvalidPath)
	}
	var errs []error
	for _, n := range names {
		l, err := Open(n, mode)
		if err == nil {
			return l, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// Name returns the resolved name of the library.
func (l *Lib) Name() string { return l.name }

// Mode returns the mode the library was opened with.
func (l *Lib) Mode() Mode { return l.mode }

// Symbol takes a symbol name and returns the resolved symbol. Resolving
// the same name more than once returns equivalent symbols.
func (l *Lib) Symbol(name string) (Symbol, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidString, name)
	}
	if l == nil {
		return Symbol{}, fmt.Errorf("could not find %s: %w", name, ErrClosed)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.handle == nil {
		return Symbol{}, fmt.Errorf("could not find %s: %w", name, ErrClosed)
	}
	addr, err := lookup(l.handle, name)
	if err != nil {
		return Symbol{}, fmt.Errorf("could not find %s: %w", name, err)
	}
	return Symbol{lib: l, name: name, addr: addr}, nil
}

// Close closes the receiver, unloading the library. Symbols must not be used
// after Close has been called. Only the first call to Close releases the
// library and may return an error; subsequent calls are no-ops.
func (l *Lib) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle == nil {
		return nil
	}
	h := l.handle
	l.handle = nil
	err := release(h)
	if err != nil {
		return fmt.Errorf("error closing %s: %w", l.name, err)
	}
	return nil
}

// isOpen reports whether the library is still open.
func (l *Lib) isOpen() bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.handle != nil
}
