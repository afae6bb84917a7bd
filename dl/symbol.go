// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dl

import (
	"fmt"
	"unsafe"
)

// Symbol is a resolved symbol address. It does not own the library it was
// resolved from.
type Symbol struct {
	lib  *Lib
	name string
	addr unsafe.Pointer
}

// Name returns the name the symbol was resolved with.
func (s Symbol) Name() string { return s.name }

// Lib returns the library the symbol was resolved from.
func (s Symbol) Lib() *Lib { return s.lib }

// Addr returns the address of the symbol. It returns ErrClosed if the
// library the symbol was resolved from has been closed.
func (s Symbol) Addr() (unsafe.Pointer, error) {
	if s.addr == nil {
		return nil, fmt.Errorf("%s: %w", s.name, ErrSymbolNotFound)
	}
	if !s.lib.isOpen() {
		return nil, fmt.Errorf("%s: %w", s.name, ErrClosed)
	}
	return s.addr, nil
}

// UnsafeVar returns a pointer to the variable at the symbol's address.
// The type T is not checked against the exported variable's type, and the
// pointer must not be used after the library is closed.
func UnsafeVar[T any](sym Symbol) (*T, error) {
	addr, err := sym.Addr()
	if err != nil {
		return nil, err
	}
	return (*T)(addr), nil
}
