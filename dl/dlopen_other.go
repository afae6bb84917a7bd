// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package dl

import (
	"errors"
	"unsafe"
)

const (
	RTLD_LAZY     Mode = 0
	RTLD_NOW      Mode = 0
	RTLD_GLOBAL   Mode = 0
	RTLD_LOCAL    Mode = 0
	RTLD_NODELETE Mode = 0
	RTLD_NOLOAD   Mode = 0
	RTLD_DEEPBIND Mode = 0
)

var errNotImplemented = errors.New("not implemented")

func open(_ string, _ Mode) (unsafe.Pointer, error) {
	return nil, errNotImplemented
}

func lookup(_ unsafe.Pointer, _ string) (unsafe.Pointer, error) {
	return nil, errNotImplemented
}

func release(_ unsafe.Pointer) error {
	return errNotImplemented
}

// UnsafeFunc is not implemented on this platform.
func UnsafeFunc(_ Symbol, _ any) error {
	return errNotImplemented
}
