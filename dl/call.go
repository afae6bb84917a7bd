// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package dl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// UnsafeFunc binds the function pointed to by fptr to the foreign function
// at the symbol's address using the platform C calling convention. fptr must
// be a pointer to a func variable.
//
// The signature of *fptr is not checked against the foreign function. A
// mismatch in parameter count, order or types is undefined behaviour. The
// bound function must not be called after the library is closed.
//
//	var add func(a, b, c int32) int32
//	err := dl.UnsafeFunc(sym, &add)
func UnsafeFunc(sym Symbol, fptr any) (err error) {
	addr, err := sym.Addr()
	if err != nil {
		return err
	}
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("could not bind %s: %v", sym.name, r)
		}
	}()
	purego.RegisterFunc(fptr, uintptr(addr))
	return nil
}
