// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package dl

/*
#cgo linux LDFLAGS: -ldl
#include <stdlib.h>
#include <dlfcn.h>

// The dl functions and dlerror must be called on the same thread, so each
// wrapper collects the dlerror state before returning to Go.

static void* cwrapOpen(const char* path, int mode, char** err) {
	void* h = dlopen(path, mode);
	if (h == NULL) {
		*err = dlerror();
	}
	return h;
}

static void* cwrapLookup(void* h, const char* name, char** err) {
	dlerror();
	void* s = dlsym(h, name);
	if (s == NULL) {
		*err = dlerror();
	}
	return s;
}

static int cwrapClose(void* h, char** err) {
	int r = dlclose(h);
	if (r != 0) {
		*err = dlerror();
	}
	return r;
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

const (
	RTLD_LAZY     = Mode(C.RTLD_LAZY)
	RTLD_NOW      = Mode(C.RTLD_NOW)
	RTLD_GLOBAL   = Mode(C.RTLD_GLOBAL)
	RTLD_LOCAL    = Mode(C.RTLD_LOCAL)
	RTLD_NODELETE = Mode(C.RTLD_NODELETE)
	RTLD_NOLOAD   = Mode(C.RTLD_NOLOAD)
)

func open(path string, mode Mode) (unsafe.Pointer, error) {
	filename := C.CString(path)
	defer C.free(unsafe.Pointer(filename))
	var msg *C.char
	h := C.cwrapOpen(filename, C.int(mode), &msg)
	if h == nil {
		return nil, dlError(msg, "unknown dlopen error")
	}
	return h, nil
}

func lookup(h unsafe.Pointer, name string) (unsafe.Pointer, error) {
	sym := C.CString(name)
	defer C.free(unsafe.Pointer(sym))
	var msg *C.char
	s := C.cwrapLookup(h, sym, &msg)
	if s == nil {
		if msg == nil {
			return nil, ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrSymbolNotFound, Error(C.GoString(msg)))
	}
	return s, nil
}

func release(h unsafe.Pointer) error {
	var msg *C.char
	if C.cwrapClose(h, &msg) != 0 {
		return dlError(msg, "unknown dlclose error")
	}
	return nil
}

func dlError(msg *C.char, fallback string) error {
	if msg == nil {
		return Error(fallback)
	}
	return Error(C.GoString(msg))
}
