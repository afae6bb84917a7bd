// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package pwd

/*
#include <errno.h>
#include <pwd.h>
#include <stdlib.h>
#include <sys/types.h>
#include <unistd.h>

static int cwrapGetpwuid(uid_t uid, struct passwd *pwd, char *buf, size_t buflen, int *found) {
	struct passwd *result = NULL;
	int r = getpwuid_r(uid, pwd, buf, buflen, &result);
	*found = result != NULL;
	return r;
}

static int cwrapGetpwnam(const char *name, struct passwd *pwd, char *buf, size_t buflen, int *found) {
	struct passwd *result = NULL;
	int r = getpwnam_r(name, pwd, buf, buflen, &result);
	*found = result != NULL;
	return r;
}

static long cwrapBufSize(void) {
	return sysconf(_SC_GETPW_R_SIZE_MAX);
}
*/
import "C"

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// maxBufSize is the largest lookup buffer that will be tried.
const maxBufSize = 1 << 20

func geteuid() uint32 { return uint32(unix.Geteuid()) }

func lookupUID(uid uint32) (*Passwd, error) {
	return lookup(func(pwd *C.struct_passwd, buf *C.char, size C.size_t, found *C.int) C.int {
		return C.cwrapGetpwuid(C.uid_t(uid), pwd, buf, size, found)
	})
}

func lookupName(name string) (*Passwd, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return lookup(func(pwd *C.struct_passwd, buf *C.char, size C.size_t, found *C.int) C.int {
		return C.cwrapGetpwnam(cname, pwd, buf, size, found)
	})
}

// lookup calls fn with a C-allocated buffer, growing the buffer while fn
// reports ERANGE.
func lookup(fn func(pwd *C.struct_passwd, buf *C.char, size C.size_t, found *C.int) C.int) (*Passwd, error) {
	size := int(C.cwrapBufSize())
	if size <= 0 || size > maxBufSize {
		size = 1024
	}
	for {
		var (
			pwd   C.struct_passwd
			found C.int
		)
		buf := C.malloc(C.size_t(size))
		r := fn(&pwd, (*C.char)(buf), C.size_t(size), &found)
		if syscall.Errno(r) == syscall.ERANGE && size < maxBufSize {
			C.free(buf)
			size *= 2
			continue
		}
		if err := result(syscall.Errno(r), found != 0); err != nil {
			C.free(buf)
			return nil, err
		}
		p := &Passwd{
			Name:   C.GoString(pwd.pw_name),
			Passwd: C.GoString(pwd.pw_passwd),
			UID:    uint32(pwd.pw_uid),
			GID:    uint32(pwd.pw_gid),
			Gecos:  C.GoString(pwd.pw_gecos),
			Dir:    C.GoString(pwd.pw_dir),
			Shell:  C.GoString(pwd.pw_shell),
		}
		C.free(buf)
		err := p.validate()
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// result returns the error for a getpw*_r call that returned errno and
// reported whether an entry was found. A missing entry may be reported
// with ENOENT, ESRCH, EBADF or EPERM.
func result(errno syscall.Errno, found bool) error {
	if !found {
		switch errno {
		case 0, syscall.ENOENT, syscall.ESRCH, syscall.EBADF, syscall.EPERM:
			return ErrNotFound
		}
	}
	if errno != 0 {
		return errno
	}
	return nil
}
