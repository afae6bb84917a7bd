// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package unistd

import "errors"

var errNotImplemented = errors.New("not implemented")

// Getwd is not implemented on this platform.
func Getwd() (string, error) { return "", errNotImplemented }

// Chdir is not implemented on this platform.
func Chdir(dir string) error { return errNotImplemented }

// Hostname is not implemented on this platform.
func Hostname() (string, error) { return "", errNotImplemented }
