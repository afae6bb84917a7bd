// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package main

import (
	"context"
	"errors"
)

func termiosCmd(ctx context.Context, e *env, args []string) int {
	return e.fail(ctx, internalError, "get attributes", errors.New("termios not implemented on this platform"))
}
