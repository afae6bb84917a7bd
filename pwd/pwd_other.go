// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package pwd

import "errors"

var errNotImplemented = errors.New("not implemented")

func geteuid() uint32 { return 0 }

func lookupUID(uid uint32) (*Passwd, error) { return nil, errNotImplemented }

func lookupName(name string) (*Passwd, error) { return nil, errNotImplemented }
