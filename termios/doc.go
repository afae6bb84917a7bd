// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package termios provides access to terminal attributes.
//
// The package is only implemented on linux.
package termios
