// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix && !linux

package dl

// RTLD_DEEPBIND is not available on this platform.
const RTLD_DEEPBIND Mode = 0
