// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dl

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is a set of dlopen flags.
type Mode int

var modeFlags = []struct {
	name string
	mode Mode
}{
	{"lazy", RTLD_LAZY},
	{"now", RTLD_NOW},
	{"global", RTLD_GLOBAL},
	{"local", RTLD_LOCAL},
	{"nodelete", RTLD_NODELETE},
	{"noload", RTLD_NOLOAD},
	{"deepbind", RTLD_DEEPBIND},
}

// String returns the mode as a '|'-separated list of flag names. Local
// visibility is reported when global is not set. Bits without a name
// are reported in hex.
func (m Mode) String() string {
	var names []string
	if m&RTLD_LAZY != 0 {
		names = append(names, "lazy")
	}
	if m&RTLD_NOW != 0 {
		names = append(names, "now")
	}
	if RTLD_GLOBAL != 0 && m&RTLD_GLOBAL == RTLD_GLOBAL {
		names = append(names, "global")
	} else {
		names = append(names, "local")
	}
	rest := m &^ (RTLD_NOW | RTLD_LAZY | RTLD_GLOBAL | RTLD_LOCAL)
	for _, f := range modeFlags[4:] {
		if f.mode != 0 && rest&f.mode == f.mode {
			names = append(names, f.name)
			rest &^= f.mode
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("%#x", int(rest)))
	}
	return strings.Join(names, "|")
}

// ParseMode parses a '|'-separated list of flag names as returned by
// Mode.String. Names are case insensitive and may be prefixed with RTLD_.
// Hex values are accepted for bits without a name.
func ParseMode(s string) (Mode, error) {
	var m Mode
	for _, n := range strings.Split(s, "|") {
		n = strings.ToLower(strings.TrimSpace(n))
		if strings.HasPrefix(n, "0x") {
			v, err := strconv.ParseUint(n[2:], 16, 31)
			if err != nil {
				return 0, fmt.Errorf("invalid mode flag: %q", n)
			}
			m |= Mode(v)
			continue
		}
		n = strings.TrimPrefix(n, "rtld_")
		var ok bool
		for _, f := range modeFlags {
			if f.name == n {
				m |= f.mode
				ok = true
				break
			}
		}
		if !ok {
			return 0, fmt.Errorf("invalid mode flag: %q", n)
		}
	}
	return m, nil
}
