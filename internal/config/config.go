// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides cwrap configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kortschak/cwrap/internal/xdg"
)

// Name is the name of the cwrap configuration file relative to an XDG
// configuration directory.
var Name = filepath.Join("cwrap", "config.toml")

// Config is a complete configuration.
type Config struct {
	LogLevel  *slog.Level `json:"log_level,omitempty" toml:"log_level"`
	AddSource *bool       `json:"log_add_source,omitempty" toml:"log_add_source"`
	// Libs is a set of named library aliases.
	Libs map[string]*Lib `json:"libs,omitempty" toml:"libs"`
}

// Lib is a library alias.
type Lib struct {
	// Names is the list of candidate library names to
	// open. The first name that can be opened is used.
	Names []string `json:"names" toml:"names"`
	// Mode is the dlopen mode as a '|'-separated list
	// of flag names. The default is "lazy".
	Mode string `json:"mode,omitempty" toml:"mode"`
}

// Schema is the CUE schema for a valid configuration.
const Schema = `
{
	log_level?:      _#log_level
	log_add_source?: bool
	libs?:           {[string]: _#lib}
}

_#lib: {
	names: [string & !="", ...string & !=""]
	mode?: _#mode
}

_#log_level: =~"(?i)^(?:debug|info|warn|error)$"
_#mode: =~"(?i)^\\s*(?:rtld_)?(?:lazy|now|global|local|nodelete|noload|deepbind)\\s*(?:\\|\\s*(?:rtld_)?(?:lazy|now|global|local|nodelete|noload|deepbind)\\s*)*$"
`

// Find returns the path to the user's configuration file. If no file is
// found Find returns an error satisfying errors.Is(err, fs.ErrNotExist).
func Find() (string, error) {
	return xdg.Config(Name, false)
}

// SearchPath returns the configuration file paths that Find examines, in
// order of precedence.
func SearchPath() []string {
	var paths []string
	if home, ok := xdg.ConfigHome(); ok {
		paths = append(paths, filepath.Join(home, Name))
	}
	if dirs, ok := xdg.ConfigDirs(); ok {
		for _, d := range filepath.SplitList(dirs) {
			paths = append(paths, filepath.Join(d, Name))
		}
	}
	return paths
}

// Load reads and validates the configuration at path. If path is empty, the
// configuration file is located with Find and a missing file results in an
// empty configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Find()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return &Config{}, nil
			}
			return nil, err
		}
	}
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	_, err = Validate(Schema, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Lookup returns the library alias for name, or a single element alias
// holding name if no alias exists.
func (c *Config) Lookup(name string) *Lib {
	if c != nil {
		if l, ok := c.Libs[name]; ok {
			return l
		}
	}
	return &Lib{Names: []string{name}}
}
