// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var loadTests = []struct {
	name    string
	config  string
	want    *Config
	wantErr string
}{
	{
		name:   "empty",
		config: "",
		want:   &Config{},
	},
	{
		name: "full",
		config: `
log_level = "debug"
log_add_source = true

[libs.m]
names = ["libm.so.6", "libm.so"]
mode = "lazy|global"

[libs.c]
names = ["libc.so.6"]
`,
		want: &Config{
			LogLevel:  ptr(slog.LevelDebug),
			AddSource: ptr(true),
			Libs: map[string]*Lib{
				"m": {Names: []string{"libm.so.6", "libm.so"}, Mode: "lazy|global"},
				"c": {Names: []string{"libc.so.6"}},
			},
		},
	},
	{
		name: "rtld_mode",
		config: `
[libs.m]
names = ["libm.so.6"]
mode = "RTLD_NOW | RTLD_NODELETE"
`,
		want: &Config{
			Libs: map[string]*Lib{
				"m": {Names: []string{"libm.so.6"}, Mode: "RTLD_NOW | RTLD_NODELETE"},
			},
		},
	},
	{
		name: "bad_mode",
		config: `
[libs.m]
names = ["libm.so.6"]
mode = "eager"
`,
		wantErr: "libs.m.mode",
	},
	{
		name: "no_names",
		config: `
[libs.m]
names = []
`,
		wantErr: "libs.m.names",
	},
	{
		name: "empty_name",
		config: `
[libs.m]
names = ["libm.so.6", ""]
`,
		wantErr: "libs.m.names",
	},
	{
		name:    "unknown_key",
		config:  `colour = "blue"`,
		wantErr: "unknown keys: colour",
	},
	{
		name:    "invalid_toml",
		config:  `log_level = `,
		wantErr: "toml",
	},
}

func TestLoad(t *testing.T) {
	for _, test := range loadTests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			err := os.WriteFile(path, []byte(test.config), 0o600)
			if err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			got, err := Load(path)
			if test.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), test.wantErr) {
					t.Errorf("unexpected error: got:%v want error containing:%q", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !cmp.Equal(test.want, got) {
				t.Errorf("unexpected result:\n--- want:\n+++ got:\n%s", cmp.Diff(test.want, got))
			}
		})
	}
}

func TestLoadDefault(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("darwin does not use XDG variables")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "none"))

	got, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error for missing config: %v", err)
	}
	if !cmp.Equal(&Config{}, got) {
		t.Errorf("unexpected result for missing config: %+v", got)
	}

	err = os.MkdirAll(filepath.Join(dir, "cwrap"), 0o755)
	if err != nil {
		t.Fatalf("failed to make config dir: %v", err)
	}
	err = os.WriteFile(filepath.Join(dir, Name), []byte("[libs.z]\nnames = [\"libz.so.1\"]\n"), 0o600)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	got, err = Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Config{Libs: map[string]*Lib{"z": {Names: []string{"libz.so.1"}}}}
	if !cmp.Equal(want, got) {
		t.Errorf("unexpected result:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}

func TestSearchPath(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("darwin does not use XDG variables")
	}
	home := t.TempDir()
	a, b := t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", a+string(filepath.ListSeparator)+b)

	got := SearchPath()
	want := []string{
		filepath.Join(home, Name),
		filepath.Join(a, Name),
		filepath.Join(b, Name),
	}
	if !cmp.Equal(want, got) {
		t.Errorf("unexpected search path:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}

	err := os.MkdirAll(filepath.Join(b, "cwrap"), 0o755)
	if err != nil {
		t.Fatalf("failed to make config dir: %v", err)
	}
	err = os.WriteFile(want[2], nil, 0o600)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	found, err := Find()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != want[2] {
		t.Errorf("unexpected config path: got:%s want:%s", found, want[2])
	}
}

func TestLookup(t *testing.T) {
	cfg := &Config{Libs: map[string]*Lib{"m": {Names: []string{"libm.so.6"}, Mode: "now"}}}
	for _, test := range []struct {
		cfg  *Config
		name string
		want *Lib
	}{
		{cfg: cfg, name: "m", want: &Lib{Names: []string{"libm.so.6"}, Mode: "now"}},
		{cfg: cfg, name: "./x.so", want: &Lib{Names: []string{"./x.so"}}},
		{cfg: nil, name: "m", want: &Lib{Names: []string{"m"}}},
	} {
		got := test.cfg.Lookup(test.name)
		if !cmp.Equal(test.want, got) {
			t.Errorf("unexpected lookup for %q:\n--- want:\n+++ got:\n%s", test.name, cmp.Diff(test.want, got))
		}
	}
}

func TestUnique(t *testing.T) {
	got := unique([][]string{{"b"}, {"a", "b"}, {"a"}, {"b"}, {"a", "b"}})
	want := [][]string{{"a"}, {"a", "b"}, {"b"}}
	if !cmp.Equal(want, got) {
		t.Errorf("unexpected result:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}

func ptr[T any](v T) *T { return &v }
