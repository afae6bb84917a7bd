// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slogext

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJSONHandlerAddSource(t *testing.T) {
	var buf bytes.Buffer
	addSource := NewAtomicBool(false)
	log := slog.New(NewJSONHandler(&buf, &HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: addSource,
	})).With(slog.String("component", "test"))

	log.Debug("without")
	addSource.Store(true)
	log.Debug("with")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte{'\n'})
	if len(lines) != 2 {
		t.Fatalf("unexpected number of log lines: got:%d want:2\n%s", len(lines), &buf)
	}
	for i, want := range []bool{false, true} {
		var rec map[string]any
		err := json.Unmarshal(lines[i], &rec)
		if err != nil {
			t.Fatalf("unexpected error unmarshaling log line %d: %v", i, err)
		}
		_, got := rec[slog.SourceKey]
		if got != want {
			t.Errorf("unexpected source presence for line %d: got:%t want:%t", i, got, want)
		}
		if rec["component"] != "test" {
			t.Errorf("unexpected component for line %d: %v", i, rec["component"])
		}
	}
}

func TestGoID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(GoID{Handler: slog.NewJSONHandler(&buf, nil)})
	log.Info("message")

	var rec map[string]any
	err := json.Unmarshal(buf.Bytes(), &rec)
	if err != nil {
		t.Fatalf("unexpected error unmarshaling log line: %v", err)
	}
	if _, ok := rec["goid"].(float64); !ok {
		t.Errorf("missing goid in %s", &buf)
	}
}

func TestError(t *testing.T) {
	for _, test := range []struct {
		err  error
		want any
	}{
		{err: nil, want: "<nil>"},
		{err: errors.New("plain"), want: "plain"},
		{
			err: fmt.Errorf("chdir /nowhere: %w", syscall.ENOENT),
			want: map[string]any{
				"msg":   "chdir /nowhere: " + syscall.ENOENT.Error(),
				"errno": float64(syscall.ENOENT),
			},
		},
	} {
		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		log.Info("failed", slog.Any("error", Error{test.err}))

		var rec map[string]any
		err := json.Unmarshal(buf.Bytes(), &rec)
		if err != nil {
			t.Fatalf("unexpected error unmarshaling log line: %v", err)
		}
		if !cmp.Equal(rec["error"], test.want) {
			t.Errorf("unexpected error value:\n--- want:\n+++ got:\n%s", cmp.Diff(test.want, rec["error"]))
		}
	}
}
