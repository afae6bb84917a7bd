// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package termios

import (
	"errors"
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"
)

func openTTY(t *testing.T) *os.File {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("could not open pty: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	return tty
}

func TestGetSetAttr(t *testing.T) {
	tty := openTTY(t)
	fd := int(tty.Fd())

	orig, err := GetAttr(fd)
	if err != nil {
		t.Fatalf("unexpected error getting attributes: %v", err)
	}

	for _, act := range []Action{Now, Drain, Flush} {
		want := *orig
		want.Local ^= Echo
		want.Input ^= CRToNewline
		want.CC[unix.VMIN] = 3

		err = want.SetAttr(fd, act)
		if err != nil {
			t.Fatalf("unexpected error setting attributes with action %d: %v", act, err)
		}
		got, err := GetAttr(fd)
		if err != nil {
			t.Fatalf("unexpected error getting attributes: %v", err)
		}
		if !cmp.Equal(*got, want) {
			t.Errorf("unexpected attributes after set with action %d:\n--- want:\n+++ got:\n%s",
				act, cmp.Diff(want, *got))
		}

		err = orig.SetAttr(fd, act)
		if err != nil {
			t.Fatalf("unexpected error restoring attributes: %v", err)
		}
	}
}

func TestActionIoctl(t *testing.T) {
	for _, test := range []struct {
		act  Action
		want uint
	}{
		{act: Now, want: unix.TCSETS},
		{act: Drain, want: unix.TCSETSW},
		{act: Flush, want: unix.TCSETSF},
	} {
		got, err := test.act.ioctl()
		if err != nil {
			t.Errorf("unexpected error for action %d: %v", test.act, err)
			continue
		}
		if got != test.want {
			t.Errorf("unexpected ioctl for action %d: got:%#x want:%#x", test.act, got, test.want)
		}
	}
	_, err := Action(3).ioctl()
	if err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestSetAttrInvalidAction(t *testing.T) {
	tty := openTTY(t)
	fd := int(tty.Fd())

	orig, err := GetAttr(fd)
	if err != nil {
		t.Fatalf("unexpected error getting attributes: %v", err)
	}
	err = orig.SetAttr(fd, Action(-1))
	if !errors.Is(err, ErrSet) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrSet)
	}
}

func TestMakeRaw(t *testing.T) {
	tty := openTTY(t)
	fd := int(tty.Fd())

	old, err := MakeRaw(fd)
	if err != nil {
		t.Fatalf("unexpected error making raw: %v", err)
	}
	raw, err := GetAttr(fd)
	if err != nil {
		t.Fatalf("unexpected error getting attributes: %v", err)
	}
	if raw.Local&(Canonical|Echo|GenerateSignals) != 0 {
		t.Errorf("unexpected local flags in raw mode: %v", raw.Local)
	}
	if raw.Output&PostProcess != 0 {
		t.Errorf("unexpected output flags in raw mode: %v", raw.Output)
	}
	if raw.Control&CharSizeMask != unix.CS8 {
		t.Errorf("unexpected character size in raw mode: %#x", uint32(raw.Control&CharSizeMask))
	}
	if raw.CC[unix.VMIN] != 1 || raw.CC[unix.VTIME] != 0 {
		t.Errorf("unexpected VMIN/VTIME in raw mode: %d/%d", raw.CC[unix.VMIN], raw.CC[unix.VTIME])
	}

	err = old.SetAttr(fd, Flush)
	if err != nil {
		t.Fatalf("unexpected error restoring attributes: %v", err)
	}
	restored, err := GetAttr(fd)
	if err != nil {
		t.Fatalf("unexpected error getting attributes: %v", err)
	}
	if !cmp.Equal(restored, old) {
		t.Errorf("unexpected attributes after restore:\n--- want:\n+++ got:\n%s", cmp.Diff(old, restored))
	}
}

func TestNotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("unexpected error opening pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	_, err = GetAttr(int(r.Fd()))
	if !errors.Is(err, ErrGet) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrGet)
	}
	if !errors.Is(err, unix.ENOTTY) {
		t.Errorf("unexpected errno: got:%v want:%v", err, unix.ENOTTY)
	}
	_, err = MakeRaw(int(r.Fd()))
	if !errors.Is(err, ErrGet) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrGet)
	}
	var tio Termios
	err = tio.SetAttr(int(r.Fd()), Now)
	if !errors.Is(err, ErrSet) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrSet)
	}
}

var formatTests = []struct {
	name string
	got  string
	want string
}{
	{name: "empty", got: LocalMode(0).String(), want: "0"},
	{name: "local", got: (Canonical | Echo).String(), want: "ICANON|ECHO"},
	{name: "input", got: (IgnoreBreak | InputUTF8).String(), want: "IGNBRK|IUTF8"},
	{name: "output", got: (PostProcess | NewlineToCRNL).String(), want: "OPOST|ONLCR"},
	{name: "mask", got: ControlMode(unix.CS8 | unix.CREAD).String(), want: "CSIZE|CREAD"},
	{name: "partial_mask", got: ControlMode(unix.CS7).String(), want: "0x20"},
	{name: "unnamed", got: (Echo | LocalMode(unix.EXTPROC)).String(), want: "ECHO|0x10000"},
}

func TestFormat(t *testing.T) {
	for _, test := range formatTests {
		if test.got != test.want {
			t.Errorf("unexpected format for %s: got:%s want:%s", test.name, test.got, test.want)
		}
	}
}

func TestNames(t *testing.T) {
	got := (Echo | EchoErase | Extended).Names()
	want := []string{"ECHO", "ECHOE", "IEXTEN"}
	if !cmp.Equal(got, want) {
		t.Errorf("unexpected names:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}
