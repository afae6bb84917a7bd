// Copyright ©2024 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termios

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// InputMode is the set of c_iflag input mode flags.
type InputMode uint32

const (
	IgnoreBreak         InputMode = unix.IGNBRK
	BreakInterrupt      InputMode = unix.BRKINT
	IgnoreParity        InputMode = unix.IGNPAR
	MarkParity          InputMode = unix.PARMRK
	InputParityCheck    InputMode = unix.INPCK
	StripEighthBit      InputMode = unix.ISTRIP
	NewlineToCR         InputMode = unix.INLCR
	IgnoreCR            InputMode = unix.IGNCR
	CRToNewline         InputMode = unix.ICRNL
	EnableStartStopOut  InputMode = unix.IXON
	RestartAny          InputMode = unix.IXANY
	EnableStartStopIn   InputMode = unix.IXOFF
	InputUTF8           InputMode = unix.IUTF8
	RingBellOnQueueFull InputMode = unix.IMAXBEL
)

var inputNames = []flagName{
	{unix.IGNBRK, "IGNBRK"},
	{unix.BRKINT, "BRKINT"},
	{unix.IGNPAR, "IGNPAR"},
	{unix.PARMRK, "PARMRK"},
	{unix.INPCK, "INPCK"},
	{unix.ISTRIP, "ISTRIP"},
	{unix.INLCR, "INLCR"},
	{unix.IGNCR, "IGNCR"},
	{unix.ICRNL, "ICRNL"},
	{unix.IXON, "IXON"},
	{unix.IXANY, "IXANY"},
	{unix.IXOFF, "IXOFF"},
	{unix.IUTF8, "IUTF8"},
	{unix.IMAXBEL, "IMAXBEL"},
}

func (m InputMode) String() string { return format(uint32(m), inputNames) }

// Names returns the names of the flags set in m.
func (m InputMode) Names() []string { return names(uint32(m), inputNames) }

// OutputMode is the set of c_oflag output mode flags. The delay fields
// are masks.
type OutputMode uint32

const (
	PostProcess        OutputMode = unix.OPOST
	MapLowerToUpper    OutputMode = unix.OLCUC
	NewlineToCRNL      OutputMode = unix.ONLCR
	CRToNewlineOut     OutputMode = unix.OCRNL
	NoCRAtColumnZero   OutputMode = unix.ONOCR
	NewlineReturns     OutputMode = unix.ONLRET
	FillForDelay       OutputMode = unix.OFILL
	FillIsDEL          OutputMode = unix.OFDEL
	NewlineDelayMask   OutputMode = unix.NLDLY
	CRDelayMask        OutputMode = unix.CRDLY
	TabDelayMask       OutputMode = unix.TABDLY
	BackspaceDelayMask OutputMode = unix.BSDLY
	VerticalTabDelay   OutputMode = unix.VTDLY
	FormFeedDelay      OutputMode = unix.FFDLY
)

var outputNames = []flagName{
	{unix.OPOST, "OPOST"},
	{unix.OLCUC, "OLCUC"},
	{unix.ONLCR, "ONLCR"},
	{unix.OCRNL, "OCRNL"},
	{unix.ONOCR, "ONOCR"},
	{unix.ONLRET, "ONLRET"},
	{unix.OFILL, "OFILL"},
	{unix.OFDEL, "OFDEL"},
	{unix.NLDLY, "NLDLY"},
	{unix.CRDLY, "CRDLY"},
	{unix.TABDLY, "TABDLY"},
	{unix.BSDLY, "BSDLY"},
	{unix.VTDLY, "VTDLY"},
	{unix.FFDLY, "FFDLY"},
}

func (m OutputMode) String() string { return format(uint32(m), outputNames) }

// Names returns the names of the flags set in m.
func (m OutputMode) Names() []string { return names(uint32(m), outputNames) }

// ControlMode is the set of c_cflag control mode flags.
type ControlMode uint32

const (
	BaudMask         ControlMode = unix.CBAUD
	BaudExtended     ControlMode = unix.CBAUDEX
	CharSizeMask     ControlMode = unix.CSIZE
	TwoStopBits      ControlMode = unix.CSTOPB
	EnableReceiver   ControlMode = unix.CREAD
	EnableParity     ControlMode = unix.PARENB
	OddParity        ControlMode = unix.PARODD
	HangUpOnClose    ControlMode = unix.HUPCL
	IgnoreModemLines ControlMode = unix.CLOCAL
	InputBaudMask    ControlMode = unix.CIBAUD
	StickParity      ControlMode = unix.CMSPAR
	HardwareFlowCtrl ControlMode = unix.CRTSCTS
)

var controlNames = []flagName{
	{unix.CBAUD, "CBAUD"},
	{unix.CBAUDEX, "CBAUDEX"},
	{unix.CSIZE, "CSIZE"},
	{unix.CSTOPB, "CSTOPB"},
	{unix.CREAD, "CREAD"},
	{unix.PARENB, "PARENB"},
	{unix.PARODD, "PARODD"},
	{unix.HUPCL, "HUPCL"},
	{unix.CLOCAL, "CLOCAL"},
	{unix.CIBAUD, "CIBAUD"},
	{unix.CMSPAR, "CMSPAR"},
	{unix.CRTSCTS, "CRTSCTS"},
}

func (m ControlMode) String() string { return format(uint32(m), controlNames) }

// Names returns the names of the flags set in m.
func (m ControlMode) Names() []string { return names(uint32(m), controlNames) }

// LocalMode is the set of c_lflag local mode flags.
type LocalMode uint32

const (
	GenerateSignals LocalMode = unix.ISIG
	Canonical       LocalMode = unix.ICANON
	Echo            LocalMode = unix.ECHO
	EchoErase       LocalMode = unix.ECHOE
	EchoKill        LocalMode = unix.ECHOK
	EchoNewline     LocalMode = unix.ECHONL
	EchoControl     LocalMode = unix.ECHOCTL
	EchoPrint       LocalMode = unix.ECHOPRT
	EchoKillErase   LocalMode = unix.ECHOKE
	Flushing        LocalMode = unix.FLUSHO
	NoFlush         LocalMode = unix.NOFLSH
	StopBackground  LocalMode = unix.TOSTOP
	Reprint         LocalMode = unix.PENDIN
	Extended        LocalMode = unix.IEXTEN
)

var localNames = []flagName{
	{unix.ISIG, "ISIG"},
	{unix.ICANON, "ICANON"},
	{unix.ECHO, "ECHO"},
	{unix.ECHOE, "ECHOE"},
	{unix.ECHOK, "ECHOK"},
	{unix.ECHONL, "ECHONL"},
	{unix.ECHOCTL, "ECHOCTL"},
	{unix.ECHOPRT, "ECHOPRT"},
	{unix.ECHOKE, "ECHOKE"},
	{unix.FLUSHO, "FLUSHO"},
	{unix.NOFLSH, "NOFLSH"},
	{unix.TOSTOP, "TOSTOP"},
	{unix.PENDIN, "PENDIN"},
	{unix.IEXTEN, "IEXTEN"},
}

func (m LocalMode) String() string { return format(uint32(m), localNames) }

// Names returns the names of the flags set in m.
func (m LocalMode) Names() []string { return names(uint32(m), localNames) }

type flagName struct {
	bits uint32
	name string
}

// names returns the names of the flags in table that are fully set in v.
func names(v uint32, table []flagName) []string {
	var n []string
	for _, f := range table {
		if f.bits != 0 && v&f.bits == f.bits {
			n = append(n, f.name)
		}
	}
	return n
}

// format returns the names of the flags set in v joined with '|'. Bits not
// covered by a set flag are appended in hex.
func format(v uint32, table []flagName) string {
	n := names(v, table)
	rest := v
	for _, f := range table {
		if v&f.bits == f.bits {
			rest &^= f.bits
		}
	}
	if rest != 0 {
		n = append(n, fmt.Sprintf("%#x", rest))
	}
	if len(n) == 0 {
		return "0"
	}
	return strings.Join(n, "|")
}
