package vtmux

import "io"

// ResponseWriter receives terminal responses generated in answer to device
// queries (DSR, DA1/DA2, DECRQM, DECRQSS, OSC 52 clipboard reads); OSC color
// queries are not answered. Typically the PTY
// master, wired in by the host (spec §6: out of scope, specified by
// interface only).
type ResponseWriter = io.Writer

// NoopResponse discards all response bytes.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (int, error) { return len(p), nil }

// BellProvider handles BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider handles window/icon title changes (OSC 0/1/2) and the title
// stack (XTWINOPS 22/23).
type TitleProvider interface {
	SetTitle(title string)
	SetIconName(name string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(string)    {}
func (NoopTitle) SetIconName(string) {}
func (NoopTitle) PushTitle()         {}
func (NoopTitle) PopTitle()          {}

// ClipboardProvider handles OSC 52 clipboard read/write. selection is 'c'
// (clipboard) or 'p' (primary selection).
type ClipboardProvider interface {
	Read(selection byte) string
	Write(selection byte, data []byte)
}

// NoopClipboard ignores clipboard access.
type NoopClipboard struct{}

func (NoopClipboard) Read(byte) string        { return "" }
func (NoopClipboard) Write(byte, []byte)      {}

// APCProvider receives Application Program Command payloads (recognition
// only — spec §4.5 leaves kitty-graphics parsing out of scope).
type APCProvider interface {
	Receive(data []byte)
}

// NoopAPC ignores APC payloads.
type NoopAPC struct{}

func (NoopAPC) Receive([]byte) {}

// PMProvider receives Privacy Message payloads.
type PMProvider interface {
	Receive(data []byte)
}

// NoopPM ignores PM payloads.
type NoopPM struct{}

func (NoopPM) Receive([]byte) {}

// SOSProvider receives Start-of-String payloads.
type SOSProvider interface {
	Receive(data []byte)
}

// NoopSOS ignores SOS payloads.
type NoopSOS struct{}

func (NoopSOS) Receive([]byte) {}

// WorkingDirProvider observes OSC 7 (current working directory reports),
// the supplemented shell-integration feature from spec §9's original_source
// carryover.
type WorkingDirProvider interface {
	SetWorkingDirectory(uri string)
}

// NoopWorkingDir ignores OSC 7.
type NoopWorkingDir struct{}

func (NoopWorkingDir) SetWorkingDirectory(string) {}

// PromptMarkProvider observes OSC 133 shell-integration marks (prompt
// start/end, command start/end with exit status).
type PromptMarkProvider interface {
	PromptStart()
	CommandStart()
	CommandExecuted()
	CommandFinished(exitCode int, hasExitCode bool)
}

// NoopPromptMark ignores OSC 133.
type NoopPromptMark struct{}

func (NoopPromptMark) PromptStart()                          {}
func (NoopPromptMark) CommandStart()                          {}
func (NoopPromptMark) CommandExecuted()                       {}
func (NoopPromptMark) CommandFinished(int, bool)              {}

var (
	_ ResponseWriter     = NoopResponse{}
	_ BellProvider        = NoopBell{}
	_ TitleProvider        = NoopTitle{}
	_ ClipboardProvider    = NoopClipboard{}
	_ APCProvider          = NoopAPC{}
	_ PMProvider           = NoopPM{}
	_ SOSProvider          = NoopSOS{}
	_ WorkingDirProvider   = NoopWorkingDir{}
	_ PromptMarkProvider   = NoopPromptMark{}
)
