package vtmux

// fsmState is the byte-level parser state (spec §4.6): Ground, Escape, Pnd,
// Spc, Pct, Charset (one state each for G0 and G1), Csi, Osc, Dcs, Apc, Pm
// and Sos. The string states share one collector and the same terminators.
// UTF-8 has no state of its own: stepGround decodes whole sequences and
// stashes one cut off at the end of a Process call in pendingUTF8.
type fsmState int

const (
	stateGround fsmState = iota
	stateEscape
	statePnd
	stateSpc
	statePct
	stateCharsetG0
	stateCharsetG1
	stateCsi
	stateOsc
	stateDcs
	stateApc
	statePm
	stateSos
)

// maxStringLen bounds OSC/DCS/APC/PM/SOS payload accumulation (spec §4.6):
// a string command that never terminates cannot grow the buffer unboundedly.
const maxStringLen = 64 * 1024

// Options configures a VTE. The zero value is not usable directly; build one
// with New and functional options (spec §6: every external collaborator is
// pluggable behind a Noop default). Response has no default writer: without
// one, replies queue for DrainPendingInput.
type Options struct {
	Width, Height   int
	ScrollbackLines int
	Logger          Logger
	Response        ResponseWriter
	Bell            BellProvider
	Title           TitleProvider
	Clipboard       ClipboardProvider
	APC             APCProvider
	PM              PMProvider
	SOS             SOSProvider
	WorkingDir      WorkingDirProvider
	PromptMark      PromptMarkProvider
	Theme           Theme
}

// Option configures a VTE at construction time.
type Option func(*Options)

func WithSize(w, h int) Option { return func(o *Options) { o.Width, o.Height = w, h } }

func WithScrollback(lines int) Option { return func(o *Options) { o.ScrollbackLines = lines } }

func WithLogger(l Logger) Option { return func(o *Options) { o.Logger = l } }

func WithResponseWriter(w ResponseWriter) Option { return func(o *Options) { o.Response = w } }

func WithBellProvider(p BellProvider) Option { return func(o *Options) { o.Bell = p } }

func WithTitleProvider(p TitleProvider) Option { return func(o *Options) { o.Title = p } }

func WithClipboardProvider(p ClipboardProvider) Option { return func(o *Options) { o.Clipboard = p } }

func WithAPCProvider(p APCProvider) Option { return func(o *Options) { o.APC = p } }

func WithPMProvider(p PMProvider) Option { return func(o *Options) { o.PM = p } }

func WithSOSProvider(p SOSProvider) Option { return func(o *Options) { o.SOS = p } }

func WithWorkingDirProvider(p WorkingDirProvider) Option {
	return func(o *Options) { o.WorkingDir = p }
}

func WithPromptMarkProvider(p PromptMarkProvider) Option {
	return func(o *Options) { o.PromptMark = p }
}

func WithTheme(t Theme) Option { return func(o *Options) { o.Theme = t } }

func defaultOptions() Options {
	return Options{
		Width: 80, Height: 24, ScrollbackLines: 10000,
		Logger: NopLogger{}, Bell: NoopBell{},
		Title: NoopTitle{}, Clipboard: NoopClipboard{}, APC: NoopAPC{},
		PM: NoopPM{}, SOS: NoopSOS{}, WorkingDir: NoopWorkingDir{},
		PromptMark: NoopPromptMark{}, Theme: DefaultTheme,
	}
}

// modes holds every SM/RM and DECSET/DECRST toggle the core tracks, per
// spec §4.4.1. Most of these have no effect on the Screen model itself —
// they are read by the (out-of-scope) input encoder and the Renderer.
type modes struct {
	autoWrap        bool
	insert          bool
	cursorKeysApp   bool
	keypadApp       bool
	bracketedPaste  bool
	mouseTracking   int // 0 = off, else 1000/1002/1003
	mouseSGR        bool
	lineFeedIsCRLF  bool // LNM, ANSI mode 20
	syncUpdate      bool // CSI ?2026h/l
	usingAltScreen  bool
	saveScreen47    bool // plain 47/1047 alt-screen save (no cursor save/restore)
}

func defaultModes() modes {
	return modes{autoWrap: true}
}

// VTE is the byte-stream parser described by spec §4.6: it owns the primary
// and alternate Screens and drives them from incoming PTY output, dispatching
// recognized escape sequences and leaving the rest to the pluggable
// providers.
type VTE struct {
	opts   Options
	logger Logger

	primary   *Screen
	alternate *Screen
	active    *Screen

	modes modes

	state fsmState
	csi   csiCollector

	stringBuf      []byte
	sawEscInString bool

	titleStack []string

	pendingInput []byte // response bytes queued when opts.Response is nil

	g0DECGraphics bool
	g1DECGraphics bool
	usingG1       bool

	activeLink *Hyperlink
	lastChar   Codepoint

	pendingUTF8 []byte // trailing bytes of a UTF-8 sequence truncated across a Process call
}

// New constructs a VTE ready to receive PTY output.
func New(opts ...Option) *VTE {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = NopLogger{}
	}
	v := &VTE{
		opts:      o,
		logger:    o.Logger,
		primary:   NewScreen(o.Width, o.Height, o.ScrollbackLines, o.Logger),
		alternate: NewScreen(o.Width, o.Height, 0, o.Logger),
		modes:     defaultModes(),
	}
	v.active = v.primary
	return v
}

// Screen returns the currently active screen (primary or alternate).
func (v *VTE) Screen() *Screen { return v.active }

// Primary returns the primary screen unconditionally (for scrollback access
// while the alternate screen is active, per spec §3).
func (v *VTE) Primary() *Screen { return v.primary }

// IsAlternateScreen reports whether the alternate screen is currently active.
func (v *VTE) IsAlternateScreen() bool { return v.modes.usingAltScreen }

// Resize propagates a terminal resize to both screens (spec §4.2.1).
func (v *VTE) Resize(w, h int) {
	v.primary.Resize(w, h, v.modes.autoWrap)
	v.alternate.Resize(w, h, v.modes.autoWrap)
	v.opts.Width, v.opts.Height = w, h
}

// Write implements io.Writer so a VTE can sit directly at the end of an
// io.Copy from a PTY master (spec §6).
func (v *VTE) Write(p []byte) (int, error) {
	v.Process(p)
	return len(p), nil
}

// DrainPendingInput returns and clears response bytes accumulated because no
// ResponseWriter was configured (spec §6).
func (v *VTE) DrainPendingInput() []byte {
	out := v.pendingInput
	v.pendingInput = nil
	return out
}

func (v *VTE) respond(b []byte) {
	if v.opts.Response != nil {
		if _, err := v.opts.Response.Write(b); err != nil {
			v.logger.Warnf("vtmux: response write: %v", err)
		}
		return
	}
	v.pendingInput = append(v.pendingInput, b...)
}

// Process feeds a chunk of PTY output through the byte-level FSM. A UTF-8
// sequence truncated at the end of one call is stashed and prepended to the
// next, so multi-byte codepoints split across reads from the PTY still
// decode correctly (spec §4.1, §5).
func (v *VTE) Process(data []byte) {
	if len(v.pendingUTF8) > 0 {
		data = append(v.pendingUTF8, data...)
		v.pendingUTF8 = nil
	}
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch v.state {
		case stateGround:
			i = v.stepGround(data, i)
		case stateEscape:
			v.stepEscape(b)
		case statePnd:
			v.stepPnd(b)
		case stateSpc:
			v.stepSpc(b)
		case statePct:
			v.stepPct(b)
		case stateCharsetG0:
			v.stepCharset(b, false)
		case stateCharsetG1:
			v.stepCharset(b, true)
		case stateCsi:
			v.stepCsi(b)
		case stateOsc, stateDcs, stateApc, statePm, stateSos:
			v.stepString(b)
		}
	}
}

func (v *VTE) toGround() {
	v.state = stateGround
}

func (v *VTE) stepGround(data []byte, i int) int {
	b := data[i]
	switch {
	case b == 0x1B:
		v.state = stateEscape
		return i
	case b == 0x07:
		v.opts.Bell.Ring()
		return i
	case b == 0x08:
		v.active.MoveCursorRelative(-1, 0)
		return i
	case b == 0x09:
		cur := v.active.Cursor()
		v.active.SetColumn(v.active.NextTabStop(cur.Column))
		return i
	case b == 0x0A, b == 0x0B, b == 0x0C:
		v.active.Newline(v.modes.lineFeedIsCRLF)
		return i
	case b == 0x0D:
		v.active.CarriageReturn()
		return i
	case b == 0x0E:
		v.usingG1 = true
		return i
	case b == 0x0F:
		v.usingG1 = false
		return i
	case b < 0x20 || b == 0x7F:
		return i // ignore other C0/DEL in ground state
	default:
		cp, consumed, ok := decodeUTF8(data[i:])
		if !ok {
			if consumed == 0 {
				// truncated multi-byte sequence at the end of this chunk;
				// stash the remainder and resume decoding from its start
				// once the rest arrives in a later Process call.
				v.pendingUTF8 = append([]byte(nil), data[i:]...)
				return len(data) - 1
			}
			cp = ReplacementCodepoint
		}
		if consumed == 0 {
			consumed = 1
		}
		v.insertCodepoint(cp, b)
		return i + consumed - 1
	}
}

func (v *VTE) insertCodepoint(cp Codepoint, raw byte) {
	if v.usingG1 && v.g1DECGraphics || !v.usingG1 && v.g0DECGraphics {
		if r, ok := decSpecialGraphics[raw]; ok && raw >= 0x60 && raw <= 0x7E {
			cp = Codepoint{Rune: r, Wide: false}
		}
	}
	if v.modes.insert {
		v.active.InsertBlanks(cp.Width())
	}
	v.active.Insert(Cell{CP: cp, Link: v.activeLink}, v.modes.autoWrap)
	v.lastChar = cp
}

// decSpecialGraphics maps the DEC Special Graphics (VT100 line-drawing)
// character set's printable range onto Unicode box-drawing glyphs.
var decSpecialGraphics = map[byte]rune{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌',
	'd': '␍', 'e': '␊', 'f': '°', 'g': '±',
	'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺',
	'p': '⎻', 'q': '─', 'r': '⎼', 's': '⎽',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π',
	'|': '≠', '}': '£', '~': '·',
}

func (v *VTE) stepEscape(b byte) {
	switch b {
	case '[':
		v.csi.reset()
		v.state = stateCsi
	case ']':
		v.stringBuf = v.stringBuf[:0]
		v.state = stateOsc
	case 'P':
		v.stringBuf = v.stringBuf[:0]
		v.state = stateDcs
	case '_':
		v.stringBuf = v.stringBuf[:0]
		v.state = stateApc
	case '^':
		v.stringBuf = v.stringBuf[:0]
		v.state = statePm
	case 'X':
		v.stringBuf = v.stringBuf[:0]
		v.state = stateSos
	case '#':
		v.state = statePnd
	case ' ':
		v.state = stateSpc
	case '%':
		v.state = statePct
	case '(':
		v.state = stateCharsetG0
	case ')':
		v.state = stateCharsetG1
	case 'D':
		v.active.Index()
		v.toGround()
	case 'M':
		v.active.ReverseIndex()
		v.toGround()
	case 'E':
		v.active.Newline(true)
		v.toGround()
	case 'H':
		v.active.SetTabStop(v.active.Cursor().Column)
		v.toGround()
	case '7':
		v.active.SaveCursor()
		v.toGround()
	case '8':
		v.active.RestoreCursor()
		v.toGround()
	case 'c':
		v.reset()
	case '=':
		v.modes.keypadApp = true
		v.toGround()
	case '>':
		v.modes.keypadApp = false
		v.toGround()
	default:
		v.logger.Warnf("vtmux: unhandled ESC %q", b)
		v.toGround()
	}
}

func (v *VTE) stepPnd(b byte) {
	if b == '8' {
		v.active.FillWithE()
	}
	v.toGround()
}

func (v *VTE) stepSpc(byte) {
	v.toGround() // S7C1T/S8C1T: no effect, we always emit 7-bit controls.
}

func (v *VTE) stepPct(byte) {
	v.toGround() // UTF-8/default charset selection: input is always UTF-8.
}

func (v *VTE) stepCharset(b byte, g1 bool) {
	dec := b == '0'
	if g1 {
		v.g1DECGraphics = dec
	} else {
		v.g0DECGraphics = dec
	}
	v.toGround()
}

// reset implements RIS (ESC c): return the VTE to its power-on state.
func (v *VTE) reset() {
	w, h := v.opts.Width, v.opts.Height
	v.primary = NewScreen(w, h, v.opts.ScrollbackLines, v.logger)
	v.alternate = NewScreen(w, h, 0, v.logger)
	v.active = v.primary
	v.modes = defaultModes()
	v.titleStack = nil
	v.usingG1 = false
	v.g0DECGraphics = false
	v.g1DECGraphics = false
	v.activeLink = nil
	v.toGround()
}

func (v *VTE) stepCsi(b byte) {
	switch v.csi.feed(b) {
	case csiAccept:
		v.dispatchCSI(&v.csi)
		v.toGround()
	case csiReject:
		v.logger.Warnf("vtmux: reject CSI at byte %q", b)
		v.toGround()
	}
}

func (v *VTE) stepString(b byte) {
	if v.sawEscInString {
		v.sawEscInString = false
		if b == '\\' {
			v.finishString()
			return
		}
		// Not a real ST: the ESC starts a fresh sequence of its own. Real
		// terminals would abort the string and reprocess b from Escape; we
		// approximate by treating the string as finished and replaying b
		// through the Escape handler.
		v.finishString()
		v.state = stateEscape
		v.stepEscape(b)
		return
	}
	switch b {
	case 0x1B:
		v.sawEscInString = true
		return
	case 0x07:
		v.finishString()
		return
	}
	if len(v.stringBuf) >= maxStringLen {
		v.logger.Warnf("vtmux: string command exceeded %d bytes, truncating", maxStringLen)
		v.finishString()
		return
	}
	v.stringBuf = append(v.stringBuf, b)
}

func (v *VTE) finishString() {
	kind := v.state
	payload := v.stringBuf
	v.stringBuf = nil
	v.sawEscInString = false
	v.toGround()

	switch kind {
	case stateOsc:
		v.handleOSC(payload)
	case stateDcs:
		v.handleDCS(payload)
	case stateApc:
		v.opts.APC.Receive(payload)
	case statePm:
		v.opts.PM.Receive(payload)
	case stateSos:
		v.opts.SOS.Receive(payload)
	}
}
