package vtmux

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// handleOSC dispatches a completed OSC payload (the bytes between "ESC ]"
// and the ST/BEL terminator) per spec §4.5. The payload is "Ps;Pt[;Pt...]":
// a leading numeric code, then semicolon-separated arguments.
func (v *VTE) handleOSC(payload []byte) {
	s := string(payload)
	sep := strings.IndexByte(s, ';')
	codeStr := s
	rest := ""
	if sep >= 0 {
		codeStr = s[:sep]
		rest = s[sep+1:]
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		v.logger.Warnf("vtmux: malformed OSC %q", s)
		return
	}

	switch code {
	case 0:
		v.opts.Title.SetTitle(rest)
		v.opts.Title.SetIconName(rest)
	case 1:
		v.opts.Title.SetIconName(rest)
	case 2:
		v.opts.Title.SetTitle(rest)
	case 4:
		v.handleOSCPaletteSet(rest)
	case 7:
		v.opts.WorkingDir.SetWorkingDirectory(rest)
	case 8:
		v.handleOSCHyperlink(rest)
	case 10:
		v.handleOSCDynamicColor(rest, &v.opts.Theme.Foreground)
	case 11:
		v.handleOSCDynamicColor(rest, &v.opts.Theme.Background)
	case 12:
		v.handleOSCDynamicColor(rest, &v.opts.Theme.CursorBackground)
	case 52:
		v.handleOSCClipboard(rest)
	case 104:
		// reset color: leave the theme in place (spec doesn't require a
		// stored "original" theme to roll back to).
	case 133:
		v.handleOSCPromptMark(rest)
	case 22, 23:
		// title stack, more commonly reached via XTWINOPS; handled there.
	default:
		v.logger.Debugf("vtmux: unrecognized OSC %d", code)
	}
}

func (v *VTE) handleOSCPaletteSet(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 {
		return
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil || idx < 0 || idx > 15 {
		return
	}
	v.opts.Theme.Palette[idx] = parseHexColor(parts[1])
}

func (v *VTE) handleOSCDynamicColor(rest string, dst *RGBColor) {
	if rest == "?" {
		// Query form: respond with the current color in "rgb:rr/rr/gg/gg/bb/bb"
		// form. Left unimplemented pending a concrete consumer (spec §9).
		return
	}
	*dst = parseHexColor(rest)
}

// handleOSCHyperlink implements OSC 8 (spec §4.5): "params;uri". An empty
// uri closes the currently active link. params is "key1=val1:key2=val2",
// of which only "id=" is meaningful here.
func (v *VTE) handleOSCHyperlink(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 {
		v.activeLink = nil
		return
	}
	params, uri := parts[0], parts[1]
	if uri == "" {
		v.activeLink = nil
		return
	}
	id := ""
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			id = strings.TrimPrefix(kv, "id=")
		}
	}
	v.activeLink = &Hyperlink{ID: id, URI: uri}
}

func (v *VTE) handleOSCClipboard(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 || len(parts[0]) == 0 {
		return
	}
	selection := parts[0][0]
	if parts[1] == "?" {
		data := v.opts.Clipboard.Read(selection)
		encoded := base64.StdEncoding.EncodeToString([]byte(data))
		v.respond([]byte("\x1b]52;" + string(selection) + ";" + encoded + "\x07"))
		return
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		v.logger.Warnf("vtmux: malformed OSC 52 payload")
		return
	}
	v.opts.Clipboard.Write(selection, data)
}

// handleOSCPromptMark implements the supplemented shell-integration feature
// (OSC 133 A/B/C/D; spec §9's original_source carryover).
func (v *VTE) handleOSCPromptMark(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) == 0 || len(parts[0]) == 0 {
		return
	}
	switch parts[0][0] {
	case 'A':
		v.opts.PromptMark.PromptStart()
	case 'B':
		v.opts.PromptMark.CommandStart()
	case 'C':
		v.opts.PromptMark.CommandExecuted()
	case 'D':
		code := 0
		has := false
		if len(parts) > 1 {
			if n, err := strconv.Atoi(strings.SplitN(parts[1], ";", 2)[0]); err == nil {
				code, has = n, true
			}
		}
		v.opts.PromptMark.CommandFinished(code, has)
	}
}
