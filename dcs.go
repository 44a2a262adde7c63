package vtmux

import (
	"fmt"
	"strings"
)

// handleDCS dispatches a completed DCS payload per spec §4.5. The only DCS
// form recognized is DECRQSS ("ESC P $ q <setting> ESC \"), which queries
// the current value of a subset of settings and answers with a DECRPSS
// reply.
func (v *VTE) handleDCS(payload []byte) {
	s := string(payload)
	if !strings.HasPrefix(s, "$q") {
		v.logger.Debugf("vtmux: unrecognized DCS %q", s)
		return
	}
	setting := strings.TrimPrefix(s, "$q")
	reply, ok := v.decrqss(setting)
	valid := 0
	if ok {
		valid = 1
	}
	v.respond([]byte(fmt.Sprintf("\x1bP%d$r%s\x1b\\", valid, reply)))
}

// decrqss answers a DECRQSS query for the settings the renderer and dispatch
// table actually track; anything else is reported invalid.
func (v *VTE) decrqss(setting string) (reply string, ok bool) {
	switch setting {
	case "r": // DECSTBM
		top, bottom := v.active.Margins()
		return fmt.Sprintf("%d;%dr", top+1, bottom+1), true
	case "m": // SGR
		return sgrEncode(v.active.Brush()) + "m", true
	case "q": // DECSCUSR
		cur := v.active.Cursor()
		return fmt.Sprintf("%d q", int(cur.Style)+1), true
	default:
		return "", false
	}
}
