package synth

import (
	"fmt"
	"net"
)

// ----- Display ----- //

// Display is the companion display process, reached over UDP. It accepts
// named text lines, an indicator LED color and filled/outlined boxes, all
// in the same framing as the control protocol. Sending is best-effort.
type Display struct {
	conn net.Conn
}

func NewDisplay(host string, port int) (*Display, error) {
	conn, err := net.Dial("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, err
	}
	return &Display{conn: conn}, nil
}

func (d *Display) SetLine(n int, text string) {
	d.send(encodeString(fmt.Sprintf("/oled/line/%d", n), text))
}

func (d *Display) SetLED(color int32) {
	d.send(encodeInt32s("/led", color))
}

func (d *Display) DrawBox(x1, y1, x2, y2, fill int32) {
	d.send(encodeInt32s("/oled/gBox", x1, y1, x2, y2, fill))
}

func (d *Display) send(buf []byte) {
	if d == nil || d.conn == nil {
		return
	}
	d.conn.Write(buf)
}

func (d *Display) Close() error {
	if d == nil || d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// ----- Status View ----- //

// statusView formats the periodic status push and suppresses lines that
// have not changed since the last push.
type statusView struct {
	display   *Display
	prevLines [5]string
	prevVu    int
}

func newStatusView(display *Display) *statusView {
	return &statusView{display: display, prevVu: -1}
}

func (s *statusView) setLine(n int, text string) {
	if text == s.prevLines[n-1] {
		return
	}
	s.display.SetLine(n, text)
	s.prevLines[n-1] = text
}

func (s *statusView) update(glideMs, cutoffHz, reso, releaseMs float64, v *voice, peak float64) {
	s.setLine(1, fmt.Sprintf("Porto: %dms", int(glideMs)))

	if cutoffHz >= 1000 {
		s.setLine(2, fmt.Sprintf("Cutoff: %.1fkHz", cutoffHz/1000))
	} else {
		s.setLine(2, fmt.Sprintf("Cutoff: %dHz", int(cutoffHz)))
	}

	s.setLine(3, fmt.Sprintf("Reso: %.2f", reso))

	if releaseMs >= 1000 {
		s.setLine(4, fmt.Sprintf("Release: %.1fs", releaseMs/1000))
	} else {
		s.setLine(4, fmt.Sprintf("Release: %dms", int(releaseMs)))
	}

	loIdx, hiIdx, frac := v.morphIndices()
	if frac > 0.001 {
		s.setLine(5, waveNames[loIdx]+" > "+waveNames[hiIdx])
	} else {
		s.setLine(5, waveNames[loIdx])
	}

	// VU bar at the bottom of the 128x64 display
	vuWidth := int(peak * 122)
	if vuWidth > 122 {
		vuWidth = 122
	}
	if vuWidth != s.prevVu {
		s.display.DrawBox(3, 55, 125, 62, 0)
		if vuWidth > 0 {
			s.display.DrawBox(3, 55, int32(3+vuWidth), 62, 1)
		}
		s.prevVu = vuWidth
	}
}
