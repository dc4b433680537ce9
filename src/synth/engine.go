package synth

import (
	"context"
	"log"
	"math"
	"net"
	"sync/atomic"
	"time"
)

// pause before aborting on a fatal output error so the last display line
// stays readable
var fatalPause = 3 * time.Second

// ----- Control Socket ----- //

// BindControlSocket binds the UDP control listener, retrying in case the
// port is still held by a previous run.
func BindControlSocket(display *Display, port int) (*net.UDPConn, error) {
	var conn *net.UDPConn
	err := Retry(display, "bind", func() error {
		var err error
		conn, err = net.ListenUDP("udp", &net.UDPAddr{Port: port})
		return err
	})
	return conn, err
}

// ----- Engine ----- //

// Engine owns the single voice and runs the block loop: drain control
// input, smooth parameters, render, write to the device, report status.
// Everything is touched from the loop goroutine only; the termination flag
// is the one value written from outside it.
type Engine struct {
	conn    *net.UDPConn
	ctlCh   chan []byte
	dev     Device
	display *Display
	status  *statusView
	midiCh  <-chan []byte

	voice  *voice
	pwmLfo *lfo

	cutoff smoothed
	reso   smoothed
	volume smoothed

	dispGlideMs   float64
	dispCutoffHz  float64
	dispReso      float64
	dispReleaseMs float64

	peak          float64
	statusCounter int

	quitting uint32 // read/written with sync/atomic
}

func NewEngine(conn *net.UDPConn, dev Device, display *Display, midiCh <-chan []byte) *Engine {
	e := &Engine{
		conn:    conn,
		ctlCh:   make(chan []byte, 64),
		dev:     dev,
		display: display,
		status:  newStatusView(display),
		midiCh:  midiCh,
		voice:   newVoice(),
		pwmLfo:  newLfo(),
	}
	if conn != nil {
		go e.readControl()
	}
	e.cutoff.init(8000)
	e.reso.init(0)
	e.volume.init(0.5)
	e.dispCutoffHz = 8000
	e.dispReleaseMs = defaultReleaseMs
	e.statusCounter = statusInterval // push status on the first block
	e.voice.filt.setParams(e.cutoff.value, e.reso.value)
	e.voice.porta.setTime(0)
	return e
}

// Quit asks the loop to stop after the block it is currently rendering.
// Safe to call from any goroutine.
func (e *Engine) Quit() {
	atomic.StoreUint32(&e.quitting, 1)
}

func (e *Engine) quitRequested() bool {
	return atomic.LoadUint32(&e.quitting) != 0
}

// Run renders blocks until Quit is called or the context is done. A write
// fault gets one recovery attempt; anything beyond that aborts the run
// with ErrOutputFatal.
func (e *Engine) Run(ctx context.Context) error {
	block := make([]int16, blockFrames*channelNum)
	for !e.quitRequested() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		e.drainControl()
		e.drainMidi()
		e.renderBlock(block)
		if err := e.dev.WriteBlock(block); err != nil {
			if err == errUnderrun {
				err = e.dev.Recover()
			}
			if err != nil {
				log.Printf("output write error: %v", err)
				e.display.SetLine(2, "audio write ERR")
				time.Sleep(fatalPause)
				return ErrOutputFatal
			}
		}
		e.statusTick()
	}
	return nil
}

// readControl blocks on the socket and queues each datagram for the render
// loop. It exits when the socket is closed.
func (e *Engine) readControl() {
	buf := make([]byte, 512)
	for {
		n, _, err := e.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case e.ctlCh <- data:
		default: // drop rather than stall on a flooded socket
		}
	}
}

// drainControl handles every datagram queued so far and returns without
// blocking, so a burst of messages is absorbed whole, in arrival order,
// before the next block renders.
func (e *Engine) drainControl() {
	for {
		select {
		case data := <-e.ctlCh:
			if msg, ok := decodeControlMessage(data); ok {
				e.handle(msg)
			}
		default:
			return
		}
	}
}

func (e *Engine) drainMidi() {
	for {
		select {
		case data, ok := <-e.midiCh:
			if !ok {
				e.midiCh = nil
				return
			}
			e.handleMidi(data)
		default:
			return
		}
	}
}

func (e *Engine) handle(m controlMessage) {
	switch m.addr {
	case "/key":
		if len(m.args) < 2 {
			return
		}
		index, vel := m.args[0], m.args[1]
		if index > 0 && index < 25 { // keys 1-24
			note := int(index) + 59
			if vel > 0 {
				e.voice.noteOn(note)
			} else {
				e.voice.noteOff(note)
			}
		} else if index == 0 && vel > 0 { // AUX button
			e.advanceWaveform()
		}
	case "/knobs":
		if len(m.args) < 5 { // a 6th knob is ignored if present
			return
		}
		e.applyKnobs(m.args)
	case "/aux":
		if len(m.args) < 1 {
			return
		}
		if m.args[0] > 0 {
			e.advanceWaveform()
		}
	case "/quit":
		e.Quit()
	}
}

func (e *Engine) handleMidi(data []byte) {
	if len(data) < 3 {
		return
	}
	switch {
	case data[0]>>4 == 8, data[0]>>4 == 9 && data[2] == 0:
		e.voice.noteOff(int(data[1]))
	case data[0]>>4 == 9:
		e.voice.noteOn(int(data[1]))
	}
}

func (e *Engine) advanceWaveform() {
	e.voice.nextWaveform()
	e.display.SetLED(ledColors[e.voice.targetWaveform])
}

func (e *Engine) applyKnobs(args []int32) {
	// K1: glide 0-500ms linear. The same value sets the PWM LFO period
	// and, through the portamento coefficient, the morph rate.
	glideMs := float64(args[0]) * (500.0 / 1023.0)
	e.voice.porta.setTime(glideMs)
	e.pwmLfo.setPeriodMs(glideMs)
	e.dispGlideMs = glideMs

	// K2: cutoff 20Hz-18kHz exponential, smoothed in the render loop
	e.cutoff.target = 20 * math.Pow(900, float64(args[1])/1023.0)
	e.dispCutoffHz = e.cutoff.target

	// K3: resonance 0-0.95
	e.reso.target = float64(args[2]) * (0.95 / 1023.0)
	e.dispReso = e.reso.target

	// K4: release 10-2000ms exponential
	releaseMs := 10 * math.Pow(200, float64(args[3])/1023.0)
	e.voice.env.setRelease(releaseMs)
	e.dispReleaseMs = releaseMs

	// K5: master volume 0-1
	e.volume.target = float64(args[4]) / 1023.0
}

func (e *Engine) renderBlock(block []int16) {
	for i := 0; i < blockFrames; i++ {
		cutoff := e.cutoff.step()
		reso := e.reso.step()
		vol := e.volume.step()

		e.voice.osc.pulseWidth = 0.5 + 0.4*e.pwmLfo.tick()
		e.voice.filt.setParams(cutoff, reso)

		s := e.voice.tick() * vol
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		if a := math.Abs(s); a > e.peak {
			e.peak = a
		}
		v := int16(s * 32767)
		block[2*i] = v
		block[2*i+1] = v
	}
}

func (e *Engine) statusTick() {
	e.statusCounter += blockFrames
	if e.statusCounter < statusInterval {
		return
	}
	e.statusCounter -= statusInterval
	e.status.update(e.dispGlideMs, e.dispCutoffHz, e.dispReso, e.dispReleaseMs, e.voice, e.peak)
	e.peak *= 0.95
}
