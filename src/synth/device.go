package synth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/oto"
)

// ----- Output Device ----- //

// errUnderrun marks a recoverable output fault. The render loop gives the
// device exactly one Recover attempt before treating the run as lost.
var errUnderrun = errors.New("output underrun")

// ErrOutputFatal is returned by Engine.Run when the output device failed
// and could not be recovered.
var ErrOutputFatal = errors.New("unrecoverable output error")

// Device accepts fixed-size interleaved stereo blocks of 16-bit samples.
type Device interface {
	Start() error
	WriteBlock(block []int16) error
	Recover() error
	Close() error
}

// ----- Setup Retry ----- //

const setupAttempts = 10

var setupRetryDelay = 500 * time.Millisecond

// Retry runs f up to 10 times with a fixed delay, reporting each retry to
// the display. The last error is returned once the attempts are exhausted.
func Retry(display *Display, what string, f func() error) error {
	var err error
	for attempt := 1; attempt <= setupAttempts; attempt++ {
		err = f()
		if err == nil {
			return nil
		}
		log.Printf("%s attempt %d failed: %v", what, attempt, err)
		display.SetLine(2, fmt.Sprintf("%s retry %d/%d", what, attempt, setupAttempts))
		time.Sleep(setupRetryDelay)
	}
	return err
}

// ----- Oto Backend ----- //

type otoDevice struct {
	ctx    *oto.Context
	player *oto.Player
	buf    []byte
}

func NewOtoDevice() (Device, error) {
	ctx, err := oto.NewContext(sampleRate, channelNum, 2, blockFrames*channelNum*2*4)
	if err != nil {
		return nil, err
	}
	return &otoDevice{
		ctx:    ctx,
		player: ctx.NewPlayer(),
		buf:    make([]byte, blockFrames*channelNum*2),
	}, nil
}

func (d *otoDevice) Start() error {
	return nil
}

func (d *otoDevice) WriteBlock(block []int16) error {
	for i, v := range block {
		d.buf[2*i] = byte(v)
		d.buf[2*i+1] = byte(v >> 8)
	}
	_, err := d.player.Write(d.buf)
	return err
}

// oto buffers internally and blocks the writer instead of underrunning.
func (d *otoDevice) Recover() error {
	return nil
}

func (d *otoDevice) Close() error {
	if err := d.player.Close(); err != nil {
		log.Printf("error while closing player: %v", err)
	}
	return d.ctx.Close()
}
