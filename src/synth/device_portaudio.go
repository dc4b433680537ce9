package synth

import (
	"github.com/gordonklaus/portaudio"
)

// ----- PortAudio Backend ----- //

// paDevice reports buffer underflow distinctly, so the loop's single
// recovery attempt actually gets exercised on real hardware.
type paDevice struct {
	stream *portaudio.Stream
	buf    []int16
}

func NewPortaudioDevice() (Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	d := &paDevice{buf: make([]int16, blockFrames*channelNum)}
	stream, err := portaudio.OpenDefaultStream(0, channelNum, sampleRate, blockFrames, &d.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	d.stream = stream
	return d, nil
}

func (d *paDevice) Start() error {
	return d.stream.Start()
}

func (d *paDevice) WriteBlock(block []int16) error {
	copy(d.buf, block)
	err := d.stream.Write()
	if err == portaudio.OutputUnderflowed {
		return errUnderrun
	}
	return err
}

func (d *paDevice) Recover() error {
	d.stream.Abort()
	return d.stream.Start()
}

func (d *paDevice) Close() error {
	if err := d.stream.Close(); err != nil {
		portaudio.Terminate()
		return err
	}
	return portaudio.Terminate()
}
