package synth

import (
	"context"
	"log"

	"gitlab.com/gomidi/rtmididrv"
)

// ListenToMidiIn opens the first MIDI input port and forwards raw messages
// on the returned channel until ctx is done. Note events join the same
// per-block control drain as the UDP messages, so a hardware keyboard gets
// the ordering guarantees of the control socket.
func ListenToMidiIn(ctx context.Context) <-chan []byte {
	ch := make(chan []byte, 1024)
	go func() {
		drv, err := rtmididrv.New()
		if err != nil {
			log.Printf("failed to initialize MIDI driver: %v\n", err)
			return
		}
		defer func() {
			if err := drv.Close(); err != nil {
				log.Printf("failed to close MIDI driver: %v\n", err)
			}
		}()
		ins, err := drv.Ins()
		if err != nil {
			log.Printf("failed to get MIDI IN: %v\n", err)
			return
		}
		if len(ins) == 0 {
			log.Println("no MIDI IN ports")
			return
		}
		in := ins[0]
		if err := in.Open(); err != nil {
			log.Printf("failed to open MIDI IN: %v\n", err)
			return
		}
		log.Println("listening on " + in.String())
		defer func() {
			if err := in.Close(); err != nil {
				log.Printf("failed to close MIDI IN: %v\n", err)
			}
		}()
		if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
			select {
			case ch <- data:
			default: // drop rather than stall the driver callback
			}
		}); err != nil {
			log.Printf("failed to set MIDI listener: %v\n", err)
			return
		}
		defer func() {
			if err := in.StopListening(); err != nil {
				log.Printf("failed to stop listening: %v\n", err)
			}
		}()
		<-ctx.Done()
	}()
	return ch
}
