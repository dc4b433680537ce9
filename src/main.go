package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/organelle/monosynth/src/synth"
	"golang.org/x/sync/errgroup"
)

// Exit codes by failure class.
const (
	exitSocketFailed       = 3
	exitDeviceOpenFailed   = 4
	exitDeviceConfigFailed = 5
	exitOutputFailed       = 6
)

var (
	controlPort = flag.Int("control-port", 4000, "UDP port for control messages")
	displayHost = flag.String("display-host", "127.0.0.1", "host of the display process")
	displayPort = flag.Int("display-port", 4001, "UDP port of the display process")
	backendName = flag.String("backend", "oto", "audio backend: oto or portaudio")
	midiIn      = flag.Bool("midi", false, "also take note input from the first MIDI IN port")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	display, err := synth.NewDisplay(*displayHost, *displayPort)
	if err != nil {
		// the display is best-effort; keep going without it
		log.Printf("display socket: %v", err)
	}
	defer display.Close()
	display.SetLine(2, "Init sockets...")

	conn, err := synth.BindControlSocket(display, *controlPort)
	if err != nil {
		fail(display, "bind FAIL", exitSocketFailed, err)
	}
	defer conn.Close()
	display.SetLine(2, "Sockets OK")

	var dev synth.Device
	err = synth.Retry(display, "audio", func() error {
		var err error
		dev, err = openDevice(*backendName)
		return err
	})
	if err != nil {
		fail(display, "audio open FAIL", exitDeviceOpenFailed, err)
	}
	defer dev.Close()
	if err := dev.Start(); err != nil {
		fail(display, "audio config FAIL", exitDeviceConfigFailed, err)
	}
	display.SetLine(2, "Audio ready")
	display.SetLED(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var midiCh <-chan []byte
	if *midiIn {
		midiCh = synth.ListenToMidiIn(ctx)
	}
	engine := synth.NewEngine(conn, dev, display, midiCh)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return engine.Run(ctx)
	})
	g.Go(func() error {
		select {
		case sig := <-signalCh:
			log.Printf("caught signal %s: shutting down...", sig)
			engine.Quit()
		case <-ctx.Done():
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, synth.ErrOutputFatal) {
			os.Exit(exitOutputFailed)
		}
		log.Fatalf("error: %v", err)
	}
}

func openDevice(name string) (synth.Device, error) {
	switch name {
	case "portaudio":
		return synth.NewPortaudioDevice()
	default:
		return synth.NewOtoDevice()
	}
}

func fail(display *synth.Display, line string, code int, err error) {
	log.Printf("%s: %v", line, err)
	display.SetLine(2, line)
	// leave the last diagnostic on screen before exiting
	time.Sleep(5 * time.Second)
	os.Exit(code)
}
