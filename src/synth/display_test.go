package synth

import (
	"errors"
	"net"
	"testing"
	"time"
)

func newTestDisplay(t *testing.T) (*Display, *net.UDPConn) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	display, err := NewDisplay("127.0.0.1", conn.LocalAddr().(*net.UDPAddr).Port)
	if err != nil {
		conn.Close()
		t.Fatalf("dial: %v", err)
	}
	return display, conn
}

func collectDatagrams(conn *net.UDPConn) int {
	count := 0
	buf := make([]byte, 512)
	for {
		conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		if _, _, err := conn.ReadFromUDP(buf); err != nil {
			return count
		}
		count++
	}
}

func TestStatusViewSuppressesUnchangedLines(t *testing.T) {
	display, conn := newTestDisplay(t)
	defer display.Close()
	defer conn.Close()

	sv := newStatusView(display)
	v := newVoice()

	sv.update(100, 8000, 0.5, 200, v, 0.5)
	// five text lines plus VU clear and fill
	if got := collectDatagrams(conn); got != 7 {
		t.Errorf("expected 7 datagrams on first update, got %d", got)
	}

	sv.update(100, 8000, 0.5, 200, v, 0.5)
	if got := collectDatagrams(conn); got != 0 {
		t.Errorf("unchanged status should send nothing, got %d datagrams", got)
	}

	sv.update(100, 12000, 0.5, 200, v, 0.5)
	if got := collectDatagrams(conn); got != 1 {
		t.Errorf("one changed line should send one datagram, got %d", got)
	}
}

func TestStatusViewNilDisplayIsSafe(t *testing.T) {
	sv := newStatusView(nil)
	sv.update(0, 8000, 0, 200, newVoice(), 0)
}

func TestRetryGivesUpAfterTenAttempts(t *testing.T) {
	restore := setupRetryDelay
	setupRetryDelay = 0
	defer func() { setupRetryDelay = restore }()

	attempts := 0
	wantErr := errors.New("nope")
	err := Retry(nil, "test", func() error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error back, got %v", err)
	}
	if attempts != setupAttempts {
		t.Errorf("expected %d attempts, got %d", setupAttempts, attempts)
	}
}

func TestRetryStopsOnSuccess(t *testing.T) {
	restore := setupRetryDelay
	setupRetryDelay = 0
	defer func() { setupRetryDelay = restore }()

	attempts := 0
	err := Retry(nil, "test", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}
