package netio

import (
	"net"
	"strconv"
	"testing"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/sphinx-reactor/reactor"
)

func localUDPPort(fd int) (int, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return 0, err
	}
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return a.Port, nil
	default:
		return 0, nil
	}
}

// S2: a UDP echo round-trip driven by a single reactor's Run loop.
func TestUDPEchoRoundTrip(t *testing.T) {
	r, err := reactor.MakeReactor("auto", 5, 8, func(unsafe.Pointer) {})
	if err != nil {
		t.Fatalf("construct reactor: %v", err)
	}
	defer r.Close()

	var srv *UDPSocket
	srv, err = MakeUDPSocket("127.0.0.1", 0, func(s *UDPSocket, data []byte, from SockAddr) {
		if len(data) == 0 {
			return
		}
		if err := s.Send(data, from); err != nil {
			t.Errorf("echo send: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("MakeUDPSocket: %v", err)
	}
	defer srv.Close()

	if err := r.Register(srv); err != nil {
		t.Fatalf("register udp socket: %v", err)
	}

	port, err := localUDPPort(int(srv.Fd()))
	if err != nil {
		t.Fatalf("localUDPPort: %v", err)
	}

	stop := make(chan struct{})
	go r.Run(stop)
	defer close(stop)

	conn, err := net.Dial("udp", "127.0.0.1:"+strconv.Itoa(port))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	payload := []byte("ping")
	if _, err := conn.Write(payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read echo: %v", err)
	}
	if string(buf[:n]) != string(payload) {
		t.Fatalf("echo mismatch: got %q want %q", buf[:n], payload)
	}
}
