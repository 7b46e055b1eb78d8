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

func localTCPPort(fd int) (int, error) {
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

// S1: a TCP echo round-trip driven by a single reactor's Run loop on the
// server side; the client side uses the standard net package, since only
// the server's TCPSocket/TCPListener/Reactor wiring is under test here.
func TestTCPEchoRoundTrip(t *testing.T) {
	r, err := reactor.MakeReactor("auto", 2, 3, func(unsafe.Pointer) {})
	if err != nil {
		t.Fatalf("construct reactor: %v", err)
	}
	defer r.Close()

	ln, err := MakeTCPListener("127.0.0.1", 0, 16, func(fd int) {
		conn := NewTCPSocket(fd, nil)
		conn.SetRecvFunc(func(c *TCPSocket, data []byte) {
			if len(data) == 0 {
				return
			}
			if err := c.Send(data); err != nil {
				t.Errorf("echo send: %v", err)
			}
		})
		if err := r.Register(conn); err != nil {
			t.Errorf("register accepted conn: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("MakeTCPListener: %v", err)
	}
	defer ln.Close()

	if err := r.Register(ln); err != nil {
		t.Fatalf("register listener: %v", err)
	}

	port, err := localTCPPort(int(ln.Fd()))
	if err != nil {
		t.Fatalf("localTCPPort: %v", err)
	}

	stop := make(chan struct{})
	go r.Run(stop)
	defer close(stop)

	conn, err := net.DialTimeout("tcp", "127.0.0.1:"+strconv.Itoa(port), time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	payload := []byte("hello reactor")
	if _, err := conn.Write(payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	got := make([]byte, len(payload))
	if _, err := readFull(conn, got); err != nil {
		t.Fatalf("read echo: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("echo mismatch: got %q want %q", got, payload)
	}
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

