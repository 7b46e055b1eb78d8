// File: netio/listener.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TCPListener mirrors original_source's TcpListener/make_tcp_listener: a
// non-blocking, edge-triggered passive-open socket that accept4()s in a
// loop on every read-ready event until EAGAIN, handing each connection to
// an AcceptFunc.

package netio

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/sphinx-reactor/reactor"
)

// AcceptFunc receives the raw fd of a freshly accepted, non-blocking
// connection. The callback owns wrapping it (NewTCPSocket) and installing a
// RecvFunc before registering it with a reactor.
type AcceptFunc func(fd int)

// TCPListener is a reactor.Handle wrapping a passive-open TCP socket.
type TCPListener struct {
	socket
	acceptFn AcceptFunc
}

// MakeTCPListener resolves iface, binds port with SO_REUSEADDR|SO_REUSEPORT,
// and starts listening with the given backlog (§ original lookup_addresses
// + make_tcp_listener). acceptFn is invoked once per accepted connection
// from OnReadEvent, on the owning reactor's goroutine.
func MakeTCPListener(iface string, port, backlog int, acceptFn AcceptFunc) (*TCPListener, error) {
	addr, err := resolvePassive(iface)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, reactor.NewSystemCallFailed("socket", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, reactor.NewSystemCallFailed("setsockopt(SO_REUSEADDR)", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		unix.Close(fd)
		return nil, reactor.NewSystemCallFailed("setsockopt(SO_REUSEPORT)", err)
	}
	if err := unix.Bind(fd, newInetAddr(addr, port)); err != nil {
		unix.Close(fd)
		return nil, reactor.NewBindFailed(iface)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, reactor.NewBindFailed(iface)
	}

	return &TCPListener{socket: socket{fd: fd}, acceptFn: acceptFn}, nil
}

// OnReadEvent implements reactor.Handle: it drains every pending connection
// off the backlog, since edge-triggered readiness only fires once per batch
// of arrivals.
func (l *TCPListener) OnReadEvent() {
	for {
		connFd, _, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
				return
			}
			return
		}
		l.acceptFn(connFd)
	}
}
