// File: netio/tcpsocket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TCPSocket mirrors original_source's TcpSocket: send/recv with
// MSG_NOSIGNAL|MSG_DONTWAIT, ECONNRESET/EPIPE swallowed as an ordinary peer
// close rather than propagated as errors, and a fixed 256KiB receive
// buffer drawn from pool.DefaultPool per read event.

package netio

import (
	"log"

	"golang.org/x/sys/unix"

	"github.com/momentics/sphinx-reactor/pool"
	"github.com/momentics/sphinx-reactor/reactor"
)

// RecvFunc receives the bytes read off a TCPSocket for one read event.
// A nil (zero-length) slice signals the peer closed the connection
// (recv() returned 0, or ECONNRESET).
type RecvFunc func(*TCPSocket, []byte)

// TCPSocket is a non-blocking, connected TCP socket.
type TCPSocket struct {
	socket
	recvFn RecvFunc
}

// NewTCPSocket wraps an already-connected, non-blocking fd (as produced by
// TCPListener.OnReadEvent) with the given receive callback.
func NewTCPSocket(fd int, recvFn RecvFunc) *TCPSocket {
	return &TCPSocket{socket: socket{fd: fd}, recvFn: recvFn}
}

// SetRecvFunc installs the callback OnReadEvent invokes for each chunk
// read. Listener-accepted sockets have none until the caller sets one.
func (s *TCPSocket) SetRecvFunc(fn RecvFunc) { s.recvFn = fn }

// SetTCPNoDelay toggles Nagle's algorithm.
func (s *TCPSocket) SetTCPNoDelay(nodelay bool) error {
	v := 0
	if nodelay {
		v = 1
	}
	if err := unix.SetsockoptInt(s.fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, v); err != nil {
		return reactor.NewSystemCallFailed("setsockopt(TCP_NODELAY)", err)
	}
	return nil
}

// Send writes msg in full or reports a partial-transfer/system-call error.
// ECONNRESET and EPIPE are swallowed: a peer that has already gone away is
// not this caller's problem to handle as an error.
func (s *TCPSocket) Send(msg []byte) error {
	n, err := unix.SendmsgN(s.fd, msg, nil, nil, unix.MSG_NOSIGNAL|unix.MSG_DONTWAIT)
	if err != nil {
		if err == unix.ECONNRESET || err == unix.EPIPE {
			return nil
		}
		return reactor.NewSystemCallFailed("send", err)
	}
	if n != len(msg) {
		return reactor.NewPartialTransfer("send")
	}
	return nil
}

// OnReadEvent implements reactor.Handle: it keeps reading until EAGAIN, a
// peer close, or a read shorter than the buffer (taken as the socket being
// drained), matching the edge-triggered contract — a single notification
// can cover several inbound segments.
func (s *TCPSocket) OnReadEvent() {
	buf := pool.DefaultPool(-1).Get(recvBufSize, -1)
	defer buf.Release()

	for {
		n, _, err := unix.Recvfrom(s.fd, buf.Bytes(), unix.MSG_DONTWAIT)
		if err != nil {
			if err == unix.ECONNRESET {
				s.recvFn(s, nil)
				return
			}
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
				return
			}
			log.Printf("netio: tcp recv fd=%d: %v", s.fd, reactor.NewSystemCallFailed("recv", err))
			return
		}
		if n == 0 {
			s.recvFn(s, nil)
			return
		}
		s.recvFn(s, buf.Bytes()[:n])
		if n < recvBufSize {
			// Edge-triggered: a short read means the socket buffer is
			// drained for now.
			return
		}
	}
}
