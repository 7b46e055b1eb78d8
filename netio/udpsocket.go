// File: netio/udpsocket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// UDPSocket mirrors original_source's UdpSocket/make_udp_socket: a single
// bound, non-blocking datagram socket, drained with recvfrom per read
// event and sent with sendto.

package netio

import (
	"log"

	"golang.org/x/sys/unix"

	"github.com/momentics/sphinx-reactor/pool"
	"github.com/momentics/sphinx-reactor/reactor"
)

// UDPRecvFunc receives one datagram's payload and the sender's address.
// A nil payload with a zero SockAddr signals ECONNRESET (a prior ICMP
// port-unreachable surfacing on this socket), matching the original's
// nullopt-address recv callback.
type UDPRecvFunc func(*UDPSocket, []byte, SockAddr)

// UDPSocket is a non-blocking, bound (unconnected) UDP socket.
type UDPSocket struct {
	socket
	recvFn UDPRecvFunc
}

// MakeUDPSocket resolves iface, binds port with SO_REUSEADDR|SO_REUSEPORT,
// and returns a non-blocking datagram socket (§ original make_udp_socket).
func MakeUDPSocket(iface string, port int, recvFn UDPRecvFunc) (*UDPSocket, error) {
	addr, err := resolvePassive(iface)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
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

	return &UDPSocket{socket: socket{fd: fd}, recvFn: recvFn}, nil
}

// Send writes one datagram to dst.
func (s *UDPSocket) Send(msg []byte, dst SockAddr) error {
	n, err := unix.SendmsgN(s.fd, msg, nil, dst.Raw(), unix.MSG_NOSIGNAL|unix.MSG_DONTWAIT)
	if err != nil {
		if err == unix.ECONNRESET || err == unix.EPIPE {
			return nil
		}
		return reactor.NewSystemCallFailed("sendto", err)
	}
	if n != len(msg) {
		return reactor.NewPartialTransfer("sendto")
	}
	return nil
}

// OnReadEvent implements reactor.Handle: the socket is registered
// edge-triggered, so every queued datagram must be drained before
// returning — a later datagram arriving between the notification and this
// call would otherwise never produce another readiness edge.
func (s *UDPSocket) OnReadEvent() {
	for {
		buf := pool.DefaultPool(-1).Get(recvBufSize, -1)
		n, from, err := unix.Recvfrom(s.fd, buf.Bytes(), unix.MSG_DONTWAIT)
		if err != nil {
			buf.Release()
			if err == unix.ECONNRESET {
				s.recvFn(s, nil, SockAddr{})
				continue
			}
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
				return
			}
			log.Printf("netio: udp recv fd=%d: %v", s.fd, reactor.NewSystemCallFailed("recv", err))
			return
		}
		var src SockAddr
		if from != nil {
			src = SockAddr{raw: from}
		}
		s.recvFn(s, buf.Bytes()[:n], src)
		buf.Release()
	}
}
