// File: netio/sockaddr.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package netio

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// SockAddr carries a resolved peer address across a recvfrom call,
// mirroring original_source's SockAddr (a raw sockaddr_storage + length).
type SockAddr struct {
	raw unix.Sockaddr
}

// IP returns the address's IP component, or nil if unrecognized.
func (s SockAddr) IP() net.IP {
	switch a := s.raw.(type) {
	case *unix.SockaddrInet4:
		ip := make(net.IP, net.IPv4len)
		copy(ip, a.Addr[:])
		return ip
	case *unix.SockaddrInet6:
		ip := make(net.IP, net.IPv6len)
		copy(ip, a.Addr[:])
		return ip
	default:
		return nil
	}
}

// Port returns the address's port component, or 0 if unrecognized.
func (s SockAddr) Port() int {
	switch a := s.raw.(type) {
	case *unix.SockaddrInet4:
		return a.Port
	case *unix.SockaddrInet6:
		return a.Port
	default:
		return 0
	}
}

func (s SockAddr) String() string {
	return fmt.Sprintf("%s:%d", s.IP(), s.Port())
}

// Raw exposes the underlying unix.Sockaddr for passing straight back into
// Sendto.
func (s SockAddr) Raw() unix.Sockaddr { return s.raw }
