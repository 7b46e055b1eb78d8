// File: netio/resolve.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// resolvePassive is the Go-idiomatic stand-in for the original's
// lookup_addresses(): getaddrinfo(iface, port, AI_PASSIVE|AI_ADDRCONFIG,
// AF_INET). An empty iface behaves like a null getaddrinfo node — it
// resolves to INADDR_ANY so the socket accepts on every local interface.

package netio

import (
	"net"

	"golang.org/x/sys/unix"

	"github.com/momentics/sphinx-reactor/reactor"
)

// resolvePassive returns the IPv4 address to bind(2) to for iface, or
// reactor.KindBindFailed if iface cannot be resolved to any address.
func resolvePassive(iface string) ([4]byte, error) {
	if iface == "" {
		return [4]byte{}, nil // INADDR_ANY
	}
	ip := net.ParseIP(iface)
	if ip == nil {
		ips, err := net.LookupIP(iface)
		if err != nil || len(ips) == 0 {
			return [4]byte{}, reactor.NewBindFailed(iface)
		}
		ip = ips[0]
	}
	v4 := ip.To4()
	if v4 == nil {
		return [4]byte{}, reactor.NewBindFailed(iface)
	}
	var out [4]byte
	copy(out[:], v4)
	return out, nil
}

func newInetAddr(addr [4]byte, port int) unix.Sockaddr {
	return &unix.SockaddrInet4{Port: port, Addr: addr}
}
