// File: netio/socket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package netio

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/sphinx-reactor/reactor"
)

// recvBufSize matches the original's rx_buf_size: a single fixed 256KiB
// receive buffer per read event, reused across events via the pool.
const recvBufSize = 256 * 1024

// socket is the shared base of TCPSocket/UDPSocket/TCPListener: an owned
// file descriptor, closed exactly once regardless of how many goroutines
// race to close it.
type socket struct {
	fd        int
	closeOnce sync.Once
}

// Fd implements reactor.Handle.
func (s *socket) Fd() uintptr { return uintptr(s.fd) }

func (s *socket) Close() error {
	var err error
	s.closeOnce.Do(func() {
		cerr := unix.Close(s.fd)
		if cerr != nil {
			err = reactor.NewSystemCallFailed("close", cerr)
		}
	})
	return err
}
