// File: netio/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package netio implements the non-blocking TCP/UDP socket primitives a
// reactor.Handle registers with a Reactor: passive-open listeners, accepted
// TCP sockets, and bound UDP sockets, all driven by raw Linux syscalls
// (golang.org/x/sys/unix) rather than net.Conn so the reactor keeps full
// control over blocking semantics and buffer ownership.
//
// Grounded on original_source/sphinxd/src/reactor.cpp's SockAddr/Socket/
// TcpListener/TcpSocket/UdpSocket classes; receive buffers come from
// pool.DefaultPool so every socket's 256KiB recv region participates in the
// same NUMA-aware accounting as the rest of the stack.
package netio
