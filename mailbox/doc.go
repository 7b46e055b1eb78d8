// File: mailbox/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package mailbox implements the static N×N fabric of bounded single-producer/
// single-consumer cells used for cross-worker messaging: cell [recipient][sender]
// is written only by thread sender and read only by thread recipient. The fabric
// carries opaque pointers; it never interprets payloads, matching the original
// sphinx::spsc::Queue design (see original_source/sphinxd/src/reactor.cpp).
package mailbox
