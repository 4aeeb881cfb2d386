// Package protocol
// Author: momentics <momentics@gmail.com>
//
// HTTP/2 wire protocol constants

package protocol

import "fmt"

// Kind identifies a frame type (RFC 7540 §6).
type Kind uint8

const (
	KindData         Kind = 0x0
	KindHeaders      Kind = 0x1
	KindPriority     Kind = 0x2
	KindRSTStream    Kind = 0x3
	KindSettings     Kind = 0x4
	KindPushPromise  Kind = 0x5
	KindPing         Kind = 0x6
	KindGoAway       Kind = 0x7
	KindWindowUpdate Kind = 0x8
	KindContinuation Kind = 0x9
)

// String returns the RFC name of the frame kind.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "DATA"
	case KindHeaders:
		return "HEADERS"
	case KindPriority:
		return "PRIORITY"
	case KindRSTStream:
		return "RST_STREAM"
	case KindSettings:
		return "SETTINGS"
	case KindPushPromise:
		return "PUSH_PROMISE"
	case KindPing:
		return "PING"
	case KindGoAway:
		return "GOAWAY"
	case KindWindowUpdate:
		return "WINDOW_UPDATE"
	case KindContinuation:
		return "CONTINUATION"
	default:
		return fmt.Sprintf("UNKNOWN(0x%x)", uint8(k))
	}
}

// Flags is the one-byte flag field of a frame header.
type Flags uint8

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool {
	return fl&f == f
}

const (
	// DATA / HEADERS
	FlagEndStream Flags = 0x1
	FlagPadded    Flags = 0x8

	// HEADERS / CONTINUATION
	FlagEndHeaders Flags = 0x4

	// SETTINGS / PING acknowledgment bit
	FlagAck Flags = 0x1

	// PING: bit 0 marks a response to a previously received probe.
	// Bits 1-7 are reserved, ignored on decode and zero on encode.
	FlagPingAck Flags = 0x1
)

const (
	// HeadLen is the fixed size of the frame header in bytes:
	// 3-byte length, kind, flags, 4-byte stream identifier.
	HeadLen = 9

	// PingPayloadLen is the mandated PING payload size (RFC 7540 §6.7).
	PingPayloadLen = 8

	// streamIDMask strips the reserved R bit from the stream field.
	streamIDMask = 0x7FFFFFFF
)
