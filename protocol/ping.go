// File: protocol/ping.go
// Package protocol implements the PING control frame codec.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// PING frames (RFC 7540 §6.7) carry connection-level liveness probes.
// They are never associated with a stream and always carry exactly
// 8 octets of opaque data, echoed verbatim by the acknowledgment.

package protocol

import "bytes"

// Payload is the fixed 8-octet opaque data of a PING frame. Holding it
// as an array makes the size a type invariant; the only length check
// lives at the wire-decode boundary.
type Payload = [8]byte

// ShutdownPayload is the reserved probe payload signaling that the
// sender intends to close the connection gracefully. Eight random
// bytes rather than zeroes, so it cannot collide with a trivial probe.
var ShutdownPayload = Payload{0x0b, 0x7b, 0xa2, 0xf0, 0x8b, 0x9b, 0xfe, 0x54}

// UserPayloads tag application-initiated probes. Both entries share the
// first seven bytes; the last byte is the correlation id the connection
// layer uses to match an acknowledgment to one of at most two
// outstanding user probes.
var UserPayloads = [2]Payload{
	{0x3b, 0x7c, 0xdb, 0x7a, 0x0b, 0x87, 0x16, 0x00},
	{0x3b, 0x7c, 0xdb, 0x7a, 0x0b, 0x87, 0x16, 0x01},
}

// Ping is a decoded PING frame. Immutable once constructed.
type Ping struct {
	ack     bool
	payload Payload
}

// NewPing builds an outbound probe carrying the given payload.
func NewPing(payload Payload) Ping {
	return Ping{payload: payload}
}

// NewPong builds the acknowledgment for a received probe, echoing
// its payload.
func NewPong(payload Payload) Ping {
	return Ping{ack: true, payload: payload}
}

// IsAck reports whether this frame acknowledges a previously received probe.
func (p Ping) IsAck() bool {
	return p.ack
}

// Payload returns the opaque data in place.
func (p *Ping) Payload() *Payload {
	return &p.payload
}

// IntoPayload transfers the opaque data out by value.
func (p Ping) IntoPayload() Payload {
	return p.payload
}

// UserPayloadID classifies the payload against the reserved user-probe
// set. It compares only the shared 7-byte prefix, so any last byte
// rides through as the correlation id; ok is false for every other
// payload, including ShutdownPayload.
func (p *Ping) UserPayloadID() (id uint8, ok bool) {
	if bytes.Equal(p.payload[:7], UserPayloads[0][:7]) {
		return p.payload[7], true
	}
	return 0, false
}

// DecodePing builds a Ping from a parsed header and its raw payload.
//
// Validation order is mandated: a PING on a non-zero stream is reported
// as PROTOCOL_ERROR before any length inspection, and a payload other
// than 8 octets is FRAME_SIZE_ERROR (RFC 7540 §6.7). Bits 1-7 of the
// flag byte are reserved and ignored. The input slice is copied, never
// retained.
func DecodePing(head FrameHead, raw []byte) (Ping, error) {
	if !head.StreamID.IsZero() {
		return Ping{}, ErrInvalidStreamID
	}
	if len(raw) != PingPayloadLen {
		return Ping{}, ErrBadFrameSize
	}

	var payload Payload
	copy(payload[:], raw)

	return Ping{
		ack:     head.Flags.Has(FlagPingAck),
		payload: payload,
	}, nil
}

// Head returns the frame header this message encodes under.
func (p Ping) Head() FrameHead {
	var flags Flags
	if p.ack {
		flags = FlagPingAck
	}
	return FrameHead{
		Length: PingPayloadLen,
		Kind:   KindPing,
		Flags:  flags,
	}
}

// Encode appends the full wire frame, header plus the 8 payload bytes,
// to dst. Output is deterministic; a constructed Ping cannot fail to
// encode.
func (p Ping) Encode(dst *bytes.Buffer) {
	p.Head().Encode(PingPayloadLen, dst)
	dst.Write(p.payload[:])
}
