// File: protocol/head.go
// Package protocol implements the 9-byte frame header codec.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Layout (RFC 7540 §4.1, big-endian):
//   +-----------------------------------------------+
//   |                 Length (24)                   |
//   +---------------+---------------+---------------+
//   |   Type (8)    |   Flags (8)   |
//   +-+-------------+---------------+-------------------------------+
//   |R|                 Stream Identifier (31)                      |
//   +=+=============================================================+

package protocol

import (
	"bytes"
	"encoding/binary"
)

// StreamID identifies a multiplexed stream; zero is the reserved
// connection-scoped identifier.
type StreamID uint32

// IsZero reports whether the id is the connection-scoped reserved value.
func (id StreamID) IsZero() bool {
	return id == 0
}

// FrameHead is the generic header preceding every frame payload.
type FrameHead struct {
	Length   uint32
	Kind     Kind
	Flags    Flags
	StreamID StreamID
}

// DecodeHead parses a frame header from the first HeadLen bytes of buf.
func DecodeHead(buf []byte) (FrameHead, error) {
	if len(buf) < HeadLen {
		return FrameHead{}, ErrBadFrameSize
	}
	return FrameHead{
		Length:   uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]),
		Kind:     Kind(buf[3]),
		Flags:    Flags(buf[4]),
		StreamID: StreamID(binary.BigEndian.Uint32(buf[5:9]) & streamIDMask),
	}, nil
}

// Encode appends the header to dst, declaring payloadLen as the frame
// length. The R bit of the stream field is always written as zero.
func (h FrameHead) Encode(payloadLen int, dst *bytes.Buffer) {
	var hdr [HeadLen]byte
	hdr[0] = byte(payloadLen >> 16)
	hdr[1] = byte(payloadLen >> 8)
	hdr[2] = byte(payloadLen)
	hdr[3] = byte(h.Kind)
	hdr[4] = byte(h.Flags)
	binary.BigEndian.PutUint32(hdr[5:9], uint32(h.StreamID)&streamIDMask)
	dst.Write(hdr[:])
}
