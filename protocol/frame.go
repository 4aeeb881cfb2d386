// Package protocol
// Author: momentics <momentics@gmail.com>
//
// Frame union and dispatch from parsed headers to typed frames.
//
// The read loop decodes a FrameHead, slices the matching payload, and
// hands both to DecodeFrame; typed decoding stays allocation-light and
// kinds this module does not interpret pass through untouched.

package protocol

import "bytes"

// Frame is a typed frame ready to serialize.
type Frame interface {
	// Head returns the header the frame encodes under.
	Head() FrameHead

	// Encode appends the complete wire frame to dst.
	Encode(dst *bytes.Buffer)
}

// UnknownFrame carries a frame of a kind this module does not
// interpret. RFC 7540 §4.1 requires implementations to ignore and
// discard frames of unknown types, so the payload is preserved opaque.
type UnknownFrame struct {
	FrameHead
	Data []byte
}

// Head returns the original header.
func (f *UnknownFrame) Head() FrameHead {
	return f.FrameHead
}

// Encode re-emits the frame unmodified.
func (f *UnknownFrame) Encode(dst *bytes.Buffer) {
	f.FrameHead.Encode(len(f.Data), dst)
	dst.Write(f.Data)
}

// DecodeFrame dispatches a demultiplexed (header, payload) pair to the
// kind-specific decoder. Kind decoders own their full validation
// (including the error precedence on multiple violations); only
// uninterpreted kinds get the generic header/slice consistency check.
// The payload slice is copied, never retained.
func DecodeFrame(head FrameHead, payload []byte) (Frame, error) {
	switch head.Kind {
	case KindPing:
		p, err := DecodePing(head, payload)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		if uint32(len(payload)) != head.Length {
			return nil, ErrBadFrameSize
		}
		data := make([]byte, len(payload))
		copy(data, payload)
		return &UnknownFrame{FrameHead: head, Data: data}, nil
	}
}
