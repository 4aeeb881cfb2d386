package protocol_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/momentics/hioload-h2/protocol"
)

func decodeWire(t *testing.T, wire []byte) protocol.Ping {
	t.Helper()
	head, err := protocol.DecodeHead(wire)
	if err != nil {
		t.Fatal(err)
	}
	p, err := protocol.DecodePing(head, wire[protocol.HeadLen:])
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPingRoundTrip(t *testing.T) {
	payloads := []protocol.Payload{
		{},
		{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04},
		protocol.ShutdownPayload,
		protocol.UserPayloads[0],
		protocol.UserPayloads[1],
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for _, payload := range payloads {
		for _, ack := range []bool{false, true} {
			var p protocol.Ping
			if ack {
				p = protocol.NewPong(payload)
			} else {
				p = protocol.NewPing(payload)
			}

			var buf bytes.Buffer
			p.Encode(&buf)
			got := decodeWire(t, buf.Bytes())

			if got.IsAck() != ack {
				t.Errorf("ack flag lost: payload %x", payload)
			}
			if got.IntoPayload() != payload {
				t.Errorf("payload mismatch: got %x want %x", got.IntoPayload(), payload)
			}
		}
	}
}

func TestPingRejectsNonZeroStream(t *testing.T) {
	raw := make([]byte, 8)
	for _, id := range []protocol.StreamID{1, 5, 0x7FFFFFFF} {
		head := protocol.FrameHead{Kind: protocol.KindPing, Length: 8, StreamID: id}
		if _, err := protocol.DecodePing(head, raw); !errors.Is(err, protocol.ErrInvalidStreamID) {
			t.Errorf("stream %d: got %v, want stream-id violation", id, err)
		}
	}
}

// The stream-id check must come before the size check.
func TestPingStreamViolationReportedFirst(t *testing.T) {
	head := protocol.FrameHead{Kind: protocol.KindPing, Length: 7, StreamID: 5}
	_, err := protocol.DecodePing(head, make([]byte, 7))
	if !errors.Is(err, protocol.ErrInvalidStreamID) {
		t.Fatalf("got %v, want stream-id violation", err)
	}
}

func TestPingRejectsBadLength(t *testing.T) {
	for _, n := range []int{0, 1, 7, 9, 16} {
		head := protocol.FrameHead{Kind: protocol.KindPing, Length: uint32(n)}
		if _, err := protocol.DecodePing(head, make([]byte, n)); !errors.Is(err, protocol.ErrBadFrameSize) {
			t.Errorf("length %d: got %v, want frame-size violation", n, err)
		}
	}
}

func TestPingReservedFlagBitsIgnored(t *testing.T) {
	raw := make([]byte, 8)
	head := protocol.FrameHead{Kind: protocol.KindPing, Length: 8, Flags: 0xFE}
	p, err := protocol.DecodePing(head, raw)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsAck() {
		t.Error("reserved bits alone must not mark an ack")
	}

	head.Flags = 0xFF
	p, err = protocol.DecodePing(head, raw)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsAck() {
		t.Error("bit 0 must mark an ack regardless of reserved bits")
	}
}

func TestUserPayloadClassification(t *testing.T) {
	p := protocol.NewPing(protocol.UserPayloads[0])
	if id, ok := p.UserPayloadID(); !ok || id != 0 {
		t.Errorf("first user payload: got (%d, %v)", id, ok)
	}

	p = protocol.NewPing(protocol.UserPayloads[1])
	if id, ok := p.UserPayloadID(); !ok || id != 1 {
		t.Errorf("second user payload: got (%d, %v)", id, ok)
	}

	p = protocol.NewPing(protocol.ShutdownPayload)
	if _, ok := p.UserPayloadID(); ok {
		t.Error("shutdown payload classified as user")
	}

	// Classification is a prefix compare: only the first 7 bytes matter.
	tagged := protocol.UserPayloads[0]
	tagged[7] = 0x7f
	p = protocol.NewPing(tagged)
	if id, ok := p.UserPayloadID(); !ok || id != 0x7f {
		t.Errorf("arbitrary tag byte: got (%d, %v)", id, ok)
	}

	// A single flipped prefix bit must declassify.
	for i := 0; i < 7; i++ {
		flipped := protocol.UserPayloads[0]
		flipped[i] ^= 0x01
		p = protocol.NewPing(flipped)
		if _, ok := p.UserPayloadID(); ok {
			t.Errorf("byte %d flipped but still classified as user", i)
		}
	}
}

func TestPingEncodeDeterministic(t *testing.T) {
	payload := protocol.Payload{1, 2, 3, 4, 5, 6, 7, 8}

	var a, b bytes.Buffer
	protocol.NewPing(payload).Encode(&a)
	protocol.NewPing(payload).Encode(&b)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("identical messages encoded differently")
	}

	var pong bytes.Buffer
	protocol.NewPong(payload).Encode(&pong)
	if len(pong.Bytes()) != len(a.Bytes()) {
		t.Fatal("probe and response lengths differ")
	}
	for i := range a.Bytes() {
		same := a.Bytes()[i] == pong.Bytes()[i]
		if i == 4 && same {
			t.Error("flag byte must differ between probe and response")
		}
		if i != 4 && !same {
			t.Errorf("byte %d differs outside the flag byte", i)
		}
	}
}

func TestPingWireLayout(t *testing.T) {
	payload := protocol.Payload{0x3b, 0x7c, 0xdb, 0x7a, 0x0b, 0x87, 0x16, 0x01}
	var buf bytes.Buffer
	protocol.NewPong(payload).Encode(&buf)

	want := []byte{
		0x00, 0x00, 0x08, // length 8
		0x06,                   // PING
		0x01,                   // ACK
		0x00, 0x00, 0x00, 0x00, // stream 0
		0x3b, 0x7c, 0xdb, 0x7a, 0x0b, 0x87, 0x16, 0x01,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("wire mismatch:\n got %x\nwant %x", buf.Bytes(), want)
	}
}

func TestPingUserAckScenario(t *testing.T) {
	head := protocol.FrameHead{Kind: protocol.KindPing, Flags: 0x01, Length: 8}
	raw := []byte{0x3b, 0x7c, 0xdb, 0x7a, 0x0b, 0x87, 0x16, 0x01}

	p, err := protocol.DecodePing(head, raw)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsAck() {
		t.Error("expected an ack")
	}
	if id, ok := p.UserPayloadID(); !ok || id != 1 {
		t.Errorf("expected user id 1, got (%d, %v)", id, ok)
	}
}

func TestPingDecodeCopiesInput(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	p, err := protocol.DecodePing(protocol.FrameHead{Kind: protocol.KindPing, Length: 8}, raw)
	if err != nil {
		t.Fatal(err)
	}
	raw[0] = 0xAA
	if p.Payload()[0] != 1 {
		t.Fatal("decoded payload aliases the input buffer")
	}
}

func TestPingPayloadAccessors(t *testing.T) {
	payload := protocol.Payload{9, 8, 7, 6, 5, 4, 3, 2}
	p := protocol.NewPing(payload)
	if *p.Payload() != payload {
		t.Error("Payload accessor mismatch")
	}
	if p.IntoPayload() != payload {
		t.Error("IntoPayload mismatch")
	}
	if p.IsAck() {
		t.Error("probe constructed as ack")
	}
	if !protocol.NewPong(payload).IsAck() {
		t.Error("response constructed without ack")
	}
}

func BenchmarkPingEncode(b *testing.B) {
	p := protocol.NewPing(protocol.UserPayloads[0])
	var buf bytes.Buffer
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		p.Encode(&buf)
	}
}

func BenchmarkPingDecode(b *testing.B) {
	head := protocol.FrameHead{Kind: protocol.KindPing, Length: 8}
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := protocol.DecodePing(head, raw); err != nil {
			b.Fatal(err)
		}
	}
}
