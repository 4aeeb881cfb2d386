// Package protocol
// Author: momentics <momentics@gmail.com>
//
// Implements the core HTTP/2 wire framing logic (RFC 7540 §4, §6) for hioload-h2.
//
// Designed for ultra-high-load connection processing: fixed-size payload
// types, allocation-free decode paths, and deterministic encoding over
// caller-owned buffers.
//
// Includes:
//   - 9-byte frame header encoding/decoding
//   - PING control frame codec with well-known payload classification
//   - Connection-error taxonomy mapped to HTTP/2 error codes
//   - Frame dispatch seam with unknown-type pass-through
package protocol
