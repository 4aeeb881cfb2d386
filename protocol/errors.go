// File: protocol/errors.go
// Package protocol connection-error taxonomy.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Peer protocol violations detected during decode. Both violations are
// connection-level: the owning connection decides termination and which
// error code reaches the peer; this package only classifies.

package protocol

import "fmt"

// ErrCode is an HTTP/2 connection error code (RFC 7540 §7).
type ErrCode uint32

const (
	ErrCodeNo        ErrCode = 0x0
	ErrCodeProtocol  ErrCode = 0x1
	ErrCodeInternal  ErrCode = 0x2
	ErrCodeFrameSize ErrCode = 0x6
)

// String returns the RFC name of the error code.
func (c ErrCode) String() string {
	switch c {
	case ErrCodeNo:
		return "NO_ERROR"
	case ErrCodeProtocol:
		return "PROTOCOL_ERROR"
	case ErrCodeInternal:
		return "INTERNAL_ERROR"
	case ErrCodeFrameSize:
		return "FRAME_SIZE_ERROR"
	default:
		return fmt.Sprintf("ERR_CODE_0x%x", uint32(c))
	}
}

// ConnError is a connection-level protocol violation with its wire code.
type ConnError struct {
	Code   ErrCode
	Reason string
}

// Error implements the error interface.
func (e *ConnError) Error() string {
	return fmt.Sprintf("connection error %s: %s", e.Code, e.Reason)
}

// Is matches any ConnError carrying the same code, so callers can branch
// with errors.Is against the package sentinels.
func (e *ConnError) Is(target error) bool {
	t, ok := target.(*ConnError)
	return ok && t.Code == e.Code
}

// NewConnError creates a connection error with the given code.
func NewConnError(code ErrCode, reason string) *ConnError {
	return &ConnError{Code: code, Reason: reason}
}

// Violations raised by the decode paths in this package.
var (
	// ErrInvalidStreamID: a connection-scoped frame arrived with a
	// non-zero stream identifier.
	ErrInvalidStreamID = NewConnError(ErrCodeProtocol, "connection-scoped frame with non-zero stream id")

	// ErrBadFrameSize: declared payload length differs from the size
	// the frame kind mandates.
	ErrBadFrameSize = NewConnError(ErrCodeFrameSize, "frame payload length violates frame kind")
)
