// File: pool/framepool.go
// Author: momentics <momentics@gmail.com>

package pool

import (
	"bytes"
	"sync"
)

// ControlFrameCap covers a frame header plus the largest control
// payload this module emits, with slack so growth never reallocates
// for PING-sized frames.
const ControlFrameCap = 64

// FramePool recycles scratch buffers for frame encoding.
type FramePool struct {
	pool *sync.Pool
}

// NewFramePool creates a pool of pre-sized encode buffers.
func NewFramePool() *FramePool {
	return &FramePool{
		pool: &sync.Pool{New: func() any {
			b := &bytes.Buffer{}
			b.Grow(ControlFrameCap)
			return b
		}},
	}
}

// Get returns an empty buffer ready for encoding.
func (fp *FramePool) Get() *bytes.Buffer {
	b := fp.pool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// Put returns a buffer to the pool; the caller must not use it afterwards.
func (fp *FramePool) Put(b *bytes.Buffer) {
	fp.pool.Put(b)
}
