package pool_test

import (
	"testing"

	"github.com/momentics/hioload-h2/pool"
)

func TestFramePoolGetReturnsEmpty(t *testing.T) {
	fp := pool.NewFramePool()

	b := fp.Get()
	b.WriteString("leftover")
	fp.Put(b)

	b = fp.Get()
	if b.Len() != 0 {
		t.Fatalf("pooled buffer not reset: %d bytes", b.Len())
	}
	if b.Cap() < pool.ControlFrameCap {
		t.Fatalf("buffer capacity %d below %d", b.Cap(), pool.ControlFrameCap)
	}
}
