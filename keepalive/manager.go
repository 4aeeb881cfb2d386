// File: keepalive/manager.go
// Package keepalive implements per-connection ping correlation.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package keepalive

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-h2/control"
	"github.com/momentics/hioload-h2/pool"
	"github.com/momentics/hioload-h2/protocol"
)

// Errors reported by probe scheduling.
var (
	ErrUserPingsBusy = fmt.Errorf("both user ping slots are outstanding")
	ErrShuttingDown  = fmt.Errorf("shutdown probe already sent")
)

// userSlots is fixed by the wire contract: the reserved user payloads
// differ only in their last byte, 0 or 1.
const userSlots = 2

// Manager tracks outstanding pings for one connection.
//
// All methods are safe for concurrent use. The codec itself never
// blocks; the only channel operations are closes on correlation slots.
type Manager struct {
	mu       sync.Mutex
	outbound *queue.Queue // queued protocol.Ping probes

	pending [userSlots]chan struct{} // nil when the slot is free

	shutdownSent  bool
	shutdownAcked bool
	onShutdown    func()

	warnDepth int // backlog threshold for queue warnings; 0 disables

	buffers *pool.FramePool
	metrics *control.MetricsRegistry
}

// NewManager creates a manager for one connection. onShutdown is invoked
// at most once, when the peer acknowledges the shutdown probe; it may be
// nil. metrics may be nil to disable telemetry.
func NewManager(onShutdown func(), metrics *control.MetricsRegistry) *Manager {
	return &Manager{
		outbound:   queue.New(),
		onShutdown: onShutdown,
		buffers:    pool.NewFramePool(),
		metrics:    metrics,
	}
}

// BindConfig attaches runtime tuning from the control layer. The queue
// warn depth is read immediately and re-read on every store reload.
func (m *Manager) BindConfig(cs *control.ConfigStore) {
	refresh := func() {
		depth := cs.GetInt(control.ConfigQueueWarnDepth, 0)
		m.mu.Lock()
		m.warnDepth = depth
		m.mu.Unlock()
	}
	refresh()
	cs.OnReload(refresh)
}

// enqueue adds a probe to the outbound queue and maintains the send
// telemetry, counting a queue warning when the backlog crosses the
// configured depth.
func (m *Manager) enqueue(p protocol.Ping) {
	m.mu.Lock()
	m.outbound.Add(p)
	warn := m.warnDepth > 0 && m.outbound.Length() > m.warnDepth
	m.mu.Unlock()
	m.metrics.Inc(control.MetricPingSent)
	if warn {
		m.metrics.Inc(control.MetricPingQueueWarn)
	}
}

// SendKeepalive queues an ordinary liveness probe with the given payload.
func (m *Manager) SendKeepalive(payload protocol.Payload) {
	m.enqueue(protocol.NewPing(payload))
}

// SendShutdown queues the graceful-shutdown probe. Only the first call
// queues anything; repeated calls return ErrShuttingDown.
func (m *Manager) SendShutdown() error {
	m.mu.Lock()
	if m.shutdownSent {
		m.mu.Unlock()
		return ErrShuttingDown
	}
	m.shutdownSent = true
	m.mu.Unlock()
	m.enqueue(protocol.NewPing(protocol.ShutdownPayload))
	return nil
}

// SendUserPing allocates a correlation slot, queues the tagged probe,
// and returns the slot id plus a channel closed when the matching
// acknowledgment arrives. At most two user probes may be outstanding;
// ErrUserPingsBusy is returned when both slots are taken.
func (m *Manager) SendUserPing() (id uint8, done <-chan struct{}, err error) {
	m.mu.Lock()
	slot := -1
	for i := range m.pending {
		if m.pending[i] == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		m.mu.Unlock()
		return 0, nil, ErrUserPingsBusy
	}
	ch := make(chan struct{})
	m.pending[slot] = ch
	m.mu.Unlock()
	m.enqueue(protocol.NewPing(protocol.UserPayloads[slot]))
	return uint8(slot), ch, nil
}

// HandleInbound decodes a raw PING frame and routes it: a probe comes
// back as the response frame to write, an acknowledgment resolves its
// outstanding probe. Decode violations are counted and propagated to
// the caller unchanged.
func (m *Manager) HandleInbound(head protocol.FrameHead, raw []byte) (protocol.Ping, bool, error) {
	p, err := protocol.DecodePing(head, raw)
	if err != nil {
		m.metrics.Inc(control.MetricPingViolations)
		return protocol.Ping{}, false, err
	}
	m.metrics.Inc(control.MetricFramesDecoded)
	pong, ok := m.HandlePing(p)
	return pong, ok, nil
}

// HandlePing answers an inbound probe: the returned frame echoes the
// probe payload with the acknowledgment bit set. A frame that is itself
// an acknowledgment is never answered and routes through HandleAck.
func (m *Manager) HandlePing(p protocol.Ping) (protocol.Ping, bool) {
	if p.IsAck() {
		m.HandleAck(p)
		return protocol.Ping{}, false
	}
	return protocol.NewPong(p.IntoPayload()), true
}

// HandleAck routes an inbound acknowledgment to its consumer:
// the shutdown callback (once), a pending user slot, or the plain
// keepalive counter. An acknowledgment for a user id with no probe
// outstanding is ignored and counted as a violation.
func (m *Manager) HandleAck(p protocol.Ping) {
	if !p.IsAck() {
		return
	}

	if p.IntoPayload() == protocol.ShutdownPayload {
		m.mu.Lock()
		fire := m.shutdownSent && !m.shutdownAcked
		m.shutdownAcked = true
		m.mu.Unlock()
		m.metrics.Inc(control.MetricPingAcked)
		if fire && m.onShutdown != nil {
			m.onShutdown()
		}
		return
	}

	if id, ok := p.UserPayloadID(); ok {
		m.mu.Lock()
		var ch chan struct{}
		if int(id) < userSlots && m.pending[id] != nil {
			ch = m.pending[id]
			m.pending[id] = nil
		}
		m.mu.Unlock()
		if ch == nil {
			m.metrics.Inc(control.MetricPingViolations)
			return
		}
		close(ch)
		m.metrics.Inc(control.MetricPingAcked)
		return
	}

	m.metrics.Inc(control.MetricPingAcked)
}

// PopOutbound removes the next queued probe for the write loop.
func (m *Manager) PopOutbound() (protocol.Ping, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outbound.Length() == 0 {
		return protocol.Ping{}, false
	}
	return m.outbound.Remove().(protocol.Ping), true
}

// NextEncoded pops the next probe and returns it fully serialized in a
// pooled buffer. The caller writes the bytes out and hands the buffer
// back via Release.
func (m *Manager) NextEncoded() (*bytes.Buffer, bool) {
	p, ok := m.PopOutbound()
	if !ok {
		return nil, false
	}
	buf := m.buffers.Get()
	p.Encode(buf)
	m.metrics.Inc(control.MetricFramesEncoded)
	return buf, true
}

// Release returns a buffer obtained from NextEncoded to the pool.
func (m *Manager) Release(buf *bytes.Buffer) {
	m.buffers.Put(buf)
}

// QueueDepth reports the number of probes waiting to be written.
func (m *Manager) QueueDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outbound.Length()
}

// PendingUser reports how many user correlation slots are outstanding.
func (m *Manager) PendingUser() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := range m.pending {
		if m.pending[i] != nil {
			n++
		}
	}
	return n
}

// RegisterProbes exposes manager state through the debug layer.
func (m *Manager) RegisterProbes(dp *control.DebugProbes) {
	dp.RegisterProbe(control.ProbeKeepaliveQueueDepth, func() any {
		return m.QueueDepth()
	})
	dp.RegisterProbe(control.ProbeKeepalivePendingUser, func() any {
		return m.PendingUser()
	})
	dp.RegisterProbe(control.ProbeKeepaliveShutdown, func() any {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.shutdownSent
	})
}
