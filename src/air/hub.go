package air

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danieldin95/openmac/src/libom"
	"github.com/danieldin95/openmac/src/mac"
)

// Hub is an in-process shared medium. Every port sees every other
// port's transmissions, the medium reads busy for the frame's airtime,
// and delivery happens when the airtime ends.
type Hub struct {
	lock    sync.RWMutex
	ports   map[*Port]bool
	cons    mac.Constants
	busy    int32
	epoch   time.Time
	airtime time.Duration // fixed on-air duration per frame
	loss    float64
	out     *libom.SubLogger
}

func NewHub() *Hub {
	return &Hub{
		ports:   make(map[*Port]bool, 8),
		cons:    mac.DefaultConstants(),
		epoch:   time.Now(),
		airtime: 5 * time.Millisecond,
		out:     libom.NewSubLogger("hub"),
	}
}

// SetConstants replaces the advertised medium parameters. Call before
// any station starts.
func (h *Hub) SetConstants(cons mac.Constants) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.cons = cons
}

// SetLoss drops the given fraction of deliveries at random.
func (h *Hub) SetLoss(rate float64) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.loss = rate
}

// SetAirtime fixes how long each frame occupies the medium.
func (h *Hub) SetAirtime(d time.Duration) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.airtime = d
}

// Join attaches a new station port to the medium.
func (h *Hub) Join() *Port {
	h.lock.Lock()
	defer h.lock.Unlock()
	p := &Port{
		hub:   h,
		queue: libom.NewQueue(),
	}
	h.ports[p] = true
	return p
}

func (h *Hub) leave(p *Port) {
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.ports, p)
}

// InUse is the instantaneous carrier state.
func (h *Hub) InUse() bool {
	return atomic.LoadInt32(&h.busy) > 0
}

// Clock is ms since the hub came up.
func (h *Hub) Clock() int64 {
	return time.Since(h.epoch).Milliseconds()
}

func (h *Hub) transmit(from *Port, data []byte) {
	frame := make([]byte, len(data))
	copy(frame, data)
	h.lock.RLock()
	airtime := h.airtime
	h.lock.RUnlock()
	atomic.AddInt32(&h.busy, 1)
	time.AfterFunc(airtime, func() {
		atomic.AddInt32(&h.busy, -1)
		h.deliver(from, frame)
	})
}

func (h *Hub) deliver(from *Port, frame []byte) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	for p := range h.ports {
		if p == from {
			continue
		}
		if h.loss > 0 && rand.Float64() < h.loss {
			h.out.Debug("Hub.deliver: lost %d bytes", len(frame))
			continue
		}
		if p.filter != nil && p.filter(frame) {
			continue
		}
		if err := p.queue.Put(frame); err != nil {
			h.out.Debug("Hub.deliver: %s", err)
		}
	}
}

// Port is one station's attachment to the hub medium.
type Port struct {
	hub    *Hub
	queue  *libom.Queue
	filter func(data []byte) bool
}

// SetFilter installs an inbound drop predicate; return true to drop.
func (p *Port) SetFilter(filter func(data []byte) bool) {
	p.hub.lock.Lock()
	defer p.hub.lock.Unlock()
	p.filter = filter
}

func (p *Port) Transmit(data []byte) int {
	p.hub.transmit(p, data)
	return len(data)
}

func (p *Port) Receive() []byte {
	if value := p.queue.Take(); value != nil {
		return value.([]byte)
	}
	return nil
}

func (p *Port) InUse() bool {
	return p.hub.InUse()
}

func (p *Port) Clock() int64 {
	return p.hub.Clock()
}

func (p *Port) Constants() mac.Constants {
	p.hub.lock.RLock()
	defer p.hub.lock.RUnlock()
	return p.hub.cons
}

func (p *Port) Close() {
	p.queue.Close()
	p.hub.leave(p)
}
