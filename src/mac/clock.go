package mac

import (
	"encoding/binary"
	"sync"

	"github.com/danieldin95/openmac/src/libom"
)

// transmissionDelay is added to a beacon's timestamp before encoding.
// The beacon still has to wait through DIFS and backoff, so the encoded
// time is its expected on-the-wire instant; receivers converge forward.
const transmissionDelay = 2000

// Clock keeps network time as the radio clock plus a non-decreasing
// offset, and schedules beacon frames.
type Clock struct {
	radio      Radio
	mac        uint16
	lock       sync.Mutex
	offset     int64
	interval   int64 // ms; negative disables beacons
	lastBeacon int64
	number     uint16
	out        *libom.SubLogger
}

func NewClock(radio Radio, interval int64, mac uint16) *Clock {
	return &Clock{
		radio:    radio,
		interval: interval,
		mac:      mac,
		out:      libom.NewSubLogger("clock"),
	}
}

// Time is the current synchronized time in ms.
func (c *Clock) Time() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.time()
}

func (c *Clock) time() int64 {
	return c.radio.Clock() + c.offset
}

// Offset is the accumulated correction absorbed from beacons.
func (c *Clock) Offset() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.offset
}

// AbsorbBeacon pulls local time forward to a peer's timestamp. Stale
// timestamps never move time backward.
func (c *Clock) AbsorbBeacon(f *Frame) {
	data := f.Data()
	if len(data) < 8 {
		c.out.Debug("Clock.AbsorbBeacon: short payload %d", len(data))
		return
	}
	timestamp := int64(binary.BigEndian.Uint64(data[:8]))
	c.lock.Lock()
	defer c.lock.Unlock()
	if now := c.time(); timestamp > now {
		c.out.Debug("Clock.AbsorbBeacon: %d ahead of %d", timestamp, now)
		c.offset += timestamp - now
	}
}

// SetInterval updates the beacon interval in ms; negative disables.
func (c *Clock) SetInterval(interval int64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.interval = interval
}

func (c *Clock) Interval() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.interval
}

// Ready reports whether a beacon frame is due.
func (c *Clock) Ready() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.ready()
}

func (c *Clock) ready() bool {
	if c.interval < 0 {
		return false
	}
	return c.time() >= c.lastBeacon+c.interval
}

// NextBeacon returns the due beacon frame, or nil when none is due.
// The beacon carries Time()+transmissionDelay as a big-endian 64-bit
// payload and the last-beacon mark is aligned to the interval boundary.
func (c *Clock) NextBeacon() *Frame {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.ready() {
		return nil
	}
	timestamp := make([]byte, 8)
	binary.BigEndian.PutUint64(timestamp, uint64(c.time()+transmissionDelay))
	beacon := NewFrame(FrameBeacon, false, c.number, BroadcastAddr, c.mac, timestamp)
	c.number = (c.number + 1) % MaxFrameNumber
	if c.interval > 0 {
		c.lastBeacon = c.time() - c.time()%c.interval
	} else {
		c.lastBeacon = c.time()
	}
	return beacon
}
