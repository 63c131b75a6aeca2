package mac

import (
	"testing"
	"time"

	"github.com/danieldin95/openmac/src/libom"
	"github.com/stretchr/testify/assert"
)

func newTestReceiver(radio *fakeRadio) (*Receiver, *Sender, *Clock) {
	clock := NewClock(radio, -1, 0x0001)
	sender := NewSender(radio, clock, libom.NewSafeStrInt64())
	receiver := NewReceiver(radio, 0x0001, sender, clock, libom.NewSafeStrInt64())
	return receiver, sender, clock
}

func waitFor(t *testing.T, what string, cond func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReceiverDeliversAndAcks(t *testing.T) {
	radio := newFakeRadio()
	receiver, _, _ := newTestReceiver(radio)
	receiver.Start()
	defer receiver.Stop()

	data := NewFrame(FrameData, false, 5, 0x0001, 0x0002, []byte("hi"))
	_ = radio.inbound.Put(data.Bytes())

	got := receiver.Recv()
	assert.NotNil(t, got, "unicast data is delivered")
	assert.Equal(t, []byte("hi"), got.Data(), "be the same.")
	assert.Equal(t, uint16(0x0002), got.SrcAddr(), "be the same.")

	waitFor(t, "the acknowledgement", func() bool { return radio.sentCount() > 0 })
	ack := radio.sentFrame(0)
	assert.Equal(t, FrameAck, ack.Type(), "be the same.")
	assert.Equal(t, uint16(5), ack.Number(), "same number as the data frame")
	assert.Equal(t, uint16(0x0002), ack.DestAddr(), "addresses swapped")
	assert.Equal(t, uint16(0x0001), ack.SrcAddr(), "addresses swapped")
	assert.Equal(t, 0, len(ack.Data()), "empty payload")
}

func TestReceiverBroadcastNoAck(t *testing.T) {
	radio := newFakeRadio()
	receiver, _, _ := newTestReceiver(radio)
	receiver.Start()
	defer receiver.Stop()

	data := NewFrame(FrameData, false, 1, BroadcastAddr, 0x0002, []byte("all"))
	_ = radio.inbound.Put(data.Bytes())

	got := receiver.Recv()
	assert.NotNil(t, got, "broadcast is delivered")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, radio.sentCount(), "broadcast is never acknowledged")
}

func TestReceiverDropsCorrupt(t *testing.T) {
	radio := newFakeRadio()
	receiver, _, _ := newTestReceiver(radio)
	receiver.Start()
	defer receiver.Stop()

	frame := NewFrame(FrameData, false, 1, 0x0001, 0x0002, []byte("hi"))
	raw := make([]byte, len(frame.Bytes()))
	copy(raw, frame.Bytes())
	raw[len(raw)-1] ^= 0x01
	_ = radio.inbound.Put(raw)
	// A valid frame behind it proves the corrupt one was skipped.
	good := NewFrame(FrameData, false, 2, 0x0001, 0x0002, []byte("ok"))
	_ = radio.inbound.Put(good.Bytes())

	got := receiver.Recv()
	assert.Equal(t, uint16(2), got.Number(), "the corrupt frame never surfaced")
	waitFor(t, "the acknowledgement", func() bool { return radio.sentCount() > 0 })
	assert.Equal(t, 1, radio.sentCount(), "no ACK for the corrupt frame")
}

func TestReceiverFiltersOtherStations(t *testing.T) {
	radio := newFakeRadio()
	receiver, _, _ := newTestReceiver(radio)
	receiver.Start()
	defer receiver.Stop()

	other := NewFrame(FrameData, false, 1, 0x0003, 0x0002, []byte("na"))
	_ = radio.inbound.Put(other.Bytes())
	mine := NewFrame(FrameData, false, 2, 0x0001, 0x0002, []byte("yes"))
	_ = radio.inbound.Put(mine.Bytes())

	got := receiver.Recv()
	assert.Equal(t, []byte("yes"), got.Data(), "frames for others are dropped")
}

func TestReceiverRoutesAcks(t *testing.T) {
	radio := newFakeRadio()
	receiver, sender, _ := newTestReceiver(radio)
	receiver.Start()
	defer receiver.Stop()

	ack := NewFrame(FrameAck, false, 7, 0x0001, 0x0002, nil)
	_ = radio.inbound.Put(ack.Bytes())

	waitFor(t, "the ack slot", func() bool { return sender.takeAck() != nil })
	assert.Equal(t, uint16(7), sender.takeAck().Number(), "be the same.")
}

func TestReceiverRoutesBeacons(t *testing.T) {
	radio := newFakeRadio()
	radio.setClock(100)
	receiver, _, clock := newTestReceiver(radio)
	receiver.Start()
	defer receiver.Stop()

	_ = radio.inbound.Put(beaconWith(9000).Bytes())
	waitFor(t, "the clock update", func() bool { return clock.Time() >= 9000 })
	assert.True(t, clock.Offset() > 0, "offset absorbed from the beacon")
}

func TestReceiverUnclassifiedTypeDelivered(t *testing.T) {
	radio := newFakeRadio()
	receiver, _, _ := newTestReceiver(radio)
	receiver.Start()
	defer receiver.Stop()

	// CTS is not ACK or BEACON, so it takes the data path.
	cts := NewFrame(FrameCts, false, 1, 0x0001, 0x0002, nil)
	_ = radio.inbound.Put(cts.Bytes())
	got := receiver.Recv()
	assert.Equal(t, FrameCts, got.Type(), "unclassified frames are delivered")
}
