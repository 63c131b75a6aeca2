package air

import (
	"testing"
	"time"

	"github.com/danieldin95/openmac/src/mac"
	"github.com/stretchr/testify/assert"
)

func testConstants() mac.Constants {
	return mac.Constants{
		SIFSTime:   1,
		SlotTime:   1,
		CWMin:      3,
		CWMax:      7,
		RetryLimit: 3,
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	deadline := time.Now().Add(10 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubCarrierAndDelivery(t *testing.T) {
	hub := NewHub()
	hub.SetConstants(testConstants())
	hub.SetAirtime(50 * time.Millisecond)
	a := hub.Join()
	b := hub.Join()
	defer a.Close()
	defer b.Close()

	assert.False(t, hub.InUse(), "idle medium")
	a.Transmit([]byte("frame-bytes"))
	assert.True(t, hub.InUse(), "busy during airtime")

	got := b.Receive()
	assert.Equal(t, []byte("frame-bytes"), got, "delivered to the other port")
	waitFor(t, "carrier release", func() bool { return !hub.InUse() })
}

func TestHubLoss(t *testing.T) {
	hub := NewHub()
	hub.SetAirtime(time.Millisecond)
	hub.SetLoss(1.0)
	a := hub.Join()
	b := hub.Join()
	defer a.Close()
	defer b.Close()

	a.Transmit([]byte("gone"))
	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, b.queue.Poll(10*time.Millisecond), "full loss delivers nothing")
}

func TestHubFilter(t *testing.T) {
	hub := NewHub()
	hub.SetAirtime(time.Millisecond)
	a := hub.Join()
	b := hub.Join()
	defer a.Close()
	defer b.Close()

	b.SetFilter(func(data []byte) bool { return len(data) > 4 })
	a.Transmit([]byte("dropped"))
	a.Transmit([]byte("ok"))
	got := b.Receive()
	assert.Equal(t, []byte("ok"), got, "the filter dropped the long frame")
}

func TestRoundTrip(t *testing.T) {
	hub := NewHub()
	hub.SetConstants(testConstants())
	hub.SetAirtime(time.Millisecond)
	a := mac.NewLinkLayer(hub.Join(), 0x0001)
	b := mac.NewLinkLayer(hub.Join(), 0x0002)
	a.Start()
	b.Start()
	defer a.Stop()
	defer b.Stop()

	assert.Equal(t, 2, a.Send(0x0002, []byte("hi"), 2), "two bytes accepted")

	trans := &mac.Transmission{}
	n := b.Recv(trans)
	assert.Equal(t, 2, n, "two bytes delivered")
	assert.Equal(t, []byte("hi"), trans.Buf, "be the same.")
	assert.Equal(t, uint16(0x0001), trans.SrcAddr, "be the same.")
	assert.Equal(t, uint16(0x0002), trans.DestAddr, "be the same.")

	waitFor(t, "delivery status", func() bool { return a.Status() == mac.StatusTxDelivered })
}

func TestBroadcastDelivered(t *testing.T) {
	hub := NewHub()
	hub.SetConstants(testConstants())
	hub.SetAirtime(time.Millisecond)
	a := mac.NewLinkLayer(hub.Join(), 0x0001)
	b := mac.NewLinkLayer(hub.Join(), 0x0002)
	a.Start()
	b.Start()
	defer a.Stop()
	defer b.Stop()

	assert.Equal(t, 3, a.Send(mac.BroadcastAddr, []byte("all"), 3), "accepted")
	trans := &mac.Transmission{}
	assert.Equal(t, 3, b.Recv(trans), "broadcast reaches the other station")
	waitFor(t, "delivery status", func() bool { return a.Status() == mac.StatusTxDelivered })
}

func TestBeaconSynchronizes(t *testing.T) {
	hub := NewHub()
	hub.SetConstants(testConstants())
	hub.SetAirtime(time.Millisecond)
	a := mac.NewLinkLayer(hub.Join(), 0x0001)
	b := mac.NewLinkLayer(hub.Join(), 0x0002)
	a.Command(3, 1)
	a.Start()
	b.Start()
	defer a.Stop()
	defer b.Stop()

	// The beacon timestamp is a couple of seconds ahead of the sender's
	// clock, so the receiver's offset has to jump once it lands.
	waitFor(t, "clock synchronization", func() bool { return b.Clock().Offset() > 0 })
}
