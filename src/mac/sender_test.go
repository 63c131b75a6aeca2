package mac

import (
	"testing"
	"time"

	"github.com/danieldin95/openmac/src/libom"
	"github.com/stretchr/testify/assert"
)

func newTestSender(radio *fakeRadio) (*Sender, chan int) {
	clock := NewClock(radio, -1, 0x0001)
	sender := NewSender(radio, clock, libom.NewSafeStrInt64())
	codes := make(chan int, 8)
	sender.SetReport(func(code int) {
		codes <- code
	})
	return sender, codes
}

func TestSenderBroadcastNoAckWait(t *testing.T) {
	radio := newFakeRadio()
	sender, _ := newTestSender(radio)
	frame := NewFrame(FrameData, false, 0, BroadcastAddr, 0x0001, []byte("all"))
	ok := sender.transmit(frame)
	assert.True(t, ok, "broadcast counts as delivered on transmit")
	assert.Equal(t, 1, radio.sentCount(), "exactly one transmission")
	assert.False(t, radio.sentFrame(0).Retransmit(), "first send is not a retransmission")
}

func TestSenderRetryUntilLimit(t *testing.T) {
	old := ackTimeoutBase
	ackTimeoutBase = 10
	defer func() { ackTimeoutBase = old }()

	radio := newFakeRadio()
	sender, _ := newTestSender(radio)
	frame := NewFrame(FrameData, false, 3, 0x0002, 0x0001, []byte("hi"))
	ok := sender.transmit(frame)
	assert.False(t, ok, "no ACK ever arrives")
	assert.Equal(t, radio.cons.RetryLimit, radio.sentCount(), "one transmission per attempt")
	assert.False(t, radio.sentFrame(0).Retransmit(), "first attempt")
	second := radio.sentFrame(1)
	assert.True(t, second.Retransmit(), "retry carries the retransmission bit")
	assert.Equal(t, uint16(3), second.Number(), "same frame number on retry")
}

func TestSenderAckDelivers(t *testing.T) {
	radio := newFakeRadio()
	sender, _ := newTestSender(radio)
	frame := NewFrame(FrameData, false, 9, 0x0002, 0x0001, []byte("hi"))
	// The slot is cleared right before the transmission, so the ACK has
	// to land while the sender is polling for it.
	go func() {
		for i := 0; i < 1000 && radio.sentCount() == 0; i++ {
			time.Sleep(5 * time.Millisecond)
		}
		sender.SetAck(NewFrame(FrameAck, false, 9, 0x0001, 0x0002, nil))
	}()
	ok := sender.transmit(frame)
	assert.True(t, ok, "matching ACK delivers")
	assert.Equal(t, 1, radio.sentCount(), "no retry needed")
}

func TestSenderIgnoresWrongAck(t *testing.T) {
	old := ackTimeoutBase
	ackTimeoutBase = 300
	defer func() { ackTimeoutBase = old }()

	radio := newFakeRadio()
	sender, _ := newTestSender(radio)
	frame := NewFrame(FrameData, false, 9, 0x0002, 0x0001, []byte("hi"))
	go func() {
		for i := 0; i < 1000 && radio.sentCount() == 0; i++ {
			time.Sleep(5 * time.Millisecond)
		}
		sender.SetAck(NewFrame(FrameAck, false, 8, 0x0001, 0x0002, nil))
	}()
	ok := sender.transmit(frame)
	assert.False(t, ok, "an ACK for another number is not ours")
}

func TestSenderAdmissionCap(t *testing.T) {
	radio := newFakeRadio()
	sender, _ := newTestSender(radio)
	for i := 0; i < SendQueueDepth; i++ {
		frame := NewFrame(FrameData, false, uint16(i), 0x0002, 0x0001, nil)
		assert.Nil(t, sender.Send(frame), "fits in the queue")
	}
	frame := NewFrame(FrameData, false, 4, 0x0002, 0x0001, nil)
	assert.NotNil(t, sender.Send(frame), "fifth submit is rejected")
}

func TestSenderLoopReportsStatus(t *testing.T) {
	radio := newFakeRadio()
	sender, codes := newTestSender(radio)
	frame := NewFrame(FrameData, false, 0, BroadcastAddr, 0x0001, []byte("x"))
	assert.Nil(t, sender.Send(frame), "admitted")
	sender.Start()
	defer sender.Stop()
	select {
	case code := <-codes:
		assert.Equal(t, StatusTxDelivered, code, "delivery reported")
	case <-time.After(5 * time.Second):
		t.Fatal("the loop never reported")
	}
	assert.Equal(t, 1, radio.sentCount(), "loop picked up the frame")
}

func TestSenderBusyWait(t *testing.T) {
	radio := newFakeRadio()
	sender, _ := newTestSender(radio)
	radio.setBusy(true)
	go func() {
		time.Sleep(120 * time.Millisecond)
		radio.setBusy(false)
	}()
	start := time.Now()
	busy := sender.busyWait()
	assert.True(t, busy, "the medium was observed busy")
	assert.True(t, time.Since(start) >= 120*time.Millisecond, "waited out the carrier")
}

func TestSenderRandomSlots(t *testing.T) {
	radio := newFakeRadio()
	sender, _ := newTestSender(radio)
	assert.False(t, sender.RandomSlots(), "deterministic by default")
	sender.SetRandomSlots(true)
	assert.True(t, sender.RandomSlots(), "be the same.")
}
