package mac

import (
	"math/rand"
	"sync"
	"time"

	"github.com/danieldin95/openmac/src/libom"
)

const (
	// idleWaitTime is how often carrier state is re-polled.
	idleWaitTime = 50
	// ackWaitTime is how often the ack slot is re-polled.
	ackWaitTime = 50
	// queuePollTime bounds the wait for outbound work so due beacons
	// still get picked up on an idle link.
	queuePollTime = 50
	// SendQueueDepth is the outbound admission cap; a submit beyond it
	// is rejected with InsufficientBufferSpace.
	SendQueueDepth = 4
)

// ackTimeoutBase plus one slot time bounds the wait for an ACK.
var ackTimeoutBase int64 = 7500

// Sender drains the outbound queue with CSMA/CA: DIFS gating, binary
// exponential backoff, positive acknowledgement and retransmission.
// Due beacons are interleaved ahead of queued data.
type Sender struct {
	radio       Radio
	clock       *Clock
	cons        Constants
	queue       chan *Frame
	done        chan bool
	ack         *libom.SafeVar
	lock        sync.Mutex
	randomSlots bool
	report      func(code int)
	record      *libom.SafeStrInt64
	out         *libom.SubLogger
}

func NewSender(radio Radio, clock *Clock, record *libom.SafeStrInt64) *Sender {
	return &Sender{
		radio:  radio,
		clock:  clock,
		cons:   radio.Constants(),
		queue:  make(chan *Frame, SendQueueDepth),
		done:   make(chan bool),
		ack:    libom.NewSafeVar(),
		report: func(code int) {},
		record: record,
		out:    libom.NewSubLogger("sender"),
	}
}

// SetReport installs the status sink for delivery outcomes.
func (s *Sender) SetReport(report func(code int)) {
	s.report = report
}

// SetRandomSlots toggles random backoff slots; deterministic maximum
// slots make collisions reproducible when testing.
func (s *Sender) SetRandomSlots(random bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.randomSlots = random
}

func (s *Sender) RandomSlots() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.randomSlots
}

// Send admits a frame to the outbound queue.
func (s *Sender) Send(frame *Frame) error {
	select {
	case s.queue <- frame:
		return nil
	default:
		return libom.NewErr("insufficient buffer space")
	}
}

// SetAck deposits a received ACK into the shared slot.
func (s *Sender) SetAck(frame *Frame) {
	s.ack.Set(frame)
}

func (s *Sender) clearAck() {
	s.ack.Set(nil)
}

func (s *Sender) takeAck() *Frame {
	if value := s.ack.Get(); value != nil {
		return value.(*Frame)
	}
	return nil
}

func (s *Sender) Start() {
	libom.Go(s.Loop)
}

func (s *Sender) Loop() {
	for {
		select {
		case <-s.done:
			return
		default:
		}
		if beacon := s.clock.NextBeacon(); beacon != nil {
			s.record.Add("txBeacon", 1)
			s.transmit(beacon)
			continue
		}
		select {
		case <-s.done:
			return
		case frame := <-s.queue:
			if s.transmit(frame) {
				s.record.Add("delivered", 1)
				s.report(StatusTxDelivered)
			} else {
				s.record.Add("failed", 1)
				s.report(StatusTxFailed)
			}
		case <-time.After(queuePollTime * time.Millisecond):
		}
	}
}

// transmit runs the attempt loop for one frame: DIFS wait, backoff,
// transmission, ACK wait, and on timeout a retransmission with doubled
// contention window until delivered or the retry limit is spent.
func (s *Sender) transmit(frame *Frame) bool {
	cw := s.cons.CWMin + 1
	retry := 0
	for {
		busy := s.busyWait()
		if busy {
			s.backoff(cw)
		}
		s.clearAck()
		if s.out.Has(libom.DEBUG) {
			s.out.Debug("Sender.transmit: %s", frame)
		}
		s.radio.Transmit(frame.Bytes())
		if s.awaitAck(frame) {
			return true
		}
		retry++
		if retry >= s.cons.RetryLimit {
			s.out.Warn("Sender.transmit: %d gave up after %d tries", frame.Number(), retry)
			return false
		}
		s.out.Debug("Sender.transmit: %d timed out, resending", frame.Number())
		frame = NewFrame(frame.Type(), true, frame.Number(), frame.DestAddr(), frame.SrcAddr(), frame.Data())
		s.record.Add("txRetry", 1)
		cw *= 2
		if cw > s.cons.CWMax+1 {
			cw = s.cons.CWMax + 1
		}
	}
}

// busyWait blocks until the medium has been idle for a whole DIFS,
// reporting whether it was ever observed busy. The DIFS sleep is
// rounded up to the next 50 ms boundary to line up with the polling
// granularity.
func (s *Sender) busyWait() bool {
	busy := false
	for {
		for s.radio.InUse() {
			busy = true
			time.Sleep(idleWaitTime * time.Millisecond)
		}
		wait := s.cons.DIFS() + (50 - s.clock.Time()%50)
		time.Sleep(time.Duration(wait) * time.Millisecond)
		if !s.radio.InUse() {
			return busy
		}
	}
}

// backoff waits a number of slot times drawn from [0, cw), or cw-1 in
// deterministic mode. A slot interrupted by carrier goes back through
// the DIFS wait.
func (s *Sender) backoff(cw int) {
	slots := cw - 1
	if s.RandomSlots() {
		slots = rand.Intn(cw)
	}
	for count := slots; count > 0; count-- {
		time.Sleep(time.Duration(s.cons.SlotTime) * time.Millisecond)
		if s.radio.InUse() {
			s.busyWait()
		}
	}
}

// awaitAck polls the ack slot until a matching ACK arrives or the
// timeout expires. Broadcast frames are done the moment they hit the
// air.
func (s *Sender) awaitAck(frame *Frame) bool {
	if frame.IsBroadcast() {
		return true
	}
	timeout := s.clock.Time() + ackTimeoutBase + s.cons.SlotTime
	for {
		if ack := s.takeAck(); ack != nil && ack.Number() == frame.Number() {
			return true
		}
		if s.clock.Time() >= timeout {
			return false
		}
		time.Sleep(ackWaitTime * time.Millisecond)
	}
}

func (s *Sender) Stop() {
	close(s.done)
}
