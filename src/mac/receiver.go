package mac

import (
	"github.com/danieldin95/openmac/src/libom"
)

// Receiver listens on the radio, filters frames by CRC and address,
// and dispatches by type: ACKs to the sender's slot, beacons to the
// clock, everything else to the delivery queue. Each delivered unicast
// frame gets an ACK queued to the acknowledger.
type Receiver struct {
	radio    Radio
	mac      uint16
	sender   *Sender
	clock    *Clock
	acker    *Acknowledger
	delivery *libom.Queue
	record   *libom.SafeStrInt64
	out      *libom.SubLogger
}

func NewReceiver(radio Radio, mac uint16, sender *Sender, clock *Clock, record *libom.SafeStrInt64) *Receiver {
	return &Receiver{
		radio:    radio,
		mac:      mac,
		sender:   sender,
		clock:    clock,
		acker:    NewAcknowledger(radio),
		delivery: libom.NewQueue(),
		record:   record,
		out:      libom.NewSubLogger("receiver"),
	}
}

func (r *Receiver) Start() {
	r.acker.Start()
	libom.Go(r.Loop)
}

func (r *Receiver) Loop() {
	for {
		raw := r.radio.Receive()
		if raw == nil {
			return
		}
		frame, err := DecodeFrame(raw)
		if err != nil {
			r.record.Add("dropped", 1)
			r.out.Debug("Receiver.Loop: %s", err)
			continue
		}
		if !frame.ChecksumValid() {
			r.record.Add("dropped", 1)
			r.out.Debug("Receiver.Loop: bad checksum %s", frame)
			continue
		}
		if !frame.IsBroadcast() && frame.DestAddr() != r.mac {
			continue
		}
		r.dispatch(frame)
	}
}

func (r *Receiver) dispatch(frame *Frame) {
	if r.out.Has(libom.DEBUG) {
		r.out.Debug("Receiver.dispatch: %s", frame)
	}
	switch frame.Type() {
	case FrameAck:
		r.record.Add("rxAck", 1)
		r.sender.SetAck(frame)
	case FrameBeacon:
		r.record.Add("rxBeacon", 1)
		r.clock.AbsorbBeacon(frame)
	default:
		r.record.Add("rxData", 1)
		if err := r.delivery.Put(frame); err != nil {
			r.out.Warn("Receiver.dispatch: %s", err)
			return
		}
		// The ACK goes out only after the frame is queued for the
		// host, so a lost ACK never hides a delivered frame.
		if !frame.IsBroadcast() {
			ack := NewFrame(FrameAck, false, frame.Number(), frame.SrcAddr(), frame.DestAddr(), nil)
			r.record.Add("ackSent", 1)
			r.acker.Send(ack)
		}
	}
}

// Recv blocks until the next delivered frame, returning nil once the
// receiver is stopped.
func (r *Receiver) Recv() *Frame {
	if value := r.delivery.Take(); value != nil {
		return value.(*Frame)
	}
	return nil
}

func (r *Receiver) Stop() {
	r.delivery.Close()
	r.acker.Stop()
}
