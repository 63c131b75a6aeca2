package mac

import (
	"time"

	"github.com/danieldin95/openmac/src/libom"
)

// Acknowledger transmits ACK frames after a SIFS wait. It deliberately
// skips carrier sense: SIFS is shorter than DIFS, so a pending ACK
// claims the medium ahead of any contending data sender.
type Acknowledger struct {
	radio Radio
	queue *libom.Queue
	out   *libom.SubLogger
}

func NewAcknowledger(radio Radio) *Acknowledger {
	return &Acknowledger{
		radio: radio,
		queue: libom.NewQueue(),
		out:   libom.NewSubLogger("acker"),
	}
}

func (a *Acknowledger) Start() {
	libom.Go(a.Loop)
}

func (a *Acknowledger) Loop() {
	sifs := time.Duration(a.radio.Constants().SIFSTime) * time.Millisecond
	for {
		value := a.queue.Take()
		if value == nil {
			return
		}
		ack := value.(*Frame)
		time.Sleep(sifs)
		a.radio.Transmit(ack.Bytes())
		if a.out.Has(libom.DEBUG) {
			a.out.Debug("Acknowledger.Loop: sent %s", ack)
		}
	}
}

// Send queues an ACK for transmission.
func (a *Acknowledger) Send(ack *Frame) {
	if err := a.queue.Put(ack); err != nil {
		a.out.Warn("Acknowledger.Send: %s", err)
	}
}

func (a *Acknowledger) Stop() {
	a.queue.Close()
}
