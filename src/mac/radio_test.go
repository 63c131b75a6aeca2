package mac

import (
	"sync"
	"time"

	"github.com/danieldin95/openmac/src/libom"
)

// fakeRadio scripts the physical layer for tests: transmissions are
// recorded, received frames come from a queue, and the clock either
// follows wall time or a manual value.
type fakeRadio struct {
	lock    sync.Mutex
	epoch   time.Time
	manual  bool
	now     int64
	busy    bool
	sent    [][]byte
	inbound *libom.Queue
	cons    Constants
}

func newFakeRadio() *fakeRadio {
	return &fakeRadio{
		epoch:   time.Now(),
		inbound: libom.NewQueue(),
		cons: Constants{
			SIFSTime:   1,
			SlotTime:   1,
			CWMin:      3,
			CWMax:      7,
			RetryLimit: 2,
		},
	}
}

func (r *fakeRadio) Transmit(data []byte) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	frame := make([]byte, len(data))
	copy(frame, data)
	r.sent = append(r.sent, frame)
	return len(data)
}

func (r *fakeRadio) Receive() []byte {
	if value := r.inbound.Take(); value != nil {
		return value.([]byte)
	}
	return nil
}

func (r *fakeRadio) InUse() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.busy
}

func (r *fakeRadio) Clock() int64 {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.manual {
		return r.now
	}
	return time.Since(r.epoch).Milliseconds()
}

func (r *fakeRadio) Constants() Constants {
	return r.cons
}

func (r *fakeRadio) setClock(now int64) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.manual = true
	r.now = now
}

func (r *fakeRadio) setBusy(busy bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.busy = busy
}

func (r *fakeRadio) sentCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.sent)
}

func (r *fakeRadio) sentFrame(i int) *Frame {
	r.lock.Lock()
	defer r.lock.Unlock()
	if i >= len(r.sent) {
		return nil
	}
	frame, _ := DecodeFrame(r.sent[i])
	return frame
}
