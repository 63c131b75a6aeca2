package mac

import (
	"sync/atomic"

	"github.com/danieldin95/openmac/src/libom"
)

// Transmission carries one delivered payload and its addressing back
// to the host.
type Transmission struct {
	DestAddr uint16
	SrcAddr  uint16
	Buf      []byte
}

// LinkLayer is the host-facing 802.11-style service: Send, Recv,
// Status and Command. It owns the per-destination sequence counters
// and wires the sender, receiver and clock together over one radio.
type LinkLayer struct {
	radio     Radio
	mac       uint16
	clock     *Clock
	sender    *Sender
	receiver  *Receiver
	status    int32
	sequences map[uint16]uint16
	record    *libom.SafeStrInt64
	out       *libom.SubLogger
}

// NewLinkLayer builds the engine for one station. Beacons start
// disabled until enabled via Command 3.
func NewLinkLayer(radio Radio, mac uint16) *LinkLayer {
	l := &LinkLayer{
		radio:     radio,
		mac:       mac,
		sequences: make(map[uint16]uint16, 32),
		record:    libom.NewSafeStrInt64(),
		out:       libom.NewSubLogger("link"),
	}
	l.setStatus(StatusSuccess)
	if radio == nil {
		l.setStatus(StatusRadioInitFailed)
		return l
	}
	if mac == BroadcastAddr {
		l.setStatus(StatusBadMacAddress)
		return l
	}
	l.clock = NewClock(radio, -1, mac)
	l.sender = NewSender(radio, l.clock, l.record)
	l.sender.SetReport(l.setStatus)
	l.receiver = NewReceiver(radio, mac, l.sender, l.clock, l.record)
	return l
}

// Start launches the three actors. A link that failed construction
// stays inert.
func (l *LinkLayer) Start() {
	if l.sender == nil {
		l.out.Error("LinkLayer.Start: not initialized, status %s", StatusName(l.Status()))
		return
	}
	l.out.Info("LinkLayer.Start: station %04x", l.mac)
	l.sender.Start()
	l.receiver.Start()
}

func (l *LinkLayer) Stop() {
	if l.sender == nil {
		return
	}
	l.out.Info("LinkLayer.Stop: station %04x", l.mac)
	l.receiver.Stop()
	l.sender.Stop()
}

func (l *LinkLayer) setStatus(code int) {
	atomic.StoreInt32(&l.status, int32(code))
}

// Status returns the code of the most recent operation.
func (l *LinkLayer) Status() int {
	return int(atomic.LoadInt32(&l.status))
}

func (l *LinkLayer) Mac() uint16 {
	return l.mac
}

func (l *LinkLayer) Clock() *Clock {
	return l.clock
}

func (l *LinkLayer) Record() map[string]int64 {
	return l.record.Data()
}

// Send queues up to size bytes of data for dest and returns the count
// accepted, or 0 with a status code on rejection. The sequence counter
// for dest only advances once the frame is admitted, so a rejected
// send burns no number.
func (l *LinkLayer) Send(dest uint16, data []byte, size int) int {
	if l.sender == nil {
		return 0
	}
	if size < 0 {
		l.setStatus(StatusBadBufSize)
		return 0
	}
	if data == nil {
		l.setStatus(StatusBadAddress)
		return 0
	}
	count := len(data)
	if size < count {
		count = size
	}
	buf := make([]byte, count)
	copy(buf, data[:count])
	sequence := l.sequences[dest]
	frame := NewFrame(FrameData, false, sequence, dest, l.mac, buf)
	if err := l.sender.Send(frame); err != nil {
		l.out.Debug("LinkLayer.Send: %s", err)
		l.setStatus(StatusInsufficientBufferSpace)
		return 0
	}
	l.sequences[dest] = (sequence + 1) % MaxFrameNumber
	l.record.Add("txData", 1)
	return count
}

// Recv blocks for the next delivered frame and fills t. Returns the
// payload length, or -1 on a nil destination or a stopped link.
func (l *LinkLayer) Recv(t *Transmission) int {
	if l.receiver == nil {
		return -1
	}
	if t == nil {
		l.setStatus(StatusBadAddress)
		return -1
	}
	frame := l.receiver.Recv()
	if frame == nil {
		return -1
	}
	t.DestAddr = frame.DestAddr()
	t.SrcAddr = frame.SrcAddr()
	t.Buf = make([]byte, len(frame.Data()))
	copy(t.Buf, frame.Data())
	return len(t.Buf)
}

// Command is the configuration surface:
//
//	0        print help
//	1 0/1/2  debug level: none, errors, full
//	2 0/!=0  slot selection: random or deterministic maximum
//	3 n/-1   beacon interval in seconds; -1 disables
//
// Invalid values set IllegalArgument. Always returns 0.
func (l *LinkLayer) Command(cmd int, val int) int {
	switch cmd {
	case 0:
		libom.Print("Command 0: summarize all command options\n" +
			"Command 1: debug level\n" +
			"\tValue 0: no debug output\n" +
			"\tValue 1: errors only\n" +
			"\tValue 2: full debug output\n" +
			"Command 2: slot selection\n" +
			"\tValue 0: slots are selected randomly\n" +
			"\tAny other value: the maximum slot is always used\n" +
			"Command 3: beacon interval\n" +
			"\tValue -1: beacon frames are disabled\n" +
			"\tAny other (nonnegative) value: seconds between beacons\n")
	case 1:
		switch val {
		case 0:
			libom.SetLog(libom.INFO)
		case 1:
			libom.SetLog(libom.ERROR)
		case 2:
			libom.SetLog(libom.DEBUG)
		default:
			l.setStatus(StatusIllegalArgument)
		}
	case 2:
		if l.sender != nil {
			l.sender.SetRandomSlots(val == 0)
		}
	case 3:
		if val < -1 {
			l.setStatus(StatusIllegalArgument)
		} else if l.clock != nil {
			if val == -1 {
				l.clock.SetInterval(-1)
			} else {
				l.clock.SetInterval(int64(val) * 1000)
			}
		}
	default:
		l.setStatus(StatusIllegalArgument)
	}
	return 0
}
