package mac

// Constants are the medium parameters a radio advertises.
type Constants struct {
	SIFSTime   int64 `json:"sifs"` // ms
	SlotTime   int64 `json:"slot"` // ms
	CWMin      int   `json:"cwMin"`
	CWMax      int   `json:"cwMax"`
	RetryLimit int   `json:"retryLimit"`
}

func DefaultConstants() Constants {
	return Constants{
		SIFSTime:   100,
		SlotTime:   200,
		CWMin:      3,
		CWMax:      31,
		RetryLimit: 5,
	}
}

// DIFS is the idle period required before a normal transmission.
func (c Constants) DIFS() int64 {
	return c.SIFSTime + 2*c.SlotTime
}

// Radio is the physical layer underneath the MAC engine. Transmit is
// fire-and-forget, Receive blocks until a whole frame arrived, InUse
// reports instantaneous carrier state and Clock is a monotonic
// millisecond counter. Implementations must be safe for concurrent use;
// both the sender and the acknowledger transmit on the same radio.
type Radio interface {
	Transmit(data []byte) int
	Receive() []byte
	InUse() bool
	Clock() int64
	Constants() Constants
}
