package mac

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/danieldin95/openmac/src/libom"
)

const (
	// BroadcastAddr is delivered to every station and never acknowledged.
	BroadcastAddr uint16 = 0xFFFF
	// MinFrameSize is header (6) plus trailing CRC (4).
	MinFrameSize = 10
	// MaxFrameNumber is the 12-bit sequence space.
	MaxFrameNumber = 1 << 12
)

type FrameType uint8

const (
	FrameData   FrameType = 0b000
	FrameAck    FrameType = 0b001
	FrameBeacon FrameType = 0b010
	FrameCts    FrameType = 0b100
	FrameRts    FrameType = 0b101
)

var frameTypeNames = map[FrameType]string{
	FrameData:   "DATA",
	FrameAck:    "ACK",
	FrameBeacon: "BEACON",
	FrameCts:    "CTS",
	FrameRts:    "RTS",
}

func (t FrameType) String() string {
	if name, ok := frameTypeNames[t]; ok {
		return name
	}
	return "DATA"
}

// FrameTypeOf maps a 3-bit code to its type. Unknown codes parse as
// DATA so a decoder never fails on the type field.
func FrameTypeOf(value uint8) FrameType {
	t := FrameType(value & 0b111)
	if _, ok := frameTypeNames[t]; ok {
		return t
	}
	return FrameData
}

// Frame is one unit on the air:
//   | control (2) | destAddr (2) | srcAddr (2) | payload | crc (4) |
// big-endian throughout. The control field packs type (bits 15..13),
// the retransmission flag (bit 12) and the frame number (bits 11..0).
type Frame struct {
	ftype      FrameType
	retransmit bool
	number     uint16
	destAddr   uint16
	srcAddr    uint16
	data       []byte
	crc        uint32
	raw        []byte
}

// NewFrame builds an outgoing frame and seals it with CRC-32 over
// header plus payload. The payload is copied, not aliased.
func NewFrame(ftype FrameType, retransmit bool, number, destAddr, srcAddr uint16, data []byte) *Frame {
	f := &Frame{
		ftype:      ftype,
		retransmit: retransmit,
		number:     number & (MaxFrameNumber - 1),
		destAddr:   destAddr,
		srcAddr:    srcAddr,
		data:       make([]byte, len(data)),
	}
	copy(f.data, data)
	raw := make([]byte, MinFrameSize+len(f.data))
	binary.BigEndian.PutUint16(raw[0:2], f.control())
	binary.BigEndian.PutUint16(raw[2:4], f.destAddr)
	binary.BigEndian.PutUint16(raw[4:6], f.srcAddr)
	copy(raw[6:], f.data)
	f.crc = crc32.ChecksumIEEE(raw[:len(raw)-4])
	binary.BigEndian.PutUint32(raw[len(raw)-4:], f.crc)
	f.raw = raw
	return f
}

// DecodeFrame parses a received byte sequence. Anything of at least
// MinFrameSize decodes; the caller checks ChecksumValid separately so
// corrupt frames can still be traced.
func DecodeFrame(raw []byte) (*Frame, error) {
	if len(raw) < MinFrameSize {
		return nil, libom.NewErr("malformed frame: %d bytes", len(raw))
	}
	control := binary.BigEndian.Uint16(raw[0:2])
	f := &Frame{
		ftype:      FrameTypeOf(uint8(control >> 13)),
		retransmit: control&0x1000 != 0,
		number:     control & 0x0FFF,
		destAddr:   binary.BigEndian.Uint16(raw[2:4]),
		srcAddr:    binary.BigEndian.Uint16(raw[4:6]),
		crc:        binary.BigEndian.Uint32(raw[len(raw)-4:]),
		raw:        raw,
	}
	f.data = raw[6 : len(raw)-4]
	return f, nil
}

func (f *Frame) control() uint16 {
	control := uint16(f.ftype) << 13
	if f.retransmit {
		control |= 0x1000
	}
	return control | f.number&0x0FFF
}

// ChecksumValid recomputes the CRC over everything but the trailing
// four bytes and compares with the stored value.
func (f *Frame) ChecksumValid() bool {
	return crc32.ChecksumIEEE(f.raw[:len(f.raw)-4]) == f.crc
}

func (f *Frame) Type() FrameType {
	return f.ftype
}

func (f *Frame) Retransmit() bool {
	return f.retransmit
}

func (f *Frame) Number() uint16 {
	return f.number
}

func (f *Frame) DestAddr() uint16 {
	return f.destAddr
}

func (f *Frame) SrcAddr() uint16 {
	return f.srcAddr
}

func (f *Frame) Data() []byte {
	return f.data
}

func (f *Frame) Bytes() []byte {
	return f.raw
}

func (f *Frame) IsBroadcast() bool {
	return f.destAddr == BroadcastAddr
}

func (f *Frame) String() string {
	return fmt.Sprintf("[[%s, %t, %d], [%04x, %04x], [%db], %08x]",
		f.ftype, f.retransmit, f.number, f.destAddr, f.srcAddr, len(f.data), f.crc)
}
