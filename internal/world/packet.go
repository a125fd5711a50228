package world

import (
	"encoding/binary"
	"math"
)

// Packet is an outbound message buffer addressed by opcode.
type Packet struct {
	opcode uint16
	data   []byte
}

// NewPacket creates an empty packet with room for size payload bytes.
func NewPacket(opcode uint16, size int) *Packet {
	if size < 0 {
		size = 0
	}
	return &Packet{opcode: opcode, data: make([]byte, 0, size)}
}

// Opcode returns the packet opcode.
func (p *Packet) Opcode() uint16 { return p.opcode }

// Size returns the number of payload bytes written so far.
func (p *Packet) Size() int { return len(p.data) }

// Bytes returns a copy of the payload.
func (p *Packet) Bytes() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

// WriteUint8 appends one byte.
func (p *Packet) WriteUint8(v uint8) { p.data = append(p.data, v) }

// WriteUint32 appends a little-endian uint32.
func (p *Packet) WriteUint32(v uint32) { p.data = binary.LittleEndian.AppendUint32(p.data, v) }

// WriteUint64 appends a little-endian uint64.
func (p *Packet) WriteUint64(v uint64) { p.data = binary.LittleEndian.AppendUint64(p.data, v) }

// WriteFloat appends a little-endian IEEE-754 float32.
func (p *Packet) WriteFloat(v float32) { p.WriteUint32(math.Float32bits(v)) }

// WriteGuid appends the full 64-bit identifier.
func (p *Packet) WriteGuid(g ObjectGuid) { p.WriteUint64(uint64(g)) }

// WriteString appends s followed by a NUL terminator.
func (p *Packet) WriteString(s string) {
	p.data = append(p.data, s...)
	p.data = append(p.data, 0)
}
