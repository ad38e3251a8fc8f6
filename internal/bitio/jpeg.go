package bitio

// JPEGPump reads an 8-bit big-endian entropy-coded bitstream with JPEG byte
// stuffing: every literal 0xFF byte in the stream is followed by a stuffed
// 0x00 byte that must be discarded. A 0xFF byte followed by anything else
// is a marker (e.g. the end of the scan) and ends the entropy-coded data;
// the pump reports end-of-stream from that point on rather than consuming
// the marker.
type JPEGPump struct {
	data []byte
	pos  int
	a    acc
}

// NewJPEGPump creates a JPEGPump reading from data starting at offset 0.
func NewJPEGPump(data []byte) *JPEGPump {
	p := &JPEGPump{data: data}
	p.a.nextByte = p.readByte
	return p
}

func (p *JPEGPump) readByte() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	b := p.data[p.pos]
	if b == 0xFF {
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == 0x00 {
			p.pos += 2
			return 0xFF, true
		}
		// A marker: stop feeding bits from here on.
		return 0, false
	}
	p.pos++
	return b, true
}

func (p *JPEGPump) PeekBits(n int) uint32 { return p.a.PeekBits(n) }
func (p *JPEGPump) ConsumeBits(n int)     { p.a.ConsumeBits(n) }
func (p *JPEGPump) GetBits(n int) uint32  { return p.a.GetBits(n) }
