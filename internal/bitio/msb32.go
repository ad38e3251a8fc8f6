package bitio

// MSB32Pump reads a plain big-endian bitstream with no byte stuffing,
// conceptually 32-bit words read most-significant-bit first. It is used
// by the Hasselblad flat-predictor LJPEG variant (§4.2), which packs its
// two parallel DC predictors without any marker escaping.
type MSB32Pump struct {
	data []byte
	pos  int
	a    acc
}

// NewMSB32Pump creates an MSB32Pump reading from data starting at offset 0.
func NewMSB32Pump(data []byte) *MSB32Pump {
	p := &MSB32Pump{data: data}
	p.a.nextByte = p.readByte
	return p
}

func (p *MSB32Pump) readByte() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	b := p.data[p.pos]
	p.pos++
	return b, true
}

func (p *MSB32Pump) PeekBits(n int) uint32 { return p.a.PeekBits(n) }
func (p *MSB32Pump) ConsumeBits(n int)     { p.a.ConsumeBits(n) }
func (p *MSB32Pump) GetBits(n int) uint32  { return p.a.GetBits(n) }
