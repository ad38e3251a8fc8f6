// Package bitio implements the two bit-pump flavours used by the LJPEG
// decompressor: a JPEG-style 8-bit big-endian stream with 0xFF 0x00 byte
// stuffing, and a plain big-endian 32-bit-word stream used by the
// Hasselblad flat-predictor path.
//
// Both pumps expose the same Pump interface: peek does not advance,
// consume advances exactly n bits, and reads past the end of the buffer
// yield zero bits without raising an error — callers that read past a
// truncated stream get a deterministic (if garbage) result rather than a
// panic, matching the behaviour of the original decoder this package is
// a reimplementation of.
package bitio

// Pump is implemented by JPEGPump and MSB32Pump.
type Pump interface {
	// PeekBits returns the next n bits (0 <= n <= 32) without advancing.
	PeekBits(n int) uint32
	// ConsumeBits advances the pump by exactly n bits.
	ConsumeBits(n int)
	// GetBits peeks and consumes n bits in one call.
	GetBits(n int) uint32
}

// acc is the shared 64-bit sliding-window register used by both pump
// flavours. Bits are packed MSB-first: the next unread bit is always the
// top bit of reg. nextByte supplies fresh bytes (and implements whatever
// byte-stuffing rule the flavour needs); once nextByte reports no more
// data, the register's unfilled low bits are simply zero, which is
// exactly the "past-end reads yield zeros" behaviour the pump promises.
type acc struct {
	reg      uint64
	nbits    uint // number of valid (real, not zero-padded) bits at the top of reg
	nextByte func() (byte, bool)
}

func (a *acc) fill() {
	for a.nbits <= 56 {
		b, ok := a.nextByte()
		if !ok {
			return
		}
		a.reg |= uint64(b) << (56 - a.nbits)
		a.nbits += 8
	}
}

func (a *acc) PeekBits(n int) uint32 {
	if n <= 0 {
		return 0
	}
	a.fill()
	return uint32(a.reg >> uint(64-n))
}

func (a *acc) ConsumeBits(n int) {
	if n <= 0 {
		return
	}
	a.fill()
	a.reg <<= uint(n)
	if uint(n) >= a.nbits {
		a.nbits = 0
	} else {
		a.nbits -= uint(n)
	}
}

func (a *acc) GetBits(n int) uint32 {
	v := a.PeekBits(n)
	a.ConsumeBits(n)
	return v
}
