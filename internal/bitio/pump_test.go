package bitio

import "testing"

func TestJPEGPumpReadsRawBits(t *testing.T) {
	// 0xA5 0x3C = 1010_0101 0011_1100
	p := NewJPEGPump([]byte{0xA5, 0x3C})

	if v := p.GetBits(4); v != 0xA {
		t.Fatalf("GetBits(4) = 0x%x, want 0xA", v)
	}
	if v := p.GetBits(4); v != 0x5 {
		t.Fatalf("GetBits(4) = 0x%x, want 0x5", v)
	}
	if v := p.GetBits(8); v != 0x3C {
		t.Fatalf("GetBits(8) = 0x%x, want 0x3C", v)
	}
}

func TestJPEGPumpByteStuffingIsRemoved(t *testing.T) {
	// 0xFF 0x00 is a literal 0xFF byte in the entropy-coded stream.
	p := NewJPEGPump([]byte{0xFF, 0x00, 0x12})
	if v := p.GetBits(8); v != 0xFF {
		t.Fatalf("GetBits(8) = 0x%x, want 0xFF (stuffed 0x00 must be dropped)", v)
	}
	if v := p.GetBits(8); v != 0x12 {
		t.Fatalf("GetBits(8) = 0x%x, want 0x12", v)
	}
}

func TestJPEGPumpStopsAtMarker(t *testing.T) {
	// 0xFF 0xD9 is EOI: not a stuffed byte, so the pump must not consume it
	// as data and must yield zeros for anything read past this point.
	p := NewJPEGPump([]byte{0x80, 0xFF, 0xD9})
	if v := p.GetBits(8); v != 0x80 {
		t.Fatalf("GetBits(8) = 0x%x, want 0x80", v)
	}
	if v := p.GetBits(16); v != 0 {
		t.Fatalf("GetBits(16) past marker = 0x%x, want 0 (zeros, no panic)", v)
	}
}

func TestJPEGPumpPeekDoesNotAdvance(t *testing.T) {
	p := NewJPEGPump([]byte{0xF0, 0x0F})
	a := p.PeekBits(8)
	b := p.PeekBits(8)
	if a != b {
		t.Fatalf("peek is not idempotent: %x != %x", a, b)
	}
	p.ConsumeBits(8)
	if v := p.GetBits(8); v != 0x0F {
		t.Fatalf("GetBits(8) after consume = 0x%x, want 0x0F", v)
	}
}

func TestJPEGPumpPastEndYieldsZeros(t *testing.T) {
	p := NewJPEGPump([]byte{0x01})
	p.ConsumeBits(8)
	if v := p.GetBits(32); v != 0 {
		t.Fatalf("GetBits(32) past end = %d, want 0", v)
	}
}

func TestMSB32PumpBigEndianWords(t *testing.T) {
	p := NewMSB32Pump([]byte{0x12, 0x34, 0x56, 0x78})
	if v := p.GetBits(32); v != 0x12345678 {
		t.Fatalf("GetBits(32) = 0x%x, want 0x12345678", v)
	}
}

func TestMSB32PumpDoesNotByteStuff(t *testing.T) {
	// MSB32 has no stuffing rule, so a literal 0xFF 0x00 reads as-is.
	p := NewMSB32Pump([]byte{0xFF, 0x00, 0x00, 0x00})
	if v := p.GetBits(16); v != 0xFF00 {
		t.Fatalf("GetBits(16) = 0x%x, want 0xFF00 (no byte destuffing)", v)
	}
}

func TestMSB32PumpPastEndYieldsZeros(t *testing.T) {
	p := NewMSB32Pump([]byte{0xAB})
	p.ConsumeBits(8)
	if v := p.GetBits(24); v != 0 {
		t.Fatalf("GetBits(24) past end = %d, want 0", v)
	}
}
