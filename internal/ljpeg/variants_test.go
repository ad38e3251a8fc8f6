package ljpeg

import (
	"testing"

	"github.com/rawforge/rawcore/internal/huffman"
)

func zeroTable(t *testing.T) *huffman.Table {
	t.Helper()
	var bits [huffman.MaxCodeLength + 1]int
	bits[1] = 1
	tbl, err := huffman.New(bits, []int{0}, nil, false)
	if err != nil {
		t.Fatalf("huffman.New: %v", err)
	}
	return tbl
}

func TestDecodeHasselbladFlatZeroDiffsHoldSeed(t *testing.T) {
	tbl := zeroTable(t)
	d := &Decompressor{
		Buffer: make([]byte, 64),
		SOF:    SOF{Width: 2, Height: 1, Precision: 16, Components: []Component{{DCTable: tbl}}},
	}
	out := make([]uint16, 4)
	if err := d.DecodeHasselblad(out, 4); err != nil {
		t.Fatalf("DecodeHasselblad: %v", err)
	}
	for i, v := range out {
		if v != 0x8000 {
			t.Fatalf("out[%d] = %#x, want 0x8000", i, v)
		}
	}
}

func TestDecodeHasselbladRejectsMissingComponent(t *testing.T) {
	d := &Decompressor{SOF: SOF{}}
	if err := d.DecodeHasselblad(make([]uint16, 4), 4); err != ErrNoComponents {
		t.Fatalf("DecodeHasselblad() = %v, want ErrNoComponents", err)
	}
}

func TestSaturateUint16Clamps(t *testing.T) {
	if v := saturateUint16(-1); v != 0 {
		t.Fatalf("saturateUint16(-1) = %d, want 0", v)
	}
	if v := saturateUint16(1 << 20); v != 0xFFFF {
		t.Fatalf("saturateUint16(1<<20) = %#x, want 0xFFFF", v)
	}
	if v := saturateUint16(42); v != 42 {
		t.Fatalf("saturateUint16(42) = %d, want 42", v)
	}
}

func TestDecodePredictor6FlatZeroDiffsHoldBase(t *testing.T) {
	tbl := zeroTable(t)
	d := &Decompressor{
		Buffer: make([]byte, 64),
		SOF:    SOF{Width: 3, Height: 2, Precision: 12, Components: []Component{{DCTable: tbl}}},
	}
	out := make([]uint16, 6)
	if err := d.DecodePredictor6Flat(out, 3, 2); err != nil {
		t.Fatalf("DecodePredictor6Flat: %v", err)
	}
	want := uint16(1 << 11)
	for i, v := range out {
		if v != want {
			t.Fatalf("out[%d] = %d, want %d", i, v, want)
		}
	}
}

func TestDecodeDJIInterleavedDeinterleavesRows(t *testing.T) {
	tbl := zeroTable(t)
	d := &Decompressor{
		Buffer: make([]byte, 64),
		SOF:    SOF{Width: 4, Height: 2, Precision: 12, Components: []Component{{DCTable: tbl}}},
	}
	stripWidth := 2
	out := make([]uint16, stripWidth*4)
	if err := d.DecodeDJIInterleaved(out, 0, stripWidth, 2); err != nil {
		t.Fatalf("DecodeDJIInterleaved: %v", err)
	}
	want := uint16(1 << 11)
	for i, v := range out {
		if v != want {
			t.Fatalf("out[%d] = %d, want %d", i, v, want)
		}
	}
}
