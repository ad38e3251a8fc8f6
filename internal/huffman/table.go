// Package huffman implements the canonical-Huffman decode tables used by
// the LJPEG bitstream (§4.1). A table is built once per DHT segment from
// a length histogram (bits[1..16]) and a value table (huffval), and is
// then shared read-only by every decode thread for the life of the scan.
//
// Decoding a single difference walks a root lookup table sized to the
// longest code, with a 13-bit prefix cache in front of it so that the
// overwhelming majority of real-world codes (length + magnitude bits
// under 13) resolve in one table lookup instead of two.
package huffman

import (
	"errors"

	"github.com/rawforge/rawcore/internal/bitio"
)

// MaxCodeLength is the longest canonical Huffman code the table supports,
// per the JPEG DHT segment's 16-entry bit-length histogram.
const MaxCodeLength = 16

// decodeCacheBits is the width of the fast-path prefix cache.
const decodeCacheBits = 13

// Errors returned by New.
var (
	ErrEmptyCodeLengths = errors.New("huffman: all code lengths are zero")
	ErrInvalidTable     = errors.New("huffman: code lengths do not form a valid tree")
)

type tableEntry struct {
	codeLen  uint8 // bits consumed by the Huffman code itself
	category uint8 // huffval: 0-16, the count of following magnitude bits (16 is special)
	shift    uint8 // left shift applied to the decoded magnitude for wide-precision streams
}

type cacheEntry struct {
	valid bool
	bits  uint8
	diff  int32
}

// Table is a resolved canonical-Huffman decode table.
type Table struct {
	nbits  int
	table  []tableEntry
	cache  [1 << decodeCacheBits]cacheEntry
	dngBug bool
}

// New builds a Table from a JPEG DHT-style length histogram (bits[1..16],
// bits[0] is unused) and a parallel huffval/shiftval table indexed by
// decode position. shiftval may be nil, in which case every shift is 0.
// dngBug preserves the legacy behaviour of reading and discarding 16 extra
// bits whenever a length-16 ("category 16") code is decoded (§9).
func New(bits [MaxCodeLength + 1]int, huffval []int, shiftval []int, dngBug bool) (*Table, error) {
	t := &Table{dngBug: dngBug}

	nbits := MaxCodeLength
	for i := 0; i < MaxCodeLength; i++ {
		if bits[MaxCodeLength-i] != 0 {
			break
		}
		nbits--
	}
	if nbits == 0 {
		return nil, ErrEmptyCodeLengths
	}
	t.nbits = nbits
	t.table = make([]tableEntry, 1<<uint(nbits))

	h := 0
	pos := 0
	for length := 0; length < nbits; length++ {
		count := bits[length+1]
		if count > (1 << uint(length+1)) {
			return nil, ErrInvalidTable
		}
		for c := 0; c < count; c++ {
			if pos >= len(huffval) {
				return nil, ErrInvalidTable
			}
			shift := 0
			if shiftval != nil && pos < len(shiftval) {
				shift = shiftval[pos]
			}
			entry := tableEntry{
				codeLen:  uint8(length + 1),
				category: uint8(huffval[pos]),
				shift:    uint8(shift),
			}
			span := 1 << uint(nbits-length-1)
			if h+span > len(t.table) {
				return nil, ErrInvalidTable
			}
			for k := 0; k < span; k++ {
				t.table[h] = entry
				h++
			}
			pos++
		}
	}

	t.buildCache()
	return t, nil
}

// mockPump is a 13-known-bit scratch register used only while pre-computing
// the prefix cache: its "real" bits are the cache index, everything past
// them reads as zero, and avail goes negative the instant a decode would
// need to look further than the 13-bit window.
type mockPump struct {
	reg   uint64
	avail int
}

func (m *mockPump) peek(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return uint32(m.reg >> uint(64-n))
}

func (m *mockPump) consume(n int) {
	m.reg <<= uint(n)
	m.avail -= n
}

func (t *Table) buildCache() {
	for i := 0; i < (1 << decodeCacheBits); i++ {
		m := &mockPump{reg: uint64(i) << (64 - decodeCacheBits), avail: decodeCacheBits}
		entry := t.table[m.peek(t.nbits)]
		m.consume(int(entry.codeLen))
		diff := t.decodeDiff(entry, mockPumpAdapter{m})
		if m.avail >= 0 {
			t.cache[i] = cacheEntry{valid: true, bits: uint8(decodeCacheBits - m.avail), diff: diff}
		}
	}
}

// mockPumpAdapter lets decodeDiff's bitio.Pump parameter drive the cache
// pre-computation through the same code path used for real decoding.
type mockPumpAdapter struct{ m *mockPump }

func (a mockPumpAdapter) PeekBits(n int) uint32 { return a.m.peek(n) }
func (a mockPumpAdapter) ConsumeBits(n int)     { a.m.consume(n) }
func (a mockPumpAdapter) GetBits(n int) uint32 {
	v := a.m.peek(n)
	a.m.consume(n)
	return v
}

// Decode reads one signed difference from pump. The fast path consults the
// 13-bit prefix cache; codes whose decode needs more than 13 bits fall
// through to a direct table walk.
func (t *Table) Decode(pump bitio.Pump) int32 {
	code := pump.PeekBits(decodeCacheBits)
	if c := t.cache[code]; c.valid {
		pump.ConsumeBits(int(c.bits))
		return c.diff
	}
	entry := t.lookup(pump)
	return t.decodeDiff(entry, pump)
}

// lookup reads the root table entry selecting this code and consumes its
// code-length bits, leaving the magnitude bits for decodeDiff.
func (t *Table) lookup(pump bitio.Pump) tableEntry {
	code := pump.PeekBits(t.nbits)
	entry := t.table[code]
	pump.ConsumeBits(int(entry.codeLen))
	return entry
}

// Len consumes just the Huffman code bits and returns the decoded
// category and shift, without reading the magnitude bits that follow.
// This is needed by predictor schemes (e.g. Hasselblad's two parallel
// accumulators) whose bitstream interleaves multiple codes' lengths
// before any of their magnitude bits.
func (t *Table) Len(pump bitio.Pump) (category, shift uint8) {
	entry := t.lookup(pump)
	return entry.category, entry.shift
}

// DiffFromLen reads the magnitude bits for a (category, shift) pair
// already obtained from Len and returns the signed difference.
func (t *Table) DiffFromLen(category, shift uint8, pump bitio.Pump) int32 {
	return t.decodeDiff(tableEntry{category: category, shift: shift}, pump)
}

// decodeDiff implements §4.1's huff_diff: category 0 is a zero difference,
// category 16 is the fixed sentinel -32768 (optionally preceded by the
// legacy DNG 16-bit discard), and any other category reads that many
// magnitude bits and reconstructs the signed value with the half-round
// shift correction used by wide-precision raw streams.
func (t *Table) decodeDiff(entry tableEntry, pump bitio.Pump) int32 {
	switch entry.category {
	case 0:
		return 0
	case 16:
		if t.dngBug {
			pump.ConsumeBits(16)
		}
		return -32768
	default:
		length := int32(entry.category)
		shift := int32(entry.shift)
		fulllen := length + shift
		bits := int32(pump.GetBits(int(length)))
		diff := ((bits << 1) + 1) << uint(shift) >> 1
		if diff&(1<<uint(fulllen-1)) == 0 {
			sub := int32(1) << uint(fulllen)
			if shift == 0 {
				sub--
			}
			diff -= sub
		}
		return diff
	}
}
