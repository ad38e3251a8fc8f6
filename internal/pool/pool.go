// Package pool provides bucketed sync.Pool instances for reducing allocations
// in hot paths. Buffers are organized by size class to minimize waste.
package pool

import "sync"

// Size classes for bucketed pools.
const (
	Size256B = 256
	Size1K   = 1024
	Size4K   = 4096
	Size16K  = 16384
	Size64K  = 65536
	Size256K = 262144
	Size1M   = 1048576
	Size4M   = 4194304
	Size16M  = 16777216
)

// bucketIndex returns the pool index for a given size.
func bucketIndex(size int) int {
	switch {
	case size <= Size256B:
		return 0
	case size <= Size1K:
		return 1
	case size <= Size4K:
		return 2
	case size <= Size16K:
		return 3
	case size <= Size64K:
		return 4
	case size <= Size256K:
		return 5
	case size <= Size1M:
		return 6
	case size <= Size4M:
		return 7
	default:
		return 8
	}
}

var sizes = [9]int{Size256B, Size1K, Size4K, Size16K, Size64K, Size256K, Size1M, Size4M, Size16M}

var pools [9]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// Get returns a byte slice of at least the requested size from the pool.
// The returned slice has length == size and may have a larger capacity.
// The caller must call Put when done.
func Get(size int) []byte {
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// Put returns a byte slice to the pool. The slice must have been obtained
// from Get. Slices smaller than Size256B are not pooled.
func Put(b []byte) {
	c := cap(b)
	if c < Size256B {
		return
	}
	idx := bucketIndex(c)
	b = b[:c]
	pools[idx].Put(&b)
}

// float32Pools buckets []float32 scratch buffers used by the demosaic and
// developer stages (one tile row, one full-image plane, ...). Indexed the
// same way as the byte pools but counting float32 elements rather than bytes.
var float32Pools [9]sync.Pool

func init() {
	for i := range float32Pools {
		n := sizes[i] / 4
		float32Pools[i] = sync.Pool{
			New: func() any {
				s := make([]float32, n)
				return &s
			},
		}
	}
}

// GetFloat32 returns a float32 slice of at least the requested length from
// the pool, zeroed. The caller must call PutFloat32 when done.
func GetFloat32(length int) []float32 {
	idx := bucketIndex(length * 4)
	sp := float32Pools[idx].Get().(*[]float32)
	s := *sp
	if cap(s) < length {
		s = make([]float32, length)
		*sp = s
		return s
	}
	s = s[:length]
	for i := range s {
		s[i] = 0
	}
	return s
}

// PutFloat32 returns a float32 slice to the pool. The slice must have been
// obtained from GetFloat32.
func PutFloat32(s []float32) {
	c := cap(s)
	if c*4 < Size256B {
		return
	}
	idx := bucketIndex(c * 4)
	s = s[:c]
	float32Pools[idx].Put(&s)
}

// uint16Pools buckets []uint16 scratch buffers used by the LJPEG decoder's
// full-frame intermediate rows. Indexed the same way as the byte pools but
// counting uint16 elements rather than bytes.
var uint16Pools [9]sync.Pool

func init() {
	for i := range uint16Pools {
		n := sizes[i] / 2
		uint16Pools[i] = sync.Pool{
			New: func() any {
				s := make([]uint16, n)
				return &s
			},
		}
	}
}

// GetUint16 returns a uint16 slice of at least the requested length from
// the pool, zeroed. Used for raw sensor sample rows decoded straight off
// the LJPEG bitstream. The caller must call PutUint16 when done.
func GetUint16(length int) []uint16 {
	idx := bucketIndex(length * 2)
	sp := uint16Pools[idx].Get().(*[]uint16)
	s := *sp
	if cap(s) < length {
		s = make([]uint16, length)
		*sp = s
		return s
	}
	s = s[:length]
	for i := range s {
		s[i] = 0
	}
	return s
}

// PutUint16 returns a uint16 slice to the pool. The slice must have been
// obtained from GetUint16.
func PutUint16(s []uint16) {
	c := cap(s)
	if c*2 < Size256B {
		return
	}
	idx := bucketIndex(c * 2)
	s = s[:c]
	uint16Pools[idx].Put(&s)
}
