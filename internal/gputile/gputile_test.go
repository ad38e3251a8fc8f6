package gputile

import (
	"encoding/binary"
	"testing"

	"github.com/rawforge/rawcore/internal/adjust"
	"github.com/rawforge/rawcore/internal/gpucore"
)

func TestPlanCoversFullImageExactlyOnce(t *testing.T) {
	tiles := Plan(gpucore.TileSize+100, gpucore.TileSize+50)
	covered := map[[2]int]bool{}
	for _, tile := range tiles {
		for y := tile.Y; y < tile.Y+tile.Height; y++ {
			for x := tile.X; x < tile.X+tile.Width; x++ {
				key := [2]int{x, y}
				if covered[key] {
					t.Fatalf("pixel (%d,%d) covered by more than one tile", x, y)
				}
				covered[key] = true
			}
		}
	}
	if len(covered) != (gpucore.TileSize+100)*(gpucore.TileSize+50) {
		t.Fatalf("covered %d pixels, want %d", len(covered), (gpucore.TileSize+100)*(gpucore.TileSize+50))
	}
}

func TestPlanSmallImageProducesSingleTile(t *testing.T) {
	tiles := Plan(10, 10)
	if len(tiles) != 1 {
		t.Fatalf("len(tiles) = %d, want 1", len(tiles))
	}
	if tiles[0].Width != 10 || tiles[0].Height != 10 {
		t.Fatalf("tile = %+v, want 10x10", tiles[0])
	}
}

func TestUniformClonerPatchesOffsetsWithoutMutatingBase(t *testing.T) {
	base := make([]byte, 16)
	cloner := UniformCloner{OffsetXByteIndex: 0, OffsetYByteIndex: 4}
	cloned := cloner.Clone(base, 2048, 4096)
	if base[0] != 0 {
		t.Fatal("Clone mutated the base uniform bytes")
	}
	if cloned[0] != 0 || cloned[1] != 8 {
		t.Fatalf("offsetX bytes = %v, want little-endian 2048", cloned[0:4])
	}
}

func TestSoftwareRunBlitsEveryTile(t *testing.T) {
	width, height := 10, 10
	sw := &gpucore.Software{
		InputWidth:  width,
		InputHeight: height,
		Input:       make([]float32, width*height*4),
		Kernel: func(input []float32, iw, ih, ox, oy, w, h int, uniforms []byte, masks [][]float32) []float32 {
			out := make([]float32, w*h*4)
			for i := range out {
				out[i] = 1
			}
			return out
		},
	}
	cloner := UniformCloner{OffsetXByteIndex: 0, OffsetYByteIndex: 4}
	out, err := SoftwareRun(sw, width, height, make([]byte, 8), cloner, nil)
	if err != nil {
		t.Fatalf("SoftwareRun: %v", err)
	}
	for i, v := range out {
		if v != 1 {
			t.Fatalf("out[%d] = %v, want 1", i, v)
		}
	}
}

func TestNewUniformClonerPatchesAnEncodedUniformBlock(t *testing.T) {
	u := adjust.Compile(adjust.Defaults(), nil)
	base := u.Encode()

	cloner := NewUniformCloner()
	cloned := cloner.Clone(base, 2048, 4096)

	if len(cloned) != len(base) {
		t.Fatalf("len(cloned) = %d, want %d", len(cloned), len(base))
	}
	x := int32(binary.LittleEndian.Uint32(cloned[cloner.OffsetXByteIndex:]))
	y := int32(binary.LittleEndian.Uint32(cloned[cloner.OffsetYByteIndex:]))
	if x != 2048 || y != 4096 {
		t.Fatalf("patched tile offset = (%d,%d), want (2048,4096)", x, y)
	}
	if base[cloner.OffsetXByteIndex] != 0 {
		t.Fatal("Clone mutated the base uniform bytes")
	}
}

func TestSoftwareRunRejectsOversizedImage(t *testing.T) {
	sw := &gpucore.Software{
		InputWidth:            100,
		InputHeight:           100,
		MaxTextureDimension2D: 50,
		Kernel: func(input []float32, iw, ih, ox, oy, w, h int, uniforms []byte, masks [][]float32) []float32 {
			return make([]float32, w*h*4)
		},
	}
	_, err := SoftwareRun(sw, 100, 100, make([]byte, 8), UniformCloner{}, nil)
	if err == nil {
		t.Fatal("SoftwareRun should fail when input exceeds MaxTextureDimension2D")
	}
}
