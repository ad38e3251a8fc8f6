// Package gputile drives the tiled compute dispatch contract (§4.7):
// partitioning a full image into fixed 2048x2048 tiles, cloning the
// uniform block per tile with its offset set, dispatching each tile
// through a gpucore.Processor (or gpucore.Software in tests), and
// blitting the result back into the final image.
package gputile

import (
	"fmt"

	"github.com/rawforge/rawcore/internal/adjust"
	"github.com/rawforge/rawcore/internal/gpucore"
	"github.com/rawforge/rawcore/internal/pool"
)

// Tile describes one tile's placement within the full image.
type Tile struct {
	X, Y          int
	Width, Height int
}

// Plan partitions a width x height image into gpucore.TileSize tiles,
// row-major, left to right, top to bottom.
func Plan(width, height int) []Tile {
	var tiles []Tile
	for y := 0; y < height; y += gpucore.TileSize {
		h := gpucore.TileSize
		if y+h > height {
			h = height - y
		}
		for x := 0; x < width; x += gpucore.TileSize {
			w := gpucore.TileSize
			if x+w > width {
				w = width - x
			}
			tiles = append(tiles, Tile{X: x, Y: y, Width: w, Height: h})
		}
	}
	return tiles
}

// UniformCloner clones a uniform block's byte encoding, overwriting the
// tile_offset_x/y fields at the given byte offsets. The uniform block's
// concrete layout lives in internal/adjust; gputile only needs to patch
// two int32 fields by position.
type UniformCloner struct {
	OffsetXByteIndex, OffsetYByteIndex int
}

// NewUniformCloner returns a UniformCloner positioned at adjust.
// UniformBlock's actual tile_offset_x/y byte offsets, so a caller never
// has to hard-code them. Pair with (adjust.UniformBlock).Encode as the
// baseUniforms argument to SoftwareRun (or a real gpucore.Processor
// dispatch): Encode supplies the bytes, this supplies where to patch them.
func NewUniformCloner() UniformCloner {
	x, y := adjust.TileOffsetByteOffsets()
	return UniformCloner{OffsetXByteIndex: x, OffsetYByteIndex: y}
}

func (c UniformCloner) Clone(base []byte, tileX, tileY int) []byte {
	out := pool.Get(len(base))
	copy(out, base)
	putInt32LE(out, c.OffsetXByteIndex, int32(tileX))
	putInt32LE(out, c.OffsetYByteIndex, int32(tileY))
	return out
}

func putInt32LE(b []byte, offset int, v int32) {
	b[offset+0] = byte(v)
	b[offset+1] = byte(v >> 8)
	b[offset+2] = byte(v >> 16)
	b[offset+3] = byte(v >> 24)
}

// SoftwareRun dispatches every tile from Plan through a gpucore.Software
// kernel and blits the results into a full-size RGBA32F output buffer,
// exercising the tiling/clone/dispatch/blit sequence without a GPU.
func SoftwareRun(sw *gpucore.Software, width, height int, baseUniforms []byte, cloner UniformCloner, masks [][]float32) ([]float32, error) {
	out := make([]float32, width*height*4)
	for _, tile := range Plan(width, height) {
		uniforms := cloner.Clone(baseUniforms, tile.X, tile.Y)
		tileData, err := sw.RunTile(tile.X, tile.Y, tile.Width, tile.Height, uniforms, masks)
		pool.Put(uniforms)
		if err != nil {
			return nil, fmt.Errorf("gputile: tile (%d,%d): %w", tile.X, tile.Y, err)
		}
		blit(out, width, tileData, tile)
	}
	return out, nil
}

// blit copies a tile's RGBA32F pixels into the full image at
// (tile.X, tile.Y) (§4.7 step 6).
func blit(full []float32, fullWidth int, tile []float32, t Tile) {
	for y := 0; y < t.Height; y++ {
		srcRow := tile[y*t.Width*4 : (y+1)*t.Width*4]
		dstStart := ((t.Y+y)*fullWidth + t.X) * 4
		copy(full[dstStart:dstStart+t.Width*4], srcRow)
	}
}
