// Package gpucore wraps the github.com/cogentcore/webgpu bindings with the
// narrow device/texture/pipeline surface the tiled compute processor
// needs (§4.7): creating per-tile destination textures, binding the fixed
// 19-binding layout (full input, tile output, uniform block, 16 mask
// slots), and dispatching the compute kernel. internal/gputile drives
// this package; Software (software.go), a separate CPU-executed type with
// the same per-tile contract, backs tests that cannot open a GPU device.
package gpucore

import (
	"context"
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrDimensionTooLarge is returned when the image exceeds the device's
// max_texture_dimension_2d limit (§4.7).
var ErrDimensionTooLarge = errors.New("gpucore: image dimension exceeds device limit")

// MaskSlots is the fixed number of mask texture bindings (3..18) the
// compute pipeline's bind group layout reserves, regardless of how many
// masks are actually in use.
const MaskSlots = 16

// TileSize is the hard-coded per-tile pixel extent (§4.7), chosen to keep
// transient storage textures inside driver limits.
const TileSize = 2048

// Processor executes the tiled compute contract against a real wgpu
// device and queue.
type Processor struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
	Pipeline *wgpu.ComputePipeline

	// InputTexture is the full, already-uploaded source image; it is
	// bound read-only at binding 0 for every tile.
	InputTexture *wgpu.Texture

	// DummyMask is a 1x1 placeholder texture view bound to any of the
	// 16 mask slots not supplied for a given dispatch.
	DummyMask *wgpu.TextureView

	MaxTextureDimension2D uint32
}

// TileTask describes one tile's dispatch parameters.
type TileTask struct {
	OffsetX, OffsetY int
	Width, Height    int
	UniformBytes     []byte
	MaskViews        []*wgpu.TextureView // up to MaskSlots entries
}

// CheckDimensions enforces the hard dimension-limit failure (§4.7).
func (p *Processor) CheckDimensions(width, height int) error {
	if p.MaxTextureDimension2D == 0 {
		return nil
	}
	if uint32(width) > p.MaxTextureDimension2D || uint32(height) > p.MaxTextureDimension2D {
		return ErrDimensionTooLarge
	}
	return nil
}

// RunTile executes steps 1-5 of the tile contract for one tile: allocate
// the per-tile destination texture, bind the fixed layout, dispatch
// ceil(w/8) x ceil(h/8) x 1 workgroups, and read back a row-padded
// buffer stripped into a contiguous tile. The caller (internal/gputile)
// performs step 6, blitting the tile into the final image.
func (p *Processor) RunTile(ctx context.Context, t TileTask) ([]byte, error) {
	if err := p.CheckDimensions(t.Width, t.Height); err != nil {
		return nil, err
	}

	dst, err := p.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "rawcore-tile-dst",
		Size: wgpu.Extent3D{
			Width:              uint32(t.Width),
			Height:             uint32(t.Height),
			DepthOrArrayLayers: 1,
		},
		Format: wgpu.TextureFormatRGBA32Float,
		Usage:  wgpu.TextureUsageStorageBinding | wgpu.TextureUsageCopySrc,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
	})
	if err != nil {
		return nil, err
	}
	defer dst.Release()

	entries := p.bindGroupEntries(dst, t)
	bindGroup, err := p.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "rawcore-tile-bind-group",
		Layout:  p.Pipeline.GetBindGroupLayout(0),
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	defer bindGroup.Release()

	encoder, err := p.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "rawcore-tile-encoder"})
	if err != nil {
		return nil, err
	}
	pass := encoder.BeginComputePass(&wgpu.ComputePassDescriptor{Label: "rawcore-tile-pass"})
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	groupsX := (uint32(t.Width) + 7) / 8
	groupsY := (uint32(t.Height) + 7) / 8
	pass.DispatchWorkgroups(groupsX, groupsY, 1)
	pass.End()

	bytesPerRow := alignBytesPerRow(uint32(t.Width) * 16)
	readback, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "rawcore-tile-readback",
		Size:             uint64(bytesPerRow) * uint64(t.Height),
		Usage:            wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	defer readback.Release()

	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{Texture: dst},
		&wgpu.ImageCopyBuffer{
			Buffer: readback,
			Layout: wgpu.TextureDataLayout{BytesPerRow: bytesPerRow, RowsPerImage: uint32(t.Height)},
		},
		&wgpu.Extent3D{Width: uint32(t.Width), Height: uint32(t.Height), DepthOrArrayLayers: 1},
	)
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	p.Queue.Submit(cmd)

	if err := readback.MapAsync(wgpu.MapModeRead, 0, uint64(bytesPerRow)*uint64(t.Height)); err != nil {
		return nil, err
	}
	defer readback.Unmap()
	padded := readback.GetMappedRange(0, uint(bytesPerRow)*uint(t.Height))

	return stripRowPadding(padded, bytesPerRow, uint32(t.Width)*16, t.Height), nil
}

func (p *Processor) bindGroupEntries(dst *wgpu.Texture, t TileTask) []wgpu.BindGroupEntry {
	entries := make([]wgpu.BindGroupEntry, 0, 3+MaskSlots)
	entries = append(entries,
		wgpu.BindGroupEntry{Binding: 0, TextureView: p.InputTexture.CreateView(nil)},
		wgpu.BindGroupEntry{Binding: 1, TextureView: dst.CreateView(nil)},
		wgpu.BindGroupEntry{Binding: 2, Buffer: p.uniformBuffer(t.UniformBytes)},
	)
	for i := 0; i < MaskSlots; i++ {
		view := p.DummyMask
		if i < len(t.MaskViews) && t.MaskViews[i] != nil {
			view = t.MaskViews[i]
		}
		entries = append(entries, wgpu.BindGroupEntry{Binding: uint32(3 + i), TextureView: view})
	}
	return entries
}

func (p *Processor) uniformBuffer(data []byte) *wgpu.Buffer {
	buf, err := p.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "rawcore-tile-uniforms",
		Contents: data,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil
	}
	return buf
}

// alignBytesPerRow rounds up to wgpu.CopyBytesPerRowAlignment (§4.7 step 5).
func alignBytesPerRow(n uint32) uint32 {
	align := uint32(wgpu.CopyBytesPerRowAlignment)
	return (n + align - 1) / align * align
}

// stripRowPadding removes per-row alignment padding from a readback
// buffer, producing a contiguous rowBytes*height slice.
func stripRowPadding(padded []byte, paddedBytesPerRow, rowBytes uint32, height int) []byte {
	out := make([]byte, int(rowBytes)*height)
	for y := 0; y < height; y++ {
		src := padded[y*int(paddedBytesPerRow) : y*int(paddedBytesPerRow)+int(rowBytes)]
		copy(out[y*int(rowBytes):], src)
	}
	return out
}
