package gpucore

// Kernel is the CPU-executed equivalent of the compute shader the real
// Processor dispatches to a GPU: given the full input image, a tile's
// pixel offset/extent, the uniform bytes, and up to MaskSlots mask
// planes, it must fill dst (rowBytes*height, RGBA32F row-major) for that
// tile. Software is the seam used by internal/gputile's tests so the
// dispatch/read-back/blit contract can be exercised without a GPU.
type Kernel func(input []float32, inputWidth, inputHeight int, offsetX, offsetY, width, height int, uniforms []byte, masks [][]float32) []float32

// Software executes the tiled contract entirely on the CPU using Kernel,
// mirroring Processor.RunTile's step sequence (§4.7) without needing an
// open wgpu device. It exists so internal/gputile's tiling, uniform
// cloning, and blit logic can be tested deterministically.
type Software struct {
	Input       []float32
	InputWidth  int
	InputHeight int
	Kernel      Kernel

	MaxTextureDimension2D int
}

// RunTile mirrors Processor.RunTile's contract for a CPU-backed pipeline.
func (s *Software) RunTile(offsetX, offsetY, width, height int, uniforms []byte, masks [][]float32) ([]float32, error) {
	if s.MaxTextureDimension2D > 0 && (s.InputWidth > s.MaxTextureDimension2D || s.InputHeight > s.MaxTextureDimension2D) {
		return nil, ErrDimensionTooLarge
	}
	return s.Kernel(s.Input, s.InputWidth, s.InputHeight, offsetX, offsetY, width, height, uniforms, masks), nil
}
