// Command rawcore is a thin development/debugging harness over the
// rawcore library. It is not part of the core's contract (§6); it
// exists only so the imaging core is runnable standalone while working
// on it, the same way cmd/gwebp wraps the webp codec library.
//
// Usage:
//
//	rawcore develop [options] <raw.plane> <out.png>     develop a raw sensor plane dump
//	rawcore compile-adjustments [options] <doc.json>    print a compiled UniformBlock summary
//	rawcore stitch [options] <out.png> <in1> <in2> ...  stitch overlapping photographs
//	rawcore inpaint <in.png> <mask.png> <out.png>       fill mask.png's white pixels
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/rawforge/rawcore/internal/adjust"
	"github.com/rawforge/rawcore/internal/develop"
	"github.com/rawforge/rawcore/internal/inpaint"
	"github.com/rawforge/rawcore/internal/panorama"
	"github.com/rawforge/rawcore/internal/rawframe"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "develop":
		err = runDevelop(os.Args[2:])
	case "compile-adjustments":
		err = runCompileAdjustments(os.Args[2:])
	case "stitch":
		err = runStitch(os.Args[2:])
	case "inpaint":
		err = runInpaint(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "rawcore: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "rawcore: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  rawcore develop [options] <raw.plane> <out.png>
  rawcore compile-adjustments [options] <doc.json>
  rawcore stitch [options] <out.png> <in1> <in2> ...
  rawcore inpaint <in.png> <mask.png> <out.png>

Run "rawcore <command> -h" for command-specific options.
`)
}

// --- develop ---

// runDevelop reads a raw sensor plane dump (a flat little-endian uint16
// array, Width*Height samples, no container) and runs it through the
// developer pipeline (§4.3). Camera metadata that would normally come
// from the file's maker notes is supplied on the command line.
func runDevelop(args []string) error {
	fs := flag.NewFlagSet("develop", flag.ContinueOnError)
	width := fs.Int("w", 0, "sensor plane width in samples")
	height := fs.Int("h", 0, "sensor plane height in samples")
	pattern := fs.String("pattern", "RGGB", "Bayer pattern: RGGB/BGGR/GRBG/GBRG")
	black := fs.String("black", "0,0,0", "per-channel black level, comma-separated")
	white := fs.String("white", "16383,16383,16383", "per-channel white level, comma-separated")
	wb := fs.String("wb", "1,1,1", "as-shot white balance coefficients, comma-separated")
	mode := fs.String("mode", "full", "full/fast/thumbnail")
	algo := fs.String("algo", "menon", "demosaic algorithm for -mode=full: linear/menon")
	wbPreset := fs.String("wbpreset", "camera", "white balance: camera/daylight/cloudy/shade/tungsten/fluorescent/flash")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("develop: need <raw.plane> and <out.png>\nUsage: rawcore develop [options] <raw.plane> <out.png>")
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("develop: -w and -h are required")
	}

	blackLevels, err := parseTriple(*black)
	if err != nil {
		return fmt.Errorf("develop: -black: %w", err)
	}
	whiteLevels, err := parseTriple(*white)
	if err != nil {
		return fmt.Errorf("develop: -white: %w", err)
	}
	wbCoeffs, err := parseTriple(*wb)
	if err != nil {
		return fmt.Errorf("develop: -wb: %w", err)
	}
	cfa, err := parsePattern(*pattern)
	if err != nil {
		return err
	}

	data, err := readPlane(fs.Arg(0), *width**height)
	if err != nil {
		return fmt.Errorf("develop: %w", err)
	}

	frame := &rawframe.Frame{
		Width: *width, Height: *height,
		CFA:               cfa,
		Black:             blackLevels,
		White:             whiteLevels,
		CameraMultipliers: wbCoeffs,
		CamToXYZ:          identityCamToXYZ,
		Orientation:       rawframe.OrientationNormal,
		Data:              data,
	}
	if err := frame.Validate(); err != nil {
		return fmt.Errorf("develop: %w", err)
	}

	preset := develop.WBPreset(strings.ToLower(*wbPreset))

	var img image.Image
	switch *mode {
	case "fast":
		img, err = develop.FastWithWB(frame, preset, [3]float64{})
	case "thumbnail":
		img, err = develop.ThumbnailWithWB(frame, preset, [3]float64{})
	default:
		a := develop.AlgorithmMenon
		if strings.EqualFold(*algo, "linear") {
			a = develop.AlgorithmLinear
		}
		img, err = develop.FullWithWB(frame, a, preset, [3]float64{})
	}
	if err != nil {
		return fmt.Errorf("develop: %w", err)
	}

	return writePNG(fs.Arg(1), img)
}

// identityCamToXYZ is used when no camera colour matrix is supplied on
// the command line; it leaves the XYZ_to_sRGB step (§4.3 step 5) as the
// only colour transform applied.
var identityCamToXYZ = [3][3]float64{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

func parseTriple(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("want 3 comma-separated values, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func parsePattern(s string) (rawframe.Pattern, error) {
	switch strings.ToUpper(s) {
	case "RGGB":
		return rawframe.RGGB, nil
	case "BGGR":
		return rawframe.BGGR, nil
	case "GRBG":
		return rawframe.GRBG, nil
	case "GBRG":
		return rawframe.GBRG, nil
	default:
		return 0, fmt.Errorf("unknown Bayer pattern %q", s)
	}
}

func readPlane(path string, count int) ([]uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(raw) != count*2 {
		return nil, fmt.Errorf("plane file has %d bytes, want %d for %d uint16 samples", len(raw), count*2, count)
	}
	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return out, nil
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}

// --- compile-adjustments ---

func runCompileAdjustments(args []string) error {
	fs := flag.NewFlagSet("compile-adjustments", flag.ContinueOnError)
	out := fs.String("out", "", "write the packed binding-2 uniform block bytes to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("compile-adjustments: missing <doc.json>\nUsage: rawcore compile-adjustments [-out bytes.bin] <doc.json>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("compile-adjustments: %w", err)
	}
	defer f.Close()

	doc, vis, err := adjust.Parse(f)
	if err != nil {
		return fmt.Errorf("compile-adjustments: %w", err)
	}
	u := adjust.Compile(doc, vis)

	fmt.Printf("exposure=%.3f contrast=%.3f shadows=%.3f\n", u.Exposure, u.Contrast, u.Shadows)
	fmt.Printf("luma curve points=%d red=%d green=%d blue=%d\n",
		u.CurveLumaCount, u.CurveRedCount, u.CurveGreenCount, u.CurveBlueCount)
	fmt.Printf("masks=%d\n", u.MaskCount)
	for i, h := range u.HSL {
		if h.Hue != 0 || h.Saturation != 0 || h.Luminance != 0 {
			fmt.Printf("  hsl[%s] hue=%.3f sat=%.3f lum=%.3f\n", adjust.HSLBands[i], h.Hue, h.Saturation, h.Luminance)
		}
	}

	if *out != "" {
		if err := os.WriteFile(*out, u.Encode(), 0o644); err != nil {
			return fmt.Errorf("compile-adjustments: %w", err)
		}
		fmt.Printf("wrote %d bytes to %s\n", adjust.UniformBlockSize, *out)
	}
	return nil
}

// --- stitch ---

func runStitch(args []string) error {
	fs := flag.NewFlagSet("stitch", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return fmt.Errorf("stitch: need <out.png> and at least 2 inputs\nUsage: rawcore stitch <out.png> <in1> <in2> ...")
	}

	outPath := fs.Arg(0)
	var images []panorama.Image
	for _, path := range fs.Args()[1:] {
		img, err := readImage(path)
		if err != nil {
			return fmt.Errorf("stitch: %s: %w", path, err)
		}
		images = append(images, panorama.Image{Full: img})
	}

	result, err := panorama.Stitch(images)
	if err != nil {
		return fmt.Errorf("stitch: %w", err)
	}
	if len(result.Excluded) > 0 {
		fmt.Fprintf(os.Stderr, "stitch: excluded %d image(s) that did not join the spanning tree: %v\n",
			len(result.Excluded), result.Excluded)
	}

	return writePNG(outPath, result.Canvas)
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// --- inpaint ---

func runInpaint(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("inpaint: need <in.png> <mask.png> <out.png>\nUsage: rawcore inpaint <in.png> <mask.png> <out.png>")
	}

	src, err := readImage(args[0])
	if err != nil {
		return fmt.Errorf("inpaint: %w", err)
	}
	maskImg, err := readImage(args[1])
	if err != nil {
		return fmt.Errorf("inpaint: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]inpaint.RGB, w*h)
	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			pix[y*w+x] = inpaint.RGB{R: float64(r) / 65535, G: float64(g) / 65535, B: float64(bl) / 65535}
			mr, _, _, _ := maskImg.At(b.Min.X+x, b.Min.Y+y).RGBA()
			mask[y*w+x] = mr > 0x7fff
		}
	}

	img := &inpaint.Image{Width: w, Height: h, Pix: pix}
	inpaint.Run(img, mask)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := img.Pix[y*w+x]
			off := out.PixOffset(x, y)
			out.Pix[off+0] = to8(p.R)
			out.Pix[off+1] = to8(p.G)
			out.Pix[off+2] = to8(p.B)
			out.Pix[off+3] = 255
		}
	}

	return writePNG(args[2], out)
}

func to8(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
