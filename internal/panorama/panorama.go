// Package panorama stitches a set of overlapping images into a single
// canvas (§4.11): FAST-9 feature detection, BRIEF description, ratio-test
// matching, RANSAC homography estimation, a maximum-weight spanning tree
// over pairwise matches, canvas composition by inverse warping, adaptive
// seam search, and cosine-feathered blending.
package panorama

import (
	"errors"
	"image"
)

// ErrTooFewImages is returned when fewer than two images are supplied
// (§7.1: fewer than two connected panorama inputs is a fatal error).
var ErrTooFewImages = errors.New("panorama: at least two images are required")

// ErrNoMatches is returned when no pair of images produced an accepted
// homography.
var ErrNoMatches = errors.New("panorama: no suitable matches found between any pair of images")

// ErrNotEnoughConnected is returned when the spanning tree connects fewer
// than two images.
var ErrNotEnoughConnected = errors.New("panorama: could not find a connected sequence of at least two images")

// ErrSingularHomography is returned when a global homography required
// for composition cannot be inverted.
var ErrSingularHomography = errors.New("panorama: singular homography")

// Image is one input photograph. Scale is the downscaled/full ratio
// applied before feature detection (§4.11); leave it zero to have
// Stitch compute it automatically from FeatureMaxDimension.
type Image struct {
	Full  image.Image
	Scale float64
}

// FeatureMaxDimension bounds the longer side of the downscaled copy used
// for feature detection.
const FeatureMaxDimension = 1600

// BRIEFSeed fixes the pseudo-random pair offsets so descriptors are
// reproducible across runs (§4.11).
const BRIEFSeed = 12345

// computeScale returns the downscaled/full ratio for an image whose
// longer side is longSide, matching calculate_downscale_dimensions's
// policy of leaving small images untouched (§4.11).
func computeScale(longSide int) float64 {
	if longSide <= FeatureMaxDimension {
		return 1
	}
	return float64(FeatureMaxDimension) / float64(longSide)
}

// Result is the outcome of Stitch: the composed canvas plus bookkeeping
// about which inputs were actually placed.
type Result struct {
	Canvas    *image.NRGBA
	Connected []int // indices into the input slice, in stitching order
	Excluded  []int // indices that failed to join the spanning tree (§7.2)
}

// Stitch runs the full pipeline: detect, match, estimate pairwise
// homographies, build the stitching graph, and compose the canvas.
func Stitch(images []Image) (*Result, error) {
	if len(images) < 2 {
		return nil, ErrTooFewImages
	}

	features := make([][]Feature, len(images))
	for i, img := range images {
		scale := images[i].Scale
		if scale == 0 {
			b := img.Full.Bounds()
			scale = computeScale(maxInt(b.Dx(), b.Dy()))
			images[i].Scale = scale
		}
		features[i] = Detect(img.Full, scale)
	}

	var pairs []PairMatch
	for i := 0; i < len(images); i++ {
		for j := i + 1; j < len(images); j++ {
			matches := MatchFeatures(features[i], features[j])
			if len(matches) < MinInliers {
				continue
			}
			h, inliers, ok := EstimateHomography(features[i], features[j], matches)
			if !ok {
				continue
			}
			full := ToFullResolution(h, images[i].Scale, images[j].Scale)
			pairs = append(pairs, PairMatch{I: i, J: j, H: full, Inliers: inliers})
		}
	}
	if len(pairs) == 0 {
		return nil, ErrNoMatches
	}

	graph := BuildGraph(len(images), pairs)
	globals, order := GlobalHomographies(graph)
	if len(order) < 2 {
		return nil, ErrNotEnoughConnected
	}

	var excluded []int
	inOrder := make(map[int]bool, len(order))
	for _, idx := range order {
		inOrder[idx] = true
	}
	for i := range images {
		if !inOrder[i] {
			excluded = append(excluded, i)
		}
	}

	canvas, err := Compose(images, globals, order)
	if err != nil {
		return nil, err
	}
	return &Result{Canvas: canvas, Connected: order, Excluded: excluded}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
