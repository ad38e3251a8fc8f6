package panorama

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rawforge/rawcore/internal/parallel"
)

// Homography is a row-major 3x3 projective transform: applying it to
// (x, y, 1) and dividing by the third component maps a point from the
// source image's plane into the destination image's plane (§4.11).
type Homography [9]float64

// Identity returns the identity homography.
func Identity() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Apply transforms (x, y) through h, dividing by the homogeneous w term.
func (h Homography) Apply(x, y float64) (float64, float64) {
	wx := h[0]*x + h[1]*y + h[2]
	wy := h[3]*x + h[4]*y + h[5]
	w := h[6]*x + h[7]*y + h[8]
	if w == 0 {
		return 0, 0
	}
	return wx / w, wy / w
}

// Mul composes two homographies: (a.Mul(b)).Apply(p) == a.Apply(b.Apply(p)).
func (h Homography) Mul(o Homography) Homography {
	a := mat.NewDense(3, 3, h[:])
	b := mat.NewDense(3, 3, o[:])
	var out mat.Dense
	out.Mul(a, b)
	var r Homography
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = out.At(i, j)
		}
	}
	return r
}

// Invert returns h^-1; ok is false when h is singular (§9: invertibility
// is assumed from the RANSAC fit and asserted here at BFS time).
func (h Homography) Invert() (Homography, bool) {
	a := mat.NewDense(3, 3, h[:])
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return Homography{}, false
	}
	var r Homography
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = inv.At(i, j)
		}
	}
	return r, true
}

// scaleHomography returns the homography representing a uniform scale by s.
func scaleHomography(s float64) Homography {
	return Homography{s, 0, 0, 0, s, 0, 0, 0, 1}
}

// ToFullResolution maps a homography fit on downscaled feature coordinates
// into one operating on the two images' full-resolution coordinates.
// scale1/scale2 are the Image.Scale factors (downscaled/full) applied
// before feature detection (§4.11).
func ToFullResolution(h Homography, scale1, scale2 float64) Homography {
	toSmall1 := scaleHomography(scale1)
	toFull2 := scaleHomography(1 / scale2)
	return toFull2.Mul(h).Mul(toSmall1)
}

// correspondence is one matched point pair in a shared coordinate space.
type correspondence struct {
	sx, sy, dx, dy float64
}

// computeHomographyDLT fits a homography by the direct linear transform:
// build the 2n x 9 constraint matrix from the raw point coordinates (no
// coordinate normalisation is applied), take the right singular vector
// belonging to the smallest singular value as the null-space solution,
// and reshape it row-major into a 3x3 matrix (§4.11, §9).
func computeHomographyDLT(corr []correspondence) (Homography, bool) {
	if len(corr) < 4 {
		return Homography{}, false
	}
	rows := make([]float64, 0, len(corr)*2*9)
	for _, c := range corr {
		x, y, xp, yp := c.sx, c.sy, c.dx, c.dy
		rows = append(rows,
			-x, -y, -1, 0, 0, 0, x*xp, y*xp, xp,
			0, 0, 0, -x, -y, -1, x*yp, y*yp, yp,
		)
	}
	a := mat.NewDense(2*len(corr), 9, rows)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFull) {
		return Homography{}, false
	}
	var v mat.Dense
	svd.VTo(&v)

	var h Homography
	last := v.RawMatrix().Cols - 1
	for i := 0; i < 9; i++ {
		h[i] = v.At(i, last)
	}
	return h, true
}

// areCollinear reports whether three points are collinear within the
// fixed triangle-area tolerance used to reject degenerate RANSAC samples
// (§4.11).
func areCollinear(x1, y1, x2, y2, x3, y3 float64) bool {
	area := x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2)
	if area < 0 {
		area = -area
	}
	return area < 1e-6
}

// RANSACIterations, InlierThresholdSq and MinInliers are the fixed RANSAC
// parameters (§4.11).
const (
	RANSACIterations  = 2500
	InlierThresholdSq = 5.0 * 5.0
	MinInliers        = 15
)

// EstimateHomography runs RANSAC over the ratio-tested matches between
// two feature sets, sampling 4-point minimal sets, rejecting collinear
// samples, scoring inliers under a squared reprojection threshold, and
// re-fitting the homography on the best inlier set found. It returns
// false when fewer than MinInliers inliers are found for any sample.
func EstimateHomography(f1, f2 []Feature, matches []Match) (Homography, int, bool) {
	if len(matches) < 4 {
		return Homography{}, 0, false
	}
	pts := make([]correspondence, len(matches))
	for i, m := range matches {
		a, b := f1[m.I], f2[m.J]
		pts[i] = correspondence{sx: float64(a.X), sy: float64(a.Y), dx: float64(b.X), dy: float64(b.Y)}
	}

	type result struct {
		h       Homography
		inliers []int
	}
	results := make([]result, RANSACIterations)
	parallel.Range(RANSACIterations, func(iter int) {
		rng := rand.New(rand.NewSource(int64(iter)*2654435761 + 1))
		idx := rng.Perm(len(pts))[:4]
		p := [4]correspondence{pts[idx[0]], pts[idx[1]], pts[idx[2]], pts[idx[3]]}
		if areCollinear(p[0].sx, p[0].sy, p[1].sx, p[1].sy, p[2].sx, p[2].sy) ||
			areCollinear(p[0].sx, p[0].sy, p[1].sx, p[1].sy, p[3].sx, p[3].sy) ||
			areCollinear(p[0].sx, p[0].sy, p[2].sx, p[2].sy, p[3].sx, p[3].sy) ||
			areCollinear(p[1].sx, p[1].sy, p[2].sx, p[2].sy, p[3].sx, p[3].sy) {
			return
		}
		h, ok := computeHomographyDLT(p[:])
		if !ok {
			return
		}
		var inliers []int
		for i, c := range pts {
			tx, ty := h.Apply(c.sx, c.sy)
			dx, dy := tx-c.dx, ty-c.dy
			if dx*dx+dy*dy < InlierThresholdSq {
				inliers = append(inliers, i)
			}
		}
		results[iter] = result{h: h, inliers: inliers}
	})

	best := result{}
	for _, r := range results {
		if len(r.inliers) > len(best.inliers) {
			best = r
		}
	}
	if len(best.inliers) < MinInliers {
		return Homography{}, 0, false
	}

	refineSet := make([]correspondence, len(best.inliers))
	for i, idx := range best.inliers {
		refineSet[i] = pts[idx]
	}
	refined, ok := computeHomographyDLT(refineSet)
	if !ok {
		return best.h, len(best.inliers), true
	}
	return refined, len(best.inliers), true
}
