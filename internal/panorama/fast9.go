package panorama

import "math/rand"

// circleOffsets are the 16 Bresenham-circle sample points used by the
// FAST corner test, ordered clockwise starting at the top (§4.11).
var circleOffsets = [16][2]int{
	{0, -3}, {1, -3}, {2, -2}, {3, -1},
	{3, 0}, {3, 1}, {2, 2}, {1, 3},
	{0, 3}, {-1, 3}, {-2, 2}, {-3, 1},
	{-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
}

// Corner is a candidate FAST keypoint before non-maximum suppression.
type Corner struct {
	X, Y  int
	Score float64
}

// fast9 runs the FAST-9 corner test (9 contiguous pixels on the 16-point
// Bresenham circle all brighter or all darker than the centre by more
// than threshold) over every interior pixel and scores survivors by the
// sum of absolute differences over the qualifying arc.
func fast9(g *grayImage, threshold int) []Corner {
	t := float64(threshold) / 255.0
	var corners []Corner
	for y := 3; y < g.h-3; y++ {
		for x := 3; x < g.w-3; x++ {
			center := g.pix[y*g.w+x]
			if score, ok := fast9Test(g, x, y, center, t); ok {
				corners = append(corners, Corner{X: x, Y: y, Score: score})
			}
		}
	}
	return corners
}

// fast9Test evaluates the 16-point circle test at (x, y) and returns the
// corner score (sum of |circle - center| over the qualifying run) when at
// least 9 contiguous circle points are all brighter or all darker than
// center by more than t.
func fast9Test(g *grayImage, x, y int, center, t float64) (float64, bool) {
	var circle [16]float64
	for i, o := range circleOffsets {
		circle[i] = g.at(x+o[0], y+o[1])
	}

	brighter := func(v float64) bool { return v-center > t }
	darker := func(v float64) bool { return center-v > t }

	if best, ok := longestRun(circle[:], brighter); ok {
		return runScore(circle[:], center, best), true
	}
	if best, ok := longestRun(circle[:], darker); ok {
		return runScore(circle[:], center, best), true
	}
	return 0, false
}

// longestRun finds the longest run of contiguous (cyclically) circle
// indices satisfying pred, considering every rotation by scanning the
// sequence doubled, and returns its index set when the run reaches at
// least 9 points.
func longestRun(circle []float64, pred func(float64) bool) ([]int, bool) {
	n := len(circle)
	flags := make([]bool, 2*n)
	for i := range flags {
		flags[i] = pred(circle[i%n])
	}

	bestStart, bestLen := -1, 0
	runStart, runLen := 0, 0
	consider := func() {
		if runLen > bestLen && runStart < n {
			bestLen = runLen
			bestStart = runStart
		}
	}
	for i := 0; i < 2*n; i++ {
		if flags[i] {
			if runLen == 0 {
				runStart = i
			}
			runLen++
		} else {
			consider()
			runLen = 0
		}
	}
	consider()

	if bestLen < 9 {
		return nil, false
	}
	if bestLen > n {
		bestLen = n
	}
	idx := make([]int, bestLen)
	for i := 0; i < bestLen; i++ {
		idx[i] = (bestStart + i) % n
	}
	return idx, true
}

// runScore sums |circle[i]-center| over the given index set.
func runScore(circle []float64, center float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		v := circle[i] - center
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum
}

// nonMaxSuppress greedily keeps the highest-scoring corner within every
// disjoint radius neighbourhood, matching the reference's score-sorted
// greedy suppression (§4.11).
func nonMaxSuppress(corners []Corner, w, h, radius int) []Corner {
	sorted := append([]Corner(nil), corners...)
	// Insertion sort by descending score; corner counts are small enough
	// (post-FAST, pre-descriptor) that this avoids pulling in sort just
	// for one call site elsewhere needing stability guarantees.
	for i := 1; i < len(sorted); i++ {
		j := i
		for j > 0 && sorted[j-1].Score < sorted[j].Score {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
			j--
		}
	}

	radiusSq := float64(radius * radius)
	suppressed := make([]bool, len(sorted))
	var result []Corner
	for i := range sorted {
		if suppressed[i] {
			continue
		}
		result = append(result, sorted[i])
		for j := i + 1; j < len(sorted); j++ {
			if suppressed[j] {
				continue
			}
			dx := float64(sorted[i].X - sorted[j].X)
			dy := float64(sorted[i].Y - sorted[j].Y)
			if dx*dx+dy*dy < radiusSq {
				suppressed[j] = true
			}
		}
	}
	return result
}

// briefOffsets deterministically regenerates the 256 pseudo-random pair
// offsets within a BriefPatch-sized patch, seeded so panorama outputs are
// bit-reproducible for identical inputs (§4.11, §9).
func briefOffsets(seed int64, count int) [][4]int {
	rng := rand.New(rand.NewSource(seed))
	half := BriefPatch / 2
	offsets := make([][4]int, count)
	for i := range offsets {
		offsets[i] = [4]int{
			rng.Intn(2*half) - half,
			rng.Intn(2*half) - half,
			rng.Intn(2*half) - half,
			rng.Intn(2*half) - half,
		}
	}
	return offsets
}

// brief computes the 256-bit BRIEF descriptor at (x, y) against the
// given offsets, packed into four 64-bit words.
func brief(g *grayImage, x, y int, offsets [][4]int) [4]uint64 {
	var d [4]uint64
	for i, o := range offsets {
		p1 := g.at(x+o[0], y+o[1])
		p2 := g.at(x+o[2], y+o[3])
		if p1 < p2 {
			d[i/64] |= 1 << uint(i%64)
		}
	}
	return d
}
