package panorama

import "math/bits"

// Match is a ratio-tested correspondence between feature i in the first
// image's feature set and feature j in the second's (§4.11).
type Match struct {
	I, J int
}

// MatchRatioThreshold is Lowe's ratio-test threshold (§4.11).
const MatchRatioThreshold = 0.8

// hamming returns the Hamming distance between two 256-bit descriptors.
func hamming(a, b [4]uint64) int {
	return bits.OnesCount64(a[0]^b[0]) + bits.OnesCount64(a[1]^b[1]) +
		bits.OnesCount64(a[2]^b[2]) + bits.OnesCount64(a[3]^b[3])
}

// MatchFeatures finds, for every feature in f1, its nearest neighbour in f2 by
// Hamming distance, keeping the pair only when the best distance beats
// the second-best by the ratio-test threshold (§4.11).
func MatchFeatures(f1, f2 []Feature) []Match {
	if len(f1) == 0 || len(f2) == 0 {
		return nil
	}
	var matches []Match
	for i, a := range f1 {
		best, second := -1, -1
		bestDist, secondDist := 1<<30, 1<<30
		for j, b := range f2 {
			d := hamming(a.Descriptor, b.Descriptor)
			if d < bestDist {
				second, secondDist = best, bestDist
				best, bestDist = j, d
			} else if d < secondDist {
				second, secondDist = j, d
			}
		}
		if best < 0 || second < 0 || secondDist == 0 {
			continue
		}
		if float64(bestDist)/float64(secondDist) < MatchRatioThreshold {
			matches = append(matches, Match{I: i, J: best})
		}
	}
	return matches
}
