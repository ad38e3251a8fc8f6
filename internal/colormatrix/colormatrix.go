// Package colormatrix provides the fixed sRGB D65 XYZ matrix and the
// camera-to-sRGB composition used by the raw developer pipeline (§4.3).
package colormatrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// XYZToSRGB is the published sRGB D65 XYZ->linear-RGB matrix.
var XYZToSRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

func flatten(m [3][3]float64) []float64 {
	return []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	}
}

func unflatten(d *mat.Dense) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = d.At(i, j)
		}
	}
	return out
}

// CameraToSRGB composes XYZ_to_sRGB with a camera's CAM_to_XYZ matrix to
// produce a single camera-to-linear-sRGB matrix (§4.3 step 5), via
// gonum's dense matrix product rather than a hand-rolled triple loop.
func CameraToSRGB(camToXYZ [3][3]float64) [3][3]float64 {
	xyzToSRGB := mat.NewDense(3, 3, flatten(XYZToSRGB))
	camToXYZDense := mat.NewDense(3, 3, flatten(camToXYZ))
	var out mat.Dense
	out.Mul(xyzToSRGB, camToXYZDense)
	return unflatten(&out)
}

// Apply multiplies the matrix by a (r, g, b) column vector.
func Apply(m [3][3]float64, r, g, b float64) (float64, float64, float64) {
	a := mat.NewDense(3, 3, flatten(m))
	v := mat.NewVecDense(3, []float64{r, g, b})
	var out mat.VecDense
	out.MulVec(a, v)
	return out.AtVec(0), out.AtVec(1), out.AtVec(2)
}

// Gamma applies the sRGB transfer function (§4.3 step 6).
func Gamma(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}
