package basis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaussLegendre(t *testing.T) {
	for n := 1; n < 7; n++ {
		X, W := GaussLegendre(n)
		assert.Equal(t, n, len(X))
		// Exact for polynomials up to degree 2n-1
		for p := 0; p < 2*n; p++ {
			var sum float64
			for i := range X {
				sum += W[i] * math.Pow(X[i], float64(p))
			}
			exact := 0.
			if p%2 == 0 {
				exact = 2. / float64(p+1)
			}
			assert.InDeltaf(t, exact, sum, 1.e-12, "n = %d, p = %d", n, p)
		}
	}
	X, W := GaussLegendre(2)
	assert.InDelta(t, -1./math.Sqrt(3.), X[0], 1.e-14)
	assert.InDelta(t, 1., W[1], 1.e-14)
}

func unitBox(a, b, c float64) []float64 {
	Xpts := make([]float64, 24)
	for i := 0; i < 8; i++ {
		Xpts[3*i] = a * float64(i&1)
		Xpts[3*i+1] = b * float64((i>>1)&1)
		Xpts[3*i+2] = c * float64((i>>2)&1)
	}
	return Xpts
}

func TestHexaBasis(t *testing.T) {
	var (
		hex = NewLinearHexa(2)
		N   = make([]float64, 8)
		Nxi = make([]float64, 24)
		pt  = []float64{0.3, -0.2, 0.71}
		dh  = 1.e-7
	)
	assert.Equal(t, 8, hex.NumNodes())
	assert.Equal(t, 8, hex.NumQuadraturePoints())
	assert.Equal(t, 4, hex.NumFaceQuadraturePoints(3))
	{ // Partition of unity and gradient
		hex.ComputeBasisGradient(pt, N, Nxi)
		var sum float64
		for _, v := range N {
			sum += v
		}
		assert.InDelta(t, 1., sum, 1.e-14)
		Np, Nm := make([]float64, 8), make([]float64, 8)
		for d := 0; d < 3; d++ {
			pp := append([]float64{}, pt...)
			pm := append([]float64{}, pt...)
			pp[d] += dh
			pm[d] -= dh
			hex.ComputeBasis(pp, Np)
			hex.ComputeBasis(pm, Nm)
			for i := 0; i < 8; i++ {
				assert.InDelta(t, (Np[i]-Nm[i])/(2*dh), Nxi[3*i+d], 1.e-7)
			}
		}
	}
	{ // Quadrature weights sum to the reference volume
		var sum float64
		p := make([]float64, 3)
		for n := 0; n < hex.NumQuadraturePoints(); n++ {
			sum += hex.QuadraturePoint(n, p)
		}
		assert.InDelta(t, 8., sum, 1.e-13)
	}
	{ // Face areas and outward normals of a 2 x 3 x 5 box
		var (
			Xpts   = unitBox(2, 3, 5)
			X      = make([]float64, 3)
			Xd     = make([]float64, 9)
			normal = make([]float64, 3)
			areas  = []float64{15, 15, 10, 10, 6, 6}
		)
		for face := 0; face < 6; face++ {
			var total float64
			for n := 0; n < hex.NumFaceQuadraturePoints(face); n++ {
				w := hex.FaceQuadraturePoint(face, n, make([]float64, 3), nil)
				area := hex.FaceNormal(face, n, Xpts, X, Xd, normal)
				total += w * area
				dir := face / 2
				sign := 2*float64(face%2) - 1
				for i := 0; i < 3; i++ {
					expect := 0.
					if i == dir {
						expect = sign
					}
					assert.InDelta(t, expect, normal[i], 1.e-14)
				}
			}
			assert.InDeltaf(t, areas[face], total, 1.e-12, "face %d", face)
		}
	}
}

func TestFaceNormalXptSens(t *testing.T) {
	var (
		hex    = NewLinearHexa(2)
		dh     = 1.e-7
		Xpts   = unitBox(1, 2, 1.5)
		X      = make([]float64, 3)
		Xd     = make([]float64, 9)
		normal = make([]float64, 3)
		dfdn   = []float64{0.3, -0.7, 0.2}
		dfdX   = []float64{0.1, 0.4, -0.5}
		dfdA   = 1.3
	)
	// Distort the element so the face is not planar
	Xpts[3*7+2] += 0.2
	Xpts[3*5+0] += 0.15
	Xpts[3*3+1] -= 0.1
	f := func(face, n int, xp []float64) float64 {
		area := hex.FaceNormal(face, n, xp, X, Xd, normal)
		return dfdA*area + dfdn[0]*normal[0] + dfdn[1]*normal[1] + dfdn[2]*normal[2] +
			dfdX[0]*X[0] + dfdX[1]*X[1] + dfdX[2]*X[2]
	}
	for face := 0; face < 6; face++ {
		for n := 0; n < hex.NumFaceQuadraturePoints(face); n++ {
			dfdXpts := make([]float64, 24)
			area := hex.FaceNormal(face, n, Xpts, X, Xd, normal)
			hex.AddFaceNormalXptSens(face, n, area, Xd, normal, dfdA, dfdX, nil, dfdn, dfdXpts)
			for k := 0; k < 24; k++ {
				xp := append([]float64{}, Xpts...)
				xm := append([]float64{}, Xpts...)
				xp[k] += dh
				xm[k] -= dh
				fd := (f(face, n, xp) - f(face, n, xm)) / (2 * dh)
				assert.InDeltaf(t, fd, dfdXpts[k], 1.e-6, "face %d point %d coordinate %d", face, n, k)
			}
		}
	}
}

func TestQuadEdges(t *testing.T) {
	var (
		quad   = NewLinearQuad(3)
		Xpts   = []float64{0, 0, 0, 4, 0, 0, 0, 2, 0, 4, 2, 0}
		X      = make([]float64, 3)
		Xd     = make([]float64, 4)
		normal = make([]float64, 2)
		length = []float64{2, 2, 4, 4}
	)
	for face := 0; face < 4; face++ {
		var total float64
		for n := 0; n < quad.NumFaceQuadraturePoints(face); n++ {
			w := quad.FaceQuadraturePoint(face, n, make([]float64, 2), nil)
			total += w * quad.FaceNormal(face, n, Xpts, X, Xd, normal)
			assert.InDelta(t, 1., math.Hypot(normal[0], normal[1]), 1.e-14)
			assert.InDelta(t, 2*float64(face%2)-1, normal[face/2], 1.e-14)
		}
		assert.InDelta(t, length[face], total, 1.e-12)
	}
}
