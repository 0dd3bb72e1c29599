// Package basis provides the reference Lagrange bases and Gauss quadrature that the
// elements integrate against. Node coordinates are always stored with three components
// per node; 2D bases ignore the third.
package basis

import (
	"fmt"
	"math"

	"github.com/notargets/gofea/types"
)

const (
	maxNodes = 8
	maxDim   = 3
)

/*
tensorBasis is the linear Lagrange basis on [-1,1]^dim. Node i sits at
ξ_d = -1 when bit d of i is clear and +1 when set, so x varies fastest.

Faces are numbered 2*d + side, side 0 at ξ_d = -1 and side 1 at ξ_d = +1. The face
tangents are oriented so that the face normal points out of the element.
*/
type tensorBasis struct {
	dim, nnodes, order int
	gp, gw             []float64
}

// Tangent directions per face in parametric space
var (
	quadTangents = [4][2]float64{
		{0, -1}, {0, 1}, {1, 0}, {-1, 0},
	}
	hexaTangents = [6][6]float64{
		{0, 0, 1, 0, 1, 0},
		{0, 1, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1},
		{0, 0, 1, 1, 0, 0},
		{0, 1, 0, 1, 0, 0},
		{1, 0, 0, 0, 1, 0},
	}
)

func newTensorBasis(dim, order int) tensorBasis {
	if order < 1 {
		panic(fmt.Errorf("quadrature order %d must be at least 1", order))
	}
	gp, gw := GaussLegendre(order)
	return tensorBasis{
		dim:    dim,
		nnodes: 1 << dim,
		order:  order,
		gp:     gp,
		gw:     gw,
	}
}

func (tb *tensorBasis) NumNodes() int      { return tb.nnodes }
func (tb *tensorBasis) NumParameters() int { return tb.dim }
func (tb *tensorBasis) NumFaces() int      { return 2 * tb.dim }

func (tb *tensorBasis) NumQuadraturePoints() int {
	n := 1
	for d := 0; d < tb.dim; d++ {
		n *= tb.order
	}
	return n
}

// QuadraturePoint sets pt and returns the tensor-product Gauss weight
func (tb *tensorBasis) QuadraturePoint(n int, pt []float64) (weight float64) {
	weight = 1
	for d := 0; d < tb.dim; d++ {
		k := n % tb.order
		n /= tb.order
		pt[d] = tb.gp[k]
		weight *= tb.gw[k]
	}
	return
}

func (tb *tensorBasis) NumFaceQuadraturePoints(face int) int {
	n := 1
	for d := 1; d < tb.dim; d++ {
		n *= tb.order
	}
	return n
}

/*
FaceQuadraturePoint sets the parametric point on the face and the face tangents,
tangent[k*dim:(k+1)*dim] for each of the dim-1 tangents, and returns the weight.
*/
func (tb *tensorBasis) FaceQuadraturePoint(face, n int, pt, tangent []float64) (weight float64) {
	var (
		dir  = face / 2
		side = 2*float64(face%2) - 1.
		tan  = tb.faceTangents(face)
	)
	for d := 0; d < tb.dim; d++ {
		pt[d] = 0
	}
	pt[dir] = side
	weight = 1
	for k := 0; k < tb.dim-1; k++ {
		q := n % tb.order
		n /= tb.order
		weight *= tb.gw[q]
		for d := 0; d < tb.dim; d++ {
			pt[d] += tb.gp[q] * tan[k*tb.dim+d]
			if tangent != nil {
				tangent[k*tb.dim+d] = tan[k*tb.dim+d]
			}
		}
	}
	return
}

func (tb *tensorBasis) faceTangents(face int) []float64 {
	if tb.dim == 2 {
		return quadTangents[face][:]
	}
	return hexaTangents[face][:]
}

func (tb *tensorBasis) ComputeBasis(pt, N []float64) {
	for i := 0; i < tb.nnodes; i++ {
		val := 1.
		for d := 0; d < tb.dim; d++ {
			val *= 0.5 * (1. + nodeSign(i, d)*pt[d])
		}
		N[i] = val
	}
}

// ComputeBasisGradient sets N and the parametric gradient Nxi[i*dim + d] = dN_i/dξ_d
func (tb *tensorBasis) ComputeBasisGradient(pt, N, Nxi []float64) {
	var (
		lin [maxDim]float64
	)
	for i := 0; i < tb.nnodes; i++ {
		val := 1.
		for d := 0; d < tb.dim; d++ {
			lin[d] = 0.5 * (1. + nodeSign(i, d)*pt[d])
			val *= lin[d]
		}
		N[i] = val
		for d := 0; d < tb.dim; d++ {
			grad := 0.5 * nodeSign(i, d)
			for e := 0; e < tb.dim; e++ {
				if e != d {
					grad *= lin[e]
				}
			}
			Nxi[i*tb.dim+d] = grad
		}
	}
}

func nodeSign(i, d int) float64 {
	if (i>>d)&1 == 1 {
		return 1
	}
	return -1
}

// geometry interpolates X (3 entries) and Xd[i*dim + j] = dX_i/dξ_j at pt
func (tb *tensorBasis) geometry(pt, Xpts, X, Xd, N, Nxi []float64) {
	tb.ComputeBasisGradient(pt, N, Nxi)
	for i := 0; i < 3; i++ {
		X[i] = 0
	}
	for i := 0; i < tb.dim*tb.dim; i++ {
		Xd[i] = 0
	}
	for node := 0; node < tb.nnodes; node++ {
		for i := 0; i < 3; i++ {
			X[i] += N[node] * Xpts[3*node+i]
		}
		for i := 0; i < tb.dim; i++ {
			for j := 0; j < tb.dim; j++ {
				Xd[i*tb.dim+j] += Xpts[3*node+i] * Nxi[node*tb.dim+j]
			}
		}
	}
}

// faceDirections returns the physical face tangent vectors d_k = Xd t_k
func (tb *tensorBasis) faceDirections(face int, Xd []float64) (d1, d2 [maxDim]float64) {
	var (
		tan = tb.faceTangents(face)
	)
	for i := 0; i < tb.dim; i++ {
		for j := 0; j < tb.dim; j++ {
			d1[i] += Xd[i*tb.dim+j] * tan[j]
			if tb.dim == 3 {
				d2[i] += Xd[i*tb.dim+j] * tan[tb.dim+j]
			}
		}
	}
	return
}

/*
FaceNormal evaluates the physical point X, the Jacobian Xd and the outward unit normal
at face quadrature point n, and returns the area scaling of the face measure.
*/
func (tb *tensorBasis) FaceNormal(face, n int, Xpts, X, Xd, normal []float64) (area float64) {
	var (
		pt     [maxDim]float64
		N      [maxNodes]float64
		Nxi    [maxNodes * maxDim]float64
		nr     [maxDim]float64
		d1, d2 [maxDim]float64
	)
	tb.FaceQuadraturePoint(face, n, pt[:], nil)
	tb.geometry(pt[:], Xpts, X, Xd, N[:], Nxi[:])
	d1, d2 = tb.faceDirections(face, Xd)
	if tb.dim == 2 {
		nr[0], nr[1] = d1[1], -d1[0]
	} else {
		nr[0] = d1[1]*d2[2] - d1[2]*d2[1]
		nr[1] = d1[2]*d2[0] - d1[0]*d2[2]
		nr[2] = d1[0]*d2[1] - d1[1]*d2[0]
	}
	for i := 0; i < tb.dim; i++ {
		area += nr[i] * nr[i]
	}
	area = math.Sqrt(area)
	for i := 0; i < tb.dim; i++ {
		normal[i] = nr[i] / area
	}
	return
}

/*
AddFaceNormalXptSens adds to dfdXpts the derivative of a function f(area, normal, X, Xd)
evaluated at face quadrature point n, given the partials dfdA, dfdn and, optionally,
dfdX and dfdXd.
*/
func (tb *tensorBasis) AddFaceNormalXptSens(face, n int, area float64, Xd, normal []float64,
	dfdA float64, dfdX, dfdXd, dfdn, dfdXpts []float64) {
	var (
		pt      [maxDim]float64
		N       [maxNodes]float64
		Nxi     [maxNodes * maxDim]float64
		g       [maxDim]float64
		dd1     [maxDim]float64
		dd2     [maxDim]float64
		dXd     [maxDim * maxDim]float64
		d1, d2  [maxDim]float64
		tan     = tb.faceTangents(face)
		ndotdfn float64
	)
	tb.FaceQuadraturePoint(face, n, pt[:], nil)
	tb.ComputeBasisGradient(pt[:], N[:], Nxi[:])

	// derivative with respect to the unnormalized normal
	if dfdn != nil {
		for i := 0; i < tb.dim; i++ {
			ndotdfn += normal[i] * dfdn[i]
		}
	}
	for i := 0; i < tb.dim; i++ {
		g[i] = dfdA * normal[i]
		if dfdn != nil {
			g[i] += (dfdn[i] - ndotdfn*normal[i]) / area
		}
	}

	d1, d2 = tb.faceDirections(face, Xd)
	if tb.dim == 2 {
		dd1[0], dd1[1] = -g[1], g[0]
	} else {
		// n = d1 x d2
		dd1[0] = d2[1]*g[2] - d2[2]*g[1]
		dd1[1] = d2[2]*g[0] - d2[0]*g[2]
		dd1[2] = d2[0]*g[1] - d2[1]*g[0]
		dd2[0] = g[1]*d1[2] - g[2]*d1[1]
		dd2[1] = g[2]*d1[0] - g[0]*d1[2]
		dd2[2] = g[0]*d1[1] - g[1]*d1[0]
	}
	for i := 0; i < tb.dim; i++ {
		for j := 0; j < tb.dim; j++ {
			v := dd1[i] * tan[j]
			if tb.dim == 3 {
				v += dd2[i] * tan[tb.dim+j]
			}
			if dfdXd != nil {
				v += dfdXd[i*tb.dim+j]
			}
			dXd[i*tb.dim+j] = v
		}
	}

	for node := 0; node < tb.nnodes; node++ {
		for i := 0; i < tb.dim; i++ {
			var sum float64
			for j := 0; j < tb.dim; j++ {
				sum += dXd[i*tb.dim+j] * Nxi[node*tb.dim+j]
			}
			dfdXpts[3*node+i] += sum
		}
		if dfdX != nil {
			for i := 0; i < 3; i++ {
				dfdXpts[3*node+i] += N[node] * dfdX[i]
			}
		}
	}
}

// LinearQuad is the 4 node bilinear quadrilateral
type LinearQuad struct {
	tensorBasis
}

func NewLinearQuad(order int) *LinearQuad {
	return &LinearQuad{newTensorBasis(2, order)}
}

func (lq *LinearQuad) LayoutType() types.ElementLayout { return types.QuadElement }

// LinearHexa is the 8 node trilinear hexahedron
type LinearHexa struct {
	tensorBasis
}

func NewLinearHexa(order int) *LinearHexa {
	return &LinearHexa{newTensorBasis(3, order)}
}

func (lh *LinearHexa) LayoutType() types.ElementLayout { return types.HexaElement }
