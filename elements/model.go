/*
Package elements implements the physics-at-a-point element models and the element level
residual/Jacobian kernels that an assembler calls at each integration point.

Point data layouts shared by every model:

	Ut[3*v + k]        value (k=0), first (k=1) and second (k=2) time derivative of component v
	Ux[v*dim + j]      derivative of component v along x_j
	X[0:3]             physical coordinates of the point
	Xd[i*dim + j]      dX_i/dξ_j
	DUt, DUx           weak form coefficients with the same layouts as Ut, Ux

The residual contribution of a point is

	Σ_v N (DUt[3v] + DUt[3v+1] + DUt[3v+2]) + Σ_v Σ_j ∂N/∂x_j DUx[v*dim + j]

Jacobian values are returned for a fixed list of (row, column) pairs into the flattened
[DUt | DUx] x [Ut | Ux] index space.
*/
package elements

import (
	"errors"

	"github.com/notargets/gofea/constitutive"
	"github.com/notargets/gofea/types"
)

// ErrFaceIndex reports a face index outside the parent element
var ErrFaceIndex = errors.New("elements: face index out of range")

// ElementModel evaluates the weak form physics at one integration point
type ElementModel interface {
	NumParameters() int
	VarsPerNode() int
	DesignVarsPerNode() int

	GetDesignVarNums(elemIndex int, dvNums []int) int
	SetDesignVars(elemIndex int, dvs []float64) int
	GetDesignVars(elemIndex int, dvs []float64) int
	GetDesignVarRange(elemIndex int, lb, ub []float64) int

	EvalWeakIntegrand(elemIndex int, time float64, n int, pt, X, Xd, Ut, Ux, DUt, DUx []float64)
	AddWeakAdjProduct(elemIndex int, time, scale float64, n int, pt, X, Xd, Ut, Ux,
		Psi, Psix, dfdx []float64)
	EvalWeakAdjXptSensProduct(elemIndex int, time float64, n int, pt, X, Xd, Ut, Ux,
		Psi, Psix, dfdX, dfdXd, dfdUx, dfdPsix []float64) (product float64)

	GetWeakMatrixNonzeros(matType types.ElementMatrixType, elemIndex int) (nnz int, pairs []int)
	EvalWeakMatrix(matType types.ElementMatrixType, elemIndex int, time float64, n int,
		pt, X, Xd, Ut, Ux, DUt, DUx, Jac []float64)

	EvalPointQuantity(elemIndex, quantityType int, time float64, n int,
		pt, X, Xd, Ut, Ux, quantity []float64) int
	AddPointQuantityDVSens(elemIndex, quantityType int, time, scale float64, n int,
		pt, X, Xd, Ut, Ux, dfdq, dfdx []float64)
	EvalPointQuantitySens(elemIndex, quantityType int, time float64, n int,
		pt, X, Xd, Ut, Ux, dfdq, dfdX, dfdXd, dfdUt, dfdUx []float64)

	GetOutputData(elemIndex int, time float64, etype types.ElementType, writeFlag int,
		pt, X, Ut, Ux, data []float64) int
}

// ConstitutiveModel is implemented by models that expose their material collaborator
type ConstitutiveModel interface {
	GetConstitutive() constitutive.Constitutive
}

/*
Element computes residuals and Jacobians for a whole element. Node arrays are flattened
per node then per component: vars[i*vpn + a]. Matrices are row-major over the same
ordering: mat[(i*vpn + a)*(nnodes*vpn) + j*vpn + b].
*/
type Element interface {
	VarsPerNode() int
	NumNodes() int
	DesignVarsPerNode() int
	LayoutType() types.ElementLayout
	ElementBasis() Basis

	AddResidual(elemIndex int, time float64, Xpts, vars, dvars, ddvars, res []float64)
	AddJacobian(elemIndex int, time, alpha, beta, gamma float64,
		Xpts, vars, dvars, ddvars, res, mat []float64)
	AddAdjResProduct(elemIndex int, time, scale float64, psi, Xpts, vars, dvars, ddvars,
		dvSens []float64)
	AddAdjResXptProduct(elemIndex int, time, scale float64, psi, Xpts, vars, dvars, ddvars,
		fXptSens []float64)
}

// Basis supplies shape functions and quadrature on the reference element
type Basis interface {
	LayoutType() types.ElementLayout
	NumNodes() int
	NumParameters() int
	NumQuadraturePoints() int
	QuadraturePoint(n int, pt []float64) float64
	NumFaces() int
	NumFaceQuadraturePoints(face int) int
	FaceQuadraturePoint(face, n int, pt, tangent []float64) float64
	ComputeBasis(pt, N []float64)
	ComputeBasisGradient(pt, N, Nxi []float64)
	FaceNormal(face, n int, Xpts, X, Xd, normal []float64) float64
	AddFaceNormalXptSens(face, n int, area float64, Xd, normal []float64,
		dfdA float64, dfdX, dfdXd, dfdn, dfdXpts []float64)
}
