package verify

import (
	"math/rand"

	"github.com/notargets/gofea/elements"
	"github.com/notargets/gofea/types"
	"github.com/notargets/gofea/utils"
	"gonum.org/v1/gonum/mat"
)

const maxDesignVars = 64

// Point is the input of a point-wise model evaluation
type Point struct {
	ElemIndex, N      int
	Time              float64
	Pt, X, Xd, Ut, Ux []float64
}

/*
NewRandomPoint draws a point for model with Ut and Ux uniform in [-scale, scale), a random
physical position and a well conditioned Xd near the identity.
*/
func NewRandomPoint(rng *rand.Rand, model elements.ElementModel, scale float64) (p Point) {
	var (
		dim   = model.NumParameters()
		nvars = model.VarsPerNode()
	)
	p = Point{
		Pt: RandomVector(rng, dim, 0.9),
		X:  RandomVector(rng, 3, 1),
		Xd: RandomVector(rng, dim*dim, 0.1),
		Ut: RandomVector(rng, 3*nvars, scale),
		Ux: RandomVector(rng, nvars*dim, scale),
	}
	for i := 0; i < dim; i++ {
		p.Xd[i*dim+i] += 1
	}
	return
}

func (p Point) clone() (c Point) {
	c = p
	c.Pt = append([]float64{}, p.Pt...)
	c.X = append([]float64{}, p.X...)
	c.Xd = append([]float64{}, p.Xd...)
	c.Ut = append([]float64{}, p.Ut...)
	c.Ux = append([]float64{}, p.Ux...)
	return
}

func weakSizes(model elements.ElementModel) (nut, nux int) {
	nvars := model.VarsPerNode()
	return 3 * nvars, nvars * model.NumParameters()
}

func evalWeak(model elements.ElementModel, p Point, DUt, DUx []float64) {
	model.EvalWeakIntegrand(p.ElemIndex, p.Time, p.N, p.Pt, p.X, p.Xd, p.Ut, p.Ux, DUt, DUx)
}

/*
ModelJacobian compares EvalWeakMatrix against the finite-difference derivative of
EvalWeakIntegrand. For the Jacobian every entry of the dense derivative is compared, so
couplings missing from the pattern are caught; other matrix types compare their pattern
entries only.
*/
func ModelJacobian(model elements.ElementModel, matType types.ElementMatrixType, p Point, h float64) Result {
	var (
		nut, nux   = weakSizes(model)
		nw         = nut + nux
		DUt        = make([]float64, nut)
		DUx        = make([]float64, nux)
		nnz, pairs = model.GetWeakMatrixNonzeros(matType, p.ElemIndex)
		Jac        = make([]float64, nnz)
		fd         = mat.NewDense(nw, nw, nil)
		col        = make([]float64, nw)
		q          = p.clone()
		analytic   []float64
		reference  []float64
	)
	h = step(h)
	model.EvalWeakMatrix(matType, p.ElemIndex, p.Time, p.N, p.Pt, p.X, p.Xd, p.Ut, p.Ux, DUt, DUx, Jac)
	eval := func(out []float64) { evalWeak(model, q, out[:nut], out[nut:]) }
	for c := 0; c < nw; c++ {
		if c < nut {
			centralDiffVec(q.Ut, c, h, eval, col)
		} else {
			centralDiffVec(q.Ux, c-nut, h, eval, col)
		}
		fd.SetCol(c, col)
	}
	if matType == types.JacobianMatrix {
		pm := utils.NewPairsCSR(matType.String(), nw, pairs, Jac)
		for i := 0; i < nw; i++ {
			for j := 0; j < nw; j++ {
				analytic = append(analytic, pm.At(i, j))
				reference = append(reference, fd.At(i, j))
			}
		}
	} else {
		analytic = Jac
		for k := 0; k < nnz; k++ {
			reference = append(reference, fd.At(pairs[2*k], pairs[2*k+1]))
		}
	}
	return compare("EvalWeakMatrix "+matType.String(), analytic, reference)
}

// ModelAdjProduct compares AddWeakAdjProduct with the design derivative of Psi·DUt + Psix·DUx
func ModelAdjProduct(model elements.ElementModel, p Point, Psi, Psix []float64, h float64) Result {
	var (
		nut, nux = weakSizes(model)
		DUt      = make([]float64, nut)
		DUx      = make([]float64, nux)
		dvs      = make([]float64, maxDesignVars)
		ndv      = model.GetDesignVars(p.ElemIndex, dvs)
		dfdx     = make([]float64, ndv)
		fd       = make([]float64, ndv)
	)
	h = step(h)
	dvs = dvs[:ndv]
	model.AddWeakAdjProduct(p.ElemIndex, p.Time, 1., p.N, p.Pt, p.X, p.Xd, p.Ut, p.Ux, Psi, Psix, dfdx)
	product := func() float64 {
		model.SetDesignVars(p.ElemIndex, dvs)
		evalWeak(model, p, DUt, DUx)
		return dot(Psi, DUt) + dot(Psix, DUx)
	}
	for k := 0; k < ndv; k++ {
		fd[k] = centralDiff(dvs, k, h, product)
	}
	model.SetDesignVars(p.ElemIndex, dvs)
	return compare("AddWeakAdjProduct", dfdx, fd)
}

/*
ModelAdjXptSensProduct compares the product and the partials returned by
EvalWeakAdjXptSensProduct, concatenated as [product, dfdX, dfdXd, dfdUx, dfdPsix], with the
direct product and its finite-difference derivatives.
*/
func ModelAdjXptSensProduct(model elements.ElementModel, p Point, Psi, Psix []float64, h float64) Result {
	var (
		nut, nux  = weakSizes(model)
		dim       = model.NumParameters()
		DUt       = make([]float64, nut)
		DUx       = make([]float64, nux)
		dfdX      = make([]float64, 3)
		dfdXd     = make([]float64, dim*dim)
		dfdUx     = make([]float64, nux)
		dfdPsix   = make([]float64, nux)
		q         = p.clone()
		psix      = append([]float64{}, Psix...)
		analytic  []float64
		reference []float64
	)
	h = step(h)
	product := model.EvalWeakAdjXptSensProduct(p.ElemIndex, p.Time, p.N, p.Pt, p.X, p.Xd, p.Ut, p.Ux,
		Psi, Psix, dfdX, dfdXd, dfdUx, dfdPsix)
	f := func() float64 {
		evalWeak(model, q, DUt, DUx)
		return dot(Psi, DUt) + dot(psix, DUx)
	}
	analytic = append(analytic, product)
	reference = append(reference, f())
	analytic = append(append(append(append(analytic, dfdX...), dfdXd...), dfdUx...), dfdPsix...)
	for _, x := range [][]float64{q.X, q.Xd, q.Ux, psix} {
		for k := range x {
			reference = append(reference, centralDiff(x, k, h, f))
		}
	}
	return compare("EvalWeakAdjXptSensProduct", analytic, reference)
}

/*
ModelPointQuantitySens compares EvalPointQuantitySens, concatenated as
[dfdX, dfdXd, dfdUt, dfdUx], with finite differences of dfdq·quantity.
*/
func ModelPointQuantitySens(model elements.ElementModel, quantityType int, p Point, dfdq []float64, h float64) Result {
	var (
		nut, nux  = weakSizes(model)
		dim       = model.NumParameters()
		quantity  = make([]float64, 9)
		dfdX      = make([]float64, 3)
		dfdXd     = make([]float64, dim*dim)
		dfdUt     = make([]float64, nut)
		dfdUx     = make([]float64, nux)
		q         = p.clone()
		analytic  []float64
		reference []float64
	)
	h = step(h)
	model.EvalPointQuantitySens(p.ElemIndex, quantityType, p.Time, p.N, p.Pt, p.X, p.Xd, p.Ut, p.Ux,
		dfdq, dfdX, dfdXd, dfdUt, dfdUx)
	f := func() float64 {
		n := model.EvalPointQuantity(q.ElemIndex, quantityType, q.Time, q.N, q.Pt, q.X, q.Xd, q.Ut, q.Ux,
			quantity)
		return dot(dfdq, quantity[:n])
	}
	analytic = append(append(append(append(analytic, dfdX...), dfdXd...), dfdUt...), dfdUx...)
	for _, x := range [][]float64{q.X, q.Xd, q.Ut, q.Ux} {
		for k := range x {
			reference = append(reference, centralDiff(x, k, h, f))
		}
	}
	return compare("EvalPointQuantitySens "+quantityName(quantityType), analytic, reference)
}

// ModelPointQuantityDVSens compares AddPointQuantityDVSens with the design derivative of dfdq·quantity
func ModelPointQuantityDVSens(model elements.ElementModel, quantityType int, p Point, dfdq []float64, h float64) Result {
	var (
		quantity = make([]float64, 9)
		dvs      = make([]float64, maxDesignVars)
		ndv      = model.GetDesignVars(p.ElemIndex, dvs)
		dfdx     = make([]float64, ndv)
		fd       = make([]float64, ndv)
	)
	h = step(h)
	dvs = dvs[:ndv]
	model.AddPointQuantityDVSens(p.ElemIndex, quantityType, p.Time, 1., p.N, p.Pt, p.X, p.Xd, p.Ut, p.Ux,
		dfdq, dfdx)
	f := func() float64 {
		model.SetDesignVars(p.ElemIndex, dvs)
		n := model.EvalPointQuantity(p.ElemIndex, quantityType, p.Time, p.N, p.Pt, p.X, p.Xd, p.Ut, p.Ux,
			quantity)
		return dot(dfdq, quantity[:n])
	}
	for k := 0; k < ndv; k++ {
		fd[k] = centralDiff(dvs, k, h, f)
	}
	model.SetDesignVars(p.ElemIndex, dvs)
	return compare("AddPointQuantityDVSens "+quantityName(quantityType), dfdx, fd)
}

func quantityName(quantityType int) string {
	for name, q := range types.QuantityNameMap {
		if q == quantityType {
			return name
		}
	}
	return "unknown"
}
