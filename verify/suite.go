package verify

import (
	"math/rand"
	"sort"

	"github.com/notargets/gofea/elements"
	"github.com/notargets/gofea/types"
)

// CheckModel runs the pattern checks and every finite-difference model check at a random point
func CheckModel(model elements.ElementModel, rng *rand.Rand, scale, h float64) (results []Result, err error) {
	var (
		p        = NewRandomPoint(rng, model, scale)
		nut, nux = weakSizes(model)
		Psi      = RandomVector(rng, nut, 1)
		Psix     = RandomVector(rng, nux, 1)
		matTypes = []types.ElementMatrixType{types.JacobianMatrix, types.StiffnessMatrix, types.MassMatrix}
	)
	for _, matType := range matTypes {
		_, pairs := model.GetWeakMatrixNonzeros(matType, p.ElemIndex)
		if err = PatternUnique(pairs, nut+nux); err != nil {
			return
		}
		if _, err = PatternCount(model, matType, p); err != nil {
			return
		}
	}
	if err = PatternSubset(model, p.ElemIndex); err != nil {
		return
	}
	for _, matType := range matTypes {
		results = append(results, ModelJacobian(model, matType, p, h))
	}
	results = append(results,
		ModelAdjProduct(model, p, Psi, Psix, h),
		ModelAdjXptSensProduct(model, p, Psi, Psix, h),
	)
	var quantities []int
	for _, q := range types.QuantityNameMap {
		quantities = append(quantities, q)
	}
	sort.Ints(quantities)
	for _, q := range quantities {
		dfdq := RandomVector(rng, 3, 1)
		results = append(results,
			ModelPointQuantitySens(model, q, p, dfdq, h),
			ModelPointQuantityDVSens(model, q, p, dfdq, h),
		)
	}
	return
}

// CheckElement runs the element Jacobian and coordinate sensitivity checks with a random state
func CheckElement(elem elements.Element, Xpts []float64, rng *rand.Rand, scale, h float64) (results []Result) {
	var (
		n      = elementSize(elem)
		vars   = RandomVector(rng, n, scale)
		dvars  = RandomVector(rng, n, scale)
		ddvars = RandomVector(rng, n, scale)
		psi    = RandomVector(rng, n, 1)
	)
	results = append(results,
		ElementJacobian(elem, 0, 0, 1, 0.5, 0.25, Xpts, vars, dvars, ddvars, h),
		ElementAdjXptProduct(elem, 0, 0, 1, psi, Xpts, vars, dvars, ddvars, h),
	)
	return
}

/*
RandomNodes returns the node coordinates of a linear quad (dim 2) or hexa (dim 3) on a
2 x 1.5 x 1 box with every coordinate moved by up to jitter. Node i sits on the high side of
direction d when bit d of i is set.
*/
func RandomNodes(rng *rand.Rand, dim int, jitter float64) (Xpts []float64) {
	var (
		nnodes = 1 << dim
		size   = [3]float64{2, 1.5, 1}
	)
	Xpts = make([]float64, 3*nnodes)
	for i := 0; i < nnodes; i++ {
		for d := 0; d < dim; d++ {
			Xpts[3*i+d] = size[d]*float64((i>>d)&1) + jitter*rng.Float64()
		}
	}
	return
}
