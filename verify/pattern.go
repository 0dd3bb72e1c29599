package verify

import (
	"fmt"
	"math"

	"github.com/notargets/gofea/elements"
	"github.com/notargets/gofea/types"
)

// PatternUnique checks that pairs has even length, no repeated pair and every index below nw
func PatternUnique(pairs []int, nw int) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("%w: odd pair list length %d", ErrPattern, len(pairs))
	}
	seen := make(map[[2]int]bool, len(pairs)/2)
	for k := 0; k < len(pairs)/2; k++ {
		pair := [2]int{pairs[2*k], pairs[2*k+1]}
		if pair[0] < 0 || pair[0] >= nw || pair[1] < 0 || pair[1] >= nw {
			return fmt.Errorf("%w: pair %d (%d, %d) outside [0, %d)", ErrPattern, k, pair[0], pair[1], nw)
		}
		if seen[pair] {
			return fmt.Errorf("%w: pair (%d, %d) repeated", ErrPattern, pair[0], pair[1])
		}
		seen[pair] = true
	}
	return nil
}

/*
PatternCount evaluates the matrix into a NaN filled buffer longer than the declared pattern
and returns the number of leading entries written. It is an error when that differs from
the declared count.
*/
func PatternCount(model elements.ElementModel, matType types.ElementMatrixType, p Point) (written int, err error) {
	var (
		nut, nux = weakSizes(model)
		nnz, _   = model.GetWeakMatrixNonzeros(matType, p.ElemIndex)
		Jac      = make([]float64, nnz+nut+nux)
	)
	for i := range Jac {
		Jac[i] = math.NaN()
	}
	model.EvalWeakMatrix(matType, p.ElemIndex, p.Time, p.N, p.Pt, p.X, p.Xd, p.Ut, p.Ux,
		make([]float64, nut), make([]float64, nux), Jac)
	for i, v := range Jac {
		if !math.IsNaN(v) {
			written = i + 1
		}
	}
	if written != nnz {
		err = fmt.Errorf("%w: %s declares %d entries, wrote %d", ErrPattern, matType, nnz, written)
	}
	return
}

// PatternSubset checks that the stiffness and mass patterns partition the Jacobian pattern
func PatternSubset(model elements.ElementModel, elemIndex int) error {
	var (
		_, jac   = model.GetWeakMatrixNonzeros(types.JacobianMatrix, elemIndex)
		_, stiff = model.GetWeakMatrixNonzeros(types.StiffnessMatrix, elemIndex)
		_, mass  = model.GetWeakMatrixNonzeros(types.MassMatrix, elemIndex)
		inJac    = make(map[[2]int]bool, len(jac)/2)
		covered  = make(map[[2]int]bool, len(jac)/2)
	)
	for k := 0; k < len(jac)/2; k++ {
		inJac[[2]int{jac[2*k], jac[2*k+1]}] = true
	}
	for _, sub := range []struct {
		name  string
		pairs []int
	}{{"stiffness", stiff}, {"mass", mass}} {
		for k := 0; k < len(sub.pairs)/2; k++ {
			pair := [2]int{sub.pairs[2*k], sub.pairs[2*k+1]}
			if !inJac[pair] {
				return fmt.Errorf("%w: %s pair (%d, %d) not in the Jacobian pattern",
					ErrPattern, sub.name, pair[0], pair[1])
			}
			if covered[pair] {
				return fmt.Errorf("%w: pair (%d, %d) in both stiffness and mass patterns",
					ErrPattern, pair[0], pair[1])
			}
			covered[pair] = true
		}
	}
	if len(covered) != len(inJac) {
		return fmt.Errorf("%w: stiffness and mass cover %d of %d Jacobian pairs",
			ErrPattern, len(covered), len(inJac))
	}
	return nil
}
