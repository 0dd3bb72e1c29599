package verify

import (
	"github.com/notargets/gofea/elements"
)

func elementSize(elem elements.Element) int {
	return elem.NumNodes() * elem.VarsPerNode()
}

/*
ElementJacobian compares the matrix from AddJacobian with

	alpha dR/dvars + beta dR/ddvars + gamma dR/dddvars

by central differences of AddResidual, and the residual AddJacobian adds with AddResidual.
*/
func ElementJacobian(elem elements.Element, elemIndex int, time, alpha, beta, gamma float64,
	Xpts, vars, dvars, ddvars []float64, h float64) Result {
	var (
		n         = elementSize(elem)
		res       = make([]float64, n)
		resDirect = make([]float64, n)
		mat       = make([]float64, n*n)
		fd        = make([]float64, n*n)
		col       = make([]float64, n)
		u         = append([]float64{}, vars...)
		du        = append([]float64{}, dvars...)
		ddu       = append([]float64{}, ddvars...)
		coef      = [3]float64{alpha, beta, gamma}
	)
	h = step(h)
	elem.AddJacobian(elemIndex, time, alpha, beta, gamma, Xpts, vars, dvars, ddvars, res, mat)
	elem.AddResidual(elemIndex, time, Xpts, vars, dvars, ddvars, resDirect)
	residual := func(out []float64) {
		for i := range out {
			out[i] = 0
		}
		elem.AddResidual(elemIndex, time, Xpts, u, du, ddu, out)
	}
	for slot, x := range [][]float64{u, du, ddu} {
		if coef[slot] == 0 {
			continue
		}
		for c := 0; c < n; c++ {
			centralDiffVec(x, c, h, residual, col)
			for r := 0; r < n; r++ {
				fd[r*n+c] += coef[slot] * col[r]
			}
		}
	}
	return compare("AddJacobian", append(mat, res...), append(fd, resDirect...))
}

// ElementAdjXptProduct compares AddAdjResXptProduct with the coordinate derivative of scale * psi·R
func ElementAdjXptProduct(elem elements.Element, elemIndex int, time, scale float64,
	psi, Xpts, vars, dvars, ddvars []float64, h float64) Result {
	var (
		n        = elementSize(elem)
		res      = make([]float64, n)
		fXptSens = make([]float64, len(Xpts))
		fd       = make([]float64, len(Xpts))
		xpts     = append([]float64{}, Xpts...)
	)
	h = step(h)
	elem.AddAdjResXptProduct(elemIndex, time, scale, psi, Xpts, vars, dvars, ddvars, fXptSens)
	f := func() float64 {
		for i := range res {
			res[i] = 0
		}
		elem.AddResidual(elemIndex, time, xpts, vars, dvars, ddvars, res)
		return scale * dot(psi, res)
	}
	for k := range xpts {
		fd[k] = centralDiff(xpts, k, h, f)
	}
	return compare("AddAdjResXptProduct", fXptSens, fd)
}
