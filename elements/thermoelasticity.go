package elements

import (
	"github.com/notargets/gofea/constitutive"
	"github.com/notargets/gofea/types"
)

const (
	maxDim    = 3
	maxVars   = maxDim + 1
	maxStress = 6
	maxWeak   = 3*maxVars + maxVars*maxDim
)

var (
	voigt2D = [][2]int{{0, 0}, {1, 1}, {0, 1}}
	voigt3D = [][2]int{{0, 0}, {1, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}}
)

// Jacobian nonzero patterns, built once
var (
	thermoelasticJacPairs2D   = thermoelasticPairs(2, types.JacobianMatrix)
	thermoelasticStiffPairs2D = thermoelasticPairs(2, types.StiffnessMatrix)
	thermoelasticMassPairs2D  = thermoelasticPairs(2, types.MassMatrix)
	thermoelasticJacPairs3D   = thermoelasticPairs(3, types.JacobianMatrix)
	thermoelasticStiffPairs3D = thermoelasticPairs(3, types.StiffnessMatrix)
	thermoelasticMassPairs3D  = thermoelasticPairs(3, types.MassMatrix)
)

/*
thermoelasticPairs lists, in row-major order, the couplings of the thermoelastic weak form:

	mass:      ρ ü_i on ü_i, ρ c Ṫ on Ṫ
	stiffness: stress rows on displacement gradients and temperature, flux rows on ∇T

The Jacobian pattern is the union of the two.
*/
func thermoelasticPairs(dim int, matType types.ElementMatrixType) (pairs []int) {
	var (
		nvars  = dim + 1
		offset = 3 * nvars
		nweak  = offset + nvars*dim
	)
	for row := 0; row < nweak; row++ {
		for col := 0; col < nweak; col++ {
			mass, stiff := thermoelasticCoupling(dim, row, col)
			switch matType {
			case types.JacobianMatrix:
				if mass || stiff {
					pairs = append(pairs, row, col)
				}
			case types.StiffnessMatrix:
				if stiff {
					pairs = append(pairs, row, col)
				}
			case types.MassMatrix:
				if mass {
					pairs = append(pairs, row, col)
				}
			}
		}
	}
	return
}

func thermoelasticCoupling(dim, row, col int) (mass, stiff bool) {
	var (
		nvars  = dim + 1
		offset = 3 * nvars
		gradT  = offset + dim*dim
		theta  = 3 * dim
	)
	if row < offset {
		mass = row == col && ((row%3 == 2 && row/3 < dim) || row == theta+1)
		return
	}
	if row < gradT {
		stiff = col == theta || (col >= offset && col < gradT)
		return
	}
	stiff = col >= gradT
	return
}

// thermoelasticity holds the dimension independent physics shared by the 2D and 3D models
type thermoelasticity struct {
	dim, nvars, nstress, nweak int
	strainType                 types.ElementStrainType
	steadyStateFlag            int
	con                        constitutive.Constitutive
	voigt                      [][2]int
	etype                      types.ElementType
	jacPairs                   []int
	stiffPairs                 []int
	massPairs                  []int
}

// pointState is the material response at one point
type pointState struct {
	e, em, et1, s [maxStress]float64 // total, mechanical, unit thermal strain, stress
	B             [maxStress * maxDim * maxDim]float64
	grad, flux    [maxDim]float64
	rho, c        float64
}

func newThermoelasticity(dim int, con constitutive.Constitutive,
	strainType types.ElementStrainType, steadyStateFlag int) (te thermoelasticity) {
	te = thermoelasticity{
		dim:             dim,
		nvars:           dim + 1,
		nweak:           3*(dim+1) + (dim+1)*dim,
		strainType:      strainType,
		steadyStateFlag: steadyStateFlag,
		con:             con,
	}
	if dim == 2 {
		te.nstress = 3
		te.voigt = voigt2D
		te.etype = types.PlaneStressElement
		te.jacPairs = thermoelasticJacPairs2D
		te.stiffPairs = thermoelasticStiffPairs2D
		te.massPairs = thermoelasticMassPairs2D
	} else {
		te.nstress = 6
		te.voigt = voigt3D
		te.etype = types.SolidElement
		te.jacPairs = thermoelasticJacPairs3D
		te.stiffPairs = thermoelasticStiffPairs3D
		te.massPairs = thermoelasticMassPairs3D
	}
	return
}

func (te *thermoelasticity) NumParameters() int { return te.dim }
func (te *thermoelasticity) VarsPerNode() int   { return te.nvars }

func (te *thermoelasticity) DesignVarsPerNode() int { return te.con.DesignVarsPerNode() }

func (te *thermoelasticity) GetConstitutive() constitutive.Constitutive { return te.con }

func (te *thermoelasticity) StrainType() types.ElementStrainType { return te.strainType }

func (te *thermoelasticity) SteadyStateFlag() int { return te.steadyStateFlag }

func (te *thermoelasticity) GetDesignVarNums(elemIndex int, dvNums []int) int {
	return te.con.GetDesignVarNums(elemIndex, dvNums)
}

func (te *thermoelasticity) SetDesignVars(elemIndex int, dvs []float64) int {
	return te.con.SetDesignVars(elemIndex, dvs)
}

func (te *thermoelasticity) GetDesignVars(elemIndex int, dvs []float64) int {
	return te.con.GetDesignVars(elemIndex, dvs)
}

func (te *thermoelasticity) GetDesignVarRange(elemIndex int, lb, ub []float64) int {
	return te.con.GetDesignVarRange(elemIndex, lb, ub)
}

func (te *thermoelasticity) inertial() bool {
	return te.steadyStateFlag&types.SteadyStateMechanical == 0
}

func (te *thermoelasticity) capacitive() bool {
	return te.steadyStateFlag&types.SteadyStateThermal == 0
}

/*
strain computes the total strain e from the displacement gradient G_ib = Ux[i*dim + b]
and B[v*dim*dim + i*dim + b] = ∂e_v/∂G_ib. With F = I (linear) or F = I + G (Green-Lagrange):

	e_aa = G_aa [+ ½ Σ_k G_ka G_ka]            B = F_ia δ_ba
	e_ac = G_ac + G_ca [+ Σ_k G_ka G_kc]        B = F_ia δ_bc + F_ic δ_ba
*/
func (te *thermoelasticity) strain(Ux, e, B []float64) {
	var (
		dim       = te.dim
		ndof      = dim * dim
		F         [maxDim * maxDim]float64
		nonlinear = te.strainType == types.NonlinearStrain
	)
	for i := 0; i < dim; i++ {
		F[i*dim+i] = 1
		if nonlinear {
			for a := 0; a < dim; a++ {
				F[i*dim+a] += Ux[i*dim+a]
			}
		}
	}
	for v, ac := range te.voigt {
		a, c := ac[0], ac[1]
		if a == c {
			e[v] = Ux[a*dim+a]
		} else {
			e[v] = Ux[a*dim+c] + Ux[c*dim+a]
		}
		if nonlinear {
			var sum float64
			for k := 0; k < dim; k++ {
				sum += Ux[k*dim+a] * Ux[k*dim+c]
			}
			if a == c {
				sum *= 0.5
			}
			e[v] += sum
		}
		Bv := B[v*ndof : (v+1)*ndof]
		for i := 0; i < dim; i++ {
			for b := 0; b < dim; b++ {
				var val float64
				if b == a {
					val += F[i*dim+c]
				}
				if a != c && b == c {
					val += F[i*dim+a]
				}
				Bv[i*dim+b] = val
			}
		}
	}
}

func (te *thermoelasticity) evalPoint(elemIndex int, pt, X, Ut, Ux []float64, ps *pointState) {
	var (
		dim   = te.dim
		theta = Ut[3*dim]
	)
	ps.rho = te.con.EvalDensity(elemIndex, pt, X)
	ps.c = te.con.EvalSpecificHeat(elemIndex, pt, X)
	te.strain(Ux, ps.e[:], ps.B[:])
	te.con.EvalThermalStrain(elemIndex, pt, X, 1., ps.et1[:])
	for v := 0; v < te.nstress; v++ {
		ps.em[v] = ps.e[v] - theta*ps.et1[v]
	}
	te.con.EvalStress(elemIndex, pt, X, ps.em[:], ps.s[:])
	for j := 0; j < dim; j++ {
		ps.grad[j] = Ux[dim*dim+j]
	}
	te.con.EvalHeatFlux(elemIndex, pt, X, ps.grad[:], ps.flux[:])
}

func (te *thermoelasticity) weakIntegrand(Ut []float64, ps *pointState, DUt, DUx []float64) {
	var (
		dim  = te.dim
		ndof = dim * dim
	)
	for i := 0; i < 3*te.nvars; i++ {
		DUt[i] = 0
	}
	if te.inertial() {
		for i := 0; i < dim; i++ {
			DUt[3*i+2] = ps.rho * Ut[3*i+2]
		}
	}
	if te.capacitive() {
		DUt[3*dim+1] = ps.rho * ps.c * Ut[3*dim+1]
	}
	for k := 0; k < ndof; k++ {
		var sum float64
		for v := 0; v < te.nstress; v++ {
			sum += ps.B[v*ndof+k] * ps.s[v]
		}
		DUx[k] = sum
	}
	for j := 0; j < dim; j++ {
		DUx[ndof+j] = ps.flux[j]
	}
}

// tangent fills the dense nweak x nweak derivative of [DUt | DUx] with respect to [Ut | Ux]
func (te *thermoelasticity) tangent(elemIndex int, pt, X []float64, ps *pointState, D []float64) {
	var (
		dim    = te.dim
		ndof   = dim * dim
		ns     = te.nstress
		nw     = te.nweak
		off    = 3 * te.nvars
		theta  = 3 * dim
		C      [maxStress * maxStress]float64
		CB     [maxStress * maxDim * maxDim]float64
		Cet    [maxStress]float64
		Kc     [maxDim * maxDim]float64
		S      [maxDim * maxDim]float64
		gradT  = off + ndof
		nonlin = te.strainType == types.NonlinearStrain
	)
	for i := 0; i < nw*nw; i++ {
		D[i] = 0
	}
	if te.inertial() {
		for i := 0; i < dim; i++ {
			r := 3*i + 2
			D[r*nw+r] = ps.rho
		}
	}
	if te.capacitive() {
		r := theta + 1
		D[r*nw+r] = ps.rho * ps.c
	}

	te.con.EvalTangentStiffness(elemIndex, pt, X, C[:])
	for v := 0; v < ns; v++ {
		for k := 0; k < ndof; k++ {
			var sum float64
			for w := 0; w < ns; w++ {
				sum += C[v*ns+w] * ps.B[w*ndof+k]
			}
			CB[v*ndof+k] = sum
		}
		var sum float64
		for w := 0; w < ns; w++ {
			sum += C[v*ns+w] * ps.et1[w]
		}
		Cet[v] = sum
	}
	for r := 0; r < ndof; r++ {
		row := D[(off+r)*nw : (off+r+1)*nw]
		for k := 0; k < ndof; k++ {
			var sum float64
			for v := 0; v < ns; v++ {
				sum += ps.B[v*ndof+r] * CB[v*ndof+k]
			}
			row[off+k] = sum
		}
		var sum float64
		for v := 0; v < ns; v++ {
			sum += ps.B[v*ndof+r] * Cet[v]
		}
		row[theta] = -sum
	}
	if nonlin {
		for v, ac := range te.voigt {
			S[ac[0]*dim+ac[1]] = ps.s[v]
			S[ac[1]*dim+ac[0]] = ps.s[v]
		}
		for i := 0; i < dim; i++ {
			for b := 0; b < dim; b++ {
				row := D[(off+i*dim+b)*nw : (off+i*dim+b+1)*nw]
				for d := 0; d < dim; d++ {
					row[off+i*dim+d] += S[b*dim+d]
				}
			}
		}
	}

	te.con.EvalTangentHeatFlux(elemIndex, pt, X, Kc[:])
	for j := 0; j < dim; j++ {
		for k := 0; k < dim; k++ {
			D[(gradT+j)*nw+gradT+k] = Kc[j*dim+k]
		}
	}
}

func (te *thermoelasticity) EvalWeakIntegrand(elemIndex int, time float64, n int,
	pt, X, Xd, Ut, Ux, DUt, DUx []float64) {
	var (
		ps pointState
	)
	te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
	te.weakIntegrand(Ut, &ps, DUt, DUx)
}

func (te *thermoelasticity) GetWeakMatrixNonzeros(matType types.ElementMatrixType,
	elemIndex int) (nnz int, pairs []int) {
	switch matType {
	case types.JacobianMatrix:
		pairs = te.jacPairs
	case types.StiffnessMatrix:
		pairs = te.stiffPairs
	case types.MassMatrix:
		pairs = te.massPairs
	}
	nnz = len(pairs) / 2
	return
}

func (te *thermoelasticity) EvalWeakMatrix(matType types.ElementMatrixType, elemIndex int,
	time float64, n int, pt, X, Xd, Ut, Ux, DUt, DUx, Jac []float64) {
	var (
		ps pointState
		D  [maxWeak * maxWeak]float64
		nw = te.nweak
	)
	te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
	te.weakIntegrand(Ut, &ps, DUt, DUx)
	nnz, pairs := te.GetWeakMatrixNonzeros(matType, elemIndex)
	if nnz == 0 {
		return
	}
	te.tangent(elemIndex, pt, X, &ps, D[:])
	for k := 0; k < nnz; k++ {
		Jac[k] = D[pairs[2*k]*nw+pairs[2*k+1]]
	}
}

func (te *thermoelasticity) AddWeakAdjProduct(elemIndex int, time, scale float64, n int,
	pt, X, Xd, Ut, Ux, Psi, Psix, dfdx []float64) {
	var (
		ps    pointState
		dim   = te.dim
		ndof  = dim * dim
		psiS  [maxStress]float64
		theta = 3 * dim
	)
	te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
	if te.inertial() {
		var sum float64
		for i := 0; i < dim; i++ {
			sum += Psi[3*i+2] * Ut[3*i+2]
		}
		te.con.AddDensityDVSens(elemIndex, scale*sum, pt, X, dfdx)
	}
	if te.capacitive() {
		prod := Psi[theta+1] * Ut[theta+1]
		te.con.AddDensityDVSens(elemIndex, scale*ps.c*prod, pt, X, dfdx)
		te.con.AddSpecificHeatDVSens(elemIndex, scale*ps.rho*prod, pt, X, dfdx)
	}
	for v := 0; v < te.nstress; v++ {
		var sum float64
		for k := 0; k < ndof; k++ {
			sum += ps.B[v*ndof+k] * Psix[k]
		}
		psiS[v] = sum
	}
	te.con.AddStressDVSens(elemIndex, scale, pt, X, ps.em[:], psiS[:], dfdx)
	te.con.AddHeatFluxDVSens(elemIndex, scale, pt, X, ps.grad[:], Psix[ndof:ndof+dim], dfdx)
}

/*
EvalWeakAdjXptSensProduct returns Psi·DUt + Psix·DUx. The thermoelastic coefficients do
not depend on X or Xd directly, so dfdX and dfdXd are zero; the geometric dependence
reaches the assembler through dfdUx and dfdPsix.
*/
func (te *thermoelasticity) EvalWeakAdjXptSensProduct(elemIndex int, time float64, n int,
	pt, X, Xd, Ut, Ux, Psi, Psix, dfdX, dfdXd, dfdUx, dfdPsix []float64) (product float64) {
	var (
		ps   pointState
		DUt  [3 * maxVars]float64
		DUx  [maxVars * maxDim]float64
		D    [maxWeak * maxWeak]float64
		nw   = te.nweak
		off  = 3 * te.nvars
		nut  = 3 * te.nvars
		nux  = te.nvars * te.dim
		ndim = te.dim
	)
	te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
	te.weakIntegrand(Ut, &ps, DUt[:], DUx[:])
	for i := 0; i < nut; i++ {
		product += Psi[i] * DUt[i]
	}
	for i := 0; i < nux; i++ {
		product += Psix[i] * DUx[i]
		dfdPsix[i] = DUx[i]
	}
	for i := 0; i < 3; i++ {
		dfdX[i] = 0
	}
	for i := 0; i < ndim*ndim; i++ {
		dfdXd[i] = 0
	}
	te.tangent(elemIndex, pt, X, &ps, D[:])
	for c := 0; c < nux; c++ {
		var sum float64
		for r := 0; r < nux; r++ {
			sum += Psix[r] * D[(off+r)*nw+off+c]
		}
		dfdUx[c] = sum
	}
	return
}

func (te *thermoelasticity) EvalPointQuantity(elemIndex, quantityType int, time float64, n int,
	pt, X, Xd, Ut, Ux, quantity []float64) int {
	var (
		ps  pointState
		dim = te.dim
	)
	switch quantityType {
	case types.FailureIndex:
		te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
		quantity[0] = te.con.EvalFailure(elemIndex, pt, X, ps.em[:])
		return 1
	case types.ElementDensity:
		quantity[0] = te.con.EvalDensity(elemIndex, pt, X)
		return 1
	case types.StrainEnergyDensity:
		te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
		var sum float64
		for v := 0; v < te.nstress; v++ {
			sum += ps.s[v] * ps.em[v]
		}
		quantity[0] = 0.5 * sum
		return 1
	case types.ElementDisplacement:
		for i := 0; i < dim; i++ {
			quantity[i] = Ut[3*i]
		}
		return dim
	case types.Temperature:
		quantity[0] = Ut[3*dim]
		return 1
	case types.ElementDensityMoment:
		rho := te.con.EvalDensity(elemIndex, pt, X)
		for i := 0; i < dim; i++ {
			quantity[i] = rho * X[i]
		}
		return dim
	case types.HeatFlux:
		te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
		for i := 0; i < dim; i++ {
			quantity[i] = ps.flux[i]
		}
		return dim
	}
	return 0
}

func (te *thermoelasticity) AddPointQuantityDVSens(elemIndex, quantityType int, time, scale float64,
	n int, pt, X, Xd, Ut, Ux, dfdq, dfdx []float64) {
	var (
		ps  pointState
		dim = te.dim
	)
	switch quantityType {
	case types.FailureIndex:
		te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
		te.con.AddFailureDVSens(elemIndex, scale*dfdq[0], pt, X, ps.em[:], dfdx)
	case types.ElementDensity:
		te.con.AddDensityDVSens(elemIndex, scale*dfdq[0], pt, X, dfdx)
	case types.StrainEnergyDensity:
		te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
		te.con.AddStressDVSens(elemIndex, 0.5*scale*dfdq[0], pt, X, ps.em[:], ps.em[:], dfdx)
	case types.ElementDensityMoment:
		var sum float64
		for i := 0; i < dim; i++ {
			sum += dfdq[i] * X[i]
		}
		te.con.AddDensityDVSens(elemIndex, scale*sum, pt, X, dfdx)
	case types.HeatFlux:
		te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
		te.con.AddHeatFluxDVSens(elemIndex, scale, pt, X, ps.grad[:], dfdq[:dim], dfdx)
	}
}

// EvalPointQuantitySens overwrites dfdX, dfdXd, dfdUt and dfdUx
func (te *thermoelasticity) EvalPointQuantitySens(elemIndex, quantityType int, time float64,
	n int, pt, X, Xd, Ut, Ux, dfdq, dfdX, dfdXd, dfdUt, dfdUx []float64) {
	var (
		ps    pointState
		dim   = te.dim
		ndof  = dim * dim
		theta = 3 * dim
		dfde  [maxStress]float64
	)
	for i := 0; i < 3; i++ {
		dfdX[i] = 0
	}
	for i := 0; i < dim*dim; i++ {
		dfdXd[i] = 0
	}
	for i := 0; i < 3*te.nvars; i++ {
		dfdUt[i] = 0
	}
	for i := 0; i < te.nvars*dim; i++ {
		dfdUx[i] = 0
	}
	// adds the chain rule of a strain derivative through e(Ux) and the thermal strain
	addStrainSens := func(scale float64) {
		var ddT float64
		for v := 0; v < te.nstress; v++ {
			ddT += dfde[v] * ps.et1[v]
		}
		dfdUt[theta] -= scale * ddT
		for k := 0; k < ndof; k++ {
			var sum float64
			for v := 0; v < te.nstress; v++ {
				sum += ps.B[v*ndof+k] * dfde[v]
			}
			dfdUx[k] += scale * sum
		}
	}
	switch quantityType {
	case types.FailureIndex:
		te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
		te.con.EvalFailureStrainSens(elemIndex, pt, X, ps.em[:], dfde[:])
		addStrainSens(dfdq[0])
	case types.StrainEnergyDensity:
		te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
		copy(dfde[:], ps.s[:te.nstress])
		addStrainSens(dfdq[0])
	case types.ElementDisplacement:
		for i := 0; i < dim; i++ {
			dfdUt[3*i] = dfdq[i]
		}
	case types.Temperature:
		dfdUt[theta] = dfdq[0]
	case types.ElementDensityMoment:
		rho := te.con.EvalDensity(elemIndex, pt, X)
		for i := 0; i < dim; i++ {
			dfdX[i] = rho * dfdq[i]
		}
	case types.HeatFlux:
		var Kc [maxDim * maxDim]float64
		te.con.EvalTangentHeatFlux(elemIndex, pt, X, Kc[:])
		for k := 0; k < dim; k++ {
			var sum float64
			for j := 0; j < dim; j++ {
				sum += dfdq[j] * Kc[j*dim+k]
			}
			dfdUx[ndof+k] = sum
		}
	}
}

// GetOutputData writes one output row and returns the number of values written
func (te *thermoelasticity) GetOutputData(elemIndex int, time float64, etype types.ElementType,
	writeFlag int, pt, X, Ut, Ux, data []float64) (count int) {
	var (
		ps  pointState
		dim = te.dim
	)
	if etype != te.etype {
		return
	}
	if writeFlag&types.OutputNodes != 0 {
		data[0], data[1], data[2] = X[0], X[1], X[2]
		count += 3
	}
	if writeFlag&types.OutputDisplacements != 0 {
		for v := 0; v < te.nvars; v++ {
			data[count+v] = Ut[3*v]
		}
		count += te.nvars
	}
	if writeFlag&(types.OutputStrains|types.OutputStresses|types.OutputExtras) == 0 {
		return
	}
	te.evalPoint(elemIndex, pt, X, Ut, Ux, &ps)
	if writeFlag&types.OutputStrains != 0 {
		copy(data[count:], ps.em[:te.nstress])
		count += te.nstress
	}
	if writeFlag&types.OutputStresses != 0 {
		copy(data[count:], ps.s[:te.nstress])
		count += te.nstress
	}
	if writeFlag&types.OutputExtras != 0 {
		data[count] = te.con.EvalFailure(elemIndex, pt, X, ps.em[:])
		count++
		copy(data[count:], ps.flux[:dim])
		count += dim
	}
	return
}
