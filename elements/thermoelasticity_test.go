package elements

import (
	"testing"

	"github.com/notargets/gofea/constitutive"
	"github.com/notargets/gofea/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ElementModel      = (*Thermoelasticity2D)(nil)
	_ ElementModel      = (*Thermoelasticity3D)(nil)
	_ ConstitutiveModel = (*Thermoelasticity3D)(nil)
)

func aluminum() constitutive.MaterialProperties {
	return constitutive.MaterialProperties{
		Rho:          2700.,
		SpecificHeat: 921.,
		E:            70.e3,
		Nu:           0.3,
		Alpha:        24.e-6,
		Kappa:        230.,
		YieldStress:  270.,
	}
}

func newModel2D(t *testing.T, strainType types.ElementStrainType, flag int) *Thermoelasticity2D {
	con, err := constitutive.NewPlaneStress(aluminum(), 1.5, 0, 0.1, 10.)
	require.NoError(t, err)
	return NewThermoelasticity2D(con, strainType, flag)
}

func newModel3D(t *testing.T, strainType types.ElementStrainType, flag int) *Thermoelasticity3D {
	con, err := constitutive.NewSolid(aluminum(), 1.2, 0, 0.1, 10.)
	require.NoError(t, err)
	return NewThermoelasticity3D(con, strainType, flag)
}

func TestThermoelasticPatterns(t *testing.T) {
	{ // Plane stress pattern in full
		expected := []int{
			2, 2, 5, 5, 7, 7,
			9, 6, 9, 9, 9, 10, 9, 11, 9, 12,
			10, 6, 10, 9, 10, 10, 10, 11, 10, 12,
			11, 6, 11, 9, 11, 10, 11, 11, 11, 12,
			12, 6, 12, 9, 12, 10, 12, 11, 12, 12,
			13, 13, 13, 14, 14, 13, 14, 14,
		}
		model := newModel2D(t, types.LinearStrain, 0)
		nnz, pairs := model.GetWeakMatrixNonzeros(types.JacobianMatrix, 0)
		assert.Equal(t, 27, nnz)
		assert.Equal(t, 54, len(pairs))
		assert.Equal(t, expected, pairs)
		nnz, pairs = model.GetWeakMatrixNonzeros(types.MassMatrix, 0)
		assert.Equal(t, 3, nnz)
		assert.Equal(t, []int{2, 2, 5, 5, 7, 7}, pairs)
		nnz, _ = model.GetWeakMatrixNonzeros(types.StiffnessMatrix, 0)
		assert.Equal(t, 24, nnz)
	}
	{ // Solid pattern sizes
		model := newModel3D(t, types.NonlinearStrain, 0)
		nnz, pairs := model.GetWeakMatrixNonzeros(types.JacobianMatrix, 3)
		assert.Equal(t, 103, nnz)
		assert.Equal(t, 206, len(pairs))
		assert.Equal(t, []int{2, 2, 5, 5, 8, 8, 10, 10}, pairs[:8])
		nnz, _ = model.GetWeakMatrixNonzeros(types.StiffnessMatrix, 3)
		assert.Equal(t, 99, nnz)
		nnz, _ = model.GetWeakMatrixNonzeros(types.MassMatrix, 3)
		assert.Equal(t, 4, nnz)
	}
	{ // Unknown matrix types declare and write nothing
		model := newModel3D(t, types.LinearStrain, 0)
		nnz, pairs := model.GetWeakMatrixNonzeros(types.ElementMatrixType(99), 0)
		assert.Equal(t, 0, nnz)
		assert.Nil(t, pairs)
		Jac := []float64{-1, -1}
		model.EvalWeakMatrix(types.ElementMatrixType(99), 0, 0, 0, make([]float64, 3), make([]float64, 3),
			identity(3), make([]float64, 12), make([]float64, 12), make([]float64, 12), make([]float64, 12), Jac)
		assert.Equal(t, []float64{-1, -1}, Jac)
	}
}

func TestThermoelasticConstructors(t *testing.T) {
	so, err := constitutive.NewSolid(aluminum(), 1, -1, 0, 0)
	require.NoError(t, err)
	ps, err := constitutive.NewPlaneStress(aluminum(), 1, -1, 0, 0)
	require.NoError(t, err)
	assert.Panics(t, func() { NewThermoelasticity2D(so, types.LinearStrain, 0) })
	assert.Panics(t, func() { NewThermoelasticity3D(ps, types.LinearStrain, 0) })
	model := NewThermoelasticity3D(so, types.NonlinearStrain, types.SteadyStateThermal)
	assert.Equal(t, 3, model.NumParameters())
	assert.Equal(t, 4, model.VarsPerNode())
	assert.Equal(t, 0, model.DesignVarsPerNode())
	assert.Equal(t, types.NonlinearStrain, model.StrainType())
	assert.Equal(t, types.SteadyStateThermal, model.SteadyStateFlag())
	assert.Equal(t, so, model.GetConstitutive())
}

func identity(dim int) (Xd []float64) {
	Xd = make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		Xd[i*dim+i] = 1
	}
	return
}

// pointState2D is a plane stress state with nonzero rates, temperature gradient and strain
func pointState2D() (Ut, Ux []float64) {
	Ut = []float64{
		1.e-3, 2.e-2, 3.,
		-2.e-3, -1.e-2, 5.,
		12., 0.7, 0.,
	}
	Ux = []float64{
		1.e-3, -2.e-4,
		5.e-4, -7.e-4,
		3., -4.,
	}
	return
}

func TestSteadyStateFlags(t *testing.T) {
	var (
		pt, X  = []float64{0.1, -0.3}, []float64{1, 2, 0}
		Xd     = identity(2)
		Ut, Ux = pointState2D()
		rho    = 1.5 * 2700.
	)
	eval := func(model *Thermoelasticity2D) (DUt, DUx, Jac []float64) {
		nnz, _ := model.GetWeakMatrixNonzeros(types.JacobianMatrix, 0)
		DUt, DUx, Jac = make([]float64, 9), make([]float64, 6), make([]float64, nnz)
		model.EvalWeakMatrix(types.JacobianMatrix, 0, 0, 0, pt, X, Xd, Ut, Ux, DUt, DUx, Jac)
		return
	}
	for _, strainType := range []types.ElementStrainType{types.LinearStrain, types.NonlinearStrain} {
		DUt, DUx, Jac := eval(newModel2D(t, strainType, 0))
		assert.InDelta(t, rho*Ut[2], DUt[2], 1.e-9)
		assert.InDelta(t, rho*Ut[5], DUt[5], 1.e-9)
		assert.InDelta(t, rho*921.*Ut[7], DUt[7], 1.e-6)
		assert.InDelta(t, -1.5*230.*4., DUx[5], 1.e-9)
		assert.InDelta(t, rho, Jac[0], 1.e-12)
		assert.InDelta(t, rho*921., Jac[2], 1.e-6)

		{ // Steady thermal removes the capacity term only
			sDUt, sDUx, sJac := eval(newModel2D(t, strainType, types.SteadyStateThermal))
			assert.Equal(t, 0., sDUt[7])
			assert.Equal(t, 0., sJac[2])
			assert.Equal(t, DUx, sDUx)
			assert.Equal(t, DUt[:7], sDUt[:7])
			assert.Equal(t, Jac[:2], sJac[:2])
			assert.Equal(t, Jac[3:], sJac[3:])
		}
		{ // Steady mechanical removes inertia only
			sDUt, sDUx, sJac := eval(newModel2D(t, strainType, types.SteadyStateMechanical))
			assert.Equal(t, 0., sDUt[2])
			assert.Equal(t, 0., sDUt[5])
			assert.Equal(t, DUt[7], sDUt[7])
			assert.Equal(t, DUx, sDUx)
			assert.Equal(t, []float64{0, 0}, sJac[:2])
			assert.Equal(t, Jac[2:], sJac[2:])
		}
		{ // Both
			sDUt, _, sJac := eval(newModel2D(t, strainType,
				types.SteadyStateMechanical|types.SteadyStateThermal))
			assert.Equal(t, make([]float64, 9), sDUt)
			assert.Equal(t, []float64{0, 0, 0}, sJac[:3])
		}
	}
}

func TestThermalStrainCoupling(t *testing.T) {
	var (
		model  = newModel3D(t, types.LinearStrain, 0)
		pt, X  = []float64{0, 0, 0}, []float64{0, 0, 0}
		Ut     = make([]float64, 12)
		Ux     = make([]float64, 12)
		DUt    = make([]float64, 12)
		DUx    = make([]float64, 12)
		theta  = 10.
		alpha  = 24.e-6
		E, nu  = 70.e3, 0.3
		tScale = 1.2
	)
	// A uniform free expansion is stress free
	Ut[9] = theta
	Ux[0], Ux[4], Ux[8] = alpha*theta, alpha*theta, alpha*theta
	model.EvalWeakIntegrand(0, 0, 0, pt, X, identity(3), Ut, Ux, DUt, DUx)
	for k := 0; k < 9; k++ {
		assert.InDelta(t, 0., DUx[k], 1.e-10)
	}
	// A fully constrained block carries the hydrostatic thermal stress
	Ux[0], Ux[4], Ux[8] = 0, 0, 0
	model.EvalWeakIntegrand(0, 0, 0, pt, X, identity(3), Ut, Ux, DUt, DUx)
	sigma := -tScale * E * alpha * theta / (1 - 2*nu)
	assert.InDelta(t, sigma, DUx[0], 1.e-9)
	assert.InDelta(t, sigma, DUx[4], 1.e-9)
	assert.InDelta(t, sigma, DUx[8], 1.e-9)
	assert.InDelta(t, 0., DUx[1], 1.e-12)
}

func TestPointQuantities(t *testing.T) {
	var (
		model    = newModel2D(t, types.LinearStrain, 0)
		pt, X    = []float64{0.1, -0.3}, []float64{1, 2, 0}
		Xd       = identity(2)
		Ut, Ux   = pointState2D()
		quantity = make([]float64, 3)
		rho      = 1.5 * 2700.
	)
	count := func(q int) int {
		return model.EvalPointQuantity(0, q, 0, 0, pt, X, Xd, Ut, Ux, quantity)
	}
	assert.Equal(t, 1, count(types.ElementDensity))
	assert.InDelta(t, rho, quantity[0], 1.e-12)
	assert.Equal(t, 2, count(types.ElementDisplacement))
	assert.Equal(t, []float64{1.e-3, -2.e-3}, quantity[:2])
	assert.Equal(t, 1, count(types.Temperature))
	assert.Equal(t, 12., quantity[0])
	assert.Equal(t, 2, count(types.ElementDensityMoment))
	assert.InDelta(t, rho, quantity[0], 1.e-12)
	assert.InDelta(t, 2*rho, quantity[1], 1.e-12)
	assert.Equal(t, 2, count(types.HeatFlux))
	assert.InDelta(t, 1.5*230.*3., quantity[0], 1.e-9)
	assert.Equal(t, 1, count(types.StrainEnergyDensity))
	assert.True(t, quantity[0] > 0)
	assert.Equal(t, 1, count(types.FailureIndex))
	assert.True(t, quantity[0] > 0)
	quantity[0] = -5
	assert.Equal(t, 0, count(6))
	assert.Equal(t, -5., quantity[0])
}

func TestOutputData(t *testing.T) {
	var (
		model  = newModel2D(t, types.LinearStrain, 0)
		pt, X  = []float64{0.1, -0.3}, []float64{1, 2, 0}
		Ut, Ux = pointState2D()
		data   = make([]float64, 32)
		all    = types.OutputNodes | types.OutputDisplacements | types.OutputStrains |
			types.OutputStresses | types.OutputExtras
	)
	assert.Equal(t, 0, model.GetOutputData(0, 0, types.SolidElement, all, pt, X, Ut, Ux, data))
	assert.Equal(t, 3+3+3+3+1+2, model.GetOutputData(0, 0, types.PlaneStressElement, all, pt, X, Ut, Ux, data))
	assert.Equal(t, []float64{1, 2, 0, 1.e-3, -2.e-3, 12.}, data[:6])
	// mechanical strain removes the thermal part from the normal components
	assert.InDelta(t, 1.e-3-24.e-6*12., data[6], 1.e-15)
	assert.InDelta(t, -7.e-4-24.e-6*12., data[7], 1.e-15)
	assert.InDelta(t, -2.e-4+5.e-4, data[8], 1.e-15)
	assert.InDelta(t, 1.5*230.*3., data[13], 1.e-9)
	assert.InDelta(t, -1.5*230.*4., data[14], 1.e-9)
	assert.Equal(t, 3, model.GetOutputData(0, 0, types.PlaneStressElement, types.OutputStresses,
		pt, X, Ut, Ux, data))
	assert.Equal(t, 0, model.GetOutputData(0, 0, types.PlaneStressElement, types.OutputConnectivity,
		pt, X, Ut, Ux, data))
}
