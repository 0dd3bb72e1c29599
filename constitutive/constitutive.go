// Package constitutive holds the material collaborators bound to the element models:
// stress and heat-flux laws, thermal expansion, mass properties, failure criteria and
// the design variables that parameterize them.
package constitutive

import "errors"

var (
	// ErrInvalidMaterial indicates material properties that cannot form a valid law.
	ErrInvalidMaterial = errors.New("constitutive: invalid material properties")

	// ErrDesignBounds indicates a design variable outside its lower/upper bounds.
	ErrDesignBounds = errors.New("constitutive: design variable outside bounds")
)

/*
Constitutive is the contract the element models evaluate at each integration point.

Strains and stresses are Voigt vectors with engineering shear strains:

	2D: [xx, yy, xy]
	3D: [xx, yy, zz, yz, xz, xy]

Tangent matrices are dense and row-major. Design variable arrays are element-local and
their length is the capacity the caller sized from a prior query. Every Add...DVSens
method accumulates into dfdx.
*/
type Constitutive interface {
	NumStresses() int
	DesignVarsPerNode() int

	GetDesignVarNums(elemIndex int, dvNums []int) int
	SetDesignVars(elemIndex int, dvs []float64) int
	GetDesignVars(elemIndex int, dvs []float64) int
	GetDesignVarRange(elemIndex int, lb, ub []float64) int

	EvalDensity(elemIndex int, pt, X []float64) float64
	AddDensityDVSens(elemIndex int, scale float64, pt, X, dfdx []float64)
	EvalSpecificHeat(elemIndex int, pt, X []float64) float64
	AddSpecificHeatDVSens(elemIndex int, scale float64, pt, X, dfdx []float64)

	EvalStress(elemIndex int, pt, X, e, s []float64)
	EvalTangentStiffness(elemIndex int, pt, X, C []float64)
	AddStressDVSens(elemIndex int, scale float64, pt, X, e, psi, dfdx []float64)

	// EvalThermalStrain is linear in theta, the temperature relative to the stress-free state
	EvalThermalStrain(elemIndex int, pt, X []float64, theta float64, et []float64)

	EvalHeatFlux(elemIndex int, pt, X, grad, flux []float64)
	EvalTangentHeatFlux(elemIndex int, pt, X, Kc []float64)
	AddHeatFluxDVSens(elemIndex int, scale float64, pt, X, grad, psi, dfdx []float64)

	EvalFailure(elemIndex int, pt, X, e []float64) float64
	EvalFailureStrainSens(elemIndex int, pt, X, e, sens []float64) float64
	AddFailureDVSens(elemIndex int, scale float64, pt, X, e, dfdx []float64)
}
