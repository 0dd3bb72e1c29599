package constitutive

import "fmt"

// isotropic is shared by the plane stress and solid laws. The single design variable t
// scales stiffness, density and conductivity linearly. With tNum < 0 the law carries
// no design variables.
type isotropic struct {
	Props         MaterialProperties
	dim, nstress  int
	t, tlb, tub   float64
	tNum          int
	C0            [36]float64 // unscaled tangent, nstress x nstress
	thermalStrain [6]float64  // thermal strain per unit temperature
}

func newIsotropic(dim int, props MaterialProperties, t float64, tNum int, tlb, tub float64) (iso isotropic, err error) {
	if err = props.Validate(); err != nil {
		return
	}
	if tNum >= 0 && (t < tlb || t > tub) {
		err = fmt.Errorf("%w: t = %g, bounds [%g, %g]", ErrDesignBounds, t, tlb, tub)
		return
	}
	iso = isotropic{
		Props: props,
		dim:   dim,
		t:     t,
		tlb:   tlb,
		tub:   tub,
		tNum:  tNum,
	}
	if dim == 2 {
		iso.nstress = 3
		props.PlaneStressStiffness(iso.C0[:])
	} else {
		iso.nstress = 6
		props.SolidStiffness(iso.C0[:])
	}
	for i := 0; i < dim; i++ {
		iso.thermalStrain[i] = props.Alpha
	}
	return
}

func (iso *isotropic) NumStresses() int { return iso.nstress }

// Thickness returns the current value of the design variable
func (iso *isotropic) Thickness() float64 { return iso.t }

func (iso *isotropic) DesignVarsPerNode() int {
	if iso.tNum >= 0 {
		return 1
	}
	return 0
}

func (iso *isotropic) GetDesignVarNums(elemIndex int, dvNums []int) int {
	if iso.tNum < 0 || len(dvNums) < 1 {
		return 0
	}
	dvNums[0] = iso.tNum
	return 1
}

func (iso *isotropic) SetDesignVars(elemIndex int, dvs []float64) int {
	if iso.tNum < 0 || len(dvs) < 1 {
		return 0
	}
	iso.t = dvs[0]
	return 1
}

func (iso *isotropic) GetDesignVars(elemIndex int, dvs []float64) int {
	if iso.tNum < 0 || len(dvs) < 1 {
		return 0
	}
	dvs[0] = iso.t
	return 1
}

func (iso *isotropic) GetDesignVarRange(elemIndex int, lb, ub []float64) int {
	if iso.tNum < 0 || len(lb) < 1 || len(ub) < 1 {
		return 0
	}
	lb[0], ub[0] = iso.tlb, iso.tub
	return 1
}

func (iso *isotropic) hasDV(dfdx []float64) bool {
	return iso.tNum >= 0 && len(dfdx) >= 1
}

func (iso *isotropic) EvalDensity(elemIndex int, pt, X []float64) float64 {
	return iso.t * iso.Props.Rho
}

func (iso *isotropic) AddDensityDVSens(elemIndex int, scale float64, pt, X, dfdx []float64) {
	if iso.hasDV(dfdx) {
		dfdx[0] += scale * iso.Props.Rho
	}
}

func (iso *isotropic) EvalSpecificHeat(elemIndex int, pt, X []float64) float64 {
	return iso.Props.SpecificHeat
}

func (iso *isotropic) AddSpecificHeatDVSens(elemIndex int, scale float64, pt, X, dfdx []float64) {}

func (iso *isotropic) EvalStress(elemIndex int, pt, X, e, s []float64) {
	matVec(iso.nstress, iso.C0[:], e, s)
	for i := 0; i < iso.nstress; i++ {
		s[i] *= iso.t
	}
}

func (iso *isotropic) EvalTangentStiffness(elemIndex int, pt, X, C []float64) {
	var (
		n2 = iso.nstress * iso.nstress
	)
	for i := 0; i < n2; i++ {
		C[i] = iso.t * iso.C0[i]
	}
}

func (iso *isotropic) AddStressDVSens(elemIndex int, scale float64, pt, X, e, psi, dfdx []float64) {
	if !iso.hasDV(dfdx) {
		return
	}
	var (
		s0 [6]float64
	)
	matVec(iso.nstress, iso.C0[:], e, s0[:])
	dfdx[0] += scale * dot(iso.nstress, psi, s0[:])
}

func (iso *isotropic) EvalThermalStrain(elemIndex int, pt, X []float64, theta float64, et []float64) {
	for i := 0; i < iso.nstress; i++ {
		et[i] = theta * iso.thermalStrain[i]
	}
}

func (iso *isotropic) EvalHeatFlux(elemIndex int, pt, X, grad, flux []float64) {
	var (
		k = iso.t * iso.Props.Kappa
	)
	for i := 0; i < iso.dim; i++ {
		flux[i] = k * grad[i]
	}
}

func (iso *isotropic) EvalTangentHeatFlux(elemIndex int, pt, X, Kc []float64) {
	var (
		k = iso.t * iso.Props.Kappa
	)
	for i := 0; i < iso.dim*iso.dim; i++ {
		Kc[i] = 0
	}
	for i := 0; i < iso.dim; i++ {
		Kc[(iso.dim+1)*i] = k
	}
}

func (iso *isotropic) AddHeatFluxDVSens(elemIndex int, scale float64, pt, X, grad, psi, dfdx []float64) {
	if iso.hasDV(dfdx) {
		dfdx[0] += scale * iso.Props.Kappa * dot(iso.dim, psi, grad)
	}
}

func (iso *isotropic) vonMises(s, sens []float64) float64 {
	if iso.dim == 2 {
		return VonMises2D(s, sens)
	}
	return VonMises3D(s, sens)
}

func (iso *isotropic) EvalFailure(elemIndex int, pt, X, e []float64) float64 {
	var (
		s0 [6]float64
	)
	matVec(iso.nstress, iso.C0[:], e, s0[:])
	return iso.vonMises(s0[:], nil) / iso.Props.YieldStress
}

func (iso *isotropic) EvalFailureStrainSens(elemIndex int, pt, X, e, sens []float64) float64 {
	var (
		s0, dvm [6]float64
		ys      = iso.Props.YieldStress
	)
	matVec(iso.nstress, iso.C0[:], e, s0[:])
	vm := iso.vonMises(s0[:], dvm[:])
	// C0 is symmetric so the transpose product is a plain product
	matVec(iso.nstress, iso.C0[:], dvm[:], sens)
	for i := 0; i < iso.nstress; i++ {
		sens[i] /= ys
	}
	return vm / ys
}

// AddFailureDVSens is a no-op: the failure criterion uses the unscaled stress
func (iso *isotropic) AddFailureDVSens(elemIndex int, scale float64, pt, X, e, dfdx []float64) {}

// PlaneStress is the 2D thermoelastic law, t is the sheet thickness
type PlaneStress struct {
	isotropic
}

func NewPlaneStress(props MaterialProperties, t float64, tNum int, tlb, tub float64) (ps *PlaneStress, err error) {
	var iso isotropic
	if iso, err = newIsotropic(2, props, t, tNum, tlb, tub); err != nil {
		return
	}
	ps = &PlaneStress{iso}
	return
}

// Solid is the 3D thermoelastic law, t is a stiffness/mass scaling variable
type Solid struct {
	isotropic
}

func NewSolid(props MaterialProperties, t float64, tNum int, tlb, tub float64) (so *Solid, err error) {
	var iso isotropic
	if iso, err = newIsotropic(3, props, t, tNum, tlb, tub); err != nil {
		return
	}
	so = &Solid{iso}
	return
}
