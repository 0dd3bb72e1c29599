package constitutive

import (
	"fmt"
	"math"
)

// MaterialProperties of an isotropic thermoelastic material
type MaterialProperties struct {
	Rho          float64 `yaml:"Rho"`          // density
	SpecificHeat float64 `yaml:"SpecificHeat"` // specific heat per unit mass
	E            float64 `yaml:"E"`            // Young's modulus
	Nu           float64 `yaml:"Nu"`           // Poisson ratio
	Alpha        float64 `yaml:"Alpha"`        // coefficient of thermal expansion
	Kappa        float64 `yaml:"Kappa"`        // thermal conductivity
	YieldStress  float64 `yaml:"YieldStress"`
}

func (mp MaterialProperties) Validate() error {
	switch {
	case mp.E <= 0:
		return fmt.Errorf("%w: E = %g must be positive", ErrInvalidMaterial, mp.E)
	case mp.Nu <= -1 || mp.Nu >= 0.5:
		return fmt.Errorf("%w: Nu = %g must lie in (-1, 0.5)", ErrInvalidMaterial, mp.Nu)
	case mp.Rho < 0:
		return fmt.Errorf("%w: Rho = %g is negative", ErrInvalidMaterial, mp.Rho)
	case mp.SpecificHeat < 0:
		return fmt.Errorf("%w: SpecificHeat = %g is negative", ErrInvalidMaterial, mp.SpecificHeat)
	case mp.Kappa < 0:
		return fmt.Errorf("%w: Kappa = %g is negative", ErrInvalidMaterial, mp.Kappa)
	case mp.YieldStress <= 0:
		return fmt.Errorf("%w: YieldStress = %g must be positive", ErrInvalidMaterial, mp.YieldStress)
	}
	return nil
}

// PlaneStressStiffness fills the 3x3 plane stress tangent
func (mp MaterialProperties) PlaneStressStiffness(C []float64) {
	var (
		D = mp.E / (1. - mp.Nu*mp.Nu)
	)
	for i := 0; i < 9; i++ {
		C[i] = 0
	}
	C[0], C[1] = D, mp.Nu*D
	C[3], C[4] = mp.Nu*D, D
	C[8] = 0.5 * (1. - mp.Nu) * D
}

// SolidStiffness fills the 6x6 isotropic tangent
func (mp MaterialProperties) SolidStiffness(C []float64) {
	var (
		mu     = 0.5 * mp.E / (1. + mp.Nu)
		lambda = mp.E * mp.Nu / ((1. + mp.Nu) * (1. - 2.*mp.Nu))
	)
	for i := 0; i < 36; i++ {
		C[i] = 0
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[6*i+j] = lambda
		}
		C[7*i] += 2. * mu
		C[7*(i+3)] = mu
	}
}

// VonMises2D returns the plane stress von Mises stress and, if sens is not nil, its
// derivative with respect to s
func VonMises2D(s, sens []float64) (vm float64) {
	vm = math.Sqrt(s[0]*s[0] + s[1]*s[1] - s[0]*s[1] + 3.*s[2]*s[2])
	if sens != nil {
		if vm == 0 {
			sens[0], sens[1], sens[2] = 0, 0, 0
			return
		}
		sens[0] = (s[0] - 0.5*s[1]) / vm
		sens[1] = (s[1] - 0.5*s[0]) / vm
		sens[2] = 3. * s[2] / vm
	}
	return
}

// VonMises3D returns the von Mises stress and, if sens is not nil, its derivative
// with respect to s
func VonMises3D(s, sens []float64) (vm float64) {
	var (
		d01 = s[0] - s[1]
		d12 = s[1] - s[2]
		d20 = s[2] - s[0]
	)
	vm = math.Sqrt(0.5*(d01*d01+d12*d12+d20*d20) +
		3.*(s[3]*s[3]+s[4]*s[4]+s[5]*s[5]))
	if sens != nil {
		if vm == 0 {
			for i := 0; i < 6; i++ {
				sens[i] = 0
			}
			return
		}
		sens[0] = 0.5 * (d01 - d20) / vm
		sens[1] = 0.5 * (d12 - d01) / vm
		sens[2] = 0.5 * (d20 - d12) / vm
		sens[3] = 3. * s[3] / vm
		sens[4] = 3. * s[4] / vm
		sens[5] = 3. * s[5] / vm
	}
	return
}

func matVec(n int, A, x, y []float64) {
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += A[n*i+j] * x[j]
		}
		y[i] = sum
	}
}

func dot(n int, a, b []float64) (d float64) {
	for i := 0; i < n; i++ {
		d += a[i] * b[i]
	}
	return
}
