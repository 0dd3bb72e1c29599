package elements

import (
	"fmt"

	"github.com/notargets/gofea/constitutive"
	"github.com/notargets/gofea/types"
)

/*
Thermoelasticity2D is the plane stress thermoelastic model with variables (u, v, T).

	DUt:  ρ ü, ρ v̈, ρ c Ṫ     (slots 2, 5, 7)
	DUx:  Bᵀ σ (slots 0..3), q (slots 4..5)

where σ = C (ε(∇u) - ε_t(T)) and q = K ∇T. The steady state flag removes the inertial
and/or heat capacity terms.
*/
type Thermoelasticity2D struct {
	thermoelasticity
}

func NewThermoelasticity2D(con constitutive.Constitutive, strainType types.ElementStrainType,
	steadyStateFlag int) *Thermoelasticity2D {
	if con.NumStresses() != 3 {
		panic(fmt.Errorf("plane stress thermoelasticity needs 3 stresses, constitutive has %d",
			con.NumStresses()))
	}
	return &Thermoelasticity2D{newThermoelasticity(2, con, strainType, steadyStateFlag)}
}
