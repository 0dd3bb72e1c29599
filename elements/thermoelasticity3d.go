package elements

import (
	"fmt"

	"github.com/notargets/gofea/constitutive"
	"github.com/notargets/gofea/types"
)

// Thermoelasticity3D is the solid thermoelastic model with variables (u, v, w, T)
type Thermoelasticity3D struct {
	thermoelasticity
}

func NewThermoelasticity3D(con constitutive.Constitutive, strainType types.ElementStrainType,
	steadyStateFlag int) *Thermoelasticity3D {
	if con.NumStresses() != 6 {
		panic(fmt.Errorf("solid thermoelasticity needs 6 stresses, constitutive has %d",
			con.NumStresses()))
	}
	return &Thermoelasticity3D{newThermoelasticity(3, con, strainType, steadyStateFlag)}
}
