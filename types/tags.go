package types

import (
	"fmt"
	"strings"
)

// ElementMatrixType selects which linearization EvalWeakMatrix produces.
type ElementMatrixType uint8

const (
	JacobianMatrix ElementMatrixType = iota
	StiffnessMatrix
	MassMatrix
)

var MatrixTypeNameMap = map[string]ElementMatrixType{
	"jacobian":  JacobianMatrix,
	"stiffness": StiffnessMatrix,
	"mass":      MassMatrix,
}

func (mt ElementMatrixType) String() string {
	switch mt {
	case JacobianMatrix:
		return "Jacobian"
	case StiffnessMatrix:
		return "Stiffness"
	case MassMatrix:
		return "Mass"
	}
	return fmt.Sprintf("ElementMatrixType(%d)", mt)
}

type ElementStrainType uint8

const (
	LinearStrain ElementStrainType = iota
	NonlinearStrain
)

var StrainTypeNameMap = map[string]ElementStrainType{
	"linear":    LinearStrain,
	"nonlinear": NonlinearStrain,
	"green":     NonlinearStrain,
}

func (st ElementStrainType) String() string {
	if st == NonlinearStrain {
		return "Nonlinear"
	}
	return "Linear"
}

func ParseStrainType(name string) (st ElementStrainType, err error) {
	var ok bool
	if st, ok = StrainTypeNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown strain type %q", name)
	}
	return
}

// ElementType tags the layout of a row written by GetOutputData.
type ElementType uint8

const (
	ElementNone ElementType = iota
	ScalarElement2D
	ScalarElement3D
	PlaneStressElement
	SolidElement
)

func (et ElementType) String() string {
	switch et {
	case ScalarElement2D:
		return "Scalar2D"
	case ScalarElement3D:
		return "Scalar3D"
	case PlaneStressElement:
		return "PlaneStress"
	case SolidElement:
		return "Solid"
	}
	return "None"
}

type ElementLayout uint8

const (
	LayoutNone ElementLayout = iota
	QuadElement
	HexaElement
)

// Quantity tags shared by every element model. Unknown tags evaluate to zero quantities.
const (
	FailureIndex         = 1
	ElementDensity       = 2
	StrainEnergyDensity  = 3
	ElementDisplacement  = 4
	Temperature          = 5
	ElementDensityMoment = 7
	HeatFlux             = 8
)

var QuantityNameMap = map[string]int{
	"failure":       FailureIndex,
	"density":       ElementDensity,
	"strainenergy":  StrainEnergyDensity,
	"displacement":  ElementDisplacement,
	"temperature":   Temperature,
	"densitymoment": ElementDensityMoment,
	"heatflux":      HeatFlux,
}

// Output flags for GetOutputData, combined as a bitmask.
const (
	OutputConnectivity = 1 << iota
	OutputNodes
	OutputDisplacements
	OutputStrains
	OutputStresses
	OutputExtras
	OutputLoads
)

// Steady-state bits. A set bit drops the time-derivative terms of that physics.
const (
	SteadyStateMechanical = 1
	SteadyStateThermal    = 2
)

var SteadyStateNameMap = map[string]int{
	"mechanical": SteadyStateMechanical,
	"thermal":    SteadyStateThermal,
}

// ParseSteadyState combines named steady-state bits into a flag.
func ParseSteadyState(names []string) (flag int, err error) {
	for _, name := range names {
		bit, ok := SteadyStateNameMap[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			err = fmt.Errorf("unknown steady state physics %q", name)
			return
		}
		flag |= bit
	}
	return
}
