package InputParameters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/notargets/gofea/basis"
	"github.com/notargets/gofea/constitutive"
	"github.com/notargets/gofea/elements"
	"github.com/notargets/gofea/types"
)

var ErrInvalidCase = errors.New("invalid case parameters")

// Traction load applied to one face of a solid element
type TractionParameters struct {
	Face            int       `yaml:"Face"`
	Components      []float64 `yaml:"Components"`      // varsPerNode values, or 3 x varsPerNode in normal component mode
	NormalComponent bool      `yaml:"NormalComponent"` // contract Components with the face normal
}

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title           string                          `yaml:"Title"`
	Dimension       int                             `yaml:"Dimension"`
	StrainType      string                          `yaml:"StrainType"`
	SteadyState     []string                        `yaml:"SteadyState"` // any of mechanical, thermal
	Material        constitutive.MaterialProperties `yaml:"Material"`
	Thickness       float64                         `yaml:"Thickness"`
	ThicknessDV     int                             `yaml:"ThicknessDV"` // design variable number, negative for none
	ThicknessBounds [2]float64                      `yaml:"ThicknessBounds"`
	QuadratureOrder int                             `yaml:"QuadratureOrder"`
	Traction        *TractionParameters             `yaml:"Traction"`
	StepSize        float64                         `yaml:"StepSize"`  // finite difference step
	Tolerance       float64                         `yaml:"Tolerance"` // relative tolerance of the checks
	Seed            int64                           `yaml:"Seed"`
	ParallelDegree  int                             `yaml:"ParallelDegree"`
	Points          int                             `yaml:"Points"` // integration points per benchmark pass
}

func NewInputParameters() *InputParameters {
	return &InputParameters{
		Title:           "thermoelastic case",
		Dimension:       3,
		StrainType:      "linear",
		Material:        DefaultMaterial(),
		Thickness:       1.,
		ThicknessDV:     0,
		ThicknessBounds: [2]float64{1.e-3, 1.e3},
		QuadratureOrder: 2,
		StepSize:        1.e-6,
		Tolerance:       1.e-5,
		Seed:            1,
		ParallelDegree:  1,
		Points:          10000,
	}
}

// DefaultMaterial is an aluminum alloy
func DefaultMaterial() constitutive.MaterialProperties {
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

// Parse overlays the YAML on the current values
func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", ip.Dimension)
	fmt.Printf("[%s]\t\t\t= Strain Type\n", ip.StrainType)
	fmt.Printf("%v\t\t\t= Steady State\n", ip.SteadyState)
	fmt.Printf("%8.5g\t\t= Thickness, design variable %d in [%g, %g]\n",
		ip.Thickness, ip.ThicknessDV, ip.ThicknessBounds[0], ip.ThicknessBounds[1])
	fmt.Printf("[%d]\t\t\t\t= Quadrature Order\n", ip.QuadratureOrder)
	fmt.Printf("Material = %+v\n", ip.Material)
	if ip.Traction != nil {
		fmt.Printf("Traction[face %d] = %v, normal component = %v\n",
			ip.Traction.Face, ip.Traction.Components, ip.Traction.NormalComponent)
	}
	fmt.Printf("%8.5g\t\t= Step Size\n", ip.StepSize)
	fmt.Printf("%8.5g\t\t= Tolerance\n", ip.Tolerance)
}

func (ip *InputParameters) Validate() (err error) {
	if ip.Dimension != 2 && ip.Dimension != 3 {
		return fmt.Errorf("%w: dimension %d", ErrInvalidCase, ip.Dimension)
	}
	if _, err = types.ParseStrainType(ip.StrainType); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCase, err)
	}
	if _, err = types.ParseSteadyState(ip.SteadyState); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCase, err)
	}
	if err = ip.Material.Validate(); err != nil {
		return
	}
	if ip.QuadratureOrder < 1 {
		return fmt.Errorf("%w: quadrature order %d", ErrInvalidCase, ip.QuadratureOrder)
	}
	if ip.StepSize <= 0 || ip.Tolerance <= 0 {
		return fmt.Errorf("%w: step size and tolerance must be positive", ErrInvalidCase)
	}
	if tr := ip.Traction; tr != nil {
		vpn := ip.Dimension + 1
		need := vpn
		if tr.NormalComponent {
			need = 3 * vpn
		}
		switch {
		case ip.Dimension != 3:
			return fmt.Errorf("%w: traction loads need a 3D case", ErrInvalidCase)
		case len(tr.Components) != need:
			return fmt.Errorf("%w: traction has %d components, need %d", ErrInvalidCase,
				len(tr.Components), need)
		}
	}
	return
}

func (ip *InputParameters) NewConstitutive() (con constitutive.Constitutive, err error) {
	var (
		lb, ub = ip.ThicknessBounds[0], ip.ThicknessBounds[1]
	)
	if ip.Dimension == 2 {
		var ps *constitutive.PlaneStress
		if ps, err = constitutive.NewPlaneStress(ip.Material, ip.Thickness, ip.ThicknessDV, lb, ub); err != nil {
			return
		}
		return ps, nil
	}
	var so *constitutive.Solid
	if so, err = constitutive.NewSolid(ip.Material, ip.Thickness, ip.ThicknessDV, lb, ub); err != nil {
		return
	}
	return so, nil
}

func (ip *InputParameters) NewModel() (model elements.ElementModel, err error) {
	var (
		con        constitutive.Constitutive
		strainType types.ElementStrainType
		flag       int
	)
	if err = ip.Validate(); err != nil {
		return
	}
	strainType, _ = types.ParseStrainType(ip.StrainType)
	flag, _ = types.ParseSteadyState(ip.SteadyState)
	if con, err = ip.NewConstitutive(); err != nil {
		return
	}
	if ip.Dimension == 2 {
		model = elements.NewThermoelasticity2D(con, strainType, flag)
	} else {
		model = elements.NewThermoelasticity3D(con, strainType, flag)
	}
	return
}

func (ip *InputParameters) NewBasis() elements.Basis {
	if ip.Dimension == 2 {
		return basis.NewLinearQuad(ip.QuadratureOrder)
	}
	return basis.NewLinearHexa(ip.QuadratureOrder)
}

func (ip *InputParameters) NewVolumeElement() (elem *elements.VolumeElement, err error) {
	var (
		model elements.ElementModel
	)
	if model, err = ip.NewModel(); err != nil {
		return
	}
	elem = elements.NewVolumeElement(model, ip.NewBasis())
	return
}

// NewTraction returns nil without error when the case has no traction load
func (ip *InputParameters) NewTraction() (tr *elements.Traction3D, err error) {
	var (
		source elements.TractionSource
		vpn    = ip.Dimension + 1
	)
	if ip.Traction == nil {
		return
	}
	if err = ip.Validate(); err != nil {
		return
	}
	if ip.Traction.NormalComponent {
		source = elements.NewNormalTraction(vpn, ip.Traction.Components)
	} else {
		source = elements.NewConstantTraction(vpn, ip.Traction.Components)
	}
	return elements.NewTraction3D(vpn, ip.Traction.Face, ip.NewBasis(), source)
}

func (ip *InputParameters) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %dD %s", ip.Title, ip.Dimension, ip.StrainType)
	if len(ip.SteadyState) != 0 {
		fmt.Fprintf(&sb, ", steady %s", strings.Join(ip.SteadyState, "+"))
	}
	return sb.String()
}
