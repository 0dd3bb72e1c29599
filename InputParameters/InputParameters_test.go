package InputParameters

import (
	"errors"
	"testing"

	"github.com/notargets/gofea/constitutive"
	"github.com/notargets/gofea/elements"
	"github.com/notargets/gofea/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Heated plate
Dimension: 2
StrainType: nonlinear
SteadyState: [thermal]
Material:
  E: 200.e3
  Nu: 0.25
Thickness: 2.5
ThicknessDV: -1
StepSize: 1.e-7
`)
	ip := NewInputParameters()
	require.NoError(t, ip.Parse(fileInput))
	ip.Print()
	assert.Equal(t, "Heated plate", ip.Title)
	assert.Equal(t, 2, ip.Dimension)
	assert.Equal(t, []string{"thermal"}, ip.SteadyState)
	assert.Equal(t, 200.e3, ip.Material.E)
	assert.Equal(t, 0.25, ip.Material.Nu)
	// unspecified fields keep their defaults
	assert.Equal(t, DefaultMaterial().Kappa, ip.Material.Kappa)
	assert.Equal(t, 1.e-5, ip.Tolerance)
	assert.Equal(t, 1.e-7, ip.StepSize)
	assert.Equal(t, -1, ip.ThicknessDV)
	assert.Nil(t, ip.Traction)
	require.NoError(t, ip.Validate())
	assert.Equal(t, "Heated plate: 2D nonlinear, steady thermal", ip.String())

	model, err := ip.NewModel()
	require.NoError(t, err)
	assert.Equal(t, 2, model.NumParameters())
	assert.Equal(t, 3, model.VarsPerNode())
	assert.Equal(t, 0, model.DesignVarsPerNode())
	te := model.(*elements.Thermoelasticity2D)
	assert.Equal(t, types.NonlinearStrain, te.StrainType())
	assert.Equal(t, types.SteadyStateThermal, te.SteadyStateFlag())
	assert.Equal(t, 2.5, te.GetConstitutive().(*constitutive.PlaneStress).Thickness())

	elem, err := ip.NewVolumeElement()
	require.NoError(t, err)
	assert.Equal(t, types.QuadElement, elem.LayoutType())

	tr, err := ip.NewTraction()
	assert.NoError(t, err)
	assert.Nil(t, tr)
}

func TestTractionCase(t *testing.T) {
	ip := NewInputParameters()
	require.NoError(t, ip.Parse([]byte(`
Traction:
  Face: 5
  Components: [0, 0, 10, 0]
`)))
	require.NotNil(t, ip.Traction)
	tr, err := ip.NewTraction()
	require.NoError(t, err)
	assert.Equal(t, 5, tr.FaceIndex())
	assert.Equal(t, 4, tr.VarsPerNode())
	assert.Equal(t, types.HexaElement, tr.LayoutType())

	ip.Traction.NormalComponent = true
	assert.True(t, errors.Is(ip.Validate(), ErrInvalidCase))
	ip.Traction.Components = make([]float64, 12)
	tr, err = ip.NewTraction()
	require.NoError(t, err)
	assert.NotNil(t, tr)

	ip.Traction.Face = 6
	_, err = ip.NewTraction()
	assert.True(t, errors.Is(err, elements.ErrFaceIndex))

	ip.Dimension = 2
	_, err = ip.NewTraction()
	assert.True(t, errors.Is(err, ErrInvalidCase))
}

func TestValidate(t *testing.T) {
	bad := []func(ip *InputParameters){
		func(ip *InputParameters) { ip.Dimension = 1 },
		func(ip *InputParameters) { ip.StrainType = "plastic" },
		func(ip *InputParameters) { ip.SteadyState = []string{"electrical"} },
		func(ip *InputParameters) { ip.QuadratureOrder = 0 },
		func(ip *InputParameters) { ip.StepSize = 0 },
	}
	for i, f := range bad {
		ip := NewInputParameters()
		f(ip)
		err := ip.Validate()
		assert.Truef(t, errors.Is(err, ErrInvalidCase), "case %d: %v", i, err)
		_, err = ip.NewModel()
		assert.Error(t, err)
	}
	{
		ip := NewInputParameters()
		ip.Material.Nu = 0.5
		assert.True(t, errors.Is(ip.Validate(), constitutive.ErrInvalidMaterial))
	}
	{
		ip := NewInputParameters()
		ip.Thickness = 1.e4
		_, err := ip.NewModel()
		assert.True(t, errors.Is(err, constitutive.ErrDesignBounds))
	}
	assert.Error(t, NewInputParameters().Parse([]byte("Dimension: [3")))
}
