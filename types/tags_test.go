package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	{ // Steady state names combine into a bitmask
		flag, err := ParseSteadyState([]string{"Mechanical", " thermal"})
		require.NoError(t, err)
		assert.Equal(t, SteadyStateMechanical|SteadyStateThermal, flag)

		flag, err = ParseSteadyState(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, flag)

		_, err = ParseSteadyState([]string{"acoustic"})
		assert.Error(t, err)
	}
	{ // Strain types
		st, err := ParseStrainType("Nonlinear")
		require.NoError(t, err)
		assert.Equal(t, NonlinearStrain, st)
		assert.Equal(t, "Nonlinear", st.String())
		_, err = ParseStrainType("plastic")
		assert.Error(t, err)
	}
	{ // Output flags are distinct bits
		flags := []int{OutputConnectivity, OutputNodes, OutputDisplacements,
			OutputStrains, OutputStresses, OutputExtras, OutputLoads}
		var all int
		for _, f := range flags {
			assert.Equal(t, 0, all&f)
			all |= f
		}
		assert.Equal(t, 127, all)
	}
	assert.Equal(t, "Mass", MassMatrix.String())
	assert.Equal(t, "ElementMatrixType(9)", ElementMatrixType(9).String())
	assert.Equal(t, HeatFlux, QuantityNameMap["heatflux"])
}
