package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNan(t *testing.T) {
	assert.False(t, IsNan(1.))
	assert.True(t, IsNan(math.NaN()))
	assert.True(t, IsNan(math.Inf(-1)))
	assert.False(t, IsNan([]float64{0, 1, 2}))
	assert.True(t, IsNan([]float64{0, math.Inf(1), 2}))
	assert.False(t, IsNan("not a number"))
	assert.Contains(t, GetMemUsage(), "NumGC")
}
