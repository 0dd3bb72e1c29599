package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairsMatrix(t *testing.T) {
	var (
		pairs  = []int{0, 0, 1, 2, 2, 1, 3, 3}
		values = []float64{1, 2, -3, 4}
	)
	coo := NewPairsCOO(4, pairs, values)
	r, c := coo.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, 4, coo.NNZ())

	m := NewPairsCSR("test", 4, pairs, values)
	assert.Equal(t, "test", m.Name())
	assert.Equal(t, 4, m.NNZ())
	assert.Equal(t, 2., m.At(1, 2))
	assert.Equal(t, -3., m.At(2, 1))
	assert.Equal(t, 0., m.At(1, 1))
	assert.Equal(t, 2., m.T().At(2, 1))
	lines := strings.Split(strings.TrimSpace(m.Print()), "\n")
	assert.Equal(t, 5, len(lines))
	assert.Equal(t, "..X.", lines[2])
	assert.Panics(t, func() { NewPairsCOO(4, pairs, values[:2]) })
}
