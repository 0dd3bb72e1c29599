package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// NewPairsCOO scatters values listed against flattened (row, column) pairs into an
// n x n COO matrix
func NewPairsCOO(n int, pairs []int, values []float64) *sparse.COO {
	var (
		nnz = len(pairs) / 2
	)
	if len(values) < nnz {
		panic(fmt.Errorf("%d values for %d pairs", len(values), nnz))
	}
	ia, ja, data := make([]int, nnz), make([]int, nnz), make([]float64, nnz)
	for k := 0; k < nnz; k++ {
		ia[k], ja[k], data[k] = pairs[2*k], pairs[2*k+1], values[k]
	}
	return sparse.NewCOO(n, n, ia, ja, data)
}

// CSR is a named, compressed view of a pointwise Jacobian
type CSR struct {
	M    *sparse.CSR
	name string
}

func NewPairsCSR(name string, n int, pairs []int, values []float64) (R CSR) {
	R = CSR{
		M:    NewPairsCOO(n, pairs, values).ToCSR(),
		name: name,
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }
func (m CSR) Name() string        { return m.name }
func (m CSR) Dense() *mat.Dense   { return m.M.ToDense() }

// Print renders the nonzero structure, one row per line, X for a stored entry
func (m CSR) Print() (out string) {
	var (
		nr, nc = m.Dims()
		dense  = m.Dense()
	)
	out = fmt.Sprintf("%s [%d x %d], nnz = %d\n", m.name, nr, nc, m.NNZ())
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if dense.At(i, j) != 0 {
				out += "X"
			} else {
				out += "."
			}
		}
		out += "\n"
	}
	return
}
