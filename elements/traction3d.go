package elements

import (
	"fmt"

	"github.com/notargets/gofea/types"
)

/*
Traction3D applies a distributed force per unit area on one face of a 3D parent element.
The residual follows the internal minus external convention:

	res[i*vpn + k] -= ∫ tr_k N_i dA
*/
type Traction3D struct {
	vpn, faceIndex int
	basis          Basis
	source         TractionSource
}

func NewTraction3D(varsPerNode, faceIndex int, basis Basis, source TractionSource) (tr *Traction3D, err error) {
	if basis.NumParameters() != 3 {
		err = fmt.Errorf("traction needs a 3D basis, got %d parameters", basis.NumParameters())
		return
	}
	if varsPerNode < 1 || varsPerNode > maxVars {
		err = fmt.Errorf("traction supports 1 to %d variables per node, got %d", maxVars, varsPerNode)
		return
	}
	if faceIndex < 0|| faceIndex >= basis.NumFaces() {
		err = fmt.Errorf("%w: face %d of %d", ErrFaceIndex, faceIndex, basis.NumFaces())
		return
	}
	tr = &Traction3D{
		vpn:       varsPerNode,
		faceIndex: faceIndex,
		basis:     basis,
		source:    source,
	}
	return
}

func (tr *Traction3D) VarsPerNode() int                { return tr.vpn }
func (tr *Traction3D) NumNodes() int                   { return tr.basis.NumNodes() }
func (tr *Traction3D) DesignVarsPerNode() int          { return 0 }
func (tr *Traction3D) LayoutType() types.ElementLayout { return tr.basis.LayoutType() }
func (tr *Traction3D) ElementBasis() Basis             { return tr.basis }
func (tr *Traction3D) FaceIndex() int                  { return tr.faceIndex }

// facePoint holds the geometry of one face quadrature point
type facePoint struct {
	pt, X, normal [maxDim]float64
	Xd            [maxDim * maxDim]float64
	tr            [maxVars]float64
	N             []float64
	weight, area  float64
}

func (tr *Traction3D) evalFacePoint(elemIndex int, time float64, n int, Xpts []float64, fp *facePoint) {
	fp.weight = tr.basis.FaceQuadraturePoint(tr.faceIndex, n, fp.pt[:], nil)
	fp.area = tr.basis.FaceNormal(tr.faceIndex, n, Xpts, fp.X[:], fp.Xd[:], fp.normal[:])
	tr.basis.ComputeBasis(fp.pt[:], fp.N)
	tr.source.Traction(elemIndex, tr.faceIndex, time, fp.X[:], fp.normal[:], fp.tr[:])
}

func (tr *Traction3D) AddResidual(elemIndex int, time float64, Xpts, vars, dvars, ddvars, res []float64) {
	var (
		fp = facePoint{N: make([]float64, tr.basis.NumNodes())}
	)
	for n := 0; n < tr.basis.NumFaceQuadraturePoints(tr.faceIndex); n++ {
		tr.evalFacePoint(elemIndex, time, n, Xpts, &fp)
		h := fp.weight * fp.area
		for i, Ni := range fp.N {
			for k := 0; k < tr.vpn; k++ {
				res[i*tr.vpn+k] -= h * Ni * fp.tr[k]
			}
		}
	}
}

// AddJacobian adds the residual when res is non-nil; the load is independent of the state
func (tr *Traction3D) AddJacobian(elemIndex int, time, alpha, beta, gamma float64,
	Xpts, vars, dvars, ddvars, res, mat []float64) {
	if res != nil {
		tr.AddResidual(elemIndex, time, Xpts, vars, dvars, ddvars, res)
	}
}

func (tr *Traction3D) AddAdjResProduct(elemIndex int, time, scale float64,
	psi, Xpts, vars, dvars, ddvars, dvSens []float64) {
}

// AddAdjResXptProduct adds the derivative of scale * psi·res with respect to Xpts
func (tr *Traction3D) AddAdjResXptProduct(elemIndex int, time, scale float64,
	psi, Xpts, vars, dvars, ddvars, fXptSens []float64) {
	var (
		fp     = facePoint{N: make([]float64, tr.basis.NumNodes())}
		psiN   [maxVars]float64
		dfdtr  [maxVars]float64
		dfdX   [3]float64
		dfdn   [3]float64
		nquads = tr.basis.NumFaceQuadraturePoints(tr.faceIndex)
	)
	for n := 0; n < nquads; n++ {
		tr.evalFacePoint(elemIndex, time, n, Xpts, &fp)
		var ptr float64
		for k := 0; k < tr.vpn; k++ {
			psiN[k] = 0
			for i, Ni := range fp.N {
				psiN[k] += Ni * psi[i*tr.vpn+k]
			}
			ptr += psiN[k] * fp.tr[k]
		}
		dfdA := -scale * fp.weight * ptr
		for k := 0; k < tr.vpn; k++ {
			dfdtr[k] = -scale * fp.weight * fp.area * psiN[k]
		}
		dfdX, dfdn = [3]float64{}, [3]float64{}
		tr.source.AddTractionSens(elemIndex, tr.faceIndex, time, fp.X[:], fp.normal[:],
			dfdtr[:tr.vpn], dfdX[:], dfdn[:])
		tr.basis.AddFaceNormalXptSens(tr.faceIndex, n, fp.area, fp.Xd[:], fp.normal[:],
			dfdA, dfdX[:], nil, dfdn[:], fXptSens)
	}
}
