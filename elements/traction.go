package elements

import "fmt"

/*
TractionSource supplies the traction vector tr (varsPerNode entries) at a face point with
physical position X and outward unit normal. AddTractionSens accumulates the derivative of
dfdtr·tr with respect to X and the normal.
*/
type TractionSource interface {
	Traction(elemIndex, faceIndex int, time float64, X, normal, tr []float64)
	AddTractionSens(elemIndex, faceIndex int, time float64, X, normal, dfdtr, dfdX, dfdn []float64)
}

// ConstantTraction is a fixed traction, or in normal component mode a 3 x varsPerNode
// array contracted with the face normal: tr_k = Σ_j Trac[j*vpn + k] n_j
type ConstantTraction struct {
	Trac            []float64
	NormalComponent bool
	vpn             int
}

func NewConstantTraction(varsPerNode int, trac []float64) *ConstantTraction {
	if len(trac) < varsPerNode {
		panic(fmt.Errorf("constant traction needs %d components, got %d", varsPerNode, len(trac)))
	}
	return &ConstantTraction{
		Trac: append([]float64{}, trac[:varsPerNode]...),
		vpn:  varsPerNode,
	}
}

func NewNormalTraction(varsPerNode int, trac []float64) *ConstantTraction {
	if len(trac) < 3*varsPerNode {
		panic(fmt.Errorf("normal component traction needs %d components, got %d",
			3*varsPerNode, len(trac)))
	}
	return &ConstantTraction{
		Trac:            append([]float64{}, trac[:3*varsPerNode]...),
		NormalComponent: true,
		vpn:             varsPerNode,
	}
}

func (ct *ConstantTraction) Traction(elemIndex, faceIndex int, time float64, X, normal, tr []float64) {
	if !ct.NormalComponent {
		copy(tr, ct.Trac)
		return
	}
	for k := 0; k < ct.vpn; k++ {
		tr[k] = ct.Trac[k]*normal[0] + ct.Trac[ct.vpn+k]*normal[1] + ct.Trac[2*ct.vpn+k]*normal[2]
	}
}

func (ct *ConstantTraction) AddTractionSens(elemIndex, faceIndex int, time float64,
	X, normal, dfdtr, dfdX, dfdn []float64) {
	if !ct.NormalComponent {
		return
	}
	for j := 0; j < 3; j++ {
		for k := 0; k < ct.vpn; k++ {
			dfdn[j] += dfdtr[k] * ct.Trac[j*ct.vpn+k]
		}
	}
}

type (
	TractionFunc     func(elemIndex, faceIndex int, time float64, X, normal, tr []float64)
	TractionSensFunc func(elemIndex, faceIndex int, time float64, X, normal, dfdtr, dfdX, dfdn []float64)
)

// FuncTraction evaluates a user traction. Without a Sens callback the traction is treated
// as independent of position and normal in the coordinate sensitivities.
type FuncTraction struct {
	F    TractionFunc
	Sens TractionSensFunc
}

func (ft *FuncTraction) Traction(elemIndex, faceIndex int, time float64, X, normal, tr []float64) {
	ft.F(elemIndex, faceIndex, time, X, normal, tr)
}

func (ft *FuncTraction) AddTractionSens(elemIndex, faceIndex int, time float64,
	X, normal, dfdtr, dfdX, dfdn []float64) {
	if ft.Sens != nil {
		ft.Sens(elemIndex, faceIndex, time, X, normal, dfdtr, dfdX, dfdn)
	}
}
