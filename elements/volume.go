package elements

import (
	"fmt"

	"github.com/notargets/gofea/types"
	"gonum.org/v1/gonum/mat"
)

// VolumeElement integrates an ElementModel over the quadrature of a Basis
type VolumeElement struct {
	model ElementModel
	basis Basis
}

func NewVolumeElement(model ElementModel, basis Basis) *VolumeElement {
	if model.NumParameters() != basis.NumParameters() {
		panic(fmt.Errorf("model dimension %d does not match basis dimension %d",
			model.NumParameters(), basis.NumParameters()))
	}
	return &VolumeElement{model: model, basis: basis}
}

func (ve *VolumeElement) VarsPerNode() int                { return ve.model.VarsPerNode() }
func (ve *VolumeElement) NumNodes() int                   { return ve.basis.NumNodes() }
func (ve *VolumeElement) DesignVarsPerNode() int          { return ve.model.DesignVarsPerNode() }
func (ve *VolumeElement) LayoutType() types.ElementLayout { return ve.basis.LayoutType() }
func (ve *VolumeElement) ElementBasis() Basis             { return ve.basis }
func (ve *VolumeElement) Model() ElementModel             { return ve.model }

// volumePoint is the interpolated geometry and state at one quadrature point
type volumePoint struct {
	dim, nvars, nnodes int
	pt, X              [maxDim]float64
	Xd, J              [maxDim * maxDim]float64 // J = Xd⁻¹
	N, Nxi, Nx         []float64
	Ut                 [3 * maxVars]float64
	Ux                 [maxVars * maxDim]float64
	weight, detJ       float64
}

func (ve *VolumeElement) newPoint() *volumePoint {
	var (
		nnodes = ve.basis.NumNodes()
		dim    = ve.basis.NumParameters()
	)
	return &volumePoint{
		dim:    dim,
		nvars:  ve.model.VarsPerNode(),
		nnodes: nnodes,
		N:      make([]float64, nnodes),
		Nxi:    make([]float64, nnodes*dim),
		Nx:     make([]float64, nnodes*dim),
	}
}

// geometry evaluates X, Xd, its inverse and determinant and the physical shape gradients
func (vp *volumePoint) geometry(b Basis, n int, Xpts []float64) {
	var (
		dim = vp.dim
		inv mat.Dense
	)
	vp.weight = b.QuadraturePoint(n, vp.pt[:])
	b.ComputeBasisGradient(vp.pt[:], vp.N, vp.Nxi)
	vp.X = [maxDim]float64{}
	vp.Xd = [maxDim * maxDim]float64{}
	for node := 0; node < vp.nnodes; node++ {
		for i := 0; i < 3; i++ {
			vp.X[i] += vp.N[node] * Xpts[3*node+i]
		}
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				vp.Xd[i*dim+j] += Xpts[3*node+i] * vp.Nxi[node*dim+j]
			}
		}
	}
	xd := mat.NewDense(dim, dim, append([]float64{}, vp.Xd[:dim*dim]...))
	vp.detJ = mat.Det(xd)
	if err := inv.Inverse(xd); err != nil {
		panic(fmt.Errorf("degenerate element geometry: %w", err))
	}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			vp.J[i*dim+j] = inv.At(i, j)
		}
	}
	for node := 0; node < vp.nnodes; node++ {
		for j := 0; j < dim; j++ {
			var sum float64
			for k := 0; k < dim; k++ {
				sum += vp.Nxi[node*dim+k] * vp.J[k*dim+j]
			}
			vp.Nx[node*dim+j] = sum
		}
	}
}

// interpolate fills Ut and Ux from the nodal state
func (vp *volumePoint) interpolate(vars, dvars, ddvars []float64) {
	var (
		dim = vp.dim
		nv  = vp.nvars
	)
	vp.Ut = [3 * maxVars]float64{}
	vp.Ux = [maxVars * maxDim]float64{}
	for node := 0; node < vp.nnodes; node++ {
		for v := 0; v < nv; v++ {
			idx := node*nv + v
			vp.Ut[3*v] += vp.N[node] * vars[idx]
			if dvars != nil {
				vp.Ut[3*v+1] += vp.N[node] * dvars[idx]
			}
			if ddvars != nil {
				vp.Ut[3*v+2] += vp.N[node] * ddvars[idx]
			}
			for j := 0; j < dim; j++ {
				vp.Ux[v*dim+j] += vp.Nx[node*dim+j] * vars[idx]
			}
		}
	}
}

// project forms Psi and Psix from the nodal adjoint in the same way as Ut and Ux
func (vp *volumePoint) project(psi, Psi, Psix []float64) {
	var (
		dim = vp.dim
		nv  = vp.nvars
	)
	for i := 0; i < 3*nv; i++ {
		Psi[i] = 0
	}
	for i := 0; i < nv*dim; i++ {
		Psix[i] = 0
	}
	for node := 0; node < vp.nnodes; node++ {
		for v := 0; v < nv; v++ {
			p := psi[node*nv+v]
			for k := 0; k < 3; k++ {
				Psi[3*v+k] += vp.N[node] * p
			}
			for j := 0; j < dim; j++ {
				Psix[v*dim+j] += vp.Nx[node*dim+j] * p
			}
		}
	}
}

// addResidual scatters DUt, DUx weighted by h into res
func (vp *volumePoint) addResidual(h float64, DUt, DUx, res []float64) {
	var (
		dim = vp.dim
		nv  = vp.nvars
	)
	for node := 0; node < vp.nnodes; node++ {
		for v := 0; v < nv; v++ {
			val := vp.N[node] * (DUt[3*v] + DUt[3*v+1] + DUt[3*v+2])
			for j := 0; j < dim; j++ {
				val += vp.Nx[node*dim+j] * DUx[v*dim+j]
			}
			res[node*nv+v] += h * val
		}
	}
}

// weakComponent maps a flattened [Ut | Ux] index to its variable, time slot (-1 for a
// gradient) and gradient direction
func (vp *volumePoint) weakComponent(index int) (v, slot, dir int) {
	off := 3 * vp.nvars
	if index < off {
		return index / 3, index % 3, 0
	}
	index -= off
	return index / vp.dim, -1, index % vp.dim
}

func (vp *volumePoint) shape(node, slot, dir int) float64 {
	if slot >= 0 {
		return vp.N[node]
	}
	return vp.Nx[node*vp.dim+dir]
}

// addMatrix scatters the pointwise Jacobian values through the pattern into mat
func (vp *volumePoint) addMatrix(h float64, coef [3]float64, pairs []int, Jac, mat []float64) {
	var (
		nv    = vp.nvars
		ncols = vp.nnodes * nv
	)
	for k := 0; k < len(pairs)/2; k++ {
		var (
			rv, rslot, rdir = vp.weakComponent(pairs[2*k])
			cv, cslot, cdir = vp.weakComponent(pairs[2*k+1])
			scale           = coef[0]
		)
		if cslot > 0 {
			scale = coef[cslot]
		}
		val := h * scale * Jac[k]
		if val == 0 {
			continue
		}
		for i := 0; i < vp.nnodes; i++ {
			ri := val * vp.shape(i, rslot, rdir)
			row := mat[(i*nv+rv)*ncols : (i*nv+rv+1)*ncols]
			for j := 0; j < vp.nnodes; j++ {
				row[j*nv+cv] += ri * vp.shape(j, cslot, cdir)
			}
		}
	}
}

func (ve *VolumeElement) AddResidual(elemIndex int, time float64, Xpts, vars, dvars, ddvars, res []float64) {
	var (
		vp  = ve.newPoint()
		DUt [3 * maxVars]float64
		DUx [maxVars * maxDim]float64
	)
	for n := 0; n < ve.basis.NumQuadraturePoints(); n++ {
		vp.geometry(ve.basis, n, Xpts)
		vp.interpolate(vars, dvars, ddvars)
		ve.model.EvalWeakIntegrand(elemIndex, time, n, vp.pt[:], vp.X[:], vp.Xd[:], vp.Ut[:], vp.Ux[:],
			DUt[:], DUx[:])
		vp.addResidual(vp.weight*vp.detJ, DUt[:], DUx[:], res)
	}
}

/*
AddJacobian adds the residual (when res is non-nil) and

	mat += alpha dR/dvars + beta dR/ddvars + gamma dR/dddvars
*/
func (ve *VolumeElement) AddJacobian(elemIndex int, time, alpha, beta, gamma float64,
	Xpts, vars, dvars, ddvars, res, mat []float64) {
	ve.addMatrix(types.JacobianMatrix, elemIndex, time, [3]float64{alpha, beta, gamma},
		Xpts, vars, dvars, ddvars, res, mat)
}

// GetMatType assembles the stiffness or mass matrix of the element at the given state
func (ve *VolumeElement) GetMatType(matType types.ElementMatrixType, elemIndex int, time float64,
	Xpts, vars, mat []float64) {
	ve.addMatrix(matType, elemIndex, time, [3]float64{1, 1, 1}, Xpts, vars, nil, nil, nil, mat)
}

func (ve *VolumeElement) addMatrix(matType types.ElementMatrixType, elemIndex int, time float64,
	coef [3]float64, Xpts, vars, dvars, ddvars, res, mat []float64) {
	var (
		vp         = ve.newPoint()
		DUt        [3 * maxVars]float64
		DUx        [maxVars * maxDim]float64
		nnz, pairs = ve.model.GetWeakMatrixNonzeros(matType, elemIndex)
		Jac        = make([]float64, nnz)
	)
	for n := 0; n < ve.basis.NumQuadraturePoints(); n++ {
		vp.geometry(ve.basis, n, Xpts)
		vp.interpolate(vars, dvars, ddvars)
		ve.model.EvalWeakMatrix(matType, elemIndex, time, n, vp.pt[:], vp.X[:], vp.Xd[:],
			vp.Ut[:], vp.Ux[:], DUt[:], DUx[:], Jac)
		h := vp.weight * vp.detJ
		if res != nil {
			vp.addResidual(h, DUt[:], DUx[:], res)
		}
		if mat != nil {
			vp.addMatrix(h, coef, pairs, Jac, mat)
		}
	}
}

func (ve *VolumeElement) AddAdjResProduct(elemIndex int, time, scale float64,
	psi, Xpts, vars, dvars, ddvars, dvSens []float64) {
	var (
		vp   = ve.newPoint()
		Psi  [3 * maxVars]float64
		Psix [maxVars * maxDim]float64
	)
	for n := 0; n < ve.basis.NumQuadraturePoints(); n++ {
		vp.geometry(ve.basis, n, Xpts)
		vp.interpolate(vars, dvars, ddvars)
		vp.project(psi, Psi[:], Psix[:])
		ve.model.AddWeakAdjProduct(elemIndex, time, scale*vp.weight*vp.detJ, n, vp.pt[:], vp.X[:],
			vp.Xd[:], vp.Ut[:], vp.Ux[:], Psi[:], Psix[:], dvSens)
	}
}

/*
AddAdjResXptProduct adds d(scale * psi·res)/dXpts. The integrand depends on Xd through
det Xd and through the physical gradients Ux and Psix:

	d det/dXd_lm  = det J_ml
	dUx_vj/dXd_lm = -Ux_vl J_mj
*/
func (ve *VolumeElement) AddAdjResXptProduct(elemIndex int, time, scale float64,
	psi, Xpts, vars, dvars, ddvars, fXptSens []float64) {
	var (
		vp      = ve.newPoint()
		dim     = ve.basis.NumParameters()
		nv      = ve.model.VarsPerNode()
		Psi     [3 * maxVars]float64
		Psix    [maxVars * maxDim]float64
		dfdX    [3]float64
		dfdXd   [maxDim * maxDim]float64
		dfdUx   [maxVars * maxDim]float64
		dfdPsix [maxVars * maxDim]float64
		dXd     [maxDim * maxDim]float64
	)
	for n := 0; n < ve.basis.NumQuadraturePoints(); n++ {
		vp.geometry(ve.basis, n, Xpts)
		vp.interpolate(vars, dvars, ddvars)
		vp.project(psi, Psi[:], Psix[:])
		product := ve.model.EvalWeakAdjXptSensProduct(elemIndex, time, n, vp.pt[:], vp.X[:],
			vp.Xd[:], vp.Ut[:], vp.Ux[:], Psi[:], Psix[:], dfdX[:], dfdXd[:], dfdUx[:], dfdPsix[:])
		s := scale * vp.weight
		for l := 0; l < dim; l++ {
			for m := 0; m < dim; m++ {
				val := dfdXd[l*dim+m] + product*vp.J[m*dim+l]
				for v := 0; v < nv; v++ {
					for j := 0; j < dim; j++ {
						val -= (dfdUx[v*dim+j]*vp.Ux[v*dim+l] + dfdPsix[v*dim+j]*Psix[v*dim+l]) *
							vp.J[m*dim+j]
					}
				}
				dXd[l*dim+m] = s * vp.detJ * val
			}
		}
		for node := 0; node < vp.nnodes; node++ {
			for i := 0; i < 3; i++ {
				fXptSens[3*node+i] += s * vp.detJ * vp.N[node] * dfdX[i]
			}
			for l := 0; l < dim; l++ {
				var sum float64
				for m := 0; m < dim; m++ {
					sum += dXd[l*dim+m] * vp.Nxi[node*dim+m]
				}
				fXptSens[3*node+l] += sum
			}
		}
	}
}

// EvalPointQuantity evaluates a model quantity at quadrature point n and returns the
// quadrature weight times the Jacobian determinant with the number of values written
func (ve *VolumeElement) EvalPointQuantity(elemIndex, quantityType int, time float64, n int,
	Xpts, vars, dvars, ddvars, quantity []float64) (h float64, count int) {
	var (
		vp = ve.newPoint()
	)
	vp.geometry(ve.basis, n, Xpts)
	vp.interpolate(vars, dvars, ddvars)
	count = ve.model.EvalPointQuantity(elemIndex, quantityType, time, n, vp.pt[:], vp.X[:],
		vp.Xd[:], vp.Ut[:], vp.Ux[:], quantity)
	h = vp.weight * vp.detJ
	return
}
