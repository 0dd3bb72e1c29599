package elements

import "github.com/notargets/gofea/utils"

// IntegrationPoint carries everything AddWeakAdjProduct needs at one point
type IntegrationPoint struct {
	ElemIndex, N int
	Time, Scale  float64
	Pt, X, Xd    []float64
	Ut, Ux       []float64
	Psi, Psix    []float64
}

/*
SumAdjProducts accumulates AddWeakAdjProduct over points into a design vector of length
dvLen. Points are split into ParallelDegree buckets, each worker accumulates into its own
buffer and the buffers are summed after all workers finish.

The model must not have SetDesignVars called on it while this runs.
*/
func SumAdjProducts(model ElementModel, points []IntegrationPoint, parallelDegree, dvLen int) (dfdx []float64) {
	dfdx = make([]float64, dvLen)
	if len(points) == 0 {
		return
	}
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	if parallelDegree > len(points) {
		parallelDegree = len(points)
	}
	pm := utils.NewPartitionMap(parallelDegree, len(points))
	partial := make([][]float64, pm.ParallelDegree)
	for np := range partial {
		partial[np] = make([]float64, dvLen)
	}
	pm.ForEachBucket(func(np, kMin, kMax int) {
		for _, ip := range points[kMin:kMax] {
			model.AddWeakAdjProduct(ip.ElemIndex, ip.Time, ip.Scale, ip.N, ip.Pt, ip.X, ip.Xd,
				ip.Ut, ip.Ux, ip.Psi, ip.Psix, partial[np])
		}
	})
	for np := 0; np < pm.ParallelDegree; np++ {
		for i, v := range partial[np] {
			dfdx[i] += v
		}
	}
	return
}
