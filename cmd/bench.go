/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/notargets/gofea/InputParameters"
	"github.com/notargets/gofea/elements"
	"github.com/notargets/gofea/types"
	"github.com/notargets/gofea/utils"
	"github.com/notargets/gofea/verify"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type Bench struct {
	Passes  int
	Profile string // cpu, mem or empty
	Perf    bool
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the point kernels of a case",
	Long: `
Evaluates the weak matrix and the parallel adjoint product over random integration points and
reports the time per point, optionally under the CPU or memory profiler or with hardware
instruction counts.

gofea bench -I case.yaml -n 100 --profile cpu`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParameters
			b  = &Bench{}
		)
		b.Passes, _ = cmd.Flags().GetInt("n")
		b.Profile, _ = cmd.Flags().GetString("profile")
		b.Perf, _ = cmd.Flags().GetBool("perf")
		if ip, err = loadCase(cmd); err != nil {
			return
		}
		switch b.Profile {
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "":
		default:
			return fmt.Errorf("unknown profile %q, use cpu or mem", b.Profile)
		}
		return RunBench(os.Stdout, ip, b)
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntP("n", "n", 10, "number of passes over the integration points")
	BenchCmd.Flags().StringP("profile", "p", "", "write a cpu or mem profile to the current directory")
	BenchCmd.Flags().Bool("perf", false, "count CPU instructions of EvalWeakMatrix with perf events")
}

func benchPoints(rng *rand.Rand, model elements.ElementModel, n int) (points []elements.IntegrationPoint) {
	var (
		nvars = model.VarsPerNode()
		nux   = nvars * model.NumParameters()
	)
	points = make([]elements.IntegrationPoint, n)
	for i := range points {
		p := verify.NewRandomPoint(rng, model, 1.e-2)
		points[i] = elements.IntegrationPoint{
			ElemIndex: i, Scale: 1,
			Pt: p.Pt, X: p.X, Xd: p.Xd, Ut: p.Ut, Ux: p.Ux,
			Psi:  verify.RandomVector(rng, 3*nvars, 1),
			Psix: verify.RandomVector(rng, nux, 1),
		}
	}
	return
}

func RunBench(w io.Writer, ip *InputParameters.InputParameters, b *Bench) (err error) {
	var (
		rng   = rand.New(rand.NewSource(ip.Seed))
		model elements.ElementModel
	)
	if model, err = ip.NewModel(); err != nil {
		return
	}
	dvLen := model.DesignVarsPerNode()
	if dvLen < 1 {
		dvLen = 1
	}
	if b.Passes < 1 {
		b.Passes = 1
	}
	if ip.Points < 1 {
		return fmt.Errorf("%w: bench needs Points > 0", InputParameters.ErrInvalidCase)
	}
	var (
		points   = benchPoints(rng, model, ip.Points)
		nnz, _   = model.GetWeakMatrixNonzeros(types.JacobianMatrix, 0)
		Jac      = make([]float64, nnz)
		DUt      = make([]float64, 3*model.VarsPerNode())
		DUx      = make([]float64, model.VarsPerNode()*model.NumParameters())
		evals    = float64(b.Passes * len(points))
		weakPass = func() error {
			for _, p := range points {
				model.EvalWeakMatrix(types.JacobianMatrix, p.ElemIndex, p.Time, p.N, p.Pt, p.X, p.Xd,
					p.Ut, p.Ux, DUt, DUx, Jac)
			}
			return nil
		}
	)
	log.Printf("benchmarking %s over %d points, %d passes", ip, len(points), b.Passes)
	start := time.Now()
	for k := 0; k < b.Passes; k++ {
		_ = weakPass()
	}
	elapsed := time.Since(start)
	if utils.IsNan(Jac) || utils.IsNan(DUx) {
		log.Printf("non-finite weak matrix entries at the last point")
	}
	fmt.Fprintf(w, "EvalWeakMatrix      %10.1f ns/point  (%d nonzeros)\n",
		float64(elapsed.Nanoseconds())/evals, nnz)

	start = time.Now()
	var dfdx []float64
	for k := 0; k < b.Passes; k++ {
		dfdx = elements.SumAdjProducts(model, points, ip.ParallelDegree, dvLen)
	}
	elapsed = time.Since(start)
	fmt.Fprintf(w, "SumAdjProducts      %10.1f ns/point  (%d workers, dfdx[0] = %g)\n",
		float64(elapsed.Nanoseconds())/evals, ip.ParallelDegree, dfdx[0])

	if b.Perf {
		var count uint64
		if count, err = instructionCount(weakPass); err != nil {
			log.Printf("perf counters unavailable: %v", err)
			err = nil
		} else {
			fmt.Fprintf(w, "EvalWeakMatrix      %10.1f instructions/point\n",
				float64(count)/float64(len(points)))
		}
	}
	fmt.Fprintln(w, utils.GetMemUsage())
	return
}
