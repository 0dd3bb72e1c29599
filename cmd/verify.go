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
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/notargets/gofea/InputParameters"
	"github.com/notargets/gofea/elements"
	"github.com/notargets/gofea/types"
	"github.com/notargets/gofea/utils"
	"github.com/notargets/gofea/verify"
	"github.com/spf13/cobra"
)

var ErrVerifyFailed = errors.New("verification failed")

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check every analytic derivative of a case against finite differences",
	Long: `
Builds the element model, the volume element and the optional traction element of a case and
compares their Jacobians and sensitivities with central finite differences.

Example case file:
########################################
Title: "Aluminum block"
Dimension: 3
StrainType: nonlinear
SteadyState: [thermal]
Thickness: 1.2
Traction:
  Face: 5
  Components: [0, 0, 10, 0]
StepSize: 1.e-6
Tolerance: 1.e-5
########################################`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var ip *InputParameters.InputParameters
		if ip, err = loadCase(cmd); err != nil {
			return
		}
		ip.Print()
		if pattern, _ := cmd.Flags().GetBool("pattern"); pattern {
			if err = PrintPatterns(os.Stdout, ip); err != nil {
				return
			}
		}
		return RunVerify(os.Stdout, ip)
	},
}

func init() {
	rootCmd.AddCommand(VerifyCmd)
	VerifyCmd.Flags().Bool("pattern", false, "print the nonzero structure of each point-wise matrix")
}

// PrintPatterns draws the declared nonzero pattern of every point-wise matrix type
func PrintPatterns(w io.Writer, ip *InputParameters.InputParameters) (err error) {
	var (
		model elements.ElementModel
	)
	if model, err = ip.NewModel(); err != nil {
		return
	}
	nw := 3*model.VarsPerNode() + model.VarsPerNode()*model.NumParameters()
	for _, matType := range []types.ElementMatrixType{types.JacobianMatrix, types.StiffnessMatrix, types.MassMatrix} {
		nnz, pairs := model.GetWeakMatrixNonzeros(matType, 0)
		ones := make([]float64, nnz)
		for i := range ones {
			ones[i] = 1
		}
		fmt.Fprint(w, utils.NewPairsCSR(matType.String(), nw, pairs, ones).Print())
	}
	return
}

// RunVerify writes one line per check and returns ErrVerifyFailed when any check is out of tolerance
func RunVerify(w io.Writer, ip *InputParameters.InputParameters) (err error) {
	var (
		rng     = rand.New(rand.NewSource(ip.Seed))
		model   elements.ElementModel
		elem    *elements.VolumeElement
		tr      *elements.Traction3D
		results []verify.Result
		failed  int
	)
	if model, err = ip.NewModel(); err != nil {
		return
	}
	log.Printf("checking %s", ip)
	if results, err = verify.CheckModel(model, rng, 1.e-2, ip.StepSize); err != nil {
		return
	}
	if elem, err = ip.NewVolumeElement(); err != nil {
		return
	}
	Xpts := verify.RandomNodes(rng, ip.Dimension, 0.1)
	results = append(results, verify.CheckElement(elem, Xpts, rng, 1.e-2, ip.StepSize)...)
	if tr, err = ip.NewTraction(); err != nil {
		return
	}
	if tr != nil {
		for _, r := range verify.CheckElement(tr, Xpts, rng, 1.e-2, ip.StepSize) {
			r.Name = fmt.Sprintf("Traction3D[%d] %s", tr.FaceIndex(), r.Name)
			results = append(results, r)
		}
	}
	for _, r := range results {
		status := "ok"
		if !r.Pass(ip.Tolerance) {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s  %s\n", r, status)
	}
	if failed != 0 {
		return fmt.Errorf("%w: %d of %d checks", ErrVerifyFailed, failed, len(results))
	}
	fmt.Fprintf(w, "%d checks passed\n", len(results))
	return
}
