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
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/notargets/gofea/InputParameters"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gofea",
	Short: "Thermoelastic finite element kernels",
	Long: `
Point-wise thermoelastic element models, a volume element and a surface traction element,
with finite-difference verification of every derivative they provide.

gofea verify -I case.yaml
gofea bench -I case.yaml -n 100`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gofea.yaml)")
	rootCmd.PersistentFlags().StringP("inputConditionsFile", "I", "", "YAML case file, defaults are used when absent")
	rootCmd.PersistentFlags().Float64("step", 0, "finite difference step, overrides StepSize")
	rootCmd.PersistentFlags().Float64("tolerance", 0, "relative tolerance, overrides Tolerance")
	rootCmd.PersistentFlags().Int("parallel", 0, "worker count, overrides ParallelDegree")
	for _, name := range []string{"step", "tolerance", "parallel"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gofea")
	}
	viper.SetEnvPrefix("gofea")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

/*
loadCase reads the case named by -I over the defaults, then applies any step, tolerance or
parallel setting from the flags, the environment or the config file.
*/
func loadCase(cmd *cobra.Command) (ip *InputParameters.InputParameters, err error) {
	var (
		fileName string
		data     []byte
	)
	ip = InputParameters.NewInputParameters()
	if fileName, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if len(fileName) != 0 {
		if data, err = os.ReadFile(fileName); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
	}
	applyOverrides(ip)
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

func applyOverrides(ip *InputParameters.InputParameters) {
	if h := viper.GetFloat64("step"); h > 0 {
		ip.StepSize = h
	}
	if tol := viper.GetFloat64("tolerance"); tol > 0 {
		ip.Tolerance = tol
	}
	if np := viper.GetInt("parallel"); np > 0 {
		ip.ParallelDegree = np
	}
}
