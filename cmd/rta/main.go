//rta is the command-line driver for the residence-time analysis
//pipeline: contact/event extraction, per-residue Gibbs sampling,
//posterior processing and plotting, plus validation of the repository
//citation record.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "rta",
	Short: "Bayesian nonparametric residence-time analysis for MD simulations",
	Long: `rta extracts ligand-residue binding events from molecular dynamics
distance time series, fits each residue's residence times with a Gibbs
sampler over an exponential mixture, identifies the kinetic processes
supported by the data, and reports per-residue off-rates and slow
residence times.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		var l *zap.Logger
		var err error
		if verbose {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			panic(err)
		}
		log = l.Sugar()
	},
}

func main() {
	//local overrides for flags' default values, if present
	_ = godotenv.Load()
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose (development-style) logging")
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error(err)
			_ = log.Sync()
		}
		os.Exit(1)
	}
	if log != nil {
		_ = log.Sync()
	}
}
