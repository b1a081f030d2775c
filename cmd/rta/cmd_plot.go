package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mdkinetics/rta/kinetics"
	"github.com/mdkinetics/rta/posterior"
	"github.com/mdkinetics/rta/rtaplot"
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "draw the standard analysis figures",
	Long: `plot draws, for every processed residue under the results directory,
the posterior weight and rate histograms and the chain traces, and one
protein-wide figure of the slow residence time per residue.`,
	RunE: runPlot,
}

func init() {
	f := plotCmd.Flags()
	f.String("dir", "BaSiC-RTA", "directory with processed results")
	f.Int("sparse", 10, "keep every sparse-th point in trace plots")
	f.Bool("traces", true, "draw per-residue chain traces")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	sparse, _ := cmd.Flags().GetInt("sparse")
	traces, _ := cmd.Flags().GetBool("traces")

	var processed []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		if strings.HasPrefix(base, "processed_") && (strings.HasSuffix(base, ".json") || strings.HasSuffix(base, ".json.zst")) {
			processed = append(processed, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(processed) == 0 {
		return fmt.Errorf("no processed results under %s, run 'rta process' first", dir)
	}

	nfig := 0
	for _, name := range processed {
		p, err := posterior.Load(name)
		if err != nil {
			return err
		}
		base := filepath.Join(filepath.Dir(name), p.Label)
		if err := rtaplot.HistResults(p, base); err != nil {
			return err
		}
		nfig += 2
		if traces {
			if err := rtaplot.TraceResults(p, base, sparse); err != nil {
				return err
			}
			nfig += 2
		}
		log.Infow("residue plotted", "residue", p.Label)
	}

	sums, err := kinetics.Collect(dir)
	if len(sums) == 0 {
		return err
	}
	if err != nil {
		log.Warn(err)
	}
	if err := rtaplot.TauProtein(sums, filepath.Join(dir, "tau_protein")); err != nil {
		return err
	}
	nfig++
	fmt.Printf("%d figure(s) written under %s\n", nfig, dir)
	return nil
}
