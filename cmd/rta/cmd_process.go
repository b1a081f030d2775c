package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	rta "github.com/mdkinetics/rta"
	"github.com/mdkinetics/rta/contacts"
	"github.com/mdkinetics/rta/gibbs"
	"github.com/mdkinetics/rta/kinetics"
	"github.com/mdkinetics/rta/posterior"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "identify kinetic processes and summarize off-rates",
	Long: `process turns the raw chains under the results directory into
identified kinetic processes (one processed_<niter> file next to each
results file), then prints the protein-wide table of slow residence
times and writes it as JSON. With --events, it also writes per-residue
frame assignments for trajectory extraction.`,
	RunE: runProcess,
}

func init() {
	f := processCmd.Flags()
	f.String("dir", "BaSiC-RTA", "directory with per-residue results")
	f.Float64("cutoff", 1e-4, "weight cutoff for a sample to count as occupied")
	f.String("summary", "tau_table.json", "protein-wide summary file")
	f.String("events", "", "events file, enables frame assignment")
	f.Float64("threshold", 0.5, "membership threshold for frame assignment")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	cutoff, _ := cmd.Flags().GetFloat64("cutoff")
	summary, _ := cmd.Flags().GetString("summary")
	eventsname, _ := cmd.Flags().GetString("events")
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	o := posterior.DefaultOptions()
	o.Cutoff(cutoff)

	var sets map[string]*rta.EventSet
	if eventsname != "" {
		_, all, err := contacts.ReadEvents(eventsname)
		if err != nil {
			return err
		}
		sets = make(map[string]*rta.EventSet, len(all))
		for _, set := range all {
			sets[set.Label] = set
		}
	}

	var results []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		if strings.HasPrefix(base, "results_") && (strings.HasSuffix(base, ".json") || strings.HasSuffix(base, ".json.zst")) {
			results = append(results, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no results under %s, run 'rta gibbs' first", dir)
	}

	for _, name := range results {
		r, err := gibbs.Load(name)
		if err != nil {
			return err
		}
		p, err := posterior.Process(r, o)
		if err != nil {
			return err
		}
		out := filepath.Join(filepath.Dir(name), fmt.Sprintf("processed_%d.json.zst", r.Niter))
		if err := p.Save(out); err != nil {
			return err
		}
		log.Infow("chain processed", "residue", p.Label, "nproc", p.Nproc, "file", out)
		if sets != nil {
			if err := assignFrames(p, sets, threshold, filepath.Dir(name)); err != nil {
				return err
			}
		}
	}

	sums, err := kinetics.Collect(dir)
	if len(sums) == 0 {
		return err
	}
	if err != nil {
		log.Warn(err)
	}
	if err := kinetics.WriteTable(os.Stdout, sums); err != nil {
		return err
	}
	if err := kinetics.WriteJSON(summary, sums); err != nil {
		return err
	}
	fmt.Printf("%d residue(s) summarized -> %s\n", len(sums), summary)
	return nil
}

func assignFrames(p *posterior.Processed, sets map[string]*rta.EventSet, threshold float64, dir string) error {
	set, ok := sets[p.Label]
	if !ok {
		return fmt.Errorf("residue %s has results but no events in the events file", p.Label)
	}
	frames, err := p.Assign(set, threshold)
	if err != nil {
		return err
	}
	out := filepath.Join(dir, "frames.json")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(frames); err != nil {
		return fmt.Errorf("can't write %s: %w", out, err)
	}
	log.Infow("frames assigned", "residue", p.Label, "processes", len(frames), "file", out)
	return nil
}
