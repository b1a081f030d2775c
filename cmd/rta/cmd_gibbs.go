package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"

	rta "github.com/mdkinetics/rta"
	"github.com/mdkinetics/rta/contacts"
	"github.com/mdkinetics/rta/gibbs"
	"github.com/spf13/cobra"
)

var gibbsCmd = &cobra.Command{
	Use:   "gibbs",
	Short: "run the per-residue Gibbs samplers",
	Long: `gibbs fits every residue's residence times with the exponential-mixture
Gibbs sampler, processing residues in parallel on a bounded worker
pool. One result file per residue is written under the output
directory, as <label>/results_<niter>.json.zst.`,
	RunE: runGibbs,
}

func init() {
	f := gibbsCmd.Flags()
	f.String("events", "", "events file from 'rta contacts' (required)")
	f.String("outdir", "BaSiC-RTA", "directory for per-residue results")
	f.Int("ncomp", 15, "maximum number of mixture components")
	f.Int("niter", 50000, "Gibbs sweeps")
	f.Int("thin", 100, "record every thin-th sweep")
	f.Int("burnin", 10000, "sweeps the post-processing will discard")
	f.Int("cpus", runtime.NumCPU(), "residues sampled in parallel")
	f.Uint64("seed", 1, "RNG seed")
	f.Int("min-events", 5, "skip residues with fewer usable events")
	_ = gibbsCmd.MarkFlagRequired("events")
	rootCmd.AddCommand(gibbsCmd)
}

func runGibbs(cmd *cobra.Command, _ []string) error {
	eventsname, _ := cmd.Flags().GetString("events")
	outdir, _ := cmd.Flags().GetString("outdir")
	ncomp, _ := cmd.Flags().GetInt("ncomp")
	niter, _ := cmd.Flags().GetInt("niter")
	thin, _ := cmd.Flags().GetInt("thin")
	burnin, _ := cmd.Flags().GetInt("burnin")
	cpus, _ := cmd.Flags().GetInt("cpus")
	seed, _ := cmd.Flags().GetUint64("seed")
	minev, _ := cmd.Flags().GetInt("min-events")
	if cpus < 1 {
		cpus = 1
	}

	src, _, err := contacts.NewSource(eventsname)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	o := gibbs.DefaultOptions()
	o.Ncomp(ncomp)
	o.Niter(niter)
	o.Thin(thin)
	o.Burnin(burnin)
	o.Seed(seed)

	jobs := make(chan *rta.EventSet)
	errs := make(chan error, cpus)
	var wg sync.WaitGroup
	var done, skipped int
	var mu sync.Mutex
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for set := range jobs {
				if err := sampleResidue(ctx, set, o, outdir); err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}
				mu.Lock()
				done++
				mu.Unlock()
				log.Infow("residue sampled", "residue", set.Label, "events", set.Len())
			}
		}()
	}

feeding:
	for src.Readable() {
		set, err := src.NextSet()
		if err != nil {
			if _, ok := err.(rta.LastEventError); ok {
				break
			}
			close(jobs)
			return err
		}
		if set.Uncensored().Len() < minev {
			skipped++
			log.Infow("residue skipped", "residue", set.Label, "events", set.Uncensored().Len())
			continue
		}
		select {
		case jobs <- set:
		case <-ctx.Done():
			break feeding
		case err := <-errs:
			close(jobs)
			wg.Wait()
			return err
		}
	}
	close(jobs)
	wg.Wait()
	select {
	case err := <-errs:
		return err
	default:
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted after %d residue(s): %w", done, err)
	}
	fmt.Printf("sampled %d residue(s), skipped %d, results under %s\n", done, skipped, outdir)
	return nil
}

func sampleResidue(ctx context.Context, set *rta.EventSet, o *gibbs.Options, outdir string) error {
	S, err := gibbs.New(set, o)
	if err != nil {
		return err
	}
	res, err := S.Run(ctx)
	if err != nil {
		return err
	}
	dir := filepath.Join(outdir, set.Label)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return res.Save(filepath.Join(dir, fmt.Sprintf("results_%d.json.zst", res.Niter)))
}
