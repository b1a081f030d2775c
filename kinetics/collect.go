package kinetics

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdkinetics/rta/posterior"
)

// Collect walks a results directory, loads every processed chain
// (files named processed_*.json or processed_*.json.zst) and builds the
// protein-wide table of kinetic summaries, sorted by residue number.
// Files that fail to load are reported together at the end; the
// summaries of the ones that loaded are still returned.
func Collect(dir string) ([]*Summary, error) {
	var names []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		if strings.HasPrefix(base, "processed_") && (strings.HasSuffix(base, ".json") || strings.HasSuffix(base, ".json.zst")) {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("kinetics.Collect: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("kinetics.Collect: no processed results under %s", dir)
	}
	var sums []*Summary
	var failed []string
	for _, name := range names {
		p, err := posterior.Load(name)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		s, err := Summarize(p)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		sums = append(sums, s)
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].Resid < sums[j].Resid })
	if failed != nil {
		return sums, fmt.Errorf("kinetics.Collect: %d result(s) skipped:\n%s", len(failed), strings.Join(failed, "\n"))
	}
	return sums, nil
}

// WriteTable writes the summaries as an aligned text table.
func WriteTable(w io.Writer, sums []*Summary) error {
	_, err := fmt.Fprintf(w, "%-8s %6s %6s %12s %12s %12s\n", "residue", "events", "nproc", "tau_slow/ns", "2.5%", "97.5%")
	if err != nil {
		return err
	}
	for _, s := range sums {
		_, err = fmt.Fprintf(w, "%-8s %6d %6d %12.4g %12.4g %12.4g\n", s.Label, s.Nevents, s.Nproc, s.TauSlow, s.TauSlowLow, s.TauSlowHigh)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the summaries to a JSON file.
func WriteJSON(name string, sums []*Summary) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("kinetics.WriteJSON: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sums); err != nil {
		return fmt.Errorf("kinetics.WriteJSON: %w", err)
	}
	return nil
}

// ReadJSON reads back a summaries file written by WriteJSON.
func ReadJSON(name string) ([]*Summary, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("kinetics.ReadJSON: %w", err)
	}
	var sums []*Summary
	if err := json.Unmarshal(data, &sums); err != nil {
		return nil, fmt.Errorf("kinetics.ReadJSON: %w", err)
	}
	return sums, nil
}
