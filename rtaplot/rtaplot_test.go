package rtaplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdkinetics/rta/kinetics"
	"github.com/mdkinetics/rta/posterior"
)

func testChain() *posterior.Processed {
	p := &posterior.Processed{
		Label:    "W313",
		Resid:    313,
		Nproc:    2,
		Timestep: 0.1,
		Times:    []float64{8, 9, 0.1},
	}
	for i := 0; i < 30; i++ {
		e := float64(i%7) * 0.001
		p.Weights = append(p.Weights, 0.6+e, 0.4-e)
		p.Rates = append(p.Rates, 0.1*(1+e), 10*(1+e))
		p.Labels = append(p.Labels, 0, 1)
		p.Iterations = append(p.Iterations, (i+1)*10, (i+1)*10)
	}
	return p
}

func mustExist(Te *testing.T, names ...string) {
	Te.Helper()
	for _, name := range names {
		fi, err := os.Stat(name)
		if err != nil {
			Te.Fatalf("figure %s was not written: %v", name, err)
		}
		if fi.Size() == 0 {
			Te.Errorf("figure %s is empty", name)
		}
	}
}

func TestHistResults(Te *testing.T) {
	base := filepath.Join(Te.TempDir(), "W313")
	if err := HistResults(testChain(), base); err != nil {
		Te.Fatal(err)
	}
	mustExist(Te, base+"_weights.png", base+"_rates.png")
}

func TestTraceResults(Te *testing.T) {
	base := filepath.Join(Te.TempDir(), "W313")
	if err := TraceResults(testChain(), base, 2); err != nil {
		Te.Fatal(err)
	}
	mustExist(Te, base+"_wtrace.png", base+"_rtrace.png")
}

func TestTauProtein(Te *testing.T) {
	sums := []*kinetics.Summary{
		{Label: "G50", Resid: 50, TauSlow: 2, TauSlowLow: 1, TauSlowHigh: 4},
		{Label: "W313", Resid: 313, TauSlow: 10, TauSlowLow: 6, TauSlowHigh: 18},
	}
	base := filepath.Join(Te.TempDir(), "tau_protein")
	if err := TauProtein(sums, base); err != nil {
		Te.Fatal(err)
	}
	mustExist(Te, base+".png")
	if err := TauProtein(nil, base); err == nil {
		Te.Error("expected an error with nothing to plot")
	}
}
