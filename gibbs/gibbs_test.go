package gibbs

import (
	"context"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	rta "github.com/mdkinetics/rta"
	"gonum.org/v1/gonum/floats"
)

//a synthetic residue whose residence times are drawn from a single
//exponential with the given rate, in 1/ns.
func syntheticSet(n int, rate float64, seed uint64) *rta.EventSet {
	rnd := rand.New(rand.NewSource(int64(seed)))
	set := rta.NewEventSet("W313", 313, 0.001)
	for i := 0; i < n; i++ {
		t := rnd.ExpFloat64() / rate
		if t < 0.001 {
			t = 0.001
		}
		set.Add(&rta.Interval{Residue: 0, LigandID: -1, Start: i * 10, Frames: 1, Time: t})
	}
	return set
}

func TestRunRecoversRate(Te *testing.T) {
	const trueRate = 2.0
	set := syntheticSet(500, trueRate, 7)
	o := DefaultOptions()
	o.Ncomp(5)
	o.Niter(2000)
	o.Thin(20)
	o.Burnin(1000)
	S, err := New(set, o)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 500 {
		Te.Fatalf("sampler sees %d times, want 500", S.Len())
	}
	res, err := S.Run(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	if err := res.Check(); err != nil {
		Te.Fatal(err)
	}
	if res.Saved() != 100 {
		Te.Errorf("%d recorded sweeps, want 100", res.Saved())
	}
	for j, w := range res.MCWeights {
		if s := floats.Sum(w); math.Abs(s-1) > 1e-9 {
			Te.Fatalf("weights recorded at sweep %d sum to %v, want 1", (j+1)*res.Thin, s)
		}
	}
	//posterior mean of the dominant component's rate, after burn-in
	start := res.Burnin / res.Thin
	sum, n := 0.0, 0.0
	for j := start; j < res.Saved(); j++ {
		best := 0
		for k, w := range res.MCWeights[j] {
			if w > res.MCWeights[j][best] {
				best = k
			}
		}
		sum += res.MCRates[j][best]
		n++
	}
	got := sum / n
	if math.Abs(got-trueRate) > 0.6 {
		Te.Errorf("recovered rate %v, want about %v", got, trueRate)
	}
	for _, ind := range res.Indicators {
		for _, v := range ind {
			if int(v) >= res.Ncomp {
				Te.Fatalf("indicator %d out of range for %d components", v, res.Ncomp)
			}
		}
	}
	if len(res.T) == 0 {
		Te.Fatal("no survival diagnostics recorded")
	}
	if res.S[0] != 1 {
		Te.Errorf("survival curve starts at %v, want 1", res.S[0])
	}
}

func TestRunCancellation(Te *testing.T) {
	set := syntheticSet(50, 1.0, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	S, err := New(set, DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := S.Run(ctx); err == nil {
		Te.Error("a cancelled context should abort the run")
	}
}

func TestNewRejectsEmptySets(Te *testing.T) {
	set := rta.NewEventSet("W313", 313, 0.1)
	set.Add(&rta.Interval{Frames: 10, Time: 1.0, Censored: true})
	if _, err := New(set); err == nil {
		Te.Error("a set with only censored events should be rejected")
	}
}

func TestResultRoundTrip(Te *testing.T) {
	set := syntheticSet(100, 1.0, 11)
	o := DefaultOptions()
	o.Ncomp(3)
	o.Niter(200)
	o.Thin(10)
	o.Burnin(100)
	S, err := New(set, o)
	if err != nil {
		Te.Fatal(err)
	}
	res, err := S.Run(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	for _, ext := range []string{".json", ".json.zst"} {
		name := filepath.Join(Te.TempDir(), "results_200"+ext)
		if err := res.Save(name); err != nil {
			Te.Fatal(err)
		}
		back, err := Load(name)
		if err != nil {
			Te.Fatal(err)
		}
		if back.ID != res.ID || back.Label != res.Label || back.Saved() != res.Saved() {
			Te.Errorf("%s: result identity lost in the round trip", ext)
		}
		if back.MCRates[0][0] != res.MCRates[0][0] {
			Te.Errorf("%s: chains differ after the round trip", ext)
		}
	}
}

func TestOptionsBounds(Te *testing.T) {
	o := DefaultOptions()
	o.Ncomp(1) //too few components to be a mixture
	if o.Ncomp() != 15 {
		Te.Errorf("Ncomp accepted 1, now %d", o.Ncomp())
	}
	o.Ncomp(300) //would overflow the uint8 indicators
	if o.Ncomp() != 15 {
		Te.Errorf("Ncomp accepted 300, now %d", o.Ncomp())
	}
	o.Niter(-5)
	if o.Niter() != 50000 {
		Te.Errorf("Niter accepted -5, now %d", o.Niter())
	}
}
