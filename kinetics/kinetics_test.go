package kinetics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdkinetics/rta/posterior"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//a processed chain with a slow (rate ~0.1/ns) and a fast (~10/ns)
//process of 30 samples each.
func twoProcessChain(label string, resid int) *posterior.Processed {
	p := &posterior.Processed{
		ID:       "test-chain",
		Label:    label,
		Resid:    resid,
		Nproc:    2,
		Timestep: 0.1,
		Times:    []float64{8, 9, 10, 0.1, 0.2},
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

func TestSummarize(t *testing.T) {
	s, err := Summarize(twoProcessChain("W313", 313))
	require.NoError(t, err)
	assert.Equal(t, "W313", s.Label)
	assert.Equal(t, 313, s.Resid)
	assert.Equal(t, 2, s.Nproc)
	assert.Equal(t, 5, s.Nevents)
	require.Len(t, s.Processes, 2)

	slow, fast := s.Processes[0], s.Processes[1]
	assert.Equal(t, 30, slow.Nsamples)
	assert.InDelta(t, 0.1, slow.RateMean, 0.01)
	assert.InDelta(t, 10, slow.Tau, 0.5)
	assert.InDelta(t, 10, fast.RateMean, 0.5)
	assert.InDelta(t, 0.1, fast.Tau, 0.01)
	assert.Less(t, slow.RateMean, fast.RateMean, "process 0 must be the slowest")
	assert.LessOrEqual(t, slow.TauLow, slow.Tau)
	assert.LessOrEqual(t, slow.Tau, slow.TauHigh)
	assert.Equal(t, slow.Tau, s.TauSlow)
	assert.Equal(t, slow.TauHigh, s.TauSlowHigh)

	rates := OffRates(twoProcessChain("W313", 313), 1)
	assert.Len(t, rates, 30)
	for _, r := range rates {
		assert.Greater(t, r, 1.0)
	}
}

func TestSummarizeEmptyProcess(t *testing.T) {
	p := twoProcessChain("W313", 313)
	p.Nproc = 3 //a cluster k-means left empty
	s, err := Summarize(p)
	require.NoError(t, err)
	require.Len(t, s.Processes, 3)
	assert.Zero(t, s.Processes[2].Nsamples)
	assert.Zero(t, s.Processes[2].Tau)
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	a := twoProcessChain("W313", 313)
	b := twoProcessChain("G50", 50)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "W313"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "G50"), 0755))
	require.NoError(t, a.Save(filepath.Join(dir, "W313", "processed_400.json.zst")))
	require.NoError(t, b.Save(filepath.Join(dir, "G50", "processed_400.json")))

	sums, err := Collect(dir)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "G50", sums[0].Label, "summaries must be sorted by residue number")
	assert.Equal(t, "W313", sums[1].Label)

	//a broken file is reported but does not hide the good ones
	require.NoError(t, os.WriteFile(filepath.Join(dir, "processed_bad.json"), []byte("not json"), 0644))
	sums, err = Collect(dir)
	assert.Error(t, err)
	assert.Len(t, sums, 2)

	_, err = Collect(t.TempDir())
	assert.Error(t, err, "an empty directory has nothing to collect")
}

func TestTableAndJSON(t *testing.T) {
	s, err := Summarize(twoProcessChain("W313", 313))
	require.NoError(t, err)
	sums := []*Summary{s}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sums))
	assert.Contains(t, buf.String(), "tau_slow")
	assert.Contains(t, buf.String(), "W313")

	name := filepath.Join(t.TempDir(), "tau_table.json")
	require.NoError(t, WriteJSON(name, sums))
	back, err := ReadJSON(name)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, s.TauSlow, back[0].TauSlow)
}
