package contacts

import (
	"math"
	"path/filepath"
	"testing"

	rta "github.com/mdkinetics/rta"
)

//writes a small series and reads it back, for every supported
//compression format.
func TestSeriesRoundTrip(Te *testing.T) {
	frames := [][]float64{
		{1.25, 8.00, 3.50},
		{2.00, 6.75, 9.90},
		{0.10, 7.00, 4.40},
	}
	for _, ext := range []string{".zst", ".gz", ".fz", ".lzw", ".ser"} {
		name := filepath.Join(Te.TempDir(), "dists"+ext)
		W, err := NewWriter(name, 3, map[string]string{"ligand": "CHL1", "prec": "2"})
		if err != nil {
			Te.Fatal(err)
		}
		for _, f := range frames {
			if err := W.WNext(f); err != nil {
				Te.Fatal(err)
			}
		}
		W.Close()

		R, header, err := New(name)
		if err != nil {
			Te.Fatal(err)
		}
		if header["ligand"] != "CHL1" {
			Te.Errorf("%s: header lost: %v", ext, header)
		}
		if R.Len() != 3 {
			Te.Errorf("%s: %d residues, want 3", ext, R.Len())
		}
		d := make([]float64, 3)
		for i, f := range frames {
			if err := R.Next(d); err != nil {
				Te.Fatalf("%s: frame %d: %v", ext, i, err)
			}
			for j := range d {
				if math.Abs(d[j]-f[j]) > 1e-9 {
					Te.Errorf("%s: frame %d residue %d: %v, want %v", ext, i, j, d[j], f[j])
				}
			}
		}
		err = R.Next(d)
		if err == nil {
			Te.Fatalf("%s: expected an end-of-series error", ext)
		}
		if _, ok := err.(rta.LastEventError); !ok {
			Te.Errorf("%s: end of series is not an rta.LastEventError: %v", ext, err)
		}
		if R.Readable() {
			Te.Errorf("%s: series still readable after the end", ext)
		}
	}
}

func TestSeriesBadData(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "dists.zst")
	W, err := NewWriter(name, 2, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext([]float64{1, 2, 3}); err == nil {
		Te.Error("expected an error for a frame with too many distances")
	}
	if err := W.WNext(nil); err == nil {
		Te.Error("expected an error for a nil frame")
	}
	W.Close()
	if err := W.WNext([]float64{1, 2}); err == nil {
		Te.Error("expected an error writing to a closed series")
	}
}

func TestMetadata(Te *testing.T) {
	m := &Metadata{
		TrajLen:  1000,
		NProtein: 2,
		NLigand:  40,
		Ligand:   "resname CHL1",
		Timestep: 0.1,
		Resids:   []int{313, 314},
		Resnames: []string{"TRP", "GLY"},
	}
	name := filepath.Join(Te.TempDir(), "meta.yaml")
	if err := m.Write(name); err != nil {
		Te.Fatal(err)
	}
	m2, err := ReadMetadata(name)
	if err != nil {
		Te.Fatal(err)
	}
	if m2.Label(0) != "W313" || m2.Label(1) != "G314" {
		Te.Errorf("wrong labels: %s, %s", m2.Label(0), m2.Label(1))
	}
	if m2.Resid(1) != 314 {
		Te.Errorf("wrong resid: %d", m2.Resid(1))
	}
	//no numbering: positional fallbacks
	bare := &Metadata{Timestep: 0.1}
	if bare.Label(5) != "RES5" || bare.Resid(5) != 5 {
		Te.Errorf("wrong fallbacks: %s, %d", bare.Label(5), bare.Resid(5))
	}
	bad := &Metadata{Timestep: 0}
	if err := bad.Check(); err == nil {
		Te.Error("expected an error for a zero timestep")
	}
}
