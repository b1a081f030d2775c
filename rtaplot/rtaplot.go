/*Package rtaplot draws the standard figures of a residence-time
analysis: per-process weight and rate posteriors, chain traces, and the
slow residence time along the protein sequence.

Plots are written as PNG files named after the given base name.*/
package rtaplot

import (
	"fmt"
	"math"

	"github.com/mdkinetics/rta/kinetics"
	"github.com/mdkinetics/rta/posterior"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	defaultWidth  = 6 * vg.Inch
	defaultHeight = 4.5 * vg.Inch
	histBins      = 50
)

// HistResults plots histograms of the posterior weight and rate samples
// of every process, on a log10 scale, one process per color. Two files
// are produced: <plotname>_weights.png and <plotname>_rates.png.
func HistResults(pr *posterior.Processed, plotname string) error {
	if err := histOne(pr, plotname+"_weights.png", "log10(weight)", true); err != nil {
		return err
	}
	return histOne(pr, plotname+"_rates.png", "log10(rate / ns^-1)", false)
}

func histOne(pr *posterior.Processed, filename, xlabel string, weights bool) error {
	p := plot.New()
	p.Title.Text = pr.Label
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "count"
	for m := 0; m < pr.Nproc; m++ {
		w, r := pr.ProcessSamples(m)
		vals := r
		if weights {
			vals = w
		}
		if len(vals) == 0 {
			continue
		}
		logs := make(plotter.Values, len(vals))
		for i, v := range vals {
			logs[i] = math.Log10(v)
		}
		h, err := plotter.NewHist(logs, histBins)
		if err != nil {
			return fmt.Errorf("rtaplot.HistResults: %s: %w", pr.Label, err)
		}
		h.FillColor = plotutil.Color(m)
		h.LineStyle.Color = plotutil.Color(m)
		p.Add(h)
		p.Legend.Add(fmt.Sprintf("process %d", m+1), h)
	}
	if err := p.Save(defaultWidth, defaultHeight, filename); err != nil {
		return fmt.Errorf("rtaplot.HistResults: %s: %w", pr.Label, err)
	}
	return nil
}

// TraceResults plots the retained weight and rate samples against the
// sweep they were recorded at, one process per color, keeping every
// sparse-th point. Two files are produced: <plotname>_wtrace.png and
// <plotname>_rtrace.png.
func TraceResults(pr *posterior.Processed, plotname string, sparse int) error {
	if sparse < 1 {
		sparse = 1
	}
	if err := traceOne(pr, plotname+"_wtrace.png", "weight", true, sparse); err != nil {
		return err
	}
	return traceOne(pr, plotname+"_rtrace.png", "rate (ns^-1)", false, sparse)
}

func traceOne(pr *posterior.Processed, filename, ylabel string, weights bool, sparse int) error {
	p := plot.New()
	p.Title.Text = pr.Label
	p.X.Label.Text = "sweep"
	p.Y.Label.Text = ylabel
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	for m := 0; m < pr.Nproc; m++ {
		pts := make(plotter.XYs, 0, len(pr.Labels)/pr.Nproc)
		n := 0
		for i, l := range pr.Labels {
			if l != m {
				continue
			}
			if n%sparse == 0 {
				v := pr.Rates[i]
				if weights {
					v = pr.Weights[i]
				}
				pts = append(pts, plotter.XY{X: float64(pr.Iterations[i]), Y: v})
			}
			n++
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("rtaplot.TraceResults: %s: %w", pr.Label, err)
		}
		s.GlyphStyle.Color = plotutil.Color(m)
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("process %d", m+1), s)
	}
	if err := p.Save(defaultWidth, defaultHeight, filename); err != nil {
		return fmt.Errorf("rtaplot.TraceResults: %s: %w", pr.Label, err)
	}
	return nil
}

// TauProtein plots the slow residence time of every summarized residue
// against its residue number, with 95% credible-interval error bars,
// into <plotname>.png.
func TauProtein(sums []*kinetics.Summary, plotname string) error {
	if len(sums) == 0 {
		return fmt.Errorf("rtaplot.TauProtein: no summaries to plot")
	}
	pts := make(plotter.XYs, len(sums))
	errs := make(plotter.YErrors, len(sums))
	for i, s := range sums {
		pts[i] = plotter.XY{X: float64(s.Resid), Y: s.TauSlow}
		errs[i].Low = s.TauSlow - s.TauSlowLow
		errs[i].High = s.TauSlowHigh - s.TauSlow
	}
	p := plot.New()
	p.X.Label.Text = "residue"
	p.Y.Label.Text = "tau_slow (ns)"
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("rtaplot.TauProtein: %w", err)
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	bars, err := plotter.NewYErrorBars(struct {
		plotter.XYs
		plotter.YErrors
	}{pts, errs})
	if err != nil {
		return fmt.Errorf("rtaplot.TauProtein: %w", err)
	}
	p.Add(s, bars)
	if err := p.Save(defaultWidth, defaultHeight, plotname+".png"); err != nil {
		return fmt.Errorf("rtaplot.TauProtein: %w", err)
	}
	return nil
}
