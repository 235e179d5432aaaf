package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
)

// PlotLearningCurves renders cumulative reward per round for each log into a
// single chart at path (format by extension, typically .png).
func PlotLearningCurves(logs []*bandit.SimulationLog, labels []string, path string) error {
	if err := requireLogs(logs, labels); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "Learning Curves"
	p.X.Label.Text = "Round"
	p.Y.Label.Text = "Cumulative Reward"
	p.Legend.Top = true

	for i, log := range logs {
		data := LearningCurveData(log)
		line, err := plotter.NewLine(toXYs(data.Rounds, data.CumulativeReward))
		if err != nil {
			return fmt.Errorf("learning curve %q: %w", labels[i], err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(labels[i], line)
	}
	if err := p.Save(9*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save learning curves %s: %w", path, err)
	}
	return nil
}

// PlotRegretCurves renders cumulative regret per round for each log. Every
// log must carry an optimal-reward baseline.
func PlotRegretCurves(logs []*bandit.SimulationLog, labels []string, path string) error {
	if err := requireLogs(logs, labels); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "Cumulative Regret"
	p.X.Label.Text = "Round"
	p.Y.Label.Text = "Regret"
	p.Legend.Top = true

	for i, log := range logs {
		data, err := RegretCurveData(log)
		if err != nil {
			return fmt.Errorf("regret curve %q: %w", labels[i], err)
		}
		line, err := plotter.NewLine(toXYs(data.Rounds, data.CumulativeRegret))
		if err != nil {
			return fmt.Errorf("regret curve %q: %w", labels[i], err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(labels[i], line)
	}
	if err := p.Save(9*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save regret curves %s: %w", path, err)
	}
	return nil
}

// PlotDocDistribution renders grouped seen/click bars per document.
func PlotDocDistribution(log *bandit.SimulationLog, docIDs []string, path string) error {
	if log.Rounds() == 0 {
		return fmt.Errorf("log is empty; cannot plot")
	}
	data := DocDistributionData(log, docIDs)

	p := plot.New()
	p.Title.Text = "Document Exposure and Clicks"
	p.Y.Label.Text = "Count"

	width := vg.Points(14)
	seenBars, err := plotter.NewBarChart(plotter.Values(data.Seen), width)
	if err != nil {
		return fmt.Errorf("doc distribution: %w", err)
	}
	seenBars.Color = plotutil.Color(0)
	seenBars.Offset = -width / 2

	clickBars, err := plotter.NewBarChart(plotter.Values(data.Clicks), width)
	if err != nil {
		return fmt.Errorf("doc distribution: %w", err)
	}
	clickBars.Color = plotutil.Color(1)
	clickBars.Offset = width / 2

	p.Add(seenBars, clickBars)
	p.Legend.Add("seen", seenBars)
	p.Legend.Add("clicks", clickBars)
	p.Legend.Top = true
	p.NominalX(data.DocIDs...)

	if err := p.Save(9*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save doc distribution %s: %w", path, err)
	}
	return nil
}

func toXYs(xs, ys []float64) plotter.XYs {
	points := make(plotter.XYs, len(xs))
	for i := range xs {
		points[i].X = xs[i]
		points[i].Y = ys[i]
	}
	return points
}
