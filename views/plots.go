// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/heartdash/coord"
	"github.com/aclements/heartdash/dataset"
	"github.com/aclements/heartdash/query"
	"github.com/aclements/heartdash/summary"
)

// HistogramConfig describes a linked histogram.
type HistogramConfig struct {
	Field dataset.Field `yaml:"field"`
	Min   float64       `yaml:"min"`
	Max   float64       `yaml:"max"`
	Bins  int           `yaml:"bins"`
}

// NewHistogram returns a histogram of the base subset with the
// selected subset overlaid while a predicate is active.
func NewHistogram(name string, layout Layout, theme *Theme, cfg HistogramConfig) *Panel {
	p := &Panel{
		Name:   name,
		Title:  fmt.Sprintf("%s Distribution", cfg.Field.Label()),
		layout: layout,
	}
	p.draw = func(w io.Writer, s *coord.Snapshot) error {
		series := histogramSeries(s, theme)

		// Each bar is a two-point area in its own group. Base
		// bars come first so the selection is drawn on top.
		var bar []int
		var xs, counts []float64
		var fills []color.Color
		for _, ser := range series {
			for _, b := range summary.Histogram(ser.rows, cfg.Field, cfg.Min, cfg.Max, cfg.Bins) {
				gap := (b.Hi - b.Lo) * 0.02
				id := len(bar) / 2
				bar = append(bar, id, id)
				xs = append(xs, b.Lo+gap, b.Hi-gap)
				counts = append(counts, float64(b.Count), float64(b.Count))
				fills = append(fills, ser.fill, ser.fill)
			}
		}
		if len(bar) == 0 {
			return placeholder(w, layout, p.Title, "Empty histogram domain")
		}
		tab := new(table.Builder).
			Add("bar", bar).
			Add(cfg.Field.String(), xs).
			Add("count", counts).
			Add("fill", fills).
			Done()

		plot := gg.NewPlot(tab)
		plot.GroupBy("bar")
		plot.SetScale("x", gg.NewLinearScaler().SetMin(cfg.Min).SetMax(cfg.Max))
		plot.SetScale("y", gg.NewLinearScaler().Include(0).Include(1))
		plot.Add(gg.LayerArea{X: cfg.Field.String(), Upper: "count", Fill: "fill"})
		plot.Add(gg.Title(p.Title))
		plot.Add(gg.AxisLabel("x", cfg.Field.Label()))
		plot.Add(gg.AxisLabel("y", "Count"))
		return plot.WriteSVG(w, layout.Width, layout.Height)
	}
	return p
}

type histSeries struct {
	rows []*dataset.Row
	fill color.NRGBA
}

// histogramSeries returns the bar series of a histogram: the base
// subset, then the selected subset while a predicate is active. When
// the predicate matches nothing, the base is drawn faintly behind the
// empty selection.
func histogramSeries(s *coord.Snapshot, theme *Theme) []histSeries {
	base := histSeries{s.Base, theme.Normal.Alpha(0.5)}
	if !s.Active {
		return []histSeries{base}
	}
	if s.EmptySelection() {
		base.fill = theme.Normal.Alpha(0.1)
	}
	return []histSeries{base, {s.Selected, theme.Selected.Alpha(0.8)}}
}

// IntegratedEmphasis is the point opacity of the integrated view.
var IntegratedEmphasis = Emphasis{On: 0.6, Off: 0.15}

// NewIntegrated returns the multi-encoding view: age against maximum
// heart rate, sized by cholesterol and colored by sex.
func NewIntegrated(layout Layout, theme *Theme) *Panel {
	p := &Panel{
		Name:   "integrated",
		Title:  "Age vs Max Heart Rate (size = cholesterol, color = gender)",
		layout: layout,
	}
	p.draw = func(w io.Writer, s *coord.Snapshot) error {
		if len(s.Base) == 0 {
			return placeholder(w, layout, p.Title, "No patients match the current filters")
		}
		// Highlighted points are drawn last.
		rows := append([]*dataset.Row(nil), s.Base...)
		sort.SliceStable(rows, func(i, j int) bool {
			return !s.IsSelected(rows[i]) && s.IsSelected(rows[j])
		})
		tab := dataset.Table(rows, dataset.Age, dataset.MaxHR, dataset.Cholesterol)
		colors := make([]color.Color, len(rows))
		tips := make([]string, len(rows))
		for i, r := range rows {
			colors[i] = theme.Point(s, r, BySex, IntegratedEmphasis).RGBA()
			tips[i] = fmt.Sprintf("Age %g, Max HR %g, Chol %g, %s, %s",
				r.Get(dataset.Age), r.Get(dataset.MaxHR), r.Get(dataset.Cholesterol), dataset.Gender(r), dataset.Status(r))
		}
		tab = table.NewBuilder(tab).Add("color", colors).Add("tip", tips).Done()

		age, hr, chol := dataset.Age.String(), dataset.MaxHR.String(), dataset.Cholesterol.String()
		plot := gg.NewPlot(tab)
		plot.SetScale("x", extentScale(rows, dataset.Age))
		plot.SetScale("y", extentScale(rows, dataset.MaxHR))
		plot.SetScale("size", extentScale(rows, dataset.Cholesterol))
		plot.Add(gg.LayerPoints{X: age, Y: hr, Color: "color", Size: chol})
		plot.Add(gg.LayerTooltips{X: age, Y: hr, Label: "tip"})
		plot.Add(gg.Title(p.Title))
		plot.Add(gg.AxisLabel("x", dataset.Age.Label()))
		plot.Add(gg.AxisLabel("y", dataset.MaxHR.Label()))
		return plot.WriteSVG(w, layout.Width, layout.Height)
	}
	return p
}

// extentScale returns a linear scale over the values of f in rows. A
// constant field is widened by 1 on each side so the scale has width.
func extentScale(rows []*dataset.Row, f dataset.Field) gg.ContinuousScaler {
	sc := gg.NewLinearScaler()
	if len(rows) == 0 {
		return sc
	}
	lo, hi := stats.Bounds(summary.Column(rows, f))
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return sc.Include(lo).Include(hi)
}

// DensityConfig describes the superimposed density view.
type DensityConfig struct {
	Field     dataset.Field `yaml:"field"`
	Min       float64       `yaml:"min"`
	Max       float64       `yaml:"max"`
	Bandwidth float64       `yaml:"bandwidth"`
	Points    int           `yaml:"points"`
}

// NewDensity returns superimposed kernel density curves of healthy
// and diseased rows of the displayed subset.
func NewDensity(layout Layout, theme *Theme, cfg DensityConfig) *Panel {
	p := &Panel{
		Name:   "density",
		Title:  fmt.Sprintf("%s Density: Healthy vs Disease", cfg.Field.Label()),
		layout: layout,
	}
	if cfg.Points < 2 {
		cfg.Points = 100
	}
	p.draw = func(w io.Writer, s *coord.Snapshot) error {
		var healthy, diseased []*dataset.Row
		for _, r := range s.Displayed {
			if r.Diseased() {
				diseased = append(diseased, r)
			} else {
				healthy = append(healthy, r)
			}
		}

		grid := vec.Linspace(cfg.Min, cfg.Max, cfg.Points)
		var xs, ys []float64
		var series []string
		var lines, fills []color.Color
		ymax := 0.0
		for _, g := range []struct {
			name string
			rows []*dataset.Row
			c    Color
		}{{"healthy", healthy, theme.Healthy}, {"diseased", diseased, theme.Diseased}} {
			for i, y := range summary.Density(g.rows, cfg.Field, grid, cfg.Bandwidth) {
				xs = append(xs, grid[i])
				ys = append(ys, y)
				series = append(series, g.name)
				lines = append(lines, g.c.Alpha(1))
				fills = append(fills, g.c.Alpha(0.3))
				if y > ymax {
					ymax = y
				}
			}
		}
		tab := new(table.Builder).
			Add(cfg.Field.String(), xs).
			Add("density", ys).
			Add("status", series).
			Add("color", lines).
			Add("fill", fills).
			Done()

		yscale := gg.NewLinearScaler().Include(0)
		if ymax == 0 {
			yscale.Include(1)
		}
		plot := gg.NewPlot(tab)
		plot.SetScale("x", gg.NewLinearScaler().SetMin(cfg.Min).SetMax(cfg.Max))
		plot.SetScale("y", yscale)
		plot.Add(gg.LayerArea{X: cfg.Field.String(), Upper: "density", Fill: "fill"})
		plot.Add(gg.LayerLines{X: cfg.Field.String(), Y: "density", Color: "color"})
		plot.Add(gg.Title(p.Title))
		plot.Add(gg.AxisLabel("x", cfg.Field.Label()))
		plot.Add(gg.AxisLabel("y", "Density"))
		return plot.WriteSVG(w, layout.Width, layout.Height)
	}
	return p
}

// NewHeatmap returns a heatmap of the disease rate of the displayed
// subset by chest pain type and sex.
func NewHeatmap(layout Layout, theme *Theme) *Panel {
	p := &Panel{
		Name:   "heatmap",
		Title:  "Disease Rate by Chest Pain Type and Gender",
		layout: layout,
	}
	cpLabels := map[int]string{}
	if d, err := query.Lookup(string(query.ChestPain)); err == nil {
		for _, c := range d.Choices {
			var n int
			if _, err := fmt.Sscan(c.Value, &n); err == nil {
				cpLabels[n] = c.Label
			}
		}
	}
	p.draw = func(w io.Writer, s *coord.Snapshot) error {
		cells := summary.GroupRates(s.Displayed)
		cps := make([]float64, len(cells))
		sexes := make([]float64, len(cells))
		fills := make([]color.Color, len(cells))
		tips := make([]string, len(cells))
		for i, c := range cells {
			cps[i] = float64(c.ChestPain)
			sex := "Female"
			if c.Male {
				sexes[i], sex = 1, "Male"
			}
			rate, pct := c.Rate(), summary.NA
			if rate.OK {
				fills[i] = theme.Healthy.Mix(theme.Diseased, rate.V/100).Alpha(1)
				pct = rate.String() + "%"
			} else {
				fills[i] = theme.Normal.Alpha(0.3)
			}
			tips[i] = fmt.Sprintf("%s, %s: %s (n=%d)", cpLabels[c.ChestPain], sex, pct, c.N)
		}
		tab := new(table.Builder).
			Add("chest pain type", cps).
			Add("male", sexes).
			Add("fill", fills).
			Add("tip", tips).
			Done()

		plot := gg.NewPlot(tab)
		plot.Add(gg.LayerTiles{X: "chest pain type", Y: "male", Fill: "fill"})
		plot.Add(gg.LayerTooltips{X: "chest pain type", Y: "male", Label: "tip"})
		plot.Add(gg.Title(p.Title))
		plot.Add(gg.AxisLabel("x", "Chest Pain Type"))
		plot.Add(gg.AxisLabel("y", "Male"))
		return plot.WriteSVG(w, layout.Width, layout.Height)
	}
	return p
}
