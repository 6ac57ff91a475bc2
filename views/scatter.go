// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/aclements/heartdash/coord"
	"github.com/aclements/heartdash/selection"
	svg "github.com/ajstarks/svgo"
)

// ScatterEmphasis is the point opacity of the scatter view.
var ScatterEmphasis = Emphasis{On: 0.7, Off: 0.2}

// NewScatter returns the selection-source scatter view. It is drawn in
// exactly the pixel frame of proj, so what is drawn at a position is
// what a gesture at that position selects. trail, if non-nil, returns
// the lasso path to draw.
func NewScatter(layout Layout, theme *Theme, proj selection.Projection, trail func() []selection.Point) *Panel {
	p := &Panel{
		Name:   "scatter",
		Title:  fmt.Sprintf("%s vs %s", proj.X.Field.Label(), proj.Y.Field.Label()),
		layout: layout,
	}
	p.draw = func(w io.Writer, s *coord.Snapshot) error {
		if len(s.Base) == 0 {
			return placeholder(w, layout, p.Title, "No patients match the current filters")
		}
		var tr []selection.Point
		if trail != nil {
			tr = trail()
		}
		drawScatter(w, layout, theme, proj, s, p.Title, tr)
		return nil
	}
	return p
}

func px(v float64) int {
	return int(math.Round(v))
}

func drawScatter(w io.Writer, l Layout, theme *Theme, proj selection.Projection, s *coord.Snapshot, title string, trail []selection.Point) {
	iw, ih := l.Inner()
	c := svg.New(w)
	c.Start(l.Width, l.Height, `font-family="sans-serif"`)
	c.Title(title)
	c.Translate(l.Margin.Left, l.Margin.Top)

	c.Rect(0, 0, px(iw), px(ih), "fill:#fcfcfc")
	drawAxes(c, proj, iw, ih)
	c.Text(px(iw/2), -15, title, "text-anchor:middle;font-size:14px;font-weight:700")

	// Unselected points first so highlighted ones are on top.
	for pass := 0; pass < 2; pass++ {
		for _, r := range s.Base {
			if s.IsSelected(r) != (pass == 1) {
				continue
			}
			pt := proj.Point(r)
			a := theme.Point(s, r, ByStatus, ScatterEmphasis)
			c.Circle(px(pt.X), px(pt.Y), 5,
				fmt.Sprintf(`fill:%s;fill-opacity:%.2f;stroke:white;stroke-width:1.5`, a.Fill, a.Opacity),
				`data-row="`+strconv.Itoa(r.Index)+`"`)
		}
	}

	drawSelection(c, theme, proj, s.Predicate, iw, ih)
	if len(trail) > 1 {
		xs, ys := make([]int, len(trail)), make([]int, len(trail))
		for i, p := range trail {
			xs[i], ys[i] = px(p.X), px(p.Y)
		}
		c.Polyline(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:0.1;stroke:%s;stroke-width:2;stroke-dasharray:5,5", theme.Lasso, theme.Lasso))
	}
	if s.EmptySelection() {
		c.Text(px(iw/2), px(ih/2), "No points selected", "text-anchor:middle;font-size:13px;fill:#888")
	}

	c.Gend()
	c.End()
}

// drawAxes draws the x axis along the bottom and the y axis along the
// left of the plotting area.
func drawAxes(c *svg.SVG, proj selection.Projection, iw, ih float64) {
	const style = "stroke:#1a1a1a;stroke-width:1"
	c.Line(0, px(ih), px(iw), px(ih), style)
	for _, t := range proj.X.Ticks(10) {
		x := px(proj.X.Project(t))
		c.Line(x, px(ih), x, px(ih)+6, style)
		c.Text(x, px(ih)+20, strconv.FormatFloat(t, 'g', -1, 64), "text-anchor:middle;font-size:11px")
	}
	c.Text(px(iw/2), px(ih)+45, proj.X.Field.Label(), "text-anchor:middle;font-size:13px;font-weight:600")

	c.Line(0, 0, 0, px(ih), style)
	for _, t := range proj.Y.Ticks(10) {
		y := px(proj.Y.Project(t))
		c.Line(-6, y, 0, y, style)
		c.Text(-10, y+4, strconv.FormatFloat(t, 'g', -1, 64), "text-anchor:end;font-size:11px")
	}
	c.Text(-50, px(ih/2), proj.Y.Field.Label(),
		"text-anchor:middle;font-size:13px;font-weight:600",
		fmt.Sprintf(`transform="rotate(-90 -50 %d)"`, px(ih/2)))
}

// drawSelection outlines the committed predicate.
func drawSelection(c *svg.SVG, theme *Theme, proj selection.Projection, pred selection.Predicate, iw, ih float64) {
	style := fmt.Sprintf("fill:%s;fill-opacity:0.1;stroke:%s;stroke-width:1.5", theme.Lasso, theme.Lasso)
	switch p := pred.(type) {
	case *selection.Rectangle:
		c.Rect(px(p.Min.X), px(p.Min.Y), px(p.Max.X-p.Min.X), px(p.Max.Y-p.Min.Y), style)
	case *selection.Polygon:
		pts := p.Points()
		xs, ys := make([]int, len(pts)), make([]int, len(pts))
		for i, pt := range pts {
			xs[i], ys[i] = px(pt.X), px(pt.Y)
		}
		c.Polygon(xs, ys, style)
	case *selection.AxisRange:
		if p.X != nil {
			x0, x1 := proj.X.Project(p.X.Lo), proj.X.Project(p.X.Hi)
			c.Rect(px(math.Min(x0, x1)), px(ih), px(math.Abs(x1-x0)), 8, style)
		}
		if p.Y != nil {
			y0, y1 := proj.Y.Project(p.Y.Lo), proj.Y.Project(p.Y.Hi)
			c.Rect(-8, px(math.Min(y0, y1)), 8, px(math.Abs(y1-y0)), style)
		}
	}
}
