// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import (
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/heartdash/dataset"
)

// An Axis maps one data field to one pixel dimension of a chart.
//
// Lo is the pixel position of Scale.Min and Hi is the pixel position of
// Scale.Max. For a vertical axis Lo is usually greater than Hi, since
// pixel y grows downward.
type Axis struct {
	Field  dataset.Field
	Scale  scale.Linear
	Lo, Hi float64
}

// NewAxis returns an axis for field f whose domain [min, max] is
// widened to nice tick boundaries and mapped onto pixels [lo, hi].
func NewAxis(f dataset.Field, min, max, lo, hi float64) Axis {
	if min == max {
		min, max = min-1, max+1
	}
	s := scale.Linear{Min: min, Max: max, Base: 10}
	s.Nice(scale.TickOptions{Max: 10})
	return Axis{Field: f, Scale: s, Lo: lo, Hi: hi}
}

// Project returns the pixel position of data value v.
func (a Axis) Project(v float64) float64 {
	return a.Lo + a.Scale.Map(v)*(a.Hi-a.Lo)
}

// Invert returns the data value at pixel position px.
func (a Axis) Invert(px float64) float64 {
	if a.Hi == a.Lo {
		return a.Scale.Min
	}
	return a.Scale.Unmap((px - a.Lo) / (a.Hi - a.Lo))
}

// InvertRange converts the pixel interval between p0 and p1 (in either
// order) to a data Range.
func (a Axis) InvertRange(p0, p1 float64) Range {
	v0, v1 := a.Invert(p0), a.Invert(p1)
	if v0 > v1 {
		v0, v1 = v1, v0
	}
	return Range{v0, v1}
}

// Ticks returns at most max major tick values within the axis domain.
func (a Axis) Ticks(max int) []float64 {
	major, _ := a.Scale.Ticks(scale.TickOptions{Max: max})
	return major
}

// A Projection places rows in a chart's pixel frame.
type Projection struct {
	X, Y Axis
}

// Point returns the pixel position of r.
func (p Projection) Point(r *dataset.Row) Point {
	return Point{p.X.Project(r.Get(p.X.Field)), p.Y.Project(r.Get(p.Y.Field))}
}
