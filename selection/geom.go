// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import (
	"fmt"
	"math"

	"github.com/aclements/heartdash/dataset"
)

// A Point is a position in a chart's local pixel frame, with the
// origin at the top-left of the plotting area.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// DegenerateGeometryError reports gesture geometry that cannot form a
// predicate, such as a polygon with fewer than three vertices or a
// rectangle with no area.
type DegenerateGeometryError struct {
	Kind   Kind
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate %s: %s", e.Kind, e.Reason)
}

// A Polygon selects rows whose projected point lies inside a closed
// vertex loop.
type Polygon struct {
	// pts is closed: pts[len(pts)-1] == pts[0].
	pts []Point
}

// NewPolygon returns the polygon through pts, closing it if the last
// vertex does not already equal the first. It returns a
// *DegenerateGeometryError if pts has fewer than three distinct
// vertices.
func NewPolygon(pts []Point) (*Polygon, error) {
	loop := make([]Point, 0, len(pts)+1)
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return nil, &DegenerateGeometryError{PolygonKind, "NaN vertex"}
		}
		// Consecutive repeats come from pointer-move events
		// that didn't move.
		if len(loop) > 0 && loop[len(loop)-1] == p {
			continue
		}
		loop = append(loop, p)
	}
	if len(loop) > 1 && loop[len(loop)-1] == loop[0] {
		loop = loop[:len(loop)-1]
	}
	if len(loop) < 3 {
		return nil, &DegenerateGeometryError{PolygonKind, fmt.Sprintf("%d vertices", len(loop))}
	}
	loop = append(loop, loop[0])
	return &Polygon{loop}, nil
}

func (*Polygon) Kind() Kind { return PolygonKind }

// Test reports whether pt is inside p. r is ignored.
func (p *Polygon) Test(r *dataset.Row, pt Point) bool {
	return p.Contains(pt)
}

// Contains reports whether pt is inside p using the even-odd rule: a
// horizontal ray from pt must cross an odd number of edges. Points
// exactly on an edge may resolve either way.
func (p *Polygon) Contains(pt Point) bool {
	x, y := pt.X, pt.Y
	inside := false
	for i, j := 0, len(p.pts)-1; i < len(p.pts); j, i = i, i+1 {
		xi, yi := p.pts[i].X, p.pts[i].Y
		xj, yj := p.pts[j].X, p.pts[j].Y
		// The y-span test also guarantees yi != yj.
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Points returns the closed vertex loop of p.
func (p *Polygon) Points() []Point {
	return append([]Point(nil), p.pts...)
}

func (p *Polygon) String() string {
	return fmt.Sprintf("polygon(%d vertices)", len(p.pts)-1)
}

// A Rectangle selects rows whose projected point lies within closed
// axis-aligned bounds.
type Rectangle struct {
	Min, Max Point
}

// NewRectangle returns the rectangle with corners (x0,y0) and (x1,y1)
// in either order. It returns a *DegenerateGeometryError if the
// rectangle has zero width or height.
func NewRectangle(x0, y0, x1, y1 float64) (*Rectangle, error) {
	for _, v := range []float64{x0, y0, x1, y1} {
		if math.IsNaN(v) {
			return nil, &DegenerateGeometryError{RectangleKind, "NaN corner"}
		}
	}
	r := &Rectangle{
		Min: Point{math.Min(x0, x1), math.Min(y0, y1)},
		Max: Point{math.Max(x0, x1), math.Max(y0, y1)},
	}
	if r.Min.X == r.Max.X || r.Min.Y == r.Max.Y {
		return nil, &DegenerateGeometryError{RectangleKind, "zero area"}
	}
	return r, nil
}

func (*Rectangle) Kind() Kind { return RectangleKind }

// Test reports whether pt is inside r, bounds included. r is ignored.
func (r *Rectangle) Test(_ *dataset.Row, pt Point) bool {
	return r.Contains(pt)
}

func (r *Rectangle) Contains(pt Point) bool {
	return r.Min.X <= pt.X && pt.X <= r.Max.X &&
		r.Min.Y <= pt.Y && pt.Y <= r.Max.Y
}

func (r *Rectangle) String() string {
	return fmt.Sprintf("rectangle[%v-%v]", r.Min, r.Max)
}

// A Range is a closed interval of data values.
type Range struct {
	Lo, Hi float64
}

// Contains reports whether Lo <= v <= Hi.
func (r Range) Contains(v float64) bool {
	return r.Lo <= v && v <= r.Hi
}

func (r Range) String() string {
	return fmt.Sprintf("[%g,%g]", r.Lo, r.Hi)
}

// An AxisRange selects rows whose data values fall within up to two
// independent ranges, one per chart axis. A nil range imposes no
// constraint. Ranges are in data units, not pixels.
type AxisRange struct {
	XField, YField dataset.Field
	X, Y           *Range
}

// NewAxisRange returns the conjunction of the given ranges. It returns
// a *DegenerateGeometryError if both are nil or either is empty.
func NewAxisRange(xf dataset.Field, x *Range, yf dataset.Field, y *Range) (*AxisRange, error) {
	if x == nil && y == nil {
		return nil, &DegenerateGeometryError{AxisRangeKind, "no ranges"}
	}
	for _, r := range []*Range{x, y} {
		if r != nil && !(r.Lo < r.Hi) {
			return nil, &DegenerateGeometryError{AxisRangeKind, "empty range " + r.String()}
		}
	}
	a := &AxisRange{XField: xf, YField: yf}
	if x != nil {
		c := *x
		a.X = &c
	}
	if y != nil {
		c := *y
		a.Y = &c
	}
	return a, nil
}

func (*AxisRange) Kind() Kind { return AxisRangeKind }

// Test reports whether row satisfies every present range. pt is
// ignored.
func (a *AxisRange) Test(row *dataset.Row, _ Point) bool {
	if a.X != nil && !a.X.Contains(row.Get(a.XField)) {
		return false
	}
	if a.Y != nil && !a.Y.Contains(row.Get(a.YField)) {
		return false
	}
	return true
}

func (a *AxisRange) String() string {
	s := "axis"
	if a.X != nil {
		s += fmt.Sprintf(" %s∈%v", a.XField, *a.X)
	}
	if a.Y != nil {
		s += fmt.Sprintf(" %s∈%v", a.YField, *a.Y)
	}
	return s
}
