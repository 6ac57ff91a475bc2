// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/heartdash/dataset"
	"github.com/aclements/heartdash/selection"
)

// testProj maps age [0,100] to pixels [0,100] and cholesterol [0,400]
// to pixels [400,0].
var testProj = selection.Projection{
	X: selection.Axis{Field: dataset.Age, Scale: scale.Linear{Min: 0, Max: 100}, Lo: 0, Hi: 100},
	Y: selection.Axis{Field: dataset.Cholesterol, Scale: scale.Linear{Min: 0, Max: 400}, Lo: 400, Hi: 0},
}

type harness struct {
	*Controller
	engine    *selection.Engine
	notified  int
	recovered []error
	now       time.Time
}

func newHarness(frame Frame) *harness {
	h := &harness{engine: selection.NewEngine(testProj), now: time.Unix(0, 0)}
	h.Controller = NewController(h.engine, frame, func() { h.notified++ })
	h.Now = func() time.Time { return h.now }
	h.Recovered = func(err error) { h.recovered = append(h.recovered, err) }
	return h
}

func (h *harness) ev(k EventKind, x, y float64) bool {
	return h.Handle(Event{Kind: k, Target: Plot, X: x, Y: y})
}

func (h *harness) axis(k EventKind, target Target, x, y float64) bool {
	return h.Handle(Event{Kind: k, Target: target, X: x, Y: y})
}

func TestLasso(t *testing.T) {
	h := newHarness(Frame{})
	h.SwitchMode(Lasso)
	h.notified = 0

	h.ev(PointerDown, 0, 0)
	h.ev(PointerMove, 10, 0)
	h.ev(PointerMove, 10, 10)
	h.ev(PointerMove, 0, 10)
	if h.notified != 0 || h.engine.IsActive() {
		t.Fatalf("lasso committed before release")
	}
	if got := len(h.Trail()); got != 4 {
		t.Errorf("in-progress trail has %d points, want 4", got)
	}
	h.ev(PointerUp, 0, 10)
	if h.notified != 1 {
		t.Errorf("want 1 notification, got %d", h.notified)
	}
	poly, ok := h.engine.Predicate().(*selection.Polygon)
	if !ok {
		t.Fatalf("want polygon predicate, got %v", h.engine.Predicate())
	}
	if !poly.Contains(selection.Point{X: 5, Y: 5}) || poly.Contains(selection.Point{X: 15, Y: 5}) {
		t.Errorf("committed polygon has wrong shape: %v", poly.Points())
	}
	if h.State().Drawing || h.State().Path != nil {
		t.Errorf("gesture state not cleared after release")
	}

	// The trail is cosmetic and expires.
	if got := len(h.Trail()); got != 5 {
		t.Errorf("completed trail has %d points, want 5", got)
	}
	h.now = h.now.Add(TrailDelay)
	if h.Trail() != nil {
		t.Errorf("trail did not expire")
	}
	if !h.engine.IsActive() {
		t.Errorf("trail expiry cleared the selection")
	}
}

func TestLassoDegenerate(t *testing.T) {
	h := newHarness(Frame{})
	h.SwitchMode(Lasso)
	h.ev(PointerDown, 0, 0)
	h.ev(PointerMove, 10, 10)
	h.ev(PointerUp, 10, 10)
	if h.engine.IsActive() {
		t.Errorf("two-point lasso produced predicate %v", h.engine.Predicate())
	}
	var de *selection.DegenerateGeometryError
	if len(h.recovered) != 1 || !errors.As(h.recovered[0], &de) {
		t.Errorf("want one recovered DegenerateGeometryError, got %v", h.recovered)
	}
}

func TestStrayEvents(t *testing.T) {
	h := newHarness(Frame{})
	// Mode None ignores everything.
	for _, k := range []EventKind{PointerDown, PointerMove, PointerUp, Clear} {
		if h.ev(k, 1, 1) {
			t.Errorf("mode none handled %v", k)
		}
	}

	try := func(m Mode, evs ...Event) {
		t.Helper()
		h.SwitchMode(m)
		n := h.notified
		for _, ev := range evs {
			if h.Handle(ev) {
				t.Errorf("mode %v handled stray %v on %v", m, ev.Kind, ev.Target)
			}
		}
		if h.notified != n {
			t.Errorf("mode %v: stray events caused notifications", m)
		}
	}
	try(Lasso, Event{Kind: PointerMove}, Event{Kind: PointerUp})
	try(Marquee, Event{Kind: PointerMove}, Event{Kind: PointerUp}, Event{Kind: PointerDown, Target: XAxis})
	try(AxisDrag, Event{Kind: PointerDown, Target: Plot}, Event{Kind: PointerMove, Target: XAxis}, Event{Kind: PointerUp, Target: YAxis})
}

func TestMarquee(t *testing.T) {
	h := newHarness(Frame{})
	h.SwitchMode(Marquee)
	h.notified = 0

	h.ev(PointerDown, 10, 10)
	h.ev(PointerMove, 20, 20)
	if h.notified != 1 {
		t.Errorf("marquee move did not update live")
	}
	h.ev(PointerMove, 30, 25)
	h.ev(PointerUp, 40, 50)
	if h.notified != 3 {
		t.Errorf("want 3 notifications, got %d", h.notified)
	}
	rect, ok := h.engine.Predicate().(*selection.Rectangle)
	if !ok {
		t.Fatalf("want rectangle predicate, got %v", h.engine.Predicate())
	}
	want := selection.Rectangle{Min: selection.Point{X: 10, Y: 10}, Max: selection.Point{X: 40, Y: 50}}
	if *rect != want {
		t.Errorf("got %v, want %v", rect, &want)
	}

	// A click without drag collapses the brush.
	h.ev(PointerDown, 5, 5)
	h.ev(PointerUp, 5, 5)
	if h.engine.IsActive() {
		t.Errorf("collapsed marquee left predicate %v", h.engine.Predicate())
	}

	// Clearing the brush also reverts to None.
	h.ev(PointerDown, 0, 0)
	h.ev(PointerUp, 5, 5)
	h.Handle(Event{Kind: Clear})
	if h.engine.IsActive() {
		t.Errorf("cleared marquee left predicate %v", h.engine.Predicate())
	}
}

func TestModeSwitchClears(t *testing.T) {
	h := newHarness(Frame{})
	h.SwitchMode(Marquee)
	h.ev(PointerDown, 0, 0)
	h.ev(PointerMove, 50, 50)
	if !h.engine.IsActive() {
		t.Fatalf("marquee did not activate")
	}
	// Switch mid-gesture.
	n := h.notified
	h.SwitchMode(Lasso)
	if h.engine.IsActive() {
		t.Errorf("mode switch left predicate %v", h.engine.Predicate())
	}
	if h.notified != n+1 {
		t.Errorf("mode switch did not notify")
	}
	if s := h.State(); s.Drawing || s.Mode != Lasso {
		t.Errorf("mode switch left state %+v", s)
	}
	// The abandoned marquee gesture's release is stray in lasso mode.
	if h.ev(PointerUp, 60, 60) {
		t.Errorf("abandoned gesture release was handled")
	}
}

func near(r *selection.Range, lo, hi float64) bool {
	return r != nil && math.Abs(r.Lo-lo) < 1e-9 && math.Abs(r.Hi-hi) < 1e-9
}

func TestAxisDrag(t *testing.T) {
	h := newHarness(Frame{})
	h.SwitchMode(AxisDrag)

	// Drag right to left along x: age 60 to 40.
	h.axis(PointerDown, XAxis, 60, 0)
	h.axis(PointerMove, XAxis, 50, 0)
	if !h.engine.IsActive() {
		t.Errorf("axis drag did not update live")
	}
	h.axis(PointerUp, XAxis, 40, 0)
	if s := h.State(); !near(s.XRange, 40, 60) || s.YRange != nil {
		t.Fatalf("want x range [40,60], got %v %v", s.XRange, s.YRange)
	}

	// Drag along y: pixel 300 is chol 100, pixel 200 is chol 200.
	h.axis(PointerDown, YAxis, 0, 300)
	h.axis(PointerUp, YAxis, 0, 200)
	ar, ok := h.engine.Predicate().(*selection.AxisRange)
	if !ok {
		t.Fatalf("want axis range predicate, got %v", h.engine.Predicate())
	}
	if !near(ar.X, 40, 60) || !near(ar.Y, 100, 200) {
		t.Errorf("want age∈[40,60] chol∈[100,200], got %v", ar)
	}

	// Clearing x leaves only y.
	h.axis(Clear, XAxis, 0, 0)
	ar, ok = h.engine.Predicate().(*selection.AxisRange)
	if !ok || ar.X != nil || !near(ar.Y, 100, 200) {
		t.Errorf("after clearing x got %v", h.engine.Predicate())
	}

	// A click on y without dragging clears y too.
	h.axis(PointerDown, YAxis, 0, 100)
	h.axis(PointerUp, YAxis, 0, 100)
	if h.engine.IsActive() {
		t.Errorf("both axes cleared but predicate is %v", h.engine.Predicate())
	}
}

func TestSetRange(t *testing.T) {
	h := newHarness(Frame{})
	if h.SetRange(XAxis, selection.Range{Lo: 40, Hi: 60}) {
		t.Errorf("SetRange applied outside axis mode")
	}
	h.SwitchMode(AxisDrag)
	h.notified = 0

	// Ranges are committed exactly, in either order.
	h.SetRange(XAxis, selection.Range{Lo: 29, Hi: 48})
	h.SetRange(YAxis, selection.Range{Lo: 250, Hi: 130})
	ar, ok := h.engine.Predicate().(*selection.AxisRange)
	if !ok {
		t.Fatalf("want axis range predicate, got %v", h.engine.Predicate())
	}
	if *ar.X != (selection.Range{Lo: 29, Hi: 48}) || *ar.Y != (selection.Range{Lo: 130, Hi: 250}) {
		t.Errorf("want age∈[29,48] chol∈[130,250], got %v", ar)
	}
	if h.notified != 2 {
		t.Errorf("want 2 notifications, got %d", h.notified)
	}

	var v dataset.Values
	v[dataset.Age], v[dataset.Cholesterol] = 48, 130
	ds, err := dataset.Load([]dataset.Values{v})
	if err != nil {
		t.Fatal(err)
	}
	if !h.engine.Test(ds.Row(0)) {
		t.Errorf("row on both bounds not selected")
	}

	// An empty range removes that axis only.
	h.SetRange(XAxis, selection.Range{Lo: 50, Hi: 50})
	if s := h.State(); s.XRange != nil || s.YRange == nil {
		t.Errorf("after empty x range got %v %v", s.XRange, s.YRange)
	}
	if h.SetRange(Plot, selection.Range{Lo: 0, Hi: 1}) {
		t.Errorf("SetRange applied to the plot")
	}
}

func TestFrameTranslation(t *testing.T) {
	h := newHarness(Frame{Left: 70, Top: 40, Width: 100, Height: 400})
	h.SwitchMode(Marquee)
	h.ev(PointerDown, 70, 40)
	h.ev(PointerUp, 80, 50)
	rect, ok := h.engine.Predicate().(*selection.Rectangle)
	if !ok {
		t.Fatalf("want rectangle, got %v", h.engine.Predicate())
	}
	if rect.Min != (selection.Point{}) || rect.Max != (selection.Point{X: 10, Y: 10}) {
		t.Errorf("got %v, want [(0,0)-(10,10)]", rect)
	}

	// Positions outside the plotting area are clamped.
	h.ev(PointerDown, 0, 0)
	h.ev(PointerUp, 1000, 1000)
	rect = h.engine.Predicate().(*selection.Rectangle)
	if rect.Max != (selection.Point{X: 100, Y: 400}) {
		t.Errorf("clamped corner %v, want (100,400)", rect.Max)
	}
}

func TestStepPure(t *testing.T) {
	path := make([]selection.Point, 1, 10)
	s := State{Mode: Lasso, Drawing: true, Path: path}
	r := Step(s, selection.Point{X: 1, Y: 1}, Event{Kind: PointerMove}, testProj)
	if len(r.State.Path) != 2 {
		t.Fatalf("move did not extend path")
	}
	if path[:2][1] != (selection.Point{}) {
		t.Errorf("Step wrote into the caller's path")
	}
	if len(s.Path) != 1 || !s.Drawing {
		t.Errorf("Step modified its input state")
	}
}

func TestParse(t *testing.T) {
	for _, m := range []Mode{None, Lasso, Marquee, AxisDrag} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseMode("spiral"); err == nil {
		t.Errorf("ParseMode(spiral) succeeded")
	}
	for _, k := range []EventKind{PointerDown, PointerMove, PointerUp, Clear} {
		if got, err := ParseEventKind(k.String()); err != nil || got != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k, got, err)
		}
	}
}
