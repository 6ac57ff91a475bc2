// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact maps pointer gestures to selection predicates.
//
// The gesture logic is a finite state machine. Step is a pure
// transition function from a State and an Event to a new State and,
// possibly, a predicate to commit. Controller owns the current State
// and applies committed predicates to a selection.Engine.
package interact

import (
	"fmt"
	"strings"

	"github.com/aclements/heartdash/selection"
)

// A Mode is an interaction mode. Exactly one is active at a time.
type Mode int

const (
	None Mode = iota
	Lasso
	Marquee
	AxisDrag
)

var modeNames = []string{"none", "lasso", "marquee", "axis"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode returns the mode named s. "brush" is accepted for
// Marquee and "axisdrag" for AxisDrag.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "lasso":
		return Lasso, nil
	case "marquee", "brush", "rect":
		return Marquee, nil
	case "axis", "axisdrag", "axis-drag":
		return AxisDrag, nil
	}
	return None, fmt.Errorf("unknown interaction mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseMode(string(text))
	return err
}

// EventKind is the kind of a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	// Clear removes the brush on Target, as when a brush is
	// dismissed without dragging.
	Clear
)

var eventNames = []string{"down", "move", "up", "clear"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// ParseEventKind returns the event kind named s.
func ParseEventKind(s string) (EventKind, error) {
	for i, n := range eventNames {
		if n == s {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event %q", s)
}

// Target is the part of a chart an event was delivered to.
type Target int

const (
	Plot Target = iota
	XAxis
	YAxis
)

// ParseTarget returns the target named s: "plot", "x", or "y".
func ParseTarget(s string) (Target, error) {
	switch s {
	case "", "plot":
		return Plot, nil
	case "x":
		return XAxis, nil
	case "y":
		return YAxis, nil
	}
	return 0, fmt.Errorf("unknown event target %q", s)
}

func (t Target) String() string {
	switch t {
	case Plot:
		return "plot"
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// An Event is a pointer event. X and Y are device coordinates; the
// Controller translates them into the chart frame before calling Step.
type Event struct {
	Kind   EventKind
	Target Target
	X, Y   float64
}

// State is the complete gesture state. States are values: Step never
// modifies the State it is given, including the backing array of Path.
type State struct {
	Mode Mode

	// Drawing is true between a PointerDown that starts a gesture
	// and the matching PointerUp.
	Drawing bool

	// Path is the in-progress lasso path.
	Path []selection.Point

	// Anchor is where the current marquee or axis drag started,
	// and Cursor is the latest pointer position.
	Anchor, Cursor selection.Point

	// Axis is the axis being dragged in AxisDrag mode.
	Axis Target

	// XRange and YRange are the committed axis brushes in data
	// units, or nil.
	XRange, YRange *selection.Range
}

// A Result is the outcome of one transition.
type Result struct {
	State State

	// Commit is true if Pred should replace the active predicate.
	Commit bool
	Pred   selection.Predicate

	// Ignored is true if the event had no meaning in the current
	// state. State is then unchanged.
	Ignored bool

	// Err is a recovered geometry error. When Err is non-nil,
	// Commit is true and Pred is selection.None.
	Err error

	// Trail is the closed lasso path of a completed lasso gesture.
	Trail []selection.Point
}

type transition func(s State, pt selection.Point, ev Event, proj selection.Projection) Result

var transitions = map[Mode]map[EventKind]transition{
	Lasso: {
		PointerDown: lassoDown,
		PointerMove: lassoMove,
		PointerUp:   lassoUp,
	},
	Marquee: {
		PointerDown: marqueeDown,
		PointerMove: marqueeMove,
		PointerUp:   marqueeUp,
		Clear:       marqueeClear,
	},
	AxisDrag: {
		PointerDown: axisDown,
		PointerMove: axisMove,
		PointerUp:   axisUp,
		Clear:       axisClear,
	},
}

// Step applies ev to s. pt is the event position in the chart frame.
// Events with no transition from s are ignored.
func Step(s State, pt selection.Point, ev Event, proj selection.Projection) Result {
	t := transitions[s.Mode][ev.Kind]
	if t == nil {
		return ignore(s)
	}
	return t(s, pt, ev, proj)
}

// Switch returns the idle state of mode m. It is the transition for
// every external mode switch and reset.
func Switch(m Mode) State {
	return State{Mode: m}
}

func ignore(s State) Result {
	return Result{State: s, Ignored: true}
}

// commit returns a Result committing p, or None if err is non-nil.
func commit(s State, p selection.Predicate, err error) Result {
	if err != nil {
		return Result{State: s, Commit: true, Pred: selection.None, Err: err}
	}
	return Result{State: s, Commit: true, Pred: p}
}

func lassoDown(s State, pt selection.Point, ev Event, _ selection.Projection) Result {
	if ev.Target != Plot {
		return ignore(s)
	}
	s.Drawing = true
	s.Path = []selection.Point{pt}
	return Result{State: s}
}

func lassoMove(s State, pt selection.Point, _ Event, _ selection.Projection) Result {
	if !s.Drawing {
		return ignore(s)
	}
	// Force a copy so the caller's State keeps its path.
	s.Path = append(s.Path[:len(s.Path):len(s.Path)], pt)
	return Result{State: s}
}

func lassoUp(s State, _ selection.Point, _ Event, _ selection.Projection) Result {
	if !s.Drawing {
		return ignore(s)
	}
	path := s.Path
	s.Drawing, s.Path = false, nil
	poly, err := selection.NewPolygon(path)
	if err != nil {
		return commit(s, nil, err)
	}
	r := commit(s, poly, nil)
	r.Trail = poly.Points()
	return r
}

func marqueeDown(s State, pt selection.Point, ev Event, _ selection.Projection) Result {
	if ev.Target != Plot {
		return ignore(s)
	}
	s.Drawing = true
	s.Anchor, s.Cursor = pt, pt
	return Result{State: s}
}

func marqueeMove(s State, pt selection.Point, _ Event, _ selection.Projection) Result {
	if !s.Drawing {
		return ignore(s)
	}
	s.Cursor = pt
	rect, err := selection.NewRectangle(s.Anchor.X, s.Anchor.Y, pt.X, pt.Y)
	return commit(s, rect, err)
}

func marqueeUp(s State, pt selection.Point, ev Event, proj selection.Projection) Result {
	if !s.Drawing {
		return ignore(s)
	}
	r := marqueeMove(s, pt, ev, proj)
	r.State.Drawing = false
	return r
}

func marqueeClear(s State, _ selection.Point, _ Event, _ selection.Projection) Result {
	s.Drawing = false
	s.Anchor, s.Cursor = selection.Point{}, selection.Point{}
	return commit(s, selection.None, nil)
}

func axisDown(s State, pt selection.Point, ev Event, _ selection.Projection) Result {
	if ev.Target != XAxis && ev.Target != YAxis {
		return ignore(s)
	}
	s.Drawing = true
	s.Axis = ev.Target
	s.Anchor, s.Cursor = pt, pt
	return Result{State: s}
}

func axisMove(s State, pt selection.Point, _ Event, proj selection.Projection) Result {
	if !s.Drawing {
		return ignore(s)
	}
	s.Cursor = pt
	switch s.Axis {
	case XAxis:
		s.XRange = nil
		if s.Anchor.X != pt.X {
			r := proj.X.InvertRange(s.Anchor.X, pt.X)
			s.XRange = &r
		}
	case YAxis:
		s.YRange = nil
		if s.Anchor.Y != pt.Y {
			r := proj.Y.InvertRange(s.Anchor.Y, pt.Y)
			s.YRange = &r
		}
	}
	return axisCommit(s, proj)
}

func axisUp(s State, pt selection.Point, ev Event, proj selection.Projection) Result {
	if !s.Drawing {
		return ignore(s)
	}
	r := axisMove(s, pt, ev, proj)
	r.State.Drawing = false
	return r
}

func axisClear(s State, _ selection.Point, ev Event, proj selection.Projection) Result {
	switch ev.Target {
	case XAxis:
		s.XRange = nil
	case YAxis:
		s.YRange = nil
	default:
		s.XRange, s.YRange = nil, nil
	}
	if s.Axis == ev.Target || ev.Target == Plot {
		s.Drawing = false
	}
	return axisCommit(s, proj)
}

// SetRange returns the transition that sets the brush on axis to r,
// in data units, as a completed drag along that axis would. The range
// is committed as given. An empty r removes the brush on axis.
// SetRange is ignored outside AxisDrag mode.
func SetRange(s State, axis Target, r selection.Range, proj selection.Projection) Result {
	if s.Mode != AxisDrag || (axis != XAxis && axis != YAxis) {
		return ignore(s)
	}
	if r.Lo > r.Hi {
		r.Lo, r.Hi = r.Hi, r.Lo
	}
	s.Drawing = false
	s.Axis = axis
	var rp *selection.Range
	if r.Lo < r.Hi {
		rp = &r
	}
	if axis == XAxis {
		s.XRange = rp
	} else {
		s.YRange = rp
	}
	return axisCommit(s, proj)
}

// axisCommit commits the conjunction of s's axis ranges, or None if
// neither is set.
func axisCommit(s State, proj selection.Projection) Result {
	if s.XRange == nil && s.YRange == nil {
		return commit(s, selection.None, nil)
	}
	ar, err := selection.NewAxisRange(proj.X.Field, s.XRange, proj.Y.Field, s.YRange)
	if err != nil {
		// Drop both ranges so State agrees with the engine.
		s.XRange, s.YRange = nil, nil
	}
	return commit(s, ar, err)
}
