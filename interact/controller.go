// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"math"
	"time"

	"github.com/aclements/heartdash/selection"
)

// TrailDelay is how long a completed lasso path stays visible. It
// affects only Trail, never the selection.
const TrailDelay = 200 * time.Millisecond

// A Frame locates a chart's plotting area in device coordinates.
type Frame struct {
	// Left and Top are the device coordinates of the plotting
	// area's origin.
	Left, Top float64

	// Width and Height, if positive, bound the plotting area.
	// Marquee and axis positions are clamped to it.
	Width, Height float64
}

// Local translates a device position into the frame.
func (f Frame) Local(x, y float64) selection.Point {
	return selection.Point{X: x - f.Left, Y: y - f.Top}
}

func (f Frame) clamp(p selection.Point) selection.Point {
	if f.Width > 0 {
		p.X = math.Max(0, math.Min(f.Width, p.X))
	}
	if f.Height > 0 {
		p.Y = math.Max(0, math.Min(f.Height, p.Y))
	}
	return p
}

// A Controller owns the gesture state of one chart and commits the
// predicates its gestures produce.
type Controller struct {
	frame  Frame
	engine *selection.Engine
	notify func()
	state  State

	trail   []selection.Point
	trailAt time.Time

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time

	// Recovered, if non-nil, is called with each geometry error
	// that was recovered by clearing the selection.
	Recovered func(error)
}

// NewController returns a controller in mode None that commits to
// engine and calls notify after every commit.
func NewController(engine *selection.Engine, frame Frame, notify func()) *Controller {
	return &Controller{
		frame:  frame,
		engine: engine,
		notify: notify,
		state:  Switch(None),
		Now:    time.Now,
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.state.Mode
}

// State returns the current gesture state. The caller must not modify
// its Path.
func (c *Controller) State() State {
	return c.state
}

// Frame returns the chart frame events are translated into.
func (c *Controller) Frame() Frame {
	return c.frame
}

// SwitchMode makes m the active mode. Any gesture in progress is
// abandoned and the selection is cleared, even if m is already the
// active mode.
func (c *Controller) SwitchMode(m Mode) {
	c.state = Switch(m)
	c.trail = nil
	c.engine.Clear()
	c.notify()
}

// Reset clears the selection and any gesture in progress without
// changing mode.
func (c *Controller) Reset() {
	c.SwitchMode(c.state.Mode)
}

// Handle delivers ev. It reports whether ev caused a transition.
// Events that have no meaning in the current state are ignored.
func (c *Controller) Handle(ev Event) bool {
	pt := c.frame.Local(ev.X, ev.Y)
	if c.state.Mode == Marquee || c.state.Mode == AxisDrag {
		pt = c.frame.clamp(pt)
	}
	return c.apply(Step(c.state, pt, ev, c.engine.Projection()))
}

// SetRange sets the brush on axis to r in data units. It reports
// whether the state changed; see SetRange.
func (c *Controller) SetRange(axis Target, r selection.Range) bool {
	return c.apply(SetRange(c.state, axis, r, c.engine.Projection()))
}

func (c *Controller) apply(r Result) bool {
	if r.Ignored {
		return false
	}
	c.state = r.State
	if r.Trail != nil {
		c.trail, c.trailAt = r.Trail, c.Now()
	}
	if r.Err != nil && c.Recovered != nil {
		c.Recovered(r.Err)
	}
	if r.Commit {
		c.engine.Commit(r.Pred)
		c.notify()
	}
	return true
}

// Trail returns the lasso path to draw: the path in progress, or the
// last completed path for TrailDelay after it was committed.
func (c *Controller) Trail() []selection.Point {
	if c.state.Drawing && c.state.Mode == Lasso {
		return c.state.Path
	}
	if c.trail != nil && c.Now().Sub(c.trailAt) < TrailDelay {
		return c.trail
	}
	return nil
}
