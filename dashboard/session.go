// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dashboard wires the dataset, filters, selection, and views
// of one heart-disease dashboard into a Session.
//
// A Session is single-threaded: every command and pointer event is
// applied synchronously and completely, including the notification of
// every view, before the next one is accepted. Callers that share a
// Session between goroutines must serialize access themselves.
package dashboard

import (
	"fmt"
	"log"
	"os"

	"github.com/aclements/heartdash/coord"
	"github.com/aclements/heartdash/dataset"
	"github.com/aclements/heartdash/interact"
	"github.com/aclements/heartdash/query"
	"github.com/aclements/heartdash/selection"
	"github.com/aclements/heartdash/summary"
	"github.com/aclements/heartdash/views"
)

// Warning is where recoverable conditions are logged, such as a
// degenerate gesture that cleared the selection.
var Warning = log.New(os.Stderr, "[dashboard] ", 0)

// A Session is one dashboard over one dataset.
type Session struct {
	cfg  *Config
	data *dataset.Dataset

	filter *query.Filter
	engine *selection.Engine
	coord  *coord.Coordinator
	ctrl   *interact.Controller

	panels []*views.Panel
	stats  summary.Record
}

// NewSession returns a session over ds laid out by cfg, with no
// filters, mode None, and every view rendered.
func NewSession(ds *dataset.Dataset, cfg *Config) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg, data: ds}

	// The scatter axes span the whole dataset so a filter change
	// never moves points under an existing gesture.
	proj := s.projection()
	s.filter = query.New(ds)
	s.engine = selection.NewEngine(proj)
	s.coord = coord.New(s.filter, s.engine)

	iw, ih := cfg.Layout.Inner()
	frame := interact.Frame{
		Left:   float64(cfg.Layout.Margin.Left),
		Top:    float64(cfg.Layout.Margin.Top),
		Width:  iw,
		Height: ih,
	}
	s.ctrl = interact.NewController(s.engine, frame, s.coord.NotifyAll)
	s.ctrl.Recovered = func(err error) {
		Warning.Printf("selection cleared: %v", err)
	}

	// A new base subset invalidates any geometric selection.
	s.filter.OnChange(func([]*dataset.Row) {
		s.ctrl.Reset()
	})

	theme := &cfg.Theme
	s.panels = append(s.panels, views.NewScatter(cfg.Layout, theme, proj, s.ctrl.Trail))
	for _, h := range cfg.Histograms {
		s.panels = append(s.panels, views.NewHistogram("histogram-"+h.Field.String(), cfg.Layout, theme, h))
	}
	s.panels = append(s.panels,
		views.NewIntegrated(cfg.Layout, theme),
		views.NewDensity(cfg.Layout, theme, cfg.Density),
		views.NewHeatmap(cfg.Layout, theme),
	)
	for _, p := range s.panels {
		s.coord.RegisterView(p)
	}
	s.coord.RegisterStatsConsumer(func(displayed []*dataset.Row) {
		s.stats = summary.Compute(displayed)
	})

	s.coord.NotifyAll()
	return s, nil
}

func (s *Session) projection() selection.Projection {
	iw, ih := s.cfg.Layout.Inner()
	xlo, xhi := s.data.Extent(s.cfg.Scatter.X)
	ylo, yhi := s.data.Extent(s.cfg.Scatter.Y)
	return selection.Projection{
		X: selection.NewAxis(s.cfg.Scatter.X, xlo, xhi, 0, iw),
		Y: selection.NewAxis(s.cfg.Scatter.Y, ylo, yhi, ih, 0),
	}
}

// Config returns the layout of s.
func (s *Session) Config() *Config {
	return s.cfg
}

// Snapshot returns the current derived selection state.
func (s *Session) Snapshot() *coord.Snapshot {
	return s.coord.Snapshot()
}

// Stats returns the statistics of the displayed subset from the last
// notification.
func (s *Session) Stats() summary.Record {
	return s.stats
}

// Panels returns the views in notification order.
func (s *Session) Panels() []*views.Panel {
	return s.panels
}

// Panel returns the named view.
func (s *Session) Panel(name string) (*views.Panel, bool) {
	for _, p := range s.panels {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Mode returns the active interaction mode.
func (s *Session) Mode() interact.Mode {
	return s.ctrl.Mode()
}

// SwitchMode makes m the active mode and clears the selection.
func (s *Session) SwitchMode(m interact.Mode) {
	s.ctrl.SwitchMode(m)
}

// Handle delivers a pointer event in scatter document coordinates. It
// reports whether the event changed the gesture state.
func (s *Session) Handle(ev interact.Event) bool {
	return s.ctrl.Handle(ev)
}

// SetFilter sets one dropdown filter.
func (s *Session) SetFilter(name, value string) error {
	return s.filter.Set(name, value)
}

// SetWhere sets the expression filter. An empty src removes it.
func (s *Session) SetWhere(src string) error {
	return s.filter.SetWhere(src)
}

// ClearSelection clears the selection and any gesture in progress.
// The mode and filters are kept.
func (s *Session) ClearSelection() {
	s.ctrl.Reset()
}

// Reset clears every filter and the selection. The mode is kept.
func (s *Session) Reset() {
	s.filter.Reset()
}

// Brush sets the range [lo, hi] of one scatter axis, in data units,
// as if dragged along that axis. Rows on either bound are selected.
// It switches to AxisDrag mode first if necessary; a brush on the
// other axis is kept.
func (s *Session) Brush(axis interact.Target, lo, hi float64) error {
	if axis != interact.XAxis && axis != interact.YAxis {
		return fmt.Errorf("cannot brush %s", axis)
	}
	if s.ctrl.Mode() != interact.AxisDrag {
		s.ctrl.SwitchMode(interact.AxisDrag)
	}
	s.ctrl.SetRange(axis, selection.Range{Lo: lo, Hi: hi})
	return nil
}

// Status is a summary of the session state.
type Status struct {
	Mode      interact.Mode         `json:"mode"`
	Filters   map[query.Name]string `json:"filters"`
	Where     string                `json:"where"`
	Predicate string                `json:"predicate"`
	Active    bool                  `json:"active"`
	Version   string                `json:"version"`
	Base      int                   `json:"base"`
	Selected  int                   `json:"selected"`
	Displayed int                   `json:"displayed"`
	Stats     summary.Record        `json:"stats"`
}

// Status returns the current state of s.
func (s *Session) Status() Status {
	snap := s.coord.Snapshot()
	return Status{
		Mode:      s.ctrl.Mode(),
		Filters:   s.filter.Values(),
		Where:     s.filter.Where(),
		Predicate: fmt.Sprint(snap.Predicate),
		Active:    snap.Active,
		Version:   snap.Version.String(),
		Base:      len(snap.Base),
		Selected:  len(snap.Selected),
		Displayed: len(snap.Displayed),
		Stats:     s.stats,
	}
}
