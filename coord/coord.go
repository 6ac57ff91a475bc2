// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coord propagates the current selection to every linked
// view.
//
// On each notification, the Coordinator derives one immutable Snapshot
// of the base, selected, and displayed subsets, hands it to every
// registered view in registration order, and then to every statistics
// consumer. All consumers of one notification see the same Snapshot.
package coord

import (
	"fmt"

	"github.com/aclements/heartdash/dataset"
	"github.com/aclements/heartdash/selection"
)

// A BaseSource provides the base subset. *query.Filter is a
// BaseSource.
type BaseSource interface {
	Base() []*dataset.Row
	Version() uint64
}

// A Selector filters the base subset. *selection.Engine is a
// Selector.
type Selector interface {
	IsActive() bool
	Predicate() selection.Predicate
	Select(base []*dataset.Row) []*dataset.Row
	Version() uint64
}

// Version identifies the inputs a Snapshot was derived from.
type Version struct {
	Filter, Selection uint64
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Filter, v.Selection)
}

// A Snapshot is the derived selection state at one Version. Its
// slices must not be modified.
type Snapshot struct {
	Version Version

	// Base is the filtered dataset.
	Base []*dataset.Row

	// Selected is the rows of Base matching Predicate.
	Selected []*dataset.Row

	// Displayed is Selected if a predicate is active, otherwise
	// Base. An active predicate that matches nothing displays
	// nothing.
	Displayed []*dataset.Row

	// Active reports whether a predicate other than None is in
	// effect.
	Active    bool
	Predicate selection.Predicate

	member []bool // by Row.Index
}

// IsSelected reports whether r is in s.Selected.
func (s *Snapshot) IsSelected(r *dataset.Row) bool {
	return r.Index < len(s.member) && s.member[r.Index]
}

// EmptySelection reports whether a predicate is active but matches
// no rows.
func (s *Snapshot) EmptySelection() bool {
	return s.Active && len(s.Selected) == 0
}

func derive(v Version, base []*dataset.Row, sel Selector) *Snapshot {
	s := &Snapshot{
		Version:   v,
		Base:      base,
		Active:    sel.IsActive(),
		Predicate: sel.Predicate(),
	}
	s.Selected = sel.Select(base)
	if s.Active {
		s.Displayed = s.Selected
	} else {
		s.Displayed = base
	}

	n := 0
	for _, r := range s.Selected {
		if r.Index >= n {
			n = r.Index + 1
		}
	}
	s.member = make([]bool, n)
	for _, r := range s.Selected {
		s.member[r.Index] = true
	}
	return s
}

// A View renders a Snapshot. Render must be idempotent and must not
// modify the Snapshot.
type View interface {
	Render(s *Snapshot)
}

// RenderFunc adapts a render callback to a View. The callback
// receives its own copy of the displayed subset, which it may modify.
type RenderFunc func(displayed []*dataset.Row, active bool)

func (f RenderFunc) Render(s *Snapshot) {
	f(append([]*dataset.Row(nil), s.Displayed...), s.Active)
}

// A StatsFunc receives the displayed subset after every view has
// rendered. It must not modify displayed.
type StatsFunc func(displayed []*dataset.Row)

// A Coordinator notifies views and statistics consumers of selection
// changes.
type Coordinator struct {
	base  BaseSource
	sel   Selector
	views []View
	stats []StatsFunc

	snap *Snapshot

	notifying, pending bool
}

// New returns a Coordinator deriving snapshots from base and sel.
func New(base BaseSource, sel Selector) *Coordinator {
	return &Coordinator{base: base, sel: sel}
}

// RegisterView adds v to the end of the view order.
func (c *Coordinator) RegisterView(v View) {
	c.views = append(c.views, v)
}

// RegisterStatsConsumer adds fn to the end of the statistics order.
func (c *Coordinator) RegisterStatsConsumer(fn StatsFunc) {
	c.stats = append(c.stats, fn)
}

// Snapshot returns the snapshot for the current inputs, deriving it
// if they have changed since the last one.
func (c *Coordinator) Snapshot() *Snapshot {
	v := Version{c.base.Version(), c.sel.Version()}
	if c.snap == nil || c.snap.Version != v {
		c.snap = derive(v, c.base.Base(), c.sel)
	}
	return c.snap
}

// NotifyAll derives the current snapshot once and passes it to every
// view in registration order, then to every statistics consumer.
//
// If a consumer causes another NotifyAll, that notification runs
// after the current one completes, so no consumer observes a change
// in the middle of a notification.
func (c *Coordinator) NotifyAll() {
	if c.notifying {
		c.pending = true
		return
	}
	c.notifying = true
	defer func() { c.notifying = false }()
	for {
		c.pending = false
		s := c.Snapshot()
		for _, v := range c.views {
			v.Render(s)
		}
		for _, fn := range c.stats {
			fn(s.Displayed)
		}
		if !c.pending {
			return
		}
	}
}
