// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection implements geometric selection predicates over
// projected rows and the engine that holds the committed predicate.
//
// Geometric predicates (Polygon, Rectangle) test a row's projected
// pixel position. AxisRange tests data values directly, after the
// pixel bounds of an axis brush have been inverted to data space.
package selection

import "github.com/aclements/heartdash/dataset"

// Kind identifies a predicate family.
type Kind int

const (
	NoneActive Kind = iota
	PolygonKind
	RectangleKind
	AxisRangeKind
)

var kindNames = []string{"none", "polygon", "rectangle", "axis range"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// A Predicate decides row membership in a selection. pt is r's
// position in the chart frame the predicate was drawn in.
type Predicate interface {
	Kind() Kind
	Test(r *dataset.Row, pt Point) bool
}

// None is the predicate that is in effect when nothing is selected.
// It accepts every row. It is distinct from a predicate that happens
// to match nothing.
var None Predicate = none{}

type none struct{}

func (none) Kind() Kind                     { return NoneActive }
func (none) Test(*dataset.Row, Point) bool { return true }
func (none) String() string                 { return "none" }

// An Engine holds the single committed selection predicate and the
// projection it is evaluated in.
//
// Every change to the committed predicate increments Version, so
// consumers can tell whether a snapshot is current.
type Engine struct {
	proj    Projection
	pred    Predicate
	version uint64
}

// NewEngine returns an engine with no active predicate.
func NewEngine(proj Projection) *Engine {
	return &Engine{proj: proj, pred: None}
}

// Commit replaces the active predicate with p. A nil p is None.
func (e *Engine) Commit(p Predicate) {
	if p == nil {
		p = None
	}
	e.pred = p
	e.version++
}

// Clear reverts the engine to None.
func (e *Engine) Clear() {
	e.Commit(None)
}

// IsActive reports whether a predicate other than None is committed.
func (e *Engine) IsActive() bool {
	return e.pred.Kind() != NoneActive
}

// Predicate returns the committed predicate.
func (e *Engine) Predicate() Predicate {
	return e.pred
}

// Projection returns the projection rows are tested in.
func (e *Engine) Projection() Projection {
	return e.proj
}

// Version returns the number of commits so far.
func (e *Engine) Version() uint64 {
	return e.version
}

// Test reports whether r satisfies the committed predicate.
func (e *Engine) Test(r *dataset.Row) bool {
	return e.pred.Test(r, e.proj.Point(r))
}

// Select returns the rows of base that satisfy the committed
// predicate. The result never aliases base.
func (e *Engine) Select(base []*dataset.Row) []*dataset.Row {
	out := make([]*dataset.Row, 0, len(base))
	if !e.IsActive() {
		return append(out, base...)
	}
	for _, r := range base {
		if e.Test(r) {
			out = append(out, r)
		}
	}
	return out
}
