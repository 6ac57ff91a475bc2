// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coord

import (
	"fmt"
	"testing"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/heartdash/dataset"
	"github.com/aclements/heartdash/query"
	"github.com/aclements/heartdash/selection"
	"github.com/google/go-cmp/cmp"
)

var proj = selection.Projection{
	X: selection.Axis{Field: dataset.Age, Scale: scale.Linear{Min: 0, Max: 100}, Lo: 0, Hi: 100},
	Y: selection.Axis{Field: dataset.Cholesterol, Scale: scale.Linear{Min: 0, Max: 400}, Lo: 400, Hi: 0},
}

func setup(t *testing.T) (*query.Filter, *selection.Engine, *Coordinator) {
	var vals []dataset.Values
	for i := 0; i < 10; i++ {
		var v dataset.Values
		v[dataset.Age] = float64(30 + 5*i)
		v[dataset.Target] = float64(i % 2)
		v[dataset.Cholesterol] = 200
		vals = append(vals, v)
	}
	ds, err := dataset.Load(vals)
	if err != nil {
		t.Fatal(err)
	}
	f := query.New(ds)
	e := selection.NewEngine(proj)
	return f, e, New(f, e)
}

func ages(rows []*dataset.Row) []float64 {
	out := []float64{}
	for _, r := range rows {
		out = append(out, r.Get(dataset.Age))
	}
	return out
}

func TestDisplayed(t *testing.T) {
	f, e, c := setup(t)
	if err := f.Set("outcome", "positive"); err != nil {
		t.Fatal(err)
	}
	s := c.Snapshot()
	if s.Active || len(s.Displayed) != 5 {
		t.Fatalf("no predicate: active %v, %d displayed", s.Active, len(s.Displayed))
	}

	ar, err := selection.NewAxisRange(dataset.Age, &selection.Range{Lo: 40, Hi: 60}, dataset.Cholesterol, nil)
	if err != nil {
		t.Fatal(err)
	}
	e.Commit(ar)
	s = c.Snapshot()
	if diff := cmp.Diff([]float64{45, 55}, ages(s.Displayed)); diff != "" {
		t.Errorf("displayed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{35, 45, 55, 65, 75}, ages(s.Base)); diff != "" {
		t.Errorf("base (-want +got):\n%s", diff)
	}
	for _, r := range s.Base {
		want := r.Get(dataset.Age) == 45 || r.Get(dataset.Age) == 55
		if s.IsSelected(r) != want {
			t.Errorf("IsSelected(age %v) = %v", r.Get(dataset.Age), !want)
		}
	}
}

func TestEmptyMatchIsNotFallback(t *testing.T) {
	_, e, c := setup(t)
	// Far outside every projected point.
	rect, err := selection.NewRectangle(500, 500, 600, 600)
	if err != nil {
		t.Fatal(err)
	}
	e.Commit(rect)
	s := c.Snapshot()
	if len(s.Displayed) != 0 {
		t.Errorf("empty match displays %d rows, want 0", len(s.Displayed))
	}
	if !s.EmptySelection() {
		t.Errorf("EmptySelection false for empty match")
	}

	// Clearing falls back to the base subset.
	e.Clear()
	s = c.Snapshot()
	if len(s.Displayed) != len(s.Base) || s.EmptySelection() {
		t.Errorf("cleared selection displays %d of %d rows", len(s.Displayed), len(s.Base))
	}
}

type recorder struct {
	name string
	log  *[]string
	seen []*Snapshot
}

func (r *recorder) Render(s *Snapshot) {
	*r.log = append(*r.log, r.name)
	r.seen = append(r.seen, s)
}

func TestNotifyOrder(t *testing.T) {
	_, _, c := setup(t)
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	c.RegisterStatsConsumer(func([]*dataset.Row) { log = append(log, "stats") })
	c.RegisterView(a)
	c.RegisterView(b)

	c.NotifyAll()
	if diff := cmp.Diff([]string{"a", "b", "stats"}, log); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if a.seen[0] != b.seen[0] {
		t.Errorf("views saw different snapshots")
	}
}

func TestNotifyIdempotent(t *testing.T) {
	_, e, c := setup(t)
	rect, _ := selection.NewRectangle(0, 0, 50, 400)
	e.Commit(rect)

	var rendered, stats []string
	c.RegisterView(RenderFunc(func(d []*dataset.Row, active bool) {
		rendered = append(rendered, fmt.Sprint(ages(d), active))
	}))
	c.RegisterStatsConsumer(func(d []*dataset.Row) {
		stats = append(stats, fmt.Sprint(len(d)))
	})
	c.NotifyAll()
	s1 := c.Snapshot()
	c.NotifyAll()
	s2 := c.Snapshot()

	if s1 != s2 {
		t.Errorf("unchanged inputs produced a new snapshot")
	}
	if len(rendered) != 2 || rendered[0] != rendered[1] {
		t.Errorf("renders differ: %q", rendered)
	}
	if len(stats) != 2 || stats[0] != stats[1] {
		t.Errorf("stats differ: %q", stats)
	}
}

func TestCopyOnRead(t *testing.T) {
	_, _, c := setup(t)
	c.RegisterView(RenderFunc(func(d []*dataset.Row, active bool) {
		// A misbehaving view.
		for i := range d {
			d[i] = nil
		}
	}))
	var got []*dataset.Row
	c.RegisterStatsConsumer(func(d []*dataset.Row) { got = d })
	c.NotifyAll()
	for _, r := range got {
		if r == nil {
			t.Fatalf("view mutation leaked into the snapshot")
		}
	}
}

func TestNestedNotify(t *testing.T) {
	f, _, c := setup(t)
	var versions []Version
	c.RegisterView(RenderFunc(func([]*dataset.Row, bool) {}))
	first := true
	c.RegisterView(&recorder{name: "r", log: new([]string)})
	c.RegisterStatsConsumer(func([]*dataset.Row) {
		versions = append(versions, c.Snapshot().Version)
		if first {
			first = false
			// Changing the filter mid-notification
			// schedules a second round.
			f.Set("gender", "male")
			c.NotifyAll()
		}
	})
	c.NotifyAll()
	if len(versions) != 2 || versions[0] == versions[1] {
		t.Errorf("want two rounds with distinct versions, got %v", versions)
	}
}
