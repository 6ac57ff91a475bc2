// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package summary

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/heartdash/dataset"
	"github.com/google/go-cmp/cmp"
)

func load(t *testing.T, vals []dataset.Values) []*dataset.Row {
	ds, err := dataset.Load(vals)
	if err != nil {
		t.Fatal(err)
	}
	return ds.All()
}

func TestZeroRows(t *testing.T) {
	rec := Compute(nil)
	if rec.Count != 0 {
		t.Errorf("count %d, want 0", rec.Count)
	}
	for _, f := range rec.Fields()[1:] {
		if f[1] != NA {
			t.Errorf("%s = %q, want %q", f[0], f[1], NA)
		}
	}
	js, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(js), "NaN") {
		t.Errorf("JSON contains NaN: %s", js)
	}

	if bins := Histogram(nil, dataset.Age, 0, 10, 5); len(bins) != 5 {
		t.Errorf("empty histogram has %d bins", len(bins))
	}
	for _, y := range Density(nil, dataset.Age, []float64{1, 2, 3}, 0) {
		if y != 0 {
			t.Errorf("empty density %v", y)
		}
	}
	for _, c := range GroupRates(nil) {
		if c.Rate().OK {
			t.Errorf("empty cell has rate %v", c.Rate())
		}
	}
}

func TestCompute(t *testing.T) {
	var vals []dataset.Values
	for _, age := range []float64{45, 55} {
		var v dataset.Values
		v[dataset.Age] = age
		v[dataset.Cholesterol] = age * 5
		v[dataset.MaxHR] = 150
		v[dataset.Target] = 1
		v[dataset.Sex] = age / 55 // one male
		vals = append(vals, v)
	}
	rec := Compute(load(t, vals))
	want := Record{
		Count:       2,
		MeanAge:     Value{50, true},
		MeanChol:    Value{250, true},
		MeanMaxHR:   Value{150, true},
		DiseaseRate: Value{100, true},
		MaleRate:    Value{50, true},
		CholRange:   Range{225, 275, true},
		AgeRange:    Range{45, 55, true},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record (-want +got):\n%s", diff)
	}
	if got := rec.MeanAge.String(); got != "50.0" {
		t.Errorf("mean age prints as %q", got)
	}

	var buf bytes.Buffer
	if err := rec.WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Disease Rate:      100.0%") {
		t.Errorf("unexpected text:\n%s", buf.String())
	}
}

func TestHistogram(t *testing.T) {
	var vals []dataset.Values
	for _, age := range []float64{0, 1, 4.9, 5, 9.99, 10, 11, -1} {
		var v dataset.Values
		v[dataset.Age] = age
		vals = append(vals, v)
	}
	bins := Histogram(load(t, vals), dataset.Age, 0, 10, 2)
	want := []Bin{{0, 5, 3}, {5, 10, 3}}
	if diff := cmp.Diff(want, bins); diff != "" {
		t.Errorf("bins (-want +got):\n%s", diff)
	}

	// Values just outside the domain are not counted in the edge
	// bins.
	bins = Histogram(load(t, vals), dataset.Age, 0.5, 10.5, 2)
	want = []Bin{{0.5, 5.5, 3}, {5.5, 10.5, 2}}
	if diff := cmp.Diff(want, bins); diff != "" {
		t.Errorf("offset bins (-want +got):\n%s", diff)
	}
	if Histogram(nil, dataset.Age, 5, 5, 3) != nil {
		t.Errorf("empty domain produced bins")
	}
}

func TestDensity(t *testing.T) {
	var vals []dataset.Values
	for _, age := range []float64{40, 50, 50, 60} {
		var v dataset.Values
		v[dataset.Age] = age
		vals = append(vals, v)
	}
	rows := load(t, vals)
	xs := vec.Linspace(0, 100, 1001)
	ys := Density(rows, dataset.Age, xs, DefaultBandwidth)

	// Riemann sum of the density is about 1.
	area := 0.0
	for _, y := range ys {
		area += y * 0.1
	}
	if math.Abs(area-1) > 0.01 {
		t.Errorf("density integrates to %v", area)
	}
	if ys[500] <= ys[400] {
		t.Errorf("density at mode %v not above density at 40 (%v)", ys[500], ys[400])
	}

	// A single row has no spread; the default bandwidth applies.
	one := Density(rows[:1], dataset.Age, []float64{40}, 0)
	if math.IsNaN(one[0]) || one[0] <= 0 {
		t.Errorf("single-row density %v", one[0])
	}
}

func TestGroupRates(t *testing.T) {
	var vals []dataset.Values
	add := func(cp, sex, target float64) {
		var v dataset.Values
		v[dataset.ChestPain], v[dataset.Sex], v[dataset.Target] = cp, sex, target
		vals = append(vals, v)
	}
	add(4, 1, 1)
	add(4, 1, 0)
	add(4, 1, 3)
	add(1, 0, 0)
	add(7, 0, 1)
	cells := GroupRates(load(t, vals))
	if len(cells) != 8 {
		t.Fatalf("got %d cells", len(cells))
	}
	asym := cells[7]
	if asym.ChestPain != 4 || !asym.Male || asym.N != 3 || asym.Diseased != 2 {
		t.Errorf("cp 4 male cell %+v", asym)
	}
	if r := cells[0].Rate(); !r.OK || r.V != 0 {
		t.Errorf("cp 1 female rate %v", r)
	}
}
