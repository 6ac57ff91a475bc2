// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"errors"
	"testing"

	"github.com/aclements/heartdash/dataset"
	"github.com/google/go-cmp/cmp"
)

// testData returns ten rows with ages 30, 35, ..., 75, alternating
// healthy and diseased, alternating female and male in pairs, and
// chest pain types cycling 1-4.
func testData(t *testing.T) *dataset.Dataset {
	var vals []dataset.Values
	for i := 0; i < 10; i++ {
		var v dataset.Values
		v[dataset.Age] = float64(30 + 5*i)
		v[dataset.Target] = float64(i % 2)
		v[dataset.Sex] = float64((i / 2) % 2)
		v[dataset.ChestPain] = float64(1 + i%4)
		v[dataset.Cholesterol] = float64(200 + 10*i)
		vals = append(vals, v)
	}
	ds, err := dataset.Load(vals)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func ages(rows []*dataset.Row) []float64 {
	out := []float64{}
	for _, r := range rows {
		out = append(out, r.Get(dataset.Age))
	}
	return out
}

func TestEval(t *testing.T) {
	var v dataset.Values
	v[dataset.Age] = 50
	v[dataset.Cholesterol] = 240
	v[dataset.Sex] = 1
	v[dataset.Target] = 2
	ds, _ := dataset.Load([]dataset.Values{v})
	row := ds.Row(0)

	try := func(expr string, want bool) {
		t.Helper()
		e, err := CompileExpr(expr)
		if err != nil {
			t.Errorf("%s: unexpected compile error %s", expr, err)
			return
		}
		if have := e.Match(row); have != want {
			t.Errorf("%s: want %v, have %v", expr, want, have)
		}
	}

	try(`true`, true)
	try(`false`, false)
	try(`age == 50`, true)
	try(`age > 50`, false)
	try(`age >= 50 && chol < 300`, true)
	try(`age < 40 || chol > 200`, true)
	try(`male`, true)
	try(`!diseased`, false)
	try(`diseased == male`, true)
	try(`gender == "male"`, true)
	try(`status != "healthy"`, true)
	try(`chol / 2 == 120`, true)
	try(`chol % 100 == 40`, true)
	try(`-age == 0-50`, true)
	try(`+age == (age)`, true)
	try(`target > 0`, true)
}

func TestCompileErrors(t *testing.T) {
	for _, expr := range []string{
		`age`,
		`age == "x"`,
		`nosuch > 1`,
		`male < diseased`,
		`age &&`,
		`f(age)`,
		`!age`,
		`'c' == 1`,
	} {
		if _, err := CompileExpr(expr); err == nil {
			t.Errorf("%s: expected compile error", expr)
		}
	}
}

func TestFilterComposition(t *testing.T) {
	f := New(testData(t))
	if err := f.Set("gender", "male"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("outcome", "positive"); err != nil {
		t.Fatal(err)
	}
	base := f.Base()
	if len(base) == 0 {
		t.Fatalf("empty base subset")
	}
	for _, r := range base {
		if !r.Male() || !r.Diseased() {
			t.Errorf("row %d (sex %v, target %v) violates filters", r.Index, r.Get(dataset.Sex), r.Get(dataset.Target))
		}
	}
	if diff := cmp.Diff([]float64{45, 65}, ages(base)); diff != "" {
		t.Errorf("base (-want +got):\n%s", diff)
	}

	f.Reset()
	if len(f.Base()) != 10 {
		t.Errorf("reset base has %d rows, want 10", len(f.Base()))
	}
	for _, v := range f.Values() {
		if v != All {
			t.Errorf("reset left value %q", v)
		}
	}
}

func TestFilterOutcome(t *testing.T) {
	f := New(testData(t))
	if err := f.Set("outcome", "positive"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{35, 45, 55, 65, 75}, ages(f.Base())); diff != "" {
		t.Errorf("base (-want +got):\n%s", diff)
	}
	if got := f.Value(Outcome); got != "diseased" {
		t.Errorf("outcome value %q, want diseased", got)
	}
}

func TestFilterReplacesBase(t *testing.T) {
	f := New(testData(t))
	old := f.Base()
	f.Set("cp", "Asymptomatic")
	if len(old) != 10 {
		t.Errorf("recompute modified previous base subset")
	}
	if diff := cmp.Diff([]float64{45, 65}, ages(f.Base())); diff != "" {
		t.Errorf("base (-want +got):\n%s", diff)
	}
	// Setting a filter back to all contributes no constraint.
	f.Set("cp", "all")
	if len(f.Base()) != 10 {
		t.Errorf("cp=all base has %d rows", len(f.Base()))
	}
}

func TestFilterErrors(t *testing.T) {
	f := New(testData(t))
	f.Set("gender", "female")
	v := f.Version()

	var ufe *UnknownFilterError
	if err := f.Set("height", "tall"); !errors.As(err, &ufe) {
		t.Errorf("want UnknownFilterError, got %v", err)
	}
	var uve *UnknownValueError
	if err := f.Set("gender", "other"); !errors.As(err, &uve) {
		t.Errorf("want UnknownValueError, got %v", err)
	}
	if err := f.SetWhere("age >"); err == nil {
		t.Errorf("bad where expression accepted")
	}
	if f.Version() != v || f.Value(Gender) != "female" || f.Where() != "" {
		t.Errorf("failed update changed filter state")
	}
}

func TestFilterWhere(t *testing.T) {
	f := New(testData(t))
	var notified [][]*dataset.Row
	f.OnChange(func(base []*dataset.Row) {
		notified = append(notified, base)
	})

	if err := f.SetWhere("age >= 50 && age < 70"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{50, 55, 60, 65}, ages(f.Base())); diff != "" {
		t.Errorf("base (-want +got):\n%s", diff)
	}
	f.Set("outcome", "healthy")
	if diff := cmp.Diff([]float64{50, 60}, ages(f.Base())); diff != "" {
		t.Errorf("base (-want +got):\n%s", diff)
	}
	f.Reset()
	if f.Where() != "" || len(f.Base()) != 10 {
		t.Errorf("reset did not clear where expression")
	}
	if len(notified) != 3 {
		t.Errorf("want 3 change notifications, got %d", len(notified))
	}
}
