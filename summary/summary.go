// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package summary computes descriptive statistics over row subsets.
//
// Every function accepts an empty subset. Derived quantities that are
// undefined for zero rows are reported as not OK and print as "N/A".
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/heartdash/dataset"
)

// NA is how an undefined value prints.
const NA = "N/A"

// A Value is a derived quantity that may be undefined.
type Value struct {
	V  float64
	OK bool
}

func defined(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v, true}
}

func (v Value) String() string {
	if !v.OK {
		return NA
	}
	return fmt.Sprintf("%.1f", v.V)
}

// MarshalJSON encodes an undefined Value as the string "N/A".
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.OK {
		return json.Marshal(NA)
	}
	return json.Marshal(v.V)
}

// A Range is the extent of a field over a subset.
type Range struct {
	Lo, Hi float64
	OK     bool
}

func (r Range) String() string {
	if !r.OK {
		return NA
	}
	return fmt.Sprintf("%g-%g", r.Lo, r.Hi)
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// A Record summarizes one subset.
type Record struct {
	Count       int   `json:"count"`
	MeanAge     Value `json:"meanAge"`
	MeanChol    Value `json:"meanChol"`
	MeanMaxHR   Value `json:"meanMaxHR"`
	DiseaseRate Value `json:"diseaseRate"` // percent
	MaleRate    Value `json:"maleRate"`    // percent
	CholRange   Range `json:"cholRange"`
	AgeRange    Range `json:"ageRange"`
}

// Column returns the values of f over rows.
func Column(rows []*dataset.Row, f dataset.Field) []float64 {
	xs := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = r.Get(f)
	}
	return xs
}

func mean(xs []float64) Value {
	if len(xs) == 0 {
		return Value{}
	}
	return defined(stats.Mean(xs))
}

func extent(xs []float64) Range {
	if len(xs) == 0 {
		return Range{}
	}
	lo, hi := stats.Bounds(xs)
	return Range{lo, hi, true}
}

func percent(n, of int) Value {
	if of == 0 {
		return Value{}
	}
	return Value{100 * float64(n) / float64(of), true}
}

// Compute summarizes rows.
func Compute(rows []*dataset.Row) Record {
	var diseased, male int
	for _, r := range rows {
		if r.Diseased() {
			diseased++
		}
		if r.Male() {
			male++
		}
	}
	age := Column(rows, dataset.Age)
	chol := Column(rows, dataset.Cholesterol)
	return Record{
		Count:       len(rows),
		MeanAge:     mean(age),
		MeanChol:    mean(chol),
		MeanMaxHR:   mean(Column(rows, dataset.MaxHR)),
		DiseaseRate: percent(diseased, len(rows)),
		MaleRate:    percent(male, len(rows)),
		CholRange:   extent(chol),
		AgeRange:    extent(age),
	}
}

// Fields returns the labeled, formatted fields of r in display order.
func (r Record) Fields() [][2]string {
	pct := func(v Value) string {
		if !v.OK {
			return NA
		}
		return v.String() + "%"
	}
	return [][2]string{
		{"Total Patients", fmt.Sprint(r.Count)},
		{"Avg Age", r.MeanAge.String()},
		{"Avg Cholesterol", r.MeanChol.String()},
		{"Avg Max HR", r.MeanMaxHR.String()},
		{"Disease Rate", pct(r.DiseaseRate)},
		{"Male", pct(r.MaleRate)},
		{"Cholesterol Range", r.CholRange.String()},
		{"Age Range", r.AgeRange.String()},
	}
}

// WriteText writes r as aligned "label: value" lines.
func (r Record) WriteText(w io.Writer) error {
	for _, f := range r.Fields() {
		if _, err := fmt.Fprintf(w, "%-18s %s\n", f[0]+":", f[1]); err != nil {
			return err
		}
	}
	return nil
}
