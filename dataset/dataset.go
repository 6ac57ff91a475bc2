// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset holds the immutable set of patient records that
// every other part of the dashboard reads.
//
// A Dataset is built once by Load and never changes afterward. Rows
// are handed out as pointers so that membership in a selection can be
// tested by identity (or by the stable Row.Index) rather than by value:
// two patients with identical measurements are still two rows.
package dataset

import (
	"fmt"
	"strings"
)

// Field identifies one numeric column of a Row.
type Field int

const (
	Age         Field = iota // age in years
	Sex                      // 1 = male, 0 = female
	ChestPain                // chest pain type, 1-4
	RestingBP                // resting blood pressure, mmHg
	Cholesterol              // serum cholesterol, mg/dL
	FastingBS                // fasting blood sugar > 120 mg/dL
	RestECG                  // resting electrocardiographic results
	MaxHR                    // maximum heart rate achieved
	ExAngina                 // exercise induced angina
	Oldpeak                  // ST depression induced by exercise
	Slope                    // slope of the peak exercise ST segment
	CA                       // number of major vessels colored
	Thal                     // thalassemia code
	Target                   // diagnosis severity, 0 = healthy

	NumFields int = iota
)

var fieldNames = [NumFields]string{
	"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
	"thalach", "exang", "oldpeak", "slope", "ca", "thal", "target",
}

var fieldLabels = [NumFields]string{
	"Age (years)", "Sex", "Chest Pain Type", "Resting BP (mmHg)",
	"Cholesterol (mg/dL)", "Fasting Blood Sugar", "Resting ECG",
	"Max Heart Rate (bpm)", "Exercise Angina", "ST Depression",
	"ST Slope", "Major Vessels", "Thalassemia", "Diagnosis",
}

// String returns the column name of f as it appears in the data file.
func (f Field) String() string {
	if f < 0 || int(f) >= NumFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Label returns a human-readable axis label for f.
func (f Field) Label() string {
	if f < 0 || int(f) >= NumFields {
		return f.String()
	}
	return fieldLabels[f]
}

// ParseField returns the Field whose column name is name. Matching is
// case-insensitive.
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// MarshalText and UnmarshalText let Fields appear by name in
// configuration files.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	g, ok := ParseField(string(text))
	if !ok {
		return fmt.Errorf("unknown field %q", text)
	}
	*f = g
	return nil
}

// Values is the raw measurement vector of one record, indexed by
// Field.
type Values [NumFields]float64

// A Row is one immutable patient record.
type Row struct {
	// Index is the position of this row in its Dataset. It is
	// stable for the lifetime of the Dataset and unique within it.
	Index int

	vals Values
}

// Get returns the value of field f.
func (r *Row) Get(f Field) float64 {
	return r.vals[f]
}

// Values returns a copy of r's measurements.
func (r *Row) Values() Values {
	return r.vals
}

// Male reports whether r is coded as male.
func (r *Row) Male() bool {
	return r.vals[Sex] == 1
}

// Diseased reports whether r has a non-zero diagnosis code.
func (r *Row) Diseased() bool {
	return r.vals[Target] > 0
}

// EmptyDatasetError is returned by Load when no rows remain after
// cleaning. It is fatal for a dashboard session: statistics over zero
// rows are undefined and no view can be constructed.
type EmptyDatasetError struct {
	// Source describes where the rows came from, if known.
	Source string
}

func (e *EmptyDatasetError) Error() string {
	if e.Source == "" {
		return "dataset is empty"
	}
	return fmt.Sprintf("dataset %s is empty", e.Source)
}

// A Dataset is an ordered, immutable sequence of Rows.
type Dataset struct {
	rows []*Row
}

// Load builds a Dataset from cleaned measurement vectors. Rows are
// indexed in the order given. Load returns an *EmptyDatasetError if
// vals is empty.
func Load(vals []Values) (*Dataset, error) {
	if len(vals) == 0 {
		return nil, &EmptyDatasetError{}
	}
	// Allocate all rows in one block.
	block := make([]Row, len(vals))
	rows := make([]*Row, len(vals))
	for i, v := range vals {
		block[i] = Row{Index: i, vals: v}
		rows[i] = &block[i]
	}
	return &Dataset{rows}, nil
}

// All returns every row in the Dataset. The returned slice is a fresh
// copy; callers may reorder or truncate it, but the Rows themselves
// are shared and immutable.
func (d *Dataset) All() []*Row {
	out := make([]*Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// Len returns the number of rows in d.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns the row with the given Index.
func (d *Dataset) Row(i int) *Row {
	return d.rows[i]
}

// Extent returns the minimum and maximum of field f over all rows.
func (d *Dataset) Extent(f Field) (lo, hi float64) {
	lo, hi = d.rows[0].vals[f], d.rows[0].vals[f]
	for _, r := range d.rows[1:] {
		v := r.vals[f]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return
}
