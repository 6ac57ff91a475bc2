// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query implements dynamic query filtering: categorical
// dropdown predicates and an optional expression predicate that
// together reduce a dataset to its base subset.
package query

import (
	"fmt"
	"strings"

	"github.com/aclements/heartdash/dataset"
)

// All is the choice value that imposes no constraint.
const All = "all"

// Name identifies a dropdown filter.
type Name string

const (
	Gender    Name = "gender"
	ChestPain Name = "chestpain"
	Outcome   Name = "outcome"
)

// A Choice is one dropdown entry.
type Choice struct {
	Value string
	Label string

	// match is nil for All.
	match func(*dataset.Row) bool
}

// A Dimension is a dropdown filter and its choices. The first choice
// is always All.
type Dimension struct {
	Name    Name
	Label   string
	Choices []Choice

	// aliases maps alternate spellings to choice values.
	aliases map[string]string
}

func field(f dataset.Field, v float64) func(*dataset.Row) bool {
	return func(r *dataset.Row) bool { return r.Get(f) == v }
}

// Dimensions lists the dropdown filters in display order.
var Dimensions = []*Dimension{
	{
		Name:  Gender,
		Label: "Gender",
		Choices: []Choice{
			{All, "All", nil},
			{"male", "Male", (*dataset.Row).Male},
			{"female", "Female", func(r *dataset.Row) bool { return !r.Male() }},
		},
		aliases: map[string]string{"m": "male", "f": "female"},
	},
	{
		Name:  ChestPain,
		Label: "Chest Pain Type",
		Choices: []Choice{
			{All, "All", nil},
			{"1", "Typical Angina", field(dataset.ChestPain, 1)},
			{"2", "Atypical Angina", field(dataset.ChestPain, 2)},
			{"3", "Non-anginal", field(dataset.ChestPain, 3)},
			{"4", "Asymptomatic", field(dataset.ChestPain, 4)},
		},
	},
	{
		Name:  Outcome,
		Label: "Disease Status",
		Choices: []Choice{
			{All, "All", nil},
			{"healthy", "Healthy", func(r *dataset.Row) bool { return !r.Diseased() }},
			{"diseased", "Has Disease", (*dataset.Row).Diseased},
		},
		aliases: map[string]string{"negative": "healthy", "positive": "diseased"},
	},
}

var nameAliases = map[string]Name{
	"sex":           Gender,
	"cp":            ChestPain,
	"chest_pain":    ChestPain,
	"chest-pain":    ChestPain,
	"target":        Outcome,
	"status":        Outcome,
	"diseasestatus": Outcome,
}

// UnknownFilterError is returned for a filter name that is not one of
// Dimensions.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Name)
}

// UnknownValueError is returned for a choice a filter does not offer.
type UnknownValueError struct {
	Name  Name
	Value string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("filter %s has no choice %q", e.Name, e.Value)
}

// Lookup returns the dimension called name. Names are
// case-insensitive and a few column-style aliases are accepted.
func Lookup(name string) (*Dimension, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if n, ok := nameAliases[key]; ok {
		key = string(n)
	}
	for _, d := range Dimensions {
		if string(d.Name) == key {
			return d, nil
		}
	}
	return nil, &UnknownFilterError{name}
}

// choice returns the index of value in d.Choices.
func (d *Dimension) choice(value string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if v, ok := d.aliases[key]; ok {
		key = v
	}
	for i, c := range d.Choices {
		if c.Value == key || strings.ToLower(c.Label) == key {
			return i, nil
		}
	}
	return 0, &UnknownValueError{d.Name, value}
}

// A Filter holds the current dropdown choices and expression of one
// session and the base subset they produce.
//
// The base subset is replaced, never modified, on each recompute, so
// a slice returned by Base remains a consistent snapshot.
type Filter struct {
	ds       *dataset.Dataset
	chosen   []int // index into Dimensions[i].Choices
	where    *Expr
	base     []*dataset.Row
	version  uint64
	onChange []func(base []*dataset.Row)
}

// New returns a filter over ds with every dimension set to All.
func New(ds *dataset.Dataset) *Filter {
	f := &Filter{ds: ds, chosen: make([]int, len(Dimensions))}
	f.base = ds.All()
	return f
}

// OnChange registers fn to be called with the new base subset after
// every recompute.
func (f *Filter) OnChange(fn func(base []*dataset.Row)) {
	f.onChange = append(f.onChange, fn)
}

// Set replaces one dropdown choice and recomputes the base subset. On
// error, the filter is unchanged.
func (f *Filter) Set(name, value string) error {
	d, err := Lookup(name)
	if err != nil {
		return err
	}
	ci, err := d.choice(value)
	if err != nil {
		return err
	}
	for i := range Dimensions {
		if Dimensions[i] == d {
			f.chosen[i] = ci
		}
	}
	f.Recompute()
	return nil
}

// SetWhere replaces the expression predicate and recomputes the base
// subset. An empty src removes it. On error, the filter is unchanged.
func (f *Filter) SetWhere(src string) error {
	var e *Expr
	if strings.TrimSpace(src) != "" {
		var err error
		e, err = CompileExpr(src)
		if err != nil {
			return fmt.Errorf("bad where expression %q: %w", src, err)
		}
	}
	f.where = e
	f.Recompute()
	return nil
}

// Reset sets every dimension to All, removes the expression, and
// recomputes the base subset.
func (f *Filter) Reset() {
	for i := range f.chosen {
		f.chosen[i] = 0
	}
	f.where = nil
	f.Recompute()
}

// Recompute rebuilds the base subset as the rows satisfying every
// non-All choice and the expression, if any, then notifies OnChange
// callbacks in registration order.
func (f *Filter) Recompute() []*dataset.Row {
	var preds []func(*dataset.Row) bool
	for i, d := range Dimensions {
		if m := d.Choices[f.chosen[i]].match; m != nil {
			preds = append(preds, m)
		}
	}
	if f.where != nil {
		preds = append(preds, f.where.Match)
	}

	base := make([]*dataset.Row, 0, f.ds.Len())
rows:
	for _, r := range f.ds.All() {
		for _, p := range preds {
			if !p(r) {
				continue rows
			}
		}
		base = append(base, r)
	}
	f.base = base
	f.version++

	for _, fn := range f.onChange {
		fn(base)
	}
	return base
}

// Base returns the current base subset. Callers must not modify it.
func (f *Filter) Base() []*dataset.Row {
	return f.base
}

// Value returns the current choice value of the named filter.
func (f *Filter) Value(name Name) string {
	for i, d := range Dimensions {
		if d.Name == name {
			return d.Choices[f.chosen[i]].Value
		}
	}
	return ""
}

// Where returns the source of the current expression, or "".
func (f *Filter) Where() string {
	if f.where == nil {
		return ""
	}
	return f.where.String()
}

// Values returns the current choice of every filter.
func (f *Filter) Values() map[Name]string {
	m := make(map[Name]string, len(Dimensions))
	for i, d := range Dimensions {
		m[d.Name] = d.Choices[f.chosen[i]].Value
	}
	return m
}

// Version counts recomputes.
func (f *Filter) Version() uint64 {
	return f.version
}
