// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import "github.com/aclements/go-gg/table"

// Status names the diagnosis group of r.
func Status(r *Row) string {
	if r.Diseased() {
		return "diseased"
	}
	return "healthy"
}

// Gender names the sex code of r.
func Gender(r *Row) string {
	if r.Male() {
		return "male"
	}
	return "female"
}

// Table converts rows to a go-gg table. The table has an "index"
// column, a "status" and a "gender" column, and one float64 column
// per requested field, named by Field.String.
func Table(rows []*Row, fields ...Field) *table.Table {
	idx := make([]int, len(rows))
	status := make([]string, len(rows))
	gender := make([]string, len(rows))
	for i, r := range rows {
		idx[i] = r.Index
		status[i] = Status(r)
		gender[i] = Gender(r)
	}

	tab := new(table.Builder).
		Add("index", idx).
		Add("status", status).
		Add("gender", gender)
	for _, f := range fields {
		col := make([]float64, len(rows))
		for i, r := range rows {
			col[i] = r.vals[f]
		}
		tab.Add(f.String(), col)
	}
	return tab.Done()
}
