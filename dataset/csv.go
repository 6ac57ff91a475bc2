// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadCSV parses a comma-separated file whose first line names the
// columns. Every Field must have a column; other columns are ignored.
//
// A record with a missing, "?", non-numeric, or non-finite value in
// any Field column is dropped. ReadCSV returns the surviving records and the
// number that were dropped.
func ReadCSV(r io.Reader) (vals []Values, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("missing header line")
	} else if err != nil {
		return nil, 0, err
	}

	// Map each Field to its column.
	var cols [NumFields]int
	for i := range cols {
		cols[i] = -1
	}
	for i, name := range header {
		if f, ok := ParseField(name); ok {
			cols[f] = i
		}
	}
	var missing []string
	for f, col := range cols {
		if col < 0 {
			missing = append(missing, Field(f).String())
		}
	}
	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

records:
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, 0, err
		}

		var v Values
		for f, col := range cols {
			if col >= len(rec) {
				dropped++
				continue records
			}
			x, ok := parseNumeric(rec[col])
			if !ok {
				dropped++
				continue records
			}
			v[f] = x
		}
		vals = append(vals, v)
	}
	return vals, dropped, nil
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "?" {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// LoadFile reads and loads the CSV file at path. If no rows survive
// cleaning, it returns an *EmptyDatasetError naming path.
func LoadFile(path string) (ds *Dataset, dropped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	vals, dropped, err := ReadCSV(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	ds, err = Load(vals)
	if e, ok := err.(*EmptyDatasetError); ok {
		e.Source = path
	}
	return ds, dropped, err
}
