// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package summary

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/heartdash/dataset"
)

// A Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram counts the values of f over rows in n equal-width bins
// spanning [lo, hi]. A value equal to hi falls in the last bin; values
// outside [lo, hi] are not counted.
func Histogram(rows []*dataset.Row, f dataset.Field, lo, hi float64, n int) []Bin {
	if n <= 0 || !(lo < hi) {
		return nil
	}
	h := stats.NewLinearHist(lo, hi, n)
	for _, r := range rows {
		x := r.Get(f)
		if !(lo <= x && x <= hi) {
			continue
		}
		if x == hi {
			// Put the closed upper bound in the last bin.
			x = h.BinToValue(float64(n) - 0.5)
		}
		h.Add(x)
	}
	_, counts, _ := h.Counts()
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{h.BinToValue(float64(i)), h.BinToValue(float64(i + 1)), int(counts[i])}
	}
	return bins
}

// DefaultBandwidth is the kernel bandwidth, in data units, used by
// Density when none is given and the sample cannot supply one.
const DefaultBandwidth = 3

// Density evaluates a Gaussian kernel density estimate of f over rows
// at each of xs. If bandwidth is not positive, Scott's rule is used.
// For zero rows every density is 0.
func Density(rows []*dataset.Row, f dataset.Field, xs []float64, bandwidth float64) []float64 {
	ys := make([]float64, len(xs))
	if len(rows) == 0 {
		return ys
	}
	kde := stats.KDE{
		Sample: stats.Sample{Xs: Column(rows, f)},
		Kernel: stats.GaussianKernel,
	}
	if bandwidth <= 0 {
		bandwidth = stats.BandwidthScott(kde.Sample)
		if !(bandwidth > 0) {
			bandwidth = DefaultBandwidth
		}
	}
	kde.Bandwidth = bandwidth
	for i, x := range xs {
		ys[i] = kde.PDF(x)
	}
	return ys
}

// A Cell is the disease rate of one chest pain type and sex.
type Cell struct {
	ChestPain int
	Male      bool
	N         int
	Diseased  int
}

// Rate returns the percentage of the cell's rows that are diseased.
func (c Cell) Rate() Value {
	return percent(c.Diseased, c.N)
}

// GroupRates tabulates rows by chest pain type (1-4) and sex. It always
// returns eight cells, ordered by chest pain type and then female
// before male. Rows with other chest pain codes are ignored.
func GroupRates(rows []*dataset.Row) []Cell {
	cells := make([]Cell, 8)
	for i := range cells {
		cells[i] = Cell{ChestPain: 1 + i/2, Male: i%2 == 1}
	}
	for _, r := range rows {
		cp := int(r.Get(dataset.ChestPain))
		if cp < 1 || cp > 4 || float64(cp) != r.Get(dataset.ChestPain) {
			continue
		}
		i := 2 * (cp - 1)
		if r.Male() {
			i++
		}
		cells[i].N++
		if r.Diseased() {
			cells[i].Diseased++
		}
	}
	return cells
}
