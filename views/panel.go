// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package views renders the linked dashboard charts as SVG.
//
// Each chart is a Panel, which implements coord.View. A Panel renders
// into an in-memory SVG document on every notification; the document
// is what the server and the plot command hand out.
package views

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aclements/heartdash/coord"
	svg "github.com/ajstarks/svgo"
)

// Margin is the space around a chart's plotting area, in pixels.
type Margin struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// A Layout is the pixel size of a chart.
type Layout struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Margin Margin `yaml:"margin"`
}

// Inner returns the size of the plotting area.
func (l Layout) Inner() (w, h float64) {
	return float64(l.Width - l.Margin.Left - l.Margin.Right),
		float64(l.Height - l.Margin.Top - l.Margin.Bottom)
}

// A Panel is one named chart.
type Panel struct {
	Name  string
	Title string

	layout Layout
	draw   func(w io.Writer, s *coord.Snapshot) error

	version coord.Version
	svg     []byte
	err     error
}

// Render redraws p from s. Rendering the same snapshot twice produces
// the same document.
// A failure to draw, including a panic, becomes the error returned by
// SVG.
func (p *Panel) Render(s *coord.Snapshot) {
	var buf bytes.Buffer
	p.err = p.drawSafe(&buf, s)
	p.svg, p.version = buf.Bytes(), s.Version
	if p.err != nil {
		p.svg = nil
	}
}

// drawSafe calls p.draw. go-gg reports some failures by panicking.
func (p *Panel) drawSafe(w io.Writer, s *coord.Snapshot) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("drawing %s: %v", p.Name, e)
		}
	}()
	return p.draw(w, s)
}

// SVG returns the document from the last Render.
func (p *Panel) SVG() ([]byte, error) {
	if p.svg == nil && p.err == nil {
		return nil, fmt.Errorf("view %s has not been rendered", p.Name)
	}
	return p.svg, p.err
}

// Version returns the snapshot version of the last Render.
func (p *Panel) Version() coord.Version {
	return p.version
}

// Layout returns the pixel size of p.
func (p *Panel) Layout() Layout {
	return p.layout
}

// placeholder writes an empty chart carrying msg.
func placeholder(w io.Writer, l Layout, title, msg string) error {
	c := svg.New(w)
	c.Start(l.Width, l.Height, `font-family="sans-serif"`)
	c.Rect(0, 0, l.Width, l.Height, "fill:#fafafa")
	c.Text(l.Width/2, l.Margin.Top/2+6, title, "text-anchor:middle;font-size:14px;font-weight:700")
	c.Text(l.Width/2, l.Height/2, msg, "text-anchor:middle;font-size:13px;fill:#888")
	c.End()
	return nil
}
