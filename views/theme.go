// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package views

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/heartdash/coord"
	"github.com/aclements/heartdash/dataset"
)

// A Color is an opaque sRGB color written as "#rrggbb".
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(s string) (Color, error) {
	var c Color
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R, c.G, c.B = c.R*17, c.G*17, c.B*17
	default:
		err = fmt.Errorf("want #rrggbb")
	}
	if err != nil {
		return Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return c, nil
}

func mustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseColor(string(text))
	return err
}

// Alpha returns c with opacity a as a go-gg compatible color.
func (c Color) Alpha(a float64) color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, uint8(math.Round(255 * math.Max(0, math.Min(1, a))))}
}

// Mix returns the color t of the way from c to d.
func (c Color) Mix(d Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return Color{mix(c.R, d.R), mix(c.G, d.G), mix(c.B, d.B)}
}

// A Theme is the set of colors every view draws with.
type Theme struct {
	Healthy  Color `yaml:"healthy"`
	Diseased Color `yaml:"diseased"`
	Selected Color `yaml:"selected"`
	Male     Color `yaml:"male"`
	Female   Color `yaml:"female"`
	Normal   Color `yaml:"normal"`
	Lasso    Color `yaml:"lasso"`
}

// DefaultTheme is the built-in palette.
var DefaultTheme = Theme{
	Healthy:  mustColor("#2ecc71"),
	Diseased: mustColor("#e74c3c"),
	Selected: mustColor("#f39c12"),
	Male:     mustColor("#3498db"),
	Female:   mustColor("#e91e63"),
	Normal:   mustColor("#95a5a6"),
	Lasso:    mustColor("#9b59b6"),
}

// Encoding picks the color of an unselected point.
type Encoding int

const (
	// ByStatus colors points healthy or diseased.
	ByStatus Encoding = iota
	// BySex colors points male or female.
	BySex
)

// Emphasis is the opacity of a point that is highlighted (selected,
// or nothing is selected) and of one that is not.
type Emphasis struct {
	On, Off float64
}

// Appearance is how one point is drawn.
type Appearance struct {
	Fill    Color
	Opacity float64
}

// RGBA returns the fill with the opacity baked in.
func (a Appearance) RGBA() color.NRGBA {
	return a.Fill.Alpha(a.Opacity)
}

// Point returns the appearance of row r in snapshot s. Every point
// view derives colors through Point, so all views agree on which rows
// are highlighted for the same snapshot.
//
// When no predicate is active every row is highlighted in its
// encoded color. When a predicate is active, selected rows take the
// selection color and all other rows are dimmed, even if nothing
// matched.
func (t *Theme) Point(s *coord.Snapshot, r *dataset.Row, enc Encoding, e Emphasis) Appearance {
	var fill Color
	switch enc {
	case BySex:
		fill = t.Female
		if r.Male() {
			fill = t.Male
		}
	default:
		fill = t.Healthy
		if r.Diseased() {
			fill = t.Diseased
		}
	}
	if !s.Active {
		return Appearance{fill, e.On}
	}
	if s.IsSelected(r) {
		return Appearance{t.Selected, e.On}
	}
	return Appearance{fill, e.Off}
}
