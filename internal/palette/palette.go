// Package palette parses, formats and converts the colors used by the canvas.
package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Default is the palette bound to the number keys 1-9.
var Default = []color.RGBA{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0xff, 0xff, 0xff, 0xff}, // white
	{0xe0, 0x3c, 0x31, 0xff}, // red
	{0x2e, 0xa0, 0x43, 0xff}, // green
	{0x1f, 0x6f, 0xeb, 0xff}, // blue
	{0xf5, 0xc2, 0x11, 0xff}, // yellow
	{0xf0, 0x88, 0x3e, 0xff}, // orange
	{0x8e, 0x44, 0xad, 0xff}, // purple
	{0x80, 0x80, 0x80, 0xff}, // gray
}

// Backgrounds is the cycle used by the background key.
var Backgrounds = []color.RGBA{
	{0xff, 0xff, 0xff, 0xff},
	{0xf4, 0xec, 0xd8, 0xff},
	{0x22, 0x27, 0x2e, 0xff},
	{0x00, 0x00, 0x00, 0xff},
}

// Parse accepts "#rgb" or "#rrggbb" (the leading '#' is optional) and returns an opaque color.
func Parse(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': must be #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustParse is Parse for constants known to be valid.
func MustParse(s string) color.RGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", ignoring alpha.
func Hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	return cf.Hex()
}

// Over composites c over an opaque background.
func Over(c color.RGBA, bg color.RGBA) color.RGBA {
	if c.A == 0xff {
		return c
	}
	if c.A == 0 {
		return bg
	}
	// RGBA is alpha-premultiplied.
	inv := uint32(0xff - c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) + uint32(bg.R)*inv/0xff),
		G: uint8(uint32(c.G) + uint32(bg.G)*inv/0xff),
		B: uint8(uint32(c.B) + uint32(bg.B)*inv/0xff),
		A: 0xff,
	}
}

// Tcell converts an opaque color to a true-color tcell color.
func Tcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Next returns the entry following current in colors, wrapping around.
// Unknown colors restart at the first entry.
func Next(colors []color.RGBA, current color.RGBA) color.RGBA {
	for i, c := range colors {
		if c == current {
			return colors[(i+1)%len(colors)]
		}
	}
	return colors[0]
}
