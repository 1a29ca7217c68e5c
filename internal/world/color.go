package world

import (
	"fmt"
	"image/color"
	"unicode/utf16"
)

// StrokeColor is the border colour of every country.
const StrokeColor = "#000000"

// nameHash is the classic h = h*31 + c string hash over UTF-16 code units,
// wrapping at 32 bits.
func nameHash(name string) uint32 {
	var h uint32
	for _, c := range utf16.Encode([]rune(name)) {
		h = h*31 + uint32(c)
	}
	return h
}

// Color returns the fill colour for a name as "#rrggbb", taken from the low
// 24 bits of the name hash. An empty name hashes as "Unknown". Distinct
// names may collide.
func Color(name string) string {
	if name == "" {
		name = UnknownName
	}
	return fmt.Sprintf("#%06x", nameHash(name)&0xffffff)
}

// ColorRGBA is Color as an opaque RGBA value.
func ColorRGBA(name string) color.RGBA {
	if name == "" {
		name = UnknownName
	}
	h := nameHash(name)
	return color.RGBA{R: uint8(h >> 16), G: uint8(h >> 8), B: uint8(h), A: 0xff}
}

// ParseHexColor converts "#rrggbb" to RGBA. Malformed input yields opaque black.
func ParseHexColor(s string) color.RGBA {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{A: 0xff}
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
