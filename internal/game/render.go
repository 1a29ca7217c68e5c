package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sunnix1818/geo-countries/internal/world"
)

const capitalRadius = 3

var capitalColor = color.RGBA{R: 250, G: 240, B: 200, A: 255}

// drawFrame renders a world frame. Commands arrive in z-order, so later
// countries paint over earlier ones.
func drawFrame(dst *ebiten.Image, f *world.Frame) {
	for i := range f.Commands {
		drawCountry(dst, &f.Commands[i])
	}
	for _, c := range f.Capitals {
		vector.FillCircle(dst, float32(c.At.X), float32(c.At.Y), capitalRadius, capitalColor, true)
		vector.StrokeCircle(dst, float32(c.At.X), float32(c.At.Y), capitalRadius, 1, color.Black, true)
	}
}

// countryPath builds one path holding every ring of a country. Holes are
// cut by the even-odd fill rule.
func countryPath(cmd *world.DrawCommand) *vector.Path {
	var p vector.Path
	for _, ring := range cmd.ScreenRings {
		if len(ring) < 2 {
			continue
		}
		p.MoveTo(float32(ring[0].X), float32(ring[0].Y))
		for _, pt := range ring[1:] {
			p.LineTo(float32(pt.X), float32(pt.Y))
		}
		p.Close()
	}
	return &p
}

func drawCountry(dst *ebiten.Image, cmd *world.DrawCommand) {
	path := countryPath(cmd)

	fill := &vector.DrawPathOptions{AntiAlias: true}
	fillCol := world.ParseHexColor(cmd.FillColor)
	if cmd.Hovered {
		fillCol = lighten(fillCol, 40)
	}
	fill.ColorScale.ScaleWithColor(fillCol)
	vector.FillPath(dst, path, &vector.FillOptions{FillRule: vector.FillRuleEvenOdd}, fill)

	stroke := &vector.DrawPathOptions{AntiAlias: true}
	stroke.ColorScale.ScaleWithColor(world.ParseHexColor(cmd.StrokeColor))
	vector.StrokePath(dst, path, &vector.StrokeOptions{
		Width:    float32(cmd.StrokeWidth),
		LineJoin: vector.LineJoinRound,
	}, stroke)
}

func lighten(c color.RGBA, by uint8) color.RGBA {
	add := func(v uint8) uint8 {
		if int(v)+int(by) > 255 {
			return 255
		}
		return v + by
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: c.A}
}
