package world

import "fmt"

// Stroke widths for country borders.
const (
	BorderWidth    = 0.5
	HighlightWidth = 2.0
)

// HighlightColor outlines the selected country.
const HighlightColor = "#ffffff"

// DrawCommand is one filled and stroked country shape in screen space.
// Commands are emitted in ascending Z, which is the load order.
type DrawCommand struct {
	Country     CountryID
	Owner       NationID
	ScreenRings [][]Point
	FillColor   string
	StrokeColor string
	StrokeWidth float64
	Z           int
	Selected    bool
	Hovered     bool
}

// CapitalMarker is a projected capital position.
type CapitalMarker struct {
	Country CountryID
	At      Point
}

// Frame is everything the renderer needs for one draw pass.
type Frame struct {
	Commands  []DrawCommand
	Capitals  []CapitalMarker
	Tooltip   string
	TooltipAt Point
	Revision  uint64
}

// buildFrame projects every country under the current viewport. Countries
// without geometry are skipped; an empty store yields an empty frame.
func (w *World) buildFrame() *Frame {
	f := &Frame{
		Commands: make([]DrawCommand, 0, w.Store.Len()),
		Revision: w.revision,
	}
	for _, c := range w.Store.Countries() {
		if !c.HasGeometry() {
			continue
		}
		owner, _ := w.Ownership.Owner(c.ID)
		cmd := DrawCommand{
			Country:     c.ID,
			Owner:       owner,
			FillColor:   Color(string(owner)),
			StrokeColor: StrokeColor,
			StrokeWidth: BorderWidth,
			Z:           c.Order(),
			Selected:    c.ID == w.selected,
			Hovered:     c.ID == w.hovered,
		}
		if cmd.Selected {
			cmd.StrokeColor = HighlightColor
			cmd.StrokeWidth = HighlightWidth
		}
		for _, poly := range c.Polygons {
			for _, ring := range poly {
				pts := make([]Point, len(ring))
				for i, v := range ring {
					pts[i] = w.View.ProjectPoint(v)
				}
				cmd.ScreenRings = append(cmd.ScreenRings, pts)
			}
		}
		f.Commands = append(f.Commands, cmd)
		if c.Capital != nil {
			f.Capitals = append(f.Capitals, CapitalMarker{Country: c.ID, At: w.View.ProjectPoint(*c.Capital)})
		}
	}
	if w.hovered != "" {
		owner, _ := w.Ownership.Owner(w.hovered)
		f.Tooltip = fmt.Sprintf("%s (owner: %s)", w.hovered, owner)
		f.TooltipAt = w.pointer
	}
	return f
}
