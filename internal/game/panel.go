package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/sunnix1818/geo-countries/internal/world"
)

const (
	msgPanelWidth  = 300
	msgMaxVisible  = 12
	msgLineHeight  = 14
	hudLineHeight  = 14
	hudPadX        = 6
	hudPadY        = 4
	tooltipPadding = 4
)

var (
	panelBG     = color.RGBA{R: 6, G: 10, B: 16, A: 210}
	panelBorder = color.RGBA{R: 60, G: 100, B: 140, A: 180}
	textColor   = color.RGBA{R: 220, G: 230, B: 240, A: 255}
)

// hudLines is the text of the player panel.
func hudLines(ps world.PanelStats, autoplay bool) []string {
	play := "paused"
	if autoplay {
		play = "running"
	}
	return []string{
		fmt.Sprintf("%s  [%s]", ps.Date, play),
		fmt.Sprintf("Nation: %s", ps.Nation),
		fmt.Sprintf("Leader: %s (%d)  %s", ps.Leader.Name, ps.Leader.Age, ps.Government),
		fmt.Sprintf("GDP: %.0f  Army: %.0f", ps.GDP, ps.Army),
		fmt.Sprintf("Territories: %d", ps.Territories),
		"click=conquer  drag=pan  wheel=zoom",
		"R=recruit F=research N=day M=month",
		"Space=autoplay C=copy H=hide",
	}
}

// drawHUD renders the player panel in the top-left corner. Text is drawn
// into hudBuf at 1x and then composited at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := hudLines(g.world.Panel(), g.autoplay)

	face := basicfont.Face7x13
	maxW := 0
	for _, l := range lines {
		if w := len(l) * face.Advance; w > maxW {
			maxW = w
		}
	}
	boxW := float32(maxW + hudPadX*2)
	boxH := float32(len(lines)*hudLineHeight + hudPadY*2)

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, 2, 2, boxW, boxH, panelBG, false)
	vector.StrokeRect(g.hudBuf, 2, 2, boxW, boxH, 1, panelBorder, false)
	for i, line := range lines {
		text.Draw(g.hudBuf, line, face, 2+hudPadX, 2+hudPadY+(i+1)*hudLineHeight-3, textColor)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

func messageColor(k world.MessageKind) color.RGBA {
	switch k {
	case world.MessageSuccess:
		return color.RGBA{R: 120, G: 230, B: 120, A: 255}
	case world.MessageDenied:
		return color.RGBA{R: 255, G: 110, B: 90, A: 255}
	default:
		return textColor
	}
}

// visibleMessages returns the newest n messages, oldest first.
func visibleMessages(all []world.Message, n int) []world.Message {
	if len(all) > n {
		return all[len(all)-n:]
	}
	return all
}

// drawMessages renders the message panel in the bottom-right corner.
func drawMessages(screen *ebiten.Image, msgs []world.Message, width, height int) {
	msgs = visibleMessages(msgs, msgMaxVisible)
	if len(msgs) == 0 {
		return
	}
	panelH := len(msgs)*msgLineHeight + hudPadY*2
	x := float32(width - msgPanelWidth - 8)
	y := float32(height - panelH - 8)
	vector.FillRect(screen, x, y, msgPanelWidth, float32(panelH), panelBG, false)
	vector.StrokeRect(screen, x, y, msgPanelWidth, float32(panelH), 1, panelBorder, false)
	for i, m := range msgs {
		line := fmt.Sprintf("%02d/%02d %s", m.Date.Day, m.Date.Month, m.Text)
		text.Draw(screen, line, basicfont.Face7x13, int(x)+hudPadX, int(y)+hudPadY+(i+1)*msgLineHeight-3, messageColor(m.Kind))
	}
}

// drawTooltip renders a label just below and right of the pointer.
func drawTooltip(screen *ebiten.Image, label string, at world.Point) {
	face := basicfont.Face7x13
	w := float32(len(label)*face.Advance + tooltipPadding*2)
	h := float32(13 + tooltipPadding*2)
	x := float32(at.X) + 12
	y := float32(at.Y) + 12
	vector.FillRect(screen, x, y, w, h, panelBG, false)
	vector.StrokeRect(screen, x, y, w, h, 1, panelBorder, false)
	text.Draw(screen, label, face, int(x)+tooltipPadding, int(y)+tooltipPadding+10, textColor)
}
