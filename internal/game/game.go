package game

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"

	"github.com/sunnix1818/geo-countries/internal/world"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

var oceanColor = color.RGBA{R: 18, G: 34, B: 58, A: 255}

// Game adapts a world.World to ebiten. It forwards input as world commands,
// drains them once per Update, and repaints the map only when the world
// reports a change; every other frame re-blits the cached map image.
type Game struct {
	width  int
	height int
	world  *world.World
	logger *slog.Logger

	// Offscreen buffer holding the last rendered map.
	mapBuf *ebiten.Image
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	input inputState

	showHUD  bool
	autoplay bool
	limiter  *rate.Limiter
	repaints int
	// stale forces a repaint after the buffers were reallocated.
	stale bool
}

// New wraps w. Autoplay advances one day per limiter token when enabled.
func New(w *world.World, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	vw, vh := w.View.Size()
	g := &Game{
		width:    int(vw),
		height:   int(vh),
		world:    w,
		logger:   logger,
		showHUD:  true,
		autoplay: w.Config.Autoplay.Enabled,
		limiter:  newDayLimiter(w.Config.Autoplay.DaysPerSecond),
	}
	g.allocBuffers()
	return g
}

func newDayLimiter(daysPerSecond float64) *rate.Limiter {
	if daysPerSecond <= 0 {
		return rate.NewLimiter(0, 0)
	}
	return rate.NewLimiter(rate.Limit(daysPerSecond), 1)
}

func (g *Game) allocBuffers() {
	g.mapBuf = ebiten.NewImage(g.width, g.height)
	g.hudBuf = ebiten.NewImage(max(1, g.width/hudScale), max(1, g.height/hudScale))
	g.stale = true
}

// Update reads input, applies queued commands and runs autoplay.
func (g *Game) Update() error {
	g.world.Enqueue(g.readInput()...)

	if g.autoplay && g.limiter.Allow() {
		g.world.Enqueue(world.AdvanceDaysCmd{Days: 1})
	}

	for _, err := range g.world.Drain() {
		if err != nil {
			g.logger.Debug("command rejected", "err", err)
		}
	}
	return nil
}

// Draw blits the cached map, repainting it first if the world changed.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(oceanColor)

	if g.stale || g.world.Dirty() {
		g.mapBuf.Clear()
		drawFrame(g.mapBuf, g.world.Frame())
		g.repaints++
		g.stale = false
	}
	screen.DrawImage(g.mapBuf, nil)

	frame := g.world.Frame()
	if frame.Tooltip != "" {
		drawTooltip(screen, frame.Tooltip, frame.TooltipAt)
	}
	if g.showHUD {
		g.drawHUD(screen)
	}
	drawMessages(screen, g.world.Messages.Recent(), g.width, g.height)
}

// Layout follows the window size and resizes the map to fill it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.allocBuffers()
		g.world.Enqueue(world.ResizeCmd{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return g.width, g.height
}

// Repaints returns how many times the map buffer was redrawn.
func (g *Game) Repaints() int {
	return g.repaints
}
