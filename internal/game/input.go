package game

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/sunnix1818/geo-countries/internal/world"
)

// panStep is the keyboard pan distance per frame in pixels.
const panStep = 8.0

// keyZoom is the zoom factor per +/- key press.
const keyZoom = 1.25

// inputState remembers the last cursor position so motion is only
// forwarded when the pointer actually moved.
type inputState struct {
	lastX, lastY int
	seen         bool
}

// keySource abstracts the keyboard so the key bindings can be tested
// without a running ebiten loop.
type keySource interface {
	justPressed(k ebiten.Key) bool
	pressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) justPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }

// readInput turns this frame's mouse and keyboard state into commands.
func (g *Game) readInput() []world.Command {
	var cmds []world.Command

	mx, my := ebiten.CursorPosition()
	at := world.Point{X: float64(mx), Y: float64(my)}
	if !g.input.seen || mx != g.input.lastX || my != g.input.lastY {
		cmds = append(cmds, world.PointerMoveCmd{At: at})
		g.input.lastX, g.input.lastY, g.input.seen = mx, my, true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cmds = append(cmds, world.PointerDownCmd{At: at})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		cmds = append(cmds, world.PointerUpCmd{At: at})
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		cmds = append(cmds, world.WheelCmd{Delta: wy, At: at})
	}

	return append(cmds, g.keyCommands(ebitenKeys{})...)
}

// keyCommands maps key bindings to world commands and toggles local state:
//
//	arrows/WASD pan   +/- zoom at centre   R recruit   F research
//	N next day        M next month         Space autoplay
//	H HUD             C copy selection
func (g *Game) keyCommands(keys keySource) []world.Command {
	var cmds []world.Command

	var dx, dy float64
	if keys.pressed(ebiten.KeyArrowLeft) || keys.pressed(ebiten.KeyA) {
		dx += panStep
	}
	if keys.pressed(ebiten.KeyArrowRight) || keys.pressed(ebiten.KeyD) {
		dx -= panStep
	}
	if keys.pressed(ebiten.KeyArrowUp) || keys.pressed(ebiten.KeyW) {
		dy += panStep
	}
	if keys.pressed(ebiten.KeyArrowDown) || keys.pressed(ebiten.KeyS) {
		dy -= panStep
	}
	if dx != 0 || dy != 0 {
		cmds = append(cmds, world.PanCmd{DX: dx, DY: dy})
	}

	centre := world.Point{X: float64(g.width) / 2, Y: float64(g.height) / 2}
	if keys.justPressed(ebiten.KeyEqual) || keys.justPressed(ebiten.KeyKPAdd) {
		cmds = append(cmds, world.ZoomCmd{At: centre, Factor: keyZoom})
	}
	if keys.justPressed(ebiten.KeyMinus) || keys.justPressed(ebiten.KeyKPSubtract) {
		cmds = append(cmds, world.ZoomCmd{At: centre, Factor: 1 / keyZoom})
	}

	if keys.justPressed(ebiten.KeyR) {
		cmds = append(cmds, world.RecruitCmd{})
	}
	if keys.justPressed(ebiten.KeyF) {
		cmds = append(cmds, world.ResearchCmd{})
	}
	if keys.justPressed(ebiten.KeyN) {
		cmds = append(cmds, world.AdvanceDaysCmd{Days: 1})
	}
	if keys.justPressed(ebiten.KeyM) {
		cmds = append(cmds, world.AdvanceDaysCmd{Days: world.DaysPerMonth})
	}

	if keys.justPressed(ebiten.KeySpace) {
		g.autoplay = !g.autoplay
	}
	if keys.justPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if keys.justPressed(ebiten.KeyC) {
		g.copySelection()
	}
	return cmds
}

// copySelection puts the selected country summary on the system clipboard.
func (g *Game) copySelection() {
	id, ok := g.world.Selected()
	if !ok {
		return
	}
	summary, err := g.world.CountrySummary(id)
	if err != nil {
		g.logger.Warn("copy selection", "err", err)
		return
	}
	if err := clipboard.WriteAll(summary); err != nil {
		g.logger.Warn("clipboard unavailable", "err", err)
		return
	}
	g.world.Messages.Add(g.world.Date(), world.MessageInfo, "Copied "+string(id))
}
