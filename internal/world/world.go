package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// DefaultPlayer names the player nation when neither config nor data
// provides one.
const DefaultPlayer = "Player"

// clickSlop is how far, in pixels, a press may travel and still count as a click.
const clickSlop = 4.0

// wheelStep is the zoom factor per wheel notch.
const wheelStep = 1.1

// Source is the parsed input data of a world.
type Source struct {
	Features []Feature
	Capitals []Capital
}

// World is the whole simulation state: geometry, viewport, nations,
// ownership and calendar. It is not safe for concurrent use; other
// goroutines hand work to it through Enqueue and the owner calls Drain.
type World struct {
	SessionID uuid.UUID

	Config    Config
	View      *Viewport
	Store     *GeometryStore
	Nations   *NationMap
	Ownership *Ownership
	Centroids *Centroids
	Hit       HitTester
	Conquest  *ConquestEngine
	Economy   *EconomyClock
	Log       *EventLog
	Messages  *MessageLog

	player   NationID
	hovered  CountryID
	selected CountryID
	pointer  Point
	drag     dragState

	revision  uint64
	frame     *Frame
	frameView uint64

	queueMu sync.Mutex
	queue   []Command
}

type dragState struct {
	active bool
	moved  bool
	start  Point
	last   Point
}

// New builds a world from config and source data. Malformed features are
// dropped and logged; only invalid config is an error.
func New(cfg Config, src Source, logger *slog.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		SessionID: uuid.New(),
		Config:    cfg,
		Store:     NewGeometryStore(),
		Messages:  NewMessageLog(),
	}
	if logger != nil {
		logger = logger.With("session", w.SessionID.String())
	}
	w.Log = NewEventLog(cfg.Verbose, logger)

	rep := w.Store.Load(src.Features)
	for _, d := range rep.Dropped {
		w.Log.Add(StartClock, "--", "load", "dropped", d.String(), float64(d.Index))
	}
	for _, name := range w.Store.SetCapitals(src.Capitals) {
		w.Log.Add(StartClock, "--", "load", "capital_unmatched", name, 0)
	}
	w.Log.Add(StartClock, "--", "load", "countries", fmt.Sprintf("%d loaded, %d merged, %d dropped",
		rep.Loaded, rep.Merged, len(rep.Dropped)), float64(rep.Loaded))

	w.View = NewViewport(cfg.View.Width, cfg.View.Height, cfg.View.MinScale, cfg.View.MaxScale)
	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- game only
	w.Nations = SeedNations(w.Store.IDs(), cfg.Economy, rng)

	w.player = NationID(cfg.Player)
	if w.player == "" {
		w.player = DefaultPlayer
		if ids := w.Store.IDs(); len(ids) > 0 {
			w.player = NationID(ids[0])
		}
	}
	if !w.Nations.Has(w.player) {
		// A player without a home country starts landless and may take any country first.
		w.Nations.Add(newNation(w.player, cfg.Economy, rng))
	}

	w.Ownership = NewOwnership(w.Store)
	w.Centroids = NewCentroids(w.Store, w.View)
	oracle, err := NewAdjacencyOracle(cfg.Adjacency.Policy, w.Store, w.Centroids, cfg.Adjacency.Threshold, cfg.Adjacency.BorderEpsilon)
	if err != nil {
		return nil, err
	}
	w.Hit, err = NewHitTester(cfg.HitTest.Strategy, w.Store, w.View, cfg.HitTest.Radius)
	if err != nil {
		return nil, err
	}
	w.Economy = NewEconomyClock(w.Nations, cfg.Economy, w.Log)
	w.Conquest = NewConquestEngine(w.Ownership, w.Nations, oracle, w.Log, w.Economy.Clock)
	w.markDirty()
	return w, nil
}

// Player returns the nation controlled by the player.
func (w *World) Player() NationID { return w.player }

// Selected returns the selected country, if any.
func (w *World) Selected() (CountryID, bool) { return w.selected, w.selected != "" }

// Hovered returns the country under the pointer, if any.
func (w *World) Hovered() (CountryID, bool) { return w.hovered, w.hovered != "" }

// Date returns the simulated date.
func (w *World) Date() Clock { return w.Economy.Clock() }

func (w *World) markDirty() { w.revision++ }

// Dirty reports whether state changed since the last Frame call.
func (w *World) Dirty() bool {
	return w.frame == nil || w.frame.Revision != w.revision || w.frameView != w.View.Revision()
}

// Frame returns the draw list for the current state, rebuilding it only
// when something changed.
func (w *World) Frame() *Frame {
	if w.Dirty() {
		w.frame = w.buildFrame()
		w.frameView = w.View.Revision()
	}
	return w.frame
}

// PointerMove updates hover, or pans while a drag is active.
func (w *World) PointerMove(p Point) {
	w.pointer = p
	if w.drag.active {
		w.View.Pan(p.X-w.drag.last.X, p.Y-w.drag.last.Y)
		w.drag.last = p
		if p.Dist(w.drag.start) > clickSlop {
			w.drag.moved = true
		}
		return
	}
	id, _ := w.Hit.HitTest(p)
	if id != w.hovered {
		w.hovered = id
		w.markDirty()
	} else if id != "" {
		// Tooltip follows the pointer.
		w.markDirty()
	}
}

// PointerDown starts a potential drag.
func (w *World) PointerDown(p Point) {
	w.pointer = p
	w.drag = dragState{active: true, start: p, last: p}
}

// PointerUp ends a drag. A release close to the press point is a click,
// whose result is returned.
func (w *World) PointerUp(p Point) (CountryID, error) {
	w.pointer = p
	wasClick := w.drag.active && !w.drag.moved && p.Dist(w.drag.start) <= clickSlop
	w.drag = dragState{}
	if !wasClick {
		return "", nil
	}
	return w.Click(p)
}

// Pan moves the map by a screen delta.
func (w *World) Pan(dx, dy float64) {
	w.View.Pan(dx, dy)
}

// Wheel zooms around p by wheelStep per notch; positive delta zooms in.
func (w *World) Wheel(delta float64, p Point) {
	if delta == 0 {
		return
	}
	w.View.ZoomAt(p, math.Pow(wheelStep, delta))
}

// ZoomAt zooms around anchor by factor.
func (w *World) ZoomAt(anchor Point, factor float64) {
	w.View.ZoomAt(anchor, factor)
}

// Resize follows a change of the drawing surface.
func (w *World) Resize(width, height float64) {
	w.View.Resize(width, height)
}

// Click selects the country under p and tries to conquer it for the
// player. It returns the hit country ("" for none) and any denial.
func (w *World) Click(p Point) (CountryID, error) {
	id, ok := w.Hit.HitTest(p)
	if !ok {
		if w.selected != "" {
			w.selected = ""
			w.markDirty()
		}
		return "", nil
	}
	if id != w.selected {
		w.selected = id
		w.markDirty()
	}
	return id, w.Conquer(id)
}

// Select marks a country as selected without conquering it.
func (w *World) Select(id CountryID) error {
	if _, ok := w.Store.Country(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCountry, id)
	}
	w.selected = id
	w.markDirty()
	return nil
}

// Conquer attempts to take target for the player nation. Denials are
// reported to the message log and returned; they never change ownership.
func (w *World) Conquer(target CountryID) error {
	before, _ := w.Ownership.Owner(target)
	err := w.Conquest.Conquer(w.player, target)
	var denied *ConquestDeniedError
	switch {
	case errors.As(err, &denied):
		w.Messages.Add(w.Date(), MessageDenied, fmt.Sprintf("%s is not adjacent to your territory", target))
	case err != nil:
		w.Messages.Add(w.Date(), MessageInfo, err.Error())
	case before != w.player:
		w.Messages.Add(w.Date(), MessageSuccess, fmt.Sprintf("Conquered %s", target))
		w.markDirty()
	}
	return err
}

// Recruit spends player GDP on army.
func (w *World) Recruit() error {
	return w.playerAction("Recruited troops", w.Economy.Recruit)
}

// Research spends player GDP.
func (w *World) Research() error {
	return w.playerAction("Funded research", w.Economy.Research)
}

func (w *World) playerAction(done string, act func(NationID) error) error {
	if err := act(w.player); err != nil {
		w.Messages.Add(w.Date(), MessageDenied, err.Error())
		return err
	}
	w.Messages.Add(w.Date(), MessageInfo, done)
	w.markDirty()
	return nil
}

// AdvanceDay moves the calendar one day.
func (w *World) AdvanceDay() {
	w.Economy.AdvanceDay()
	w.markDirty()
}

// AdvanceDays moves the calendar n days.
func (w *World) AdvanceDays(n int) {
	for i := 0; i < n; i++ {
		w.Economy.AdvanceDay()
	}
	if n > 0 {
		w.markDirty()
	}
}

// PanelStats is what the UI panel shows about the player.
type PanelStats struct {
	Nation      NationID
	GDP         float64
	Army        float64
	Government  Government
	Leader      Leader
	Territories int
	Date        Clock
}

// Panel returns the current player stats.
func (w *World) Panel() PanelStats {
	ps := PanelStats{
		Nation:      w.player,
		Territories: w.Ownership.TerritoryCount(w.player),
		Date:        w.Date(),
	}
	if n, ok := w.Nations.Get(w.player); ok {
		ps.GDP = n.GDP
		ps.Army = n.Army
		ps.Government = n.Government
		ps.Leader = n.Leader
	}
	return ps
}

// CountrySummary describes one country for tooltips and clipboard export.
func (w *World) CountrySummary(id CountryID) (string, error) {
	owner, ok := w.Ownership.Owner(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCountry, id)
	}
	s := fmt.Sprintf("%s\towner=%s\tcolor=%s", id, owner, Color(string(owner)))
	if n, ok := w.Nations.Get(owner); ok {
		s += fmt.Sprintf("\tgdp=%.0f\tarmy=%.0f\tgovernment=%s\tleader=%s (%d)",
			n.GDP, n.Army, n.Government, n.Leader.Name, n.Leader.Age)
	}
	return s, nil
}
