package world

import (
	"errors"
	"fmt"
	"math/rand"
)

// NationID is the name of a nation.
type NationID string

// Calendar limits. Every month has 30 days.
const (
	DaysPerMonth  = 30
	MonthsPerYear = 12
)

// ErrInsufficientFunds is returned by player actions that would push GDP
// below a configured floor.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Government is a nation's form of government.
type Government int

const (
	Democracy Government = iota
	Monarchy
	Dictatorship
	Republic
	governmentCount
)

func (g Government) String() string {
	switch g {
	case Democracy:
		return "Democracy"
	case Monarchy:
		return "Monarchy"
	case Dictatorship:
		return "Dictatorship"
	case Republic:
		return "Republic"
	default:
		return fmt.Sprintf("Government(%d)", int(g))
	}
}

// Leader heads a nation.
type Leader struct {
	Name string
	Age  int
}

// Nation carries the economic and military stats of one country name.
// GDP and Army are nominally non-negative but no floor is enforced unless
// configured.
type Nation struct {
	ID         NationID
	GDP        float64
	Army       float64
	Government Government
	Leader     Leader
}

// NationMap holds nations in creation order. Nations are never removed.
type NationMap struct {
	byID  map[NationID]*Nation
	order []NationID
}

// NewNationMap returns an empty map.
func NewNationMap() *NationMap {
	return &NationMap{byID: make(map[NationID]*Nation)}
}

// Add inserts n unless a nation with the same id exists; it returns the
// stored nation either way.
func (m *NationMap) Add(n *Nation) *Nation {
	if cur, ok := m.byID[n.ID]; ok {
		return cur
	}
	m.byID[n.ID] = n
	m.order = append(m.order, n.ID)
	return n
}

// Get looks up a nation.
func (m *NationMap) Get(id NationID) (*Nation, bool) {
	n, ok := m.byID[id]
	return n, ok
}

// Has reports whether id exists.
func (m *NationMap) Has(id NationID) bool {
	_, ok := m.byID[id]
	return ok
}

// IDs returns nation ids in creation order.
func (m *NationMap) IDs() []NationID {
	return append([]NationID(nil), m.order...)
}

// Len returns the number of nations.
func (m *NationMap) Len() int { return len(m.order) }

// Each calls fn for every nation in creation order.
func (m *NationMap) Each(fn func(*Nation)) {
	for _, id := range m.order {
		fn(m.byID[id])
	}
}

var leaderNames = []string{
	"Adler", "Bianchi", "Costa", "Dubois", "Eriksen", "Fischer", "Garcia", "Horvat",
	"Ivanova", "Jansen", "Kowalski", "Laurent", "Moreau", "Novak", "Okafor", "Petrov",
	"Quinn", "Rossi", "Sato", "Tanaka", "Ueda", "Varga", "Weber", "Yilmaz", "Zhou",
}

// SeedNations creates one nation per country name with the configured
// starting stats. Government and leader come from rng so a fixed seed
// reproduces the same world.
func SeedNations(ids []CountryID, cfg EconomyConfig, rng *rand.Rand) *NationMap {
	m := NewNationMap()
	for _, id := range ids {
		m.Add(newNation(NationID(id), cfg, rng))
	}
	return m
}

func newNation(id NationID, cfg EconomyConfig, rng *rand.Rand) *Nation {
	return &Nation{
		ID:         id,
		GDP:        cfg.StartingGDP,
		Army:       cfg.StartingArmy,
		Government: Government(rng.Intn(int(governmentCount))),
		Leader: Leader{
			Name: leaderNames[rng.Intn(len(leaderNames))],
			Age:  35 + rng.Intn(41),
		},
	}
}

// Clock is the simplified game calendar.
type Clock struct {
	Day   int
	Month int
	Year  int
}

// StartClock is the first day of the game.
var StartClock = Clock{Day: 1, Month: 1, Year: 1}

func (c Clock) String() string {
	return fmt.Sprintf("Day %d, Month %d, Year %d", c.Day, c.Month, c.Year)
}

// Ordinal counts days since the start of year 1, starting at 1.
func (c Clock) Ordinal() int {
	return (c.Year-1)*MonthsPerYear*DaysPerMonth + (c.Month-1)*DaysPerMonth + c.Day
}

// EconomyClock advances the calendar and runs the monthly economy tick.
type EconomyClock struct {
	clock   Clock
	nations *NationMap
	cfg     EconomyConfig
	log     *EventLog
	ticks   int
}

// NewEconomyClock starts at StartClock.
func NewEconomyClock(nations *NationMap, cfg EconomyConfig, log *EventLog) *EconomyClock {
	return &EconomyClock{clock: StartClock, nations: nations, cfg: cfg, log: log}
}

// Clock returns the current date.
func (e *EconomyClock) Clock() Clock { return e.clock }

// Ticks returns how many monthly ticks have run.
func (e *EconomyClock) Ticks() int { return e.ticks }

// AdvanceDay moves one day forward, rolling into the next month after day 30.
func (e *EconomyClock) AdvanceDay() {
	e.clock.Day++
	if e.clock.Day > DaysPerMonth {
		e.clock.Day = 1
		e.AdvanceMonth()
	}
}

// AdvanceMonth moves one month forward. The economy tick runs before the
// month overflow check, so December's tick lands in the old year.
func (e *EconomyClock) AdvanceMonth() {
	e.clock.Month++
	e.MonthTick()
	if e.clock.Month > MonthsPerYear {
		e.clock.Month = 1
		e.AdvanceYear()
	}
}

// AdvanceYear increments the year only.
func (e *EconomyClock) AdvanceYear() {
	e.clock.Year++
	e.log.Add(e.clock, "--", "calendar", "new_year", fmt.Sprintf("year %d", e.clock.Year), float64(e.clock.Year))
}

// MonthTick grows every nation: gdp *= growth rate, then army += gdp/divisor.
func (e *EconomyClock) MonthTick() {
	e.ticks++
	var total float64
	e.nations.Each(func(n *Nation) {
		n.GDP *= e.cfg.GrowthRate
		n.Army += n.GDP / e.cfg.ArmyDivisor
		total += n.GDP
	})
	e.log.AddVerbose(e.clock, "--", "economy", "month_tick", fmt.Sprintf("tick %d", e.ticks), total)
}

// Recruit trades GDP for army.
func (e *EconomyClock) Recruit(id NationID) error {
	n, err := e.spend(id, e.cfg.RecruitCost)
	if err != nil {
		return err
	}
	n.Army += e.cfg.RecruitArmy
	e.log.Add(e.clock, string(id), "action", "recruit", fmt.Sprintf("army %.0f gdp %.0f", n.Army, n.GDP), n.Army)
	return nil
}

// Research is a pure GDP cost.
func (e *EconomyClock) Research(id NationID) error {
	n, err := e.spend(id, e.cfg.ResearchCost)
	if err != nil {
		return err
	}
	e.log.Add(e.clock, string(id), "action", "research", fmt.Sprintf("gdp %.0f", n.GDP), n.GDP)
	return nil
}

func (e *EconomyClock) spend(id NationID, cost float64) (*Nation, error) {
	n, ok := e.nations.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNation, id)
	}
	if e.cfg.GDPFloor != nil && n.GDP-cost < *e.cfg.GDPFloor {
		return nil, fmt.Errorf("%w: %s has %.0f, needs %.0f above floor %.0f", ErrInsufficientFunds, id, n.GDP, cost, *e.cfg.GDPFloor)
	}
	n.GDP -= cost
	return n, nil
}
