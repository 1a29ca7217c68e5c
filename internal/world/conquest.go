package world

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCountry = errors.New("unknown country")
	ErrUnknownNation  = errors.New("unknown nation")
	ErrConquestDenied = errors.New("conquest denied")
)

// DenyNotAdjacent is the only reason a conquest is refused.
const DenyNotAdjacent = "not-adjacent"

// ConquestDeniedError is a non-fatal refusal. The ownership map is left
// untouched.
type ConquestDeniedError struct {
	Actor  NationID
	Target CountryID
	Reason string
}

func (e *ConquestDeniedError) Error() string {
	return fmt.Sprintf("%s cannot conquer %s: %s", e.Actor, e.Target, e.Reason)
}

// Is lets errors.Is match ErrConquestDenied.
func (e *ConquestDeniedError) Is(target error) bool {
	return target == ErrConquestDenied
}

// Ownership maps every country to its owning nation. It starts reflexive:
// each country is owned by the nation of the same name.
type Ownership struct {
	owner map[CountryID]NationID
	order []CountryID
}

// NewOwnership builds the reflexive ownership map for the store.
func NewOwnership(store *GeometryStore) *Ownership {
	o := &Ownership{owner: make(map[CountryID]NationID, store.Len())}
	for _, id := range store.IDs() {
		o.owner[id] = NationID(id)
		o.order = append(o.order, id)
	}
	return o
}

// Owner returns the owner of a country.
func (o *Ownership) Owner(id CountryID) (NationID, bool) {
	n, ok := o.owner[id]
	return n, ok
}

// Territories lists the countries a nation owns in load order.
func (o *Ownership) Territories(n NationID) []CountryID {
	var out []CountryID
	for _, id := range o.order {
		if o.owner[id] == n {
			out = append(out, id)
		}
	}
	return out
}

// TerritoryCount returns how many countries a nation owns.
func (o *Ownership) TerritoryCount(n NationID) int {
	count := 0
	for _, owner := range o.owner {
		if owner == n {
			count++
		}
	}
	return count
}

// ConquestEngine is the only writer of the ownership map.
type ConquestEngine struct {
	own     *Ownership
	nations *NationMap
	oracle  AdjacencyOracle
	log     *EventLog
	clock   func() Clock
}

// NewConquestEngine wires the engine. clock stamps log entries and may be nil.
func NewConquestEngine(own *Ownership, nations *NationMap, oracle AdjacencyOracle, log *EventLog, clock func() Clock) *ConquestEngine {
	if clock == nil {
		clock = func() Clock { return StartClock }
	}
	return &ConquestEngine{own: own, nations: nations, oracle: oracle, log: log, clock: clock}
}

// SetOracle swaps the adjacency policy.
func (e *ConquestEngine) SetOracle(o AdjacencyOracle) { e.oracle = o }

// Oracle returns the active adjacency policy.
func (e *ConquestEngine) Oracle() AdjacencyOracle { return e.oracle }

// CanConquer evaluates the guard without mutating anything. A target the
// actor already owns passes trivially.
func (e *ConquestEngine) CanConquer(actor NationID, target CountryID) error {
	if !e.nations.Has(actor) {
		return fmt.Errorf("%w: %s", ErrUnknownNation, actor)
	}
	owner, ok := e.own.Owner(target)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCountry, target)
	}
	if owner == actor {
		return nil
	}
	held := e.own.Territories(actor)
	if len(held) == 0 {
		return nil
	}
	for _, c := range held {
		if e.oracle.IsAdjacent(target, c) {
			return nil
		}
	}
	return &ConquestDeniedError{Actor: actor, Target: target, Reason: DenyNotAdjacent}
}

// Conquer transfers target to actor when the guard holds. Conquering a
// country the actor already owns succeeds without a state change.
func (e *ConquestEngine) Conquer(actor NationID, target CountryID) error {
	if err := e.CanConquer(actor, target); err != nil {
		if errors.Is(err, ErrConquestDenied) {
			e.log.Add(e.clock(), string(actor), "conquest", "denied", string(target), 0)
		}
		return err
	}
	prev := e.own.owner[target]
	if prev == actor {
		return nil
	}
	e.own.owner[target] = actor
	e.log.Add(e.clock(), string(actor), "conquest", "taken", fmt.Sprintf("%s from %s", target, prev),
		float64(e.own.TerritoryCount(actor)))
	return nil
}

// Candidates lists, in load order, the countries actor could conquer right now.
func (e *ConquestEngine) Candidates(actor NationID) []CountryID {
	var out []CountryID
	for _, id := range e.own.order {
		if e.own.owner[id] == actor {
			continue
		}
		if e.CanConquer(actor, id) == nil {
			out = append(out, id)
		}
	}
	return out
}
