package world

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// EventEntry is one recorded world event.
type EventEntry struct {
	Day      int    // Clock.Ordinal at the time of the event
	Date     Clock  // calendar date
	Actor    string // nation id, or "--" for global events
	Category string // load, conquest, economy, calendar, action
	Key      string // specific event name within the category
	Value    string // human-readable detail
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[D=0031] France     conquest  taken            Germany from Germany
func (e EventEntry) String() string {
	return fmt.Sprintf("[D=%04d] %-10s %-9s %-16s %s",
		e.Day, e.Actor, e.Category, e.Key, e.Value)
}

// EventLog collects structured events. It is unbounded and machine-readable;
// MessageLog is the short on-screen counterpart. Every entry is mirrored to
// the attached slog logger, if any. A nil *EventLog discards everything.
type EventLog struct {
	entries []EventEntry
	verbose bool
	logger  *slog.Logger
}

// NewEventLog creates an EventLog. Verbose enables per-tick economy entries.
func NewEventLog(verbose bool, logger *slog.Logger) *EventLog {
	return &EventLog{verbose: verbose, logger: logger}
}

// Add records a new entry.
func (el *EventLog) Add(date Clock, actor, category, key, value string, numVal float64) {
	if el == nil {
		return
	}
	e := EventEntry{
		Day:      date.Ordinal(),
		Date:     date,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	el.entries = append(el.entries, e)
	if el.logger != nil {
		el.logger.Log(context.Background(), levelFor(category, key), category+":"+key,
			"day", e.Day, "actor", actor, "value", value)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(date Clock, actor, category, key, value string, numVal float64) {
	if el == nil || !el.verbose {
		return
	}
	el.Add(date, actor, category, key, value, numVal)
}

func levelFor(category, key string) slog.Level {
	switch {
	case category == "load" && key == "dropped":
		return slog.LevelWarn
	case category == "conquest" && key == "taken":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventEntry {
	if el == nil {
		return nil
	}
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range el.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for one nation.
func (el *EventLog) FilterActor(actor string) []EventEntry {
	var out []EventEntry
	for _, e := range el.Entries() {
		if e.Actor == actor {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.Filter(category, key) {
		if valueSubstr == "" || strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
