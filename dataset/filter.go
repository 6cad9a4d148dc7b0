// SPDX-License-Identifier: MIT
// Package dataset: eligibility filtering to a fixpoint.
//
// Dropping an event can strand a competitor below the event-count floor and
// dropping a competitor can strand an event below the competitor-count
// floor, so a single pass is not enough. Passes repeat until a full pass
// drops nothing; with finite input the loop always terminates.

package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Rules configures Filter. The zero value keeps everything.
type Rules struct {
	// Events is an optional whitelist; empty admits every event.
	Events []string

	// NotBefore drops observations dated earlier than the cutoff. The zero
	// time disables the window. Undated observations carry the zero time
	// and therefore never survive an active window: a recency rule demands
	// dated input.
	NotBefore time.Time

	// MinEventsPerCompetitor drops competitors seen in fewer distinct
	// events. 0 disables the floor.
	MinEventsPerCompetitor int

	// MinCompetitorsPerEvent drops events with fewer distinct competitors.
	// 0 disables the floor.
	MinCompetitorsPerEvent int

	// Logger optionally records per-pass decisions (Debug) and the final
	// summary (Info). Nil keeps filtering silent.
	Logger *logrus.Entry
}

// FilterReport accounts for every record the rules removed.
type FilterReport struct {
	// Input and Kept are observation counts before and after filtering.
	Input int
	Kept  int

	// DroppedByWhitelist counts observations rejected by the event list.
	DroppedByWhitelist int

	// DroppedByRecency counts observations older than the NotBefore cutoff.
	DroppedByRecency int

	// DroppedCompetitors and DroppedEvents list the identifiers removed by
	// the floors, sorted for stable output.
	DroppedCompetitors []string
	DroppedEvents      []string

	// Passes is the number of fixpoint passes executed (≥1 when any floor
	// is active).
	Passes int
}

// Filter applies the eligibility rules and returns the surviving
// observations in their original order plus a full accounting.
//
// Errors: ErrBadRules for a negative floor. An empty result is NOT an
// error; downstream Pivot rejects it if the caller proceeds regardless.
//
// Complexity: O(passes · n); passes is bounded by the number of distinct
// identifiers.
func Filter(obs []Observation, rules Rules) ([]Observation, *FilterReport, error) {
	// Stage 1 - validation.
	if rules.MinEventsPerCompetitor < 0 {
		return nil, nil, fmt.Errorf("Filter: MinEventsPerCompetitor=%d: %w", rules.MinEventsPerCompetitor, ErrBadRules)
	}
	if rules.MinCompetitorsPerEvent < 0 {
		return nil, nil, fmt.Errorf("Filter: MinCompetitorsPerEvent=%d: %w", rules.MinCompetitorsPerEvent, ErrBadRules)
	}

	report := &FilterReport{Input: len(obs)}

	// Stage 2 - whitelist pass.
	kept := obs
	if len(rules.Events) > 0 {
		allowed := make(map[string]bool, len(rules.Events))
		for _, ev := range rules.Events {
			allowed[ev] = true
		}

		kept = make([]Observation, 0, len(obs))
		for _, o := range obs {
			if !allowed[o.Event] {
				report.DroppedByWhitelist++
				continue
			}
			kept = append(kept, o)
		}

		if rules.Logger != nil {
			rules.Logger.WithFields(logrus.Fields{
				"allowed_events": len(rules.Events),
				"dropped":        report.DroppedByWhitelist,
			}).Debug("event whitelist applied")
		}
	}

	// Stage 3 - recency window.
	if !rules.NotBefore.IsZero() {
		next := make([]Observation, 0, len(kept))
		for _, o := range kept {
			if o.Date.Before(rules.NotBefore) {
				report.DroppedByRecency++
				continue
			}
			next = append(next, o)
		}
		kept = next

		if rules.Logger != nil {
			rules.Logger.WithFields(logrus.Fields{
				"not_before": rules.NotBefore.Format("2006-01-02"),
				"dropped":    report.DroppedByRecency,
			}).Debug("recency window applied")
		}
	}

	// Stage 4 - fixpoint floors.
	var (
		deadCompetitors = map[string]bool{}
		deadEvents      = map[string]bool{}
	)
	for rules.MinEventsPerCompetitor > 0 || rules.MinCompetitorsPerEvent > 0 {
		report.Passes++

		var (
			eventsOf      = map[string]map[string]bool{} // competitor → distinct events
			competitorsOf = map[string]map[string]bool{} // event → distinct competitors
		)
		for _, o := range kept {
			if eventsOf[o.Competitor] == nil {
				eventsOf[o.Competitor] = map[string]bool{}
			}
			eventsOf[o.Competitor][o.Event] = true
			if competitorsOf[o.Event] == nil {
				competitorsOf[o.Event] = map[string]bool{}
			}
			competitorsOf[o.Event][o.Competitor] = true
		}

		var droppedC, droppedE int
		for c, evs := range eventsOf {
			if rules.MinEventsPerCompetitor > 0 && len(evs) < rules.MinEventsPerCompetitor {
				deadCompetitors[c] = true
				droppedC++
			}
		}
		for e, cs := range competitorsOf {
			if rules.MinCompetitorsPerEvent > 0 && len(cs) < rules.MinCompetitorsPerEvent {
				deadEvents[e] = true
				droppedE++
			}
		}

		if rules.Logger != nil {
			rules.Logger.WithFields(logrus.Fields{
				"pass":                report.Passes,
				"competitors_dropped": droppedC,
				"events_dropped":      droppedE,
			}).Debug("eligibility pass")
		}

		if droppedC == 0 && droppedE == 0 {
			break // fixpoint reached
		}

		next := make([]Observation, 0, len(kept))
		for _, o := range kept {
			if deadCompetitors[o.Competitor] || deadEvents[o.Event] {
				continue
			}
			next = append(next, o)
		}
		kept = next
	}

	// Stage 5 - stable report ordering.
	report.Kept = len(kept)
	report.DroppedCompetitors = sortedKeys(deadCompetitors)
	report.DroppedEvents = sortedKeys(deadEvents)

	if rules.Logger != nil {
		rules.Logger.WithFields(logrus.Fields{
			"input":  report.Input,
			"kept":   report.Kept,
			"passes": report.Passes,
		}).Info("filtering complete")
	}

	return kept, report, nil
}

// sortedKeys returns the map's keys in ascending order.
func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
