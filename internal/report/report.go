// Package report records what a synchronisation run did, entry by entry.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/digest"
)

// Action is what happened to a document.
type Action string

const (
	ActionAdd   Action = "add"
	ActionGet   Action = "get"
	ActionDrop  Action = "drop"
	ActionPrune Action = "prune"
	ActionDrain Action = "drain"
	ActionFail  Action = "fail"
	// ActionChore covers setting up and tearing down the cache.
	ActionChore Action = "chore"
)

// Entry is one line of the report.
type Entry struct {
	Timestamp time.Time          `json:"timestamp"`
	Action    Action             `json:"action"`
	Kind      card.Kind          `json:"kind,omitempty"`
	ID        string             `json:"id,omitempty"`
	Outcome   string             `json:"outcome,omitempty"`
	Checksum  digest.Fingerprint `json:"checksum,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// Report is an ordered log of entries for one run. It is not safe for
// concurrent use.
type Report struct {
	RunID   uuid.UUID `json:"run_id"`
	Session string    `json:"session"`
	Entries []Entry   `json:"entries"`

	now func() time.Time
}

// New returns an empty report with a time-ordered run id.
func New(session string) (*Report, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	return NewWithID(id, session, time.Now), nil
}

// NewWithID returns an empty report with a fixed id and clock.
func NewWithID(id uuid.UUID, session string, now func() time.Time) *Report {
	return &Report{
		RunID:   id,
		Session: session,
		Entries: []Entry{},
		now:     now,
	}
}

// Log appends e, stamping it with the report clock. A nil report ignores it.
func (r *Report) Log(e Entry) {
	if r == nil {
		return
	}
	e.Timestamp = r.now().UTC()
	r.Entries = append(r.Entries, e)
}

// Failures returns the entries logged with ActionFail.
func (r *Report) Failures() []Entry {
	if r == nil {
		return nil
	}
	var out []Entry
	for _, e := range r.Entries {
		if e.Action == ActionFail {
			out = append(out, e)
		}
	}
	return out
}

// Tally counts entries by action and outcome, keyed "action" or
// "action/outcome".
func (r *Report) Tally() map[string]int {
	tally := map[string]int{}
	if r == nil {
		return tally
	}
	for _, e := range r.Entries {
		key := string(e.Action)
		if e.Outcome != "" {
			key += "/" + e.Outcome
		}
		tally[key]++
	}
	return tally
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteText writes one line per entry followed by a tally.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "run %s session %s\n", r.RunID, r.Session); err != nil {
		return err
	}
	for _, e := range r.Entries {
		line := fmt.Sprintf("%-6s %-13s %-24s %-8s %s",
			e.Action, dash(string(e.Kind)), dash(e.ID), dash(e.Outcome), e.Message)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	tally := r.Tally()
	keys := make([]string, 0, len(tally))
	for k := range tally {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s: %d\n", k, tally[k]); err != nil {
			return err
		}
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
