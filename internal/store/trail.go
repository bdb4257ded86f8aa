package store

import (
	"context"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/digest"
)

// kindTables maps a resource kind to its owning table. Table names are
// interpolated into queries, so only values from this map may be used.
var kindTables = map[card.Kind]string{
	card.KindStandard:     "standard",
	card.KindGuidance:     "guidance",
	card.KindLicence:      "licence",
	card.KindOrganisation: "organisation",
	card.KindTopic:        "topic",
	card.KindTheme:        "theme",
	card.KindSection:      "section",
}

func tableFor(kind card.Kind) (string, error) {
	table, ok := kindTables[kind]
	if !ok {
		return "", fmt.Errorf("no table for resource kind %q", kind)
	}
	return table, nil
}

// TrailRecord is a row of the session trail.
type TrailRecord struct {
	Checksum         digest.Fingerprint
	ResourceType     card.Kind
	SessionTimestamp string
}

func scanTrail(row scanner) (TrailRecord, error) {
	var r TrailRecord
	err := row.Scan(&r.Checksum, &r.ResourceType, &r.SessionTimestamp)
	return r, err
}

// InsertTrailmark marks checksum as confirmed present in the current session.
// Marking the same checksum twice is a no-op.
func (t *Tx) InsertTrailmark(ctx context.Context, checksum digest.Fingerprint, kind card.Kind) error {
	_, err := t.exec(ctx, `
		INSERT INTO trail (checksum, resource_type, session_timestamp)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`, checksum, string(kind), t.session)
	if err != nil {
		return fmt.Errorf("insert trailmark %s %s: %w", kind, checksum, err)
	}
	return nil
}

// SelectTrail returns every trail row, oldest session first.
func (t *Tx) SelectTrail(ctx context.Context) ([]TrailRecord, error) {
	list, err := selectMany(ctx, t, scanTrail, `
		SELECT checksum, resource_type, session_timestamp
		FROM trail
		ORDER BY session_timestamp ASC, resource_type ASC, checksum ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select trail: %w", err)
	}
	return list, nil
}

// DeleteStaleTrail removes trail rows and completion marks from sessions
// other than the current one. It returns how many trail rows went.
func (t *Tx) DeleteStaleTrail(ctx context.Context) (int64, error) {
	n, err := t.exec(ctx, `DELETE FROM trail WHERE session_timestamp != ?`, t.session)
	if err != nil {
		return 0, fmt.Errorf("delete stale trail: %w", err)
	}
	if _, err := t.exec(ctx, `DELETE FROM completed_session WHERE session_timestamp != ?`, t.session); err != nil {
		return 0, fmt.Errorf("delete stale completion marks: %w", err)
	}
	return n, nil
}

// MarkComplete records that the current session read the whole source tree.
// Marking twice is a no-op.
func (t *Tx) MarkComplete(ctx context.Context) error {
	_, err := t.exec(ctx, `
		INSERT INTO completed_session (session_timestamp)
		VALUES (?)
		ON CONFLICT DO NOTHING
	`, t.session)
	if err != nil {
		return fmt.Errorf("mark session %s complete: %w", t.session, err)
	}
	return nil
}

// IsComplete reports whether the current session was marked complete.
func (t *Tx) IsComplete(ctx context.Context) (bool, error) {
	var complete bool
	err := t.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM completed_session WHERE session_timestamp = ?)`,
		t.session,
	).Scan(&complete)
	if err != nil {
		return false, fmt.Errorf("select session %s completion: %w", t.session, err)
	}
	return complete, nil
}

// SelectUnconfirmed returns the ids of kind whose checksum was not marked in
// the current session, ordered by id.
func (t *Tx) SelectUnconfirmed(ctx context.Context, kind card.Kind) ([]string, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	list, err := selectMany(ctx, t, scanID, `
		SELECT id
		FROM `+table+`
		WHERE checksum NOT IN (
			SELECT checksum
			FROM trail
			WHERE resource_type = ? AND session_timestamp = ?
		)
		ORDER BY id COLLATE BINARY ASC
	`, string(kind), t.session)
	if err != nil {
		return nil, fmt.Errorf("select unconfirmed %s: %w", kind, err)
	}
	return list, nil
}

// Delete removes the row of kind with id, cascading to owned dependents.
func (t *Tx) Delete(ctx context.Context, kind card.Kind, id string) error {
	switch kind {
	case card.KindStandard:
		return t.DeleteStandard(ctx, id)
	case card.KindGuidance:
		return t.DeleteGuidance(ctx, id)
	case card.KindLicence:
		return t.DeleteLicence(ctx, id)
	case card.KindOrganisation:
		return t.DeleteOrganisation(ctx, id)
	case card.KindTopic:
		return t.DeleteTopic(ctx, id)
	case card.KindTheme:
		return t.DeleteTheme(ctx, id)
	case card.KindSection:
		return t.DeleteSection(ctx, id)
	}
	return fmt.Errorf("delete %q: unknown resource kind %q", id, kind)
}

// Count returns the number of rows of kind.
func (t *Tx) Count(ctx context.Context, kind card.Kind) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

func scanID(row scanner) (string, error) {
	var id string
	err := row.Scan(&id)
	return id, err
}
