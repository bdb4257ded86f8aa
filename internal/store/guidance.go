package store

import (
	"context"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/digest"
)

// GuidanceRecord is a row of the guidance table.
type GuidanceRecord struct {
	ID              string
	Checksum        digest.Fingerprint
	Description     *string
	MaintainerID    string
	Status          string
	CreationDate    string
	UpdateDate      string
	PublicationDate *string
	CanonicalURL    *string
	Content         string
}

const guidanceColumns = `id, checksum, description, maintainer_id, status, creation_date, update_date, publication_date, canonical_url, content`

func scanGuidance(row scanner) (GuidanceRecord, error) {
	var r GuidanceRecord
	err := row.Scan(
		&r.ID, &r.Checksum, &r.Description, &r.MaintainerID, &r.Status,
		&r.CreationDate, &r.UpdateDate, &r.PublicationDate, &r.CanonicalURL, &r.Content,
	)
	return r, err
}

// SelectGuidance returns the guidance with id, or nil if absent.
func (t *Tx) SelectGuidance(ctx context.Context, id string) (*GuidanceRecord, error) {
	rec, err := selectOne(ctx, t, scanGuidance, `
		SELECT `+guidanceColumns+`
		FROM guidance
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select guidance %q: %w", id, err)
	}
	return rec, nil
}

// SelectAllGuidances returns every guidance ordered by id.
func (t *Tx) SelectAllGuidances(ctx context.Context) ([]GuidanceRecord, error) {
	list, err := selectMany(ctx, t, scanGuidance, `
		SELECT `+guidanceColumns+`
		FROM guidance
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select all guidances: %w", err)
	}
	return list, nil
}

// InsertGuidance performs a strict insert.
func (t *Tx) InsertGuidance(ctx context.Context, r GuidanceRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO guidance (`+guidanceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.Checksum,
		r.Description,
		r.MaintainerID,
		r.Status,
		r.CreationDate,
		r.UpdateDate,
		r.PublicationDate,
		r.CanonicalURL,
		r.Content,
	)
	if err != nil {
		return fmt.Errorf("insert guidance %q: %w", r.ID, err)
	}
	return nil
}

// DeleteGuidance removes the guidance with id and its standard join rows.
func (t *Tx) DeleteGuidance(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM guidance WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete guidance %q: %w", id, err)
	}
	return nil
}

// GuidanceStandardRecord is a row of the guidance_standard join table.
type GuidanceStandardRecord struct {
	GuidanceID string
	StandardID string
	Ordinal    int
}

func scanGuidanceStandard(row scanner) (GuidanceStandardRecord, error) {
	var r GuidanceStandardRecord
	err := row.Scan(&r.GuidanceID, &r.StandardID, &r.Ordinal)
	return r, err
}

// SelectGuidanceStandards returns the standards a guidance covers, in source
// order.
func (t *Tx) SelectGuidanceStandards(ctx context.Context, guidanceID string) ([]GuidanceStandardRecord, error) {
	list, err := selectMany(ctx, t, scanGuidanceStandard, `
		SELECT guidance_id, standard_id, ordinal
		FROM guidance_standard
		WHERE guidance_id = ?
		ORDER BY ordinal ASC
	`, guidanceID)
	if err != nil {
		return nil, fmt.Errorf("select guidance standards %q: %w", guidanceID, err)
	}
	return list, nil
}

// InsertGuidanceStandard inserts one guidance-standard join row.
func (t *Tx) InsertGuidanceStandard(ctx context.Context, r GuidanceStandardRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO guidance_standard (guidance_id, standard_id, ordinal)
		VALUES (?, ?, ?)
	`, r.GuidanceID, r.StandardID, r.Ordinal)
	if err != nil {
		return fmt.Errorf("insert guidance standard %q -> %q: %w", r.GuidanceID, r.StandardID, err)
	}
	return nil
}
