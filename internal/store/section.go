package store

import (
	"context"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/digest"
)

// SectionRecord is a row of the section table.
type SectionRecord struct {
	ID           string
	Checksum     digest.Fingerprint
	ResourceType string
	Content      string
}

func scanSection(row scanner) (SectionRecord, error) {
	var r SectionRecord
	err := row.Scan(&r.ID, &r.Checksum, &r.ResourceType, &r.Content)
	return r, err
}

// SelectSection returns the section with id, or nil if absent.
func (t *Tx) SelectSection(ctx context.Context, id string) (*SectionRecord, error) {
	rec, err := selectOne(ctx, t, scanSection, `
		SELECT id, checksum, resource_type, content
		FROM section
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select section %q: %w", id, err)
	}
	return rec, nil
}

// SelectAllSections returns every section ordered by id.
func (t *Tx) SelectAllSections(ctx context.Context) ([]SectionRecord, error) {
	list, err := selectMany(ctx, t, scanSection, `
		SELECT id, checksum, resource_type, content
		FROM section
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select all sections: %w", err)
	}
	return list, nil
}

// InsertSection performs a strict insert.
func (t *Tx) InsertSection(ctx context.Context, r SectionRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO section (id, checksum, resource_type, content)
		VALUES (?, ?, ?, ?)
	`, r.ID, r.Checksum, r.ResourceType, r.Content)
	if err != nil {
		return fmt.Errorf("insert section %q: %w", r.ID, err)
	}
	return nil
}

// DeleteSection removes the section with id.
func (t *Tx) DeleteSection(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM section WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete section %q: %w", id, err)
	}
	return nil
}
