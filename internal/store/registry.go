package store

import (
	"context"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/digest"
)

// LicenceRecord is a row of the licence table.
type LicenceRecord struct {
	ID       string
	Checksum digest.Fingerprint
	Name     string
	Acronym  *string
	URL      string
}

func scanLicence(row scanner) (LicenceRecord, error) {
	var r LicenceRecord
	err := row.Scan(&r.ID, &r.Checksum, &r.Name, &r.Acronym, &r.URL)
	return r, err
}

// SelectLicence returns the licence with id, or nil if absent.
func (t *Tx) SelectLicence(ctx context.Context, id string) (*LicenceRecord, error) {
	rec, err := selectOne(ctx, t, scanLicence, `
		SELECT id, checksum, name, acronym, url
		FROM licence
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select licence %q: %w", id, err)
	}
	return rec, nil
}

// SelectAllLicences returns every licence ordered by id.
func (t *Tx) SelectAllLicences(ctx context.Context) ([]LicenceRecord, error) {
	list, err := selectMany(ctx, t, scanLicence, `
		SELECT id, checksum, name, acronym, url
		FROM licence
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select all licences: %w", err)
	}
	return list, nil
}

// InsertLicence performs a strict insert.
func (t *Tx) InsertLicence(ctx context.Context, r LicenceRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO licence (id, checksum, name, acronym, url)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.Checksum, r.Name, r.Acronym, r.URL)
	if err != nil {
		return fmt.Errorf("insert licence %q: %w", r.ID, err)
	}
	return nil
}

// DeleteLicence removes the licence with id.
func (t *Tx) DeleteLicence(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM licence WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete licence %q: %w", id, err)
	}
	return nil
}

// OrganisationRecord is a row of the organisation table.
type OrganisationRecord struct {
	ID       string
	Checksum digest.Fingerprint
	Name     string
	URL      string
}

func scanOrganisation(row scanner) (OrganisationRecord, error) {
	var r OrganisationRecord
	err := row.Scan(&r.ID, &r.Checksum, &r.Name, &r.URL)
	return r, err
}

// SelectOrganisation returns the organisation with id, or nil if absent.
func (t *Tx) SelectOrganisation(ctx context.Context, id string) (*OrganisationRecord, error) {
	rec, err := selectOne(ctx, t, scanOrganisation, `
		SELECT id, checksum, name, url
		FROM organisation
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select organisation %q: %w", id, err)
	}
	return rec, nil
}

// SelectAllOrganisations returns every organisation ordered by id.
func (t *Tx) SelectAllOrganisations(ctx context.Context) ([]OrganisationRecord, error) {
	list, err := selectMany(ctx, t, scanOrganisation, `
		SELECT id, checksum, name, url
		FROM organisation
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select all organisations: %w", err)
	}
	return list, nil
}

// InsertOrganisation performs a strict insert.
func (t *Tx) InsertOrganisation(ctx context.Context, r OrganisationRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO organisation (id, checksum, name, url)
		VALUES (?, ?, ?, ?)
	`, r.ID, r.Checksum, r.Name, r.URL)
	if err != nil {
		return fmt.Errorf("insert organisation %q: %w", r.ID, err)
	}
	return nil
}

// DeleteOrganisation removes the organisation with id.
func (t *Tx) DeleteOrganisation(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM organisation WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete organisation %q: %w", id, err)
	}
	return nil
}
