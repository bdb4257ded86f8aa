package store

import (
	"context"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/digest"
)

// StandardRecord is a row of the standard table.
type StandardRecord struct {
	ID            string
	Checksum      digest.Fingerprint
	Name          string
	Acronym       *string
	TopicID       string
	Specification string
	LicenceID     *string
	MaintainerID  string
	Content       string
}

const standardColumns = `id, checksum, name, acronym, topic_id, specification, licence_id, maintainer_id, content`

func scanStandard(row scanner) (StandardRecord, error) {
	var r StandardRecord
	err := row.Scan(
		&r.ID, &r.Checksum, &r.Name, &r.Acronym, &r.TopicID,
		&r.Specification, &r.LicenceID, &r.MaintainerID, &r.Content,
	)
	return r, err
}

// SelectStandard returns the standard with id, or nil if absent.
func (t *Tx) SelectStandard(ctx context.Context, id string) (*StandardRecord, error) {
	rec, err := selectOne(ctx, t, scanStandard, `
		SELECT `+standardColumns+`
		FROM standard
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select standard %q: %w", id, err)
	}
	return rec, nil
}

// SelectAllStandards returns every standard ordered by id.
func (t *Tx) SelectAllStandards(ctx context.Context) ([]StandardRecord, error) {
	list, err := selectMany(ctx, t, scanStandard, `
		SELECT `+standardColumns+`
		FROM standard
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select all standards: %w", err)
	}
	return list, nil
}

// InsertStandard performs a strict insert; it fails if the id exists.
func (t *Tx) InsertStandard(ctx context.Context, r StandardRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO standard (`+standardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.Checksum,
		r.Name,
		r.Acronym,
		r.TopicID,
		r.Specification,
		r.LicenceID,
		r.MaintainerID,
		r.Content,
	)
	if err != nil {
		return fmt.Errorf("insert standard %q: %w", r.ID, err)
	}
	return nil
}

// DeleteStandard removes the standard with id. Its endorsement state and
// related-standard rows go with it (ON DELETE CASCADE).
func (t *Tx) DeleteStandard(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM standard WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete standard %q: %w", id, err)
	}
	return nil
}

// EndorsementStateRecord is a row of the endorsement_state table.
type EndorsementStateRecord struct {
	StandardID string
	Status     string
	StartDate  string
	ReviewDate string
	EndDate    *string
}

func scanEndorsementState(row scanner) (EndorsementStateRecord, error) {
	var r EndorsementStateRecord
	err := row.Scan(&r.StandardID, &r.Status, &r.StartDate, &r.ReviewDate, &r.EndDate)
	return r, err
}

// SelectEndorsementState returns the endorsement state of a standard, or nil.
// Callers holding an existing standard must treat nil as an integrity fault.
func (t *Tx) SelectEndorsementState(ctx context.Context, standardID string) (*EndorsementStateRecord, error) {
	rec, err := selectOne(ctx, t, scanEndorsementState, `
		SELECT standard_id, status, start_date, review_date, end_date
		FROM endorsement_state
		WHERE standard_id = ?
	`, standardID)
	if err != nil {
		return nil, fmt.Errorf("select endorsement state %q: %w", standardID, err)
	}
	return rec, nil
}

// InsertEndorsementState inserts the endorsement state of a standard.
func (t *Tx) InsertEndorsementState(ctx context.Context, r EndorsementStateRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO endorsement_state (standard_id, status, start_date, review_date, end_date)
		VALUES (?, ?, ?, ?, ?)
	`, r.StandardID, r.Status, r.StartDate, r.ReviewDate, r.EndDate)
	if err != nil {
		return fmt.Errorf("insert endorsement state %q: %w", r.StandardID, err)
	}
	return nil
}

// RelatedStandardRecord is a row of the related_standard join table.
type RelatedStandardRecord struct {
	StandardID        string
	RelatedStandardID string
	Ordinal           int
}

func scanRelatedStandard(row scanner) (RelatedStandardRecord, error) {
	var r RelatedStandardRecord
	err := row.Scan(&r.StandardID, &r.RelatedStandardID, &r.Ordinal)
	return r, err
}

// SelectRelatedStandards returns the related rows of a standard in source order.
func (t *Tx) SelectRelatedStandards(ctx context.Context, standardID string) ([]RelatedStandardRecord, error) {
	list, err := selectMany(ctx, t, scanRelatedStandard, `
		SELECT standard_id, related_standard_id, ordinal
		FROM related_standard
		WHERE standard_id = ?
		ORDER BY ordinal ASC
	`, standardID)
	if err != nil {
		return nil, fmt.Errorf("select related standards %q: %w", standardID, err)
	}
	return list, nil
}

// SelectDanglingRelatedStandards returns related rows whose target standard is
// not in the cache.
func (t *Tx) SelectDanglingRelatedStandards(ctx context.Context) ([]RelatedStandardRecord, error) {
	list, err := selectMany(ctx, t, scanRelatedStandard, `
		SELECT r.standard_id, r.related_standard_id, r.ordinal
		FROM related_standard r
		LEFT JOIN standard s ON s.id = r.related_standard_id
		WHERE s.id IS NULL
		ORDER BY r.standard_id COLLATE BINARY ASC, r.ordinal ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select dangling related standards: %w", err)
	}
	return list, nil
}

// InsertRelatedStandard inserts one related-standard join row.
func (t *Tx) InsertRelatedStandard(ctx context.Context, r RelatedStandardRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO related_standard (standard_id, related_standard_id, ordinal)
		VALUES (?, ?, ?)
	`, r.StandardID, r.RelatedStandardID, r.Ordinal)
	if err != nil {
		return fmt.Errorf("insert related standard %q -> %q: %w", r.StandardID, r.RelatedStandardID, err)
	}
	return nil
}

// TopicStandardRecord summarises a standard under a topic.
type TopicStandardRecord struct {
	ID         string
	Name       string
	Status     string
	ReviewDate string
}

func scanTopicStandard(row scanner) (TopicStandardRecord, error) {
	var r TopicStandardRecord
	err := row.Scan(&r.ID, &r.Name, &r.Status, &r.ReviewDate)
	return r, err
}

// SelectStandardsByTopic lists the standards classified under a topic with
// their endorsement status.
func (t *Tx) SelectStandardsByTopic(ctx context.Context, topicID string) ([]TopicStandardRecord, error) {
	list, err := selectMany(ctx, t, scanTopicStandard, `
		SELECT s.id, s.name, e.status, e.review_date
		FROM standard s
		JOIN endorsement_state e ON s.id = e.standard_id
		WHERE s.topic_id = ?
		ORDER BY s.id COLLATE BINARY ASC
	`, topicID)
	if err != nil {
		return nil, fmt.Errorf("select standards by topic %q: %w", topicID, err)
	}
	return list, nil
}
