package store

import (
	"context"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/digest"
)

// ThemeRecord is a row of the theme table.
type ThemeRecord struct {
	ID          string
	Checksum    digest.Fingerprint
	Name        string
	Description string
	Ordinal     int64
}

func scanTheme(row scanner) (ThemeRecord, error) {
	var r ThemeRecord
	err := row.Scan(&r.ID, &r.Checksum, &r.Name, &r.Description, &r.Ordinal)
	return r, err
}

// SelectTheme returns the theme with id, or nil if absent.
func (t *Tx) SelectTheme(ctx context.Context, id string) (*ThemeRecord, error) {
	rec, err := selectOne(ctx, t, scanTheme, `
		SELECT id, checksum, name, description, ordinal
		FROM theme
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select theme %q: %w", id, err)
	}
	return rec, nil
}

// SelectAllThemes returns every theme in presentation order.
func (t *Tx) SelectAllThemes(ctx context.Context) ([]ThemeRecord, error) {
	list, err := selectMany(ctx, t, scanTheme, `
		SELECT id, checksum, name, description, ordinal
		FROM theme
		ORDER BY ordinal ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select all themes: %w", err)
	}
	return list, nil
}

// InsertTheme performs a strict insert.
func (t *Tx) InsertTheme(ctx context.Context, r ThemeRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO theme (id, checksum, name, description, ordinal)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.Checksum, r.Name, r.Description, r.Ordinal)
	if err != nil {
		return fmt.Errorf("insert theme %q: %w", r.ID, err)
	}
	return nil
}

// DeleteTheme removes the theme with id. Topics pointing at it are kept.
func (t *Tx) DeleteTheme(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM theme WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete theme %q: %w", id, err)
	}
	return nil
}

// TopicRecord is a row of the topic table.
type TopicRecord struct {
	ID          string
	Checksum    digest.Fingerprint
	Name        string
	Description string
	ThemeID     string
	Ordinal     int64
}

func scanTopic(row scanner) (TopicRecord, error) {
	var r TopicRecord
	err := row.Scan(&r.ID, &r.Checksum, &r.Name, &r.Description, &r.ThemeID, &r.Ordinal)
	return r, err
}

// SelectTopic returns the topic with id, or nil if absent.
func (t *Tx) SelectTopic(ctx context.Context, id string) (*TopicRecord, error) {
	rec, err := selectOne(ctx, t, scanTopic, `
		SELECT id, checksum, name, description, theme_id, ordinal
		FROM topic
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select topic %q: %w", id, err)
	}
	return rec, nil
}

// SelectAllTopics returns every topic in presentation order.
func (t *Tx) SelectAllTopics(ctx context.Context) ([]TopicRecord, error) {
	list, err := selectMany(ctx, t, scanTopic, `
		SELECT id, checksum, name, description, theme_id, ordinal
		FROM topic
		ORDER BY ordinal ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select all topics: %w", err)
	}
	return list, nil
}

// SelectTopicsByTheme returns the topics of a theme in presentation order.
func (t *Tx) SelectTopicsByTheme(ctx context.Context, themeID string) ([]TopicRecord, error) {
	list, err := selectMany(ctx, t, scanTopic, `
		SELECT id, checksum, name, description, theme_id, ordinal
		FROM topic
		WHERE theme_id = ?
		ORDER BY ordinal ASC, id COLLATE BINARY ASC
	`, themeID)
	if err != nil {
		return nil, fmt.Errorf("select topics by theme %q: %w", themeID, err)
	}
	return list, nil
}

// InsertTopic performs a strict insert.
func (t *Tx) InsertTopic(ctx context.Context, r TopicRecord) error {
	_, err := t.exec(ctx, `
		INSERT INTO topic (id, checksum, name, description, theme_id, ordinal)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Checksum, r.Name, r.Description, r.ThemeID, r.Ordinal)
	if err != nil {
		return fmt.Errorf("insert topic %q: %w", r.ID, err)
	}
	return nil
}

// DeleteTopic removes the topic with id.
func (t *Tx) DeleteTopic(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM topic WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete topic %q: %w", id, err)
	}
	return nil
}
