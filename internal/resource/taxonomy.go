package resource

import (
	"context"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/digest"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Themes reconciles themes.
type Themes struct {
	*base[card.Theme]
}

var _ Resource[card.Theme] = (*Themes)(nil)

// NewThemes returns the theme resource over s.
func NewThemes(s *store.Store, opts ...Option) *Themes {
	return &Themes{newBase(s, codec[card.Theme]{
		kind: card.KindTheme,
		checksum: func(ctx context.Context, tx *store.Tx, id string) (*digest.Fingerprint, error) {
			rec, err := tx.SelectTheme(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &rec.Checksum, nil
		},
		read: func(ctx context.Context, tx *store.Tx, id string) (*card.Theme, error) {
			rec, err := tx.SelectTheme(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return themeFromRecord(*rec), nil
		},
		ids: func(ctx context.Context, tx *store.Tx) ([]string, error) {
			recs, err := tx.SelectAllThemes(ctx)
			if err != nil {
				return nil, err
			}
			ids := make([]string, len(recs))
			for i, rec := range recs {
				ids[i] = rec.ID
			}
			return ids, nil
		},
		write: func(ctx context.Context, tx *store.Tx, fp digest.Fingerprint, doc card.Theme) error {
			return tx.InsertTheme(ctx, store.ThemeRecord{
				ID:          doc.ID,
				Checksum:    fp,
				Name:        doc.Name,
				Description: doc.Description,
				Ordinal:     doc.Ordinal,
			})
		},
	}, opts)}
}

func themeFromRecord(rec store.ThemeRecord) *card.Theme {
	return &card.Theme{
		ID:          rec.ID,
		Name:        rec.Name,
		Ordinal:     rec.Ordinal,
		Description: rec.Description,
	}
}

// Topics reconciles topics.
type Topics struct {
	*base[card.Topic]
}

var _ Resource[card.Topic] = (*Topics)(nil)

// NewTopics returns the topic resource over s.
func NewTopics(s *store.Store, opts ...Option) *Topics {
	return &Topics{newBase(s, codec[card.Topic]{
		kind: card.KindTopic,
		checksum: func(ctx context.Context, tx *store.Tx, id string) (*digest.Fingerprint, error) {
			rec, err := tx.SelectTopic(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &rec.Checksum, nil
		},
		read: func(ctx context.Context, tx *store.Tx, id string) (*card.Topic, error) {
			rec, err := tx.SelectTopic(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return topicFromRecord(*rec), nil
		},
		ids: func(ctx context.Context, tx *store.Tx) ([]string, error) {
			recs, err := tx.SelectAllTopics(ctx)
			if err != nil {
				return nil, err
			}
			ids := make([]string, len(recs))
			for i, rec := range recs {
				ids[i] = rec.ID
			}
			return ids, nil
		},
		write: func(ctx context.Context, tx *store.Tx, fp digest.Fingerprint, doc card.Topic) error {
			return tx.InsertTopic(ctx, store.TopicRecord{
				ID:          doc.ID,
				Checksum:    fp,
				Name:        doc.Name,
				Description: doc.Description,
				ThemeID:     doc.Theme,
				Ordinal:     doc.Ordinal,
			})
		},
	}, opts)}
}

// ByTheme lists the topics of theme in presentation order.
func (t *Topics) ByTheme(ctx context.Context, theme string) ([]card.Topic, error) {
	list := []card.Topic{}
	err := t.store.View(ctx, func(tx *store.Tx) error {
		recs, err := tx.SelectTopicsByTheme(ctx, theme)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			list = append(list, *topicFromRecord(rec))
		}
		return nil
	})
	if err != nil {
		return nil, t.fail(theme, "by theme", err)
	}
	return list, nil
}

func topicFromRecord(rec store.TopicRecord) *card.Topic {
	return &card.Topic{
		ID:          rec.ID,
		Name:        rec.Name,
		Theme:       rec.ThemeID,
		Ordinal:     rec.Ordinal,
		Description: rec.Description,
	}
}
