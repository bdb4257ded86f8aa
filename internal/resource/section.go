package resource

import (
	"context"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/digest"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Sections reconciles free-standing catalogue pages.
type Sections struct {
	*base[card.Section]
}

var _ Resource[card.Section] = (*Sections)(nil)

// NewSections returns the section resource over s.
func NewSections(s *store.Store, opts ...Option) *Sections {
	return &Sections{newBase(s, codec[card.Section]{
		kind: card.KindSection,
		checksum: func(ctx context.Context, tx *store.Tx, id string) (*digest.Fingerprint, error) {
			rec, err := tx.SelectSection(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &rec.Checksum, nil
		},
		read: func(ctx context.Context, tx *store.Tx, id string) (*card.Section, error) {
			rec, err := tx.SelectSection(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &card.Section{ID: rec.ID, ResourceType: rec.ResourceType, Content: rec.Content}, nil
		},
		ids: func(ctx context.Context, tx *store.Tx) ([]string, error) {
			recs, err := tx.SelectAllSections(ctx)
			if err != nil {
				return nil, err
			}
			ids := make([]string, len(recs))
			for i, rec := range recs {
				ids[i] = rec.ID
			}
			return ids, nil
		},
		write: func(ctx context.Context, tx *store.Tx, fp digest.Fingerprint, doc card.Section) error {
			return tx.InsertSection(ctx, store.SectionRecord{
				ID:           doc.ID,
				Checksum:     fp,
				ResourceType: doc.ResourceType,
				Content:      doc.Content,
			})
		},
	}, opts)}
}
