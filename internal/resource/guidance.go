package resource

import (
	"context"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/digest"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Guidances reconciles guidance notes and the standards they cover.
type Guidances struct {
	*base[card.Guidance]
}

var _ Resource[card.Guidance] = (*Guidances)(nil)

// NewGuidances returns the guidance resource over s.
func NewGuidances(s *store.Store, opts ...Option) *Guidances {
	return &Guidances{newBase(s, codec[card.Guidance]{
		kind: card.KindGuidance,
		checksum: func(ctx context.Context, tx *store.Tx, id string) (*digest.Fingerprint, error) {
			rec, err := tx.SelectGuidance(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &rec.Checksum, nil
		},
		read: readGuidance,
		ids: func(ctx context.Context, tx *store.Tx) ([]string, error) {
			recs, err := tx.SelectAllGuidances(ctx)
			if err != nil {
				return nil, err
			}
			ids := make([]string, len(recs))
			for i, rec := range recs {
				ids[i] = rec.ID
			}
			return ids, nil
		},
		write: writeGuidance,
	}, opts)}
}

func readGuidance(ctx context.Context, tx *store.Tx, id string) (*card.Guidance, error) {
	rec, err := tx.SelectGuidance(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}

	g := card.Guidance{
		ID:           rec.ID,
		Description:  rec.Description,
		Maintainer:   rec.MaintainerID,
		CanonicalURL: rec.CanonicalURL,
		Content:      rec.Content,
	}
	if g.Status, err = card.ParseGuidanceStatus(rec.Status); err != nil {
		return nil, corrupt(card.KindGuidance, id, "status", err)
	}
	if g.CreationDate, err = card.ParseDate(rec.CreationDate); err != nil {
		return nil, corrupt(card.KindGuidance, id, "creation date", err)
	}
	if g.UpdateDate, err = card.ParseDate(rec.UpdateDate); err != nil {
		return nil, corrupt(card.KindGuidance, id, "update date", err)
	}
	if g.PublicationDate, err = card.OptionalDate(rec.PublicationDate); err != nil {
		return nil, corrupt(card.KindGuidance, id, "publication date", err)
	}

	standards, err := tx.SelectGuidanceStandards(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Standards = make([]string, len(standards))
	for i, s := range standards {
		g.Standards[i] = s.StandardID
	}

	return &g, nil
}

func writeGuidance(ctx context.Context, tx *store.Tx, fp digest.Fingerprint, doc card.Guidance) error {
	err := tx.InsertGuidance(ctx, store.GuidanceRecord{
		ID:              doc.ID,
		Checksum:        fp,
		Description:     doc.Description,
		MaintainerID:    doc.Maintainer,
		Status:          doc.Status.String(),
		CreationDate:    doc.CreationDate.String(),
		UpdateDate:      doc.UpdateDate.String(),
		PublicationDate: doc.PublicationDate.OptionalText(),
		CanonicalURL:    doc.CanonicalURL,
		Content:         doc.Content,
	})
	if err != nil {
		return err
	}

	for i, standard := range doc.Standards {
		err := tx.InsertGuidanceStandard(ctx, store.GuidanceStandardRecord{
			GuidanceID: doc.ID,
			StandardID: standard,
			Ordinal:    i,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
