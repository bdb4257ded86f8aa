package resource

import (
	"context"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/digest"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Standards reconciles standards together with their endorsement state and
// related-standard rows.
type Standards struct {
	*base[card.Standard]
}

var _ Resource[card.Standard] = (*Standards)(nil)

// NewStandards returns the standard resource over s.
func NewStandards(s *store.Store, opts ...Option) *Standards {
	return &Standards{newBase(s, codec[card.Standard]{
		kind: card.KindStandard,
		checksum: func(ctx context.Context, tx *store.Tx, id string) (*digest.Fingerprint, error) {
			rec, err := tx.SelectStandard(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &rec.Checksum, nil
		},
		read:  readStandard,
		ids:   standardIDs,
		write: writeStandard,
	}, opts)}
}

// TopicStandard is a standard listed under a topic.
type TopicStandard struct {
	ID         string                 `json:"id" yaml:"id"`
	Name       string                 `json:"name" yaml:"name"`
	Status     card.EndorsementStatus `json:"status" yaml:"status"`
	ReviewDate card.Date              `json:"review_date" yaml:"review_date"`
}

// ByTopic lists the standards classified under topic with their status.
func (s *Standards) ByTopic(ctx context.Context, topic string) ([]TopicStandard, error) {
	list := []TopicStandard{}
	err := s.store.View(ctx, func(tx *store.Tx) error {
		recs, err := tx.SelectStandardsByTopic(ctx, topic)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			status, err := card.ParseEndorsementStatus(rec.Status)
			if err != nil {
				return corrupt(card.KindStandard, rec.ID, "endorsement status", err)
			}
			review, err := card.ParseDate(rec.ReviewDate)
			if err != nil {
				return corrupt(card.KindStandard, rec.ID, "review date", err)
			}
			list = append(list, TopicStandard{
				ID:         rec.ID,
				Name:       rec.Name,
				Status:     status,
				ReviewDate: review,
			})
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(topic, "by topic", err)
	}
	return list, nil
}

func standardIDs(ctx context.Context, tx *store.Tx) ([]string, error) {
	recs, err := tx.SelectAllStandards(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	return ids, nil
}

func readStandard(ctx context.Context, tx *store.Tx, id string) (*card.Standard, error) {
	rec, err := tx.SelectStandard(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}

	state, err := tx.SelectEndorsementState(ctx, id)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, &store.IntegrityError{
			Kind:    card.KindStandard,
			ID:      id,
			Missing: "endorsement state",
		}
	}
	endorsement, err := decodeEndorsementState(id, *state)
	if err != nil {
		return nil, err
	}

	relatedRecs, err := tx.SelectRelatedStandards(ctx, id)
	if err != nil {
		return nil, err
	}
	related := make([]string, len(relatedRecs))
	for i, r := range relatedRecs {
		related[i] = r.RelatedStandardID
	}

	return &card.Standard{
		ID:               rec.ID,
		Name:             rec.Name,
		Acronym:          rec.Acronym,
		Topic:            rec.TopicID,
		Specification:    rec.Specification,
		Licence:          rec.LicenceID,
		Maintainer:       rec.MaintainerID,
		Related:          related,
		EndorsementState: endorsement,
		Content:          rec.Content,
	}, nil
}

func decodeEndorsementState(id string, rec store.EndorsementStateRecord) (card.EndorsementState, error) {
	var state card.EndorsementState
	var err error

	if state.Status, err = card.ParseEndorsementStatus(rec.Status); err != nil {
		return state, corrupt(card.KindStandard, id, "endorsement status", err)
	}
	if state.StartDate, err = card.ParseDate(rec.StartDate); err != nil {
		return state, corrupt(card.KindStandard, id, "start date", err)
	}
	if state.ReviewDate, err = card.ParseDate(rec.ReviewDate); err != nil {
		return state, corrupt(card.KindStandard, id, "review date", err)
	}
	if state.EndDate, err = card.OptionalDate(rec.EndDate); err != nil {
		return state, corrupt(card.KindStandard, id, "end date", err)
	}
	return state, nil
}

func writeStandard(ctx context.Context, tx *store.Tx, fp digest.Fingerprint, doc card.Standard) error {
	err := tx.InsertStandard(ctx, store.StandardRecord{
		ID:            doc.ID,
		Checksum:      fp,
		Name:          doc.Name,
		Acronym:       doc.Acronym,
		TopicID:       doc.Topic,
		Specification: doc.Specification,
		LicenceID:     doc.Licence,
		MaintainerID:  doc.Maintainer,
		Content:       doc.Content,
	})
	if err != nil {
		return err
	}

	state := doc.EndorsementState
	err = tx.InsertEndorsementState(ctx, store.EndorsementStateRecord{
		StandardID: doc.ID,
		Status:     state.Status.String(),
		StartDate:  state.StartDate.String(),
		ReviewDate: state.ReviewDate.String(),
		EndDate:    state.EndDate.OptionalText(),
	})
	if err != nil {
		return err
	}

	for i, related := range doc.Related {
		err := tx.InsertRelatedStandard(ctx, store.RelatedStandardRecord{
			StandardID:        doc.ID,
			RelatedStandardID: related,
			Ordinal:           i,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
