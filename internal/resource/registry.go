package resource

import (
	"context"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/digest"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Licences reconciles licences.
type Licences struct {
	*base[card.Licence]
}

var _ Resource[card.Licence] = (*Licences)(nil)

// NewLicences returns the licence resource over s.
func NewLicences(s *store.Store, opts ...Option) *Licences {
	return &Licences{newBase(s, codec[card.Licence]{
		kind: card.KindLicence,
		checksum: func(ctx context.Context, tx *store.Tx, id string) (*digest.Fingerprint, error) {
			rec, err := tx.SelectLicence(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &rec.Checksum, nil
		},
		read: func(ctx context.Context, tx *store.Tx, id string) (*card.Licence, error) {
			rec, err := tx.SelectLicence(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &card.Licence{ID: rec.ID, Name: rec.Name, Acronym: rec.Acronym, URL: rec.URL}, nil
		},
		ids: func(ctx context.Context, tx *store.Tx) ([]string, error) {
			recs, err := tx.SelectAllLicences(ctx)
			if err != nil {
				return nil, err
			}
			ids := make([]string, len(recs))
			for i, rec := range recs {
				ids[i] = rec.ID
			}
			return ids, nil
		},
		write: func(ctx context.Context, tx *store.Tx, fp digest.Fingerprint, doc card.Licence) error {
			return tx.InsertLicence(ctx, store.LicenceRecord{
				ID:       doc.ID,
				Checksum: fp,
				Name:     doc.Name,
				Acronym:  doc.Acronym,
				URL:      doc.URL,
			})
		},
	}, opts)}
}

// Organisations reconciles maintaining organisations.
type Organisations struct {
	*base[card.Organisation]
}

var _ Resource[card.Organisation] = (*Organisations)(nil)

// NewOrganisations returns the organisation resource over s.
func NewOrganisations(s *store.Store, opts ...Option) *Organisations {
	return &Organisations{newBase(s, codec[card.Organisation]{
		kind: card.KindOrganisation,
		checksum: func(ctx context.Context, tx *store.Tx, id string) (*digest.Fingerprint, error) {
			rec, err := tx.SelectOrganisation(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &rec.Checksum, nil
		},
		read: func(ctx context.Context, tx *store.Tx, id string) (*card.Organisation, error) {
			rec, err := tx.SelectOrganisation(ctx, id)
			if err != nil || rec == nil {
				return nil, err
			}
			return &card.Organisation{ID: rec.ID, Name: rec.Name, URL: rec.URL}, nil
		},
		ids: func(ctx context.Context, tx *store.Tx) ([]string, error) {
			recs, err := tx.SelectAllOrganisations(ctx)
			if err != nil {
				return nil, err
			}
			ids := make([]string, len(recs))
			for i, rec := range recs {
				ids[i] = rec.ID
			}
			return ids, nil
		},
		write: func(ctx context.Context, tx *store.Tx, fp digest.Fingerprint, doc card.Organisation) error {
			return tx.InsertOrganisation(ctx, store.OrganisationRecord{
				ID:       doc.ID,
				Checksum: fp,
				Name:     doc.Name,
				URL:      doc.URL,
			})
		},
	}, opts)}
}
