package resource

import (
	"context"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/store"
)

// Set bundles one resource per kind over the same store and dispatches
// untyped cards to the right one.
type Set struct {
	Standards     *Standards
	Guidances     *Guidances
	Licences      *Licences
	Organisations *Organisations
	Topics        *Topics
	Themes        *Themes
	Sections      *Sections
}

// NewSet returns every resource over s, sharing opts.
func NewSet(s *store.Store, opts ...Option) *Set {
	return &Set{
		Standards:     NewStandards(s, opts...),
		Guidances:     NewGuidances(s, opts...),
		Licences:      NewLicences(s, opts...),
		Organisations: NewOrganisations(s, opts...),
		Topics:        NewTopics(s, opts...),
		Themes:        NewThemes(s, opts...),
		Sections:      NewSections(s, opts...),
	}
}

// Add reconciles c with the resource of its kind.
func (s *Set) Add(ctx context.Context, c card.Card) (Outcome, error) {
	switch doc := c.(type) {
	case card.Standard:
		return s.Standards.Add(ctx, doc)
	case card.Guidance:
		return s.Guidances.Add(ctx, doc)
	case card.Licence:
		return s.Licences.Add(ctx, doc)
	case card.Organisation:
		return s.Organisations.Add(ctx, doc)
	case card.Topic:
		return s.Topics.Add(ctx, doc)
	case card.Theme:
		return s.Themes.Add(ctx, doc)
	case card.Section:
		return s.Sections.Add(ctx, doc)
	}
	return 0, fmt.Errorf("add: unsupported card type %T", c)
}

// Get returns the card of kind with id, or nil.
func (s *Set) Get(ctx context.Context, kind card.Kind, id string) (card.Card, error) {
	switch kind {
	case card.KindStandard:
		return deref[card.Standard](s.Standards.Get(ctx, id))
	case card.KindGuidance:
		return deref[card.Guidance](s.Guidances.Get(ctx, id))
	case card.KindLicence:
		return deref[card.Licence](s.Licences.Get(ctx, id))
	case card.KindOrganisation:
		return deref[card.Organisation](s.Organisations.Get(ctx, id))
	case card.KindTopic:
		return deref[card.Topic](s.Topics.Get(ctx, id))
	case card.KindTheme:
		return deref[card.Theme](s.Themes.Get(ctx, id))
	case card.KindSection:
		return deref[card.Section](s.Sections.Get(ctx, id))
	}
	return nil, fmt.Errorf("get %q: unknown resource kind %q", id, kind)
}

// Drop deletes the card of kind with id and returns it, or nil.
func (s *Set) Drop(ctx context.Context, kind card.Kind, id string) (card.Card, error) {
	switch kind {
	case card.KindStandard:
		return deref[card.Standard](s.Standards.Drop(ctx, id))
	case card.KindGuidance:
		return deref[card.Guidance](s.Guidances.Drop(ctx, id))
	case card.KindLicence:
		return deref[card.Licence](s.Licences.Drop(ctx, id))
	case card.KindOrganisation:
		return deref[card.Organisation](s.Organisations.Drop(ctx, id))
	case card.KindTopic:
		return deref[card.Topic](s.Topics.Drop(ctx, id))
	case card.KindTheme:
		return deref[card.Theme](s.Themes.Drop(ctx, id))
	case card.KindSection:
		return deref[card.Section](s.Sections.Drop(ctx, id))
	}
	return nil, fmt.Errorf("drop %q: unknown resource kind %q", id, kind)
}

// deref turns a typed pointer into a Card without producing a non-nil
// interface around a nil pointer.
func deref[T card.Card](doc *T, err error) (card.Card, error) {
	if err != nil || doc == nil {
		return nil, err
	}
	return *doc, nil
}
