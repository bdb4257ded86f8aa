package card

import "github.com/arnau/data-standards-authority/internal/digest"

// Standard describes a technical standard endorsed (or not) by the authority.
type Standard struct {
	// ID is a locally unique identifier.
	ID            string  `yaml:"identifier" json:"identifier"`
	Name          string  `yaml:"name" json:"name"`
	Acronym       *string `yaml:"acronym,omitempty" json:"acronym,omitempty"`
	Topic         string  `yaml:"topic" json:"topic"`
	Specification string  `yaml:"specification" json:"specification"`
	Licence       *string `yaml:"licence,omitempty" json:"licence,omitempty"`
	Maintainer    string  `yaml:"maintainer" json:"maintainer"`
	// Related lists related standard ids. Order is significant.
	Related          []string         `yaml:"related,omitempty" json:"related,omitempty"`
	EndorsementState EndorsementState `yaml:"endorsement_state" json:"endorsement_state"`

	// Content is the markdown body following the frontmatter.
	Content string `yaml:"-" json:"content"`
}

// Identifier implements Card.
func (s Standard) Identifier() string { return s.ID }

// Kind implements Card.
func (Standard) Kind() Kind { return KindStandard }

// Digest implements digest.Digester.
func (s Standard) Digest(h *digest.Hasher) {
	h.String(s.ID)
	h.String(s.Name)
	h.OptionalString(s.Acronym)
	h.String(s.Topic)
	h.String(s.Specification)
	h.OptionalString(s.Licence)
	h.String(s.Maintainer)
	h.Strings(s.Related)
	s.EndorsementState.Digest(h)
	h.String(s.Content)
}

// EndorsementState is owned by exactly one Standard.
type EndorsementState struct {
	Status     EndorsementStatus `yaml:"status" json:"status"`
	StartDate  Date              `yaml:"start_date" json:"start_date"`
	ReviewDate Date              `yaml:"review_date" json:"review_date"`
	EndDate    *Date             `yaml:"end_date,omitempty" json:"end_date,omitempty"`
}

// Digest implements digest.Digester.
func (e EndorsementState) Digest(h *digest.Hasher) {
	e.Status.Digest(h)
	e.StartDate.Digest(h)
	e.ReviewDate.Digest(h)
	digest.Optional(h, e.EndDate)
}
