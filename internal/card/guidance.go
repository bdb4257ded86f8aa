package card

import "github.com/arnau/data-standards-authority/internal/digest"

// Guidance is a piece of writing on how to apply one or more standards.
type Guidance struct {
	ID              string         `yaml:"identifier" json:"identifier"`
	Description     *string        `yaml:"description,omitempty" json:"description,omitempty"`
	Maintainer      string         `yaml:"maintainer" json:"maintainer"`
	Status          GuidanceStatus `yaml:"status" json:"status"`
	CreationDate    Date           `yaml:"creation_date" json:"creation_date"`
	UpdateDate      Date           `yaml:"update_date" json:"update_date"`
	PublicationDate *Date          `yaml:"publication_date,omitempty" json:"publication_date,omitempty"`
	// Standards lists the standards this guidance covers. Order is significant.
	Standards    []string `yaml:"standards" json:"standards"`
	CanonicalURL *string  `yaml:"canonical_url,omitempty" json:"canonical_url,omitempty"`

	Content string `yaml:"-" json:"content"`
}

// Identifier implements Card.
func (g Guidance) Identifier() string { return g.ID }

// Kind implements Card.
func (Guidance) Kind() Kind { return KindGuidance }

// Digest implements digest.Digester.
func (g Guidance) Digest(h *digest.Hasher) {
	h.String(g.ID)
	h.OptionalString(g.Description)
	h.String(g.Maintainer)
	g.Status.Digest(h)
	g.CreationDate.Digest(h)
	g.UpdateDate.Digest(h)
	digest.Optional(h, g.PublicationDate)
	h.Strings(g.Standards)
	h.OptionalString(g.CanonicalURL)
	h.String(g.Content)
}
