package card

import "github.com/arnau/data-standards-authority/internal/digest"

// Licence is a licence a standard or its specification is published under.
type Licence struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	Acronym *string `yaml:"acronym,omitempty" json:"acronym,omitempty"`
	URL     string  `yaml:"url" json:"url"`
}

// Identifier implements Card.
func (l Licence) Identifier() string { return l.ID }

// Kind implements Card.
func (Licence) Kind() Kind { return KindLicence }

// Digest implements digest.Digester.
func (l Licence) Digest(h *digest.Hasher) {
	h.String(l.ID)
	h.String(l.Name)
	h.OptionalString(l.Acronym)
	h.String(l.URL)
}

// Organisation maintains standards and guidance.
type Organisation struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Identifier implements Card.
func (o Organisation) Identifier() string { return o.ID }

// Kind implements Card.
func (Organisation) Kind() Kind { return KindOrganisation }

// Digest implements digest.Digester.
func (o Organisation) Digest(h *digest.Hasher) {
	h.String(o.ID)
	h.String(o.Name)
	h.String(o.URL)
}
