package card

import "github.com/arnau/data-standards-authority/internal/digest"

// Theme groups topics. Ordinal drives presentation order.
type Theme struct {
	ID      string `yaml:"identifier" json:"identifier"`
	Name    string `yaml:"name" json:"name"`
	Ordinal int64  `yaml:"ordinal" json:"ordinal"`

	// Description is the markdown body.
	Description string `yaml:"-" json:"description"`
}

// Identifier implements Card.
func (t Theme) Identifier() string { return t.ID }

// Kind implements Card.
func (Theme) Kind() Kind { return KindTheme }

// Digest implements digest.Digester.
func (t Theme) Digest(h *digest.Hasher) {
	h.String(t.ID)
	h.String(t.Name)
	h.Int(t.Ordinal)
	h.String(t.Description)
}

// Topic classifies standards and belongs to one Theme.
type Topic struct {
	ID      string `yaml:"identifier" json:"identifier"`
	Name    string `yaml:"name" json:"name"`
	Theme   string `yaml:"theme" json:"theme"`
	Ordinal int64  `yaml:"ordinal" json:"ordinal"`

	// Description is the markdown body.
	Description string `yaml:"-" json:"description"`
}

// Identifier implements Card.
func (t Topic) Identifier() string { return t.ID }

// Kind implements Card.
func (Topic) Kind() Kind { return KindTopic }

// Digest implements digest.Digester.
func (t Topic) Digest(h *digest.Hasher) {
	h.String(t.ID)
	h.String(t.Name)
	h.String(t.Theme)
	h.Int(t.Ordinal)
	h.String(t.Description)
}
