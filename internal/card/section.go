package card

import "github.com/arnau/data-standards-authority/internal/digest"

// Section is a free-standing catalogue page.
type Section struct {
	ID           string `yaml:"identifier" json:"identifier"`
	ResourceType string `yaml:"resource_type" json:"resource_type"`

	Content string `yaml:"-" json:"content"`
}

// Identifier implements Card.
func (s Section) Identifier() string { return s.ID }

// Kind implements Card.
func (Section) Kind() Kind { return KindSection }

// Digest implements digest.Digester.
func (s Section) Digest(h *digest.Hasher) {
	h.String(s.ID)
	h.String(s.ResourceType)
	h.String(s.Content)
}
