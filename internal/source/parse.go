package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/arnau/data-standards-authority/internal/card"
)

var (
	// ErrNoFrontmatter marks a markdown file without a YAML frontmatter.
	ErrNoFrontmatter = errors.New("no frontmatter")
	// ErrNoType marks a frontmatter without a type hint.
	ErrNoType = errors.New("no type hint")
)

// The closing fence must start a line.
var frontmatterRe = regexp.MustCompile(`(?s)^\s*---\r?\n(.*?\n)?---(?:\r?\n|$)(.*)$`)

// splitFrontmatter separates the YAML frontmatter from the markdown body.
func splitFrontmatter(blob []byte) (front, body []byte, err error) {
	m := frontmatterRe.FindSubmatch(blob)
	if m == nil {
		return nil, nil, ErrNoFrontmatter
	}
	return m[1], m[2], nil
}

// Parser turns source blobs into cards, validating each against the schema.
type Parser struct {
	schema *Schema
}

// NewParser returns a Parser with the embedded schema.
func NewParser() (*Parser, error) {
	schema, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	return &Parser{schema: schema}, nil
}

// ParseCard parses a markdown blob with frontmatter. The `type` key selects
// the card kind; the body becomes the card content (or description for
// topics and themes).
func (p *Parser) ParseCard(blob []byte) (card.Card, error) {
	front, body, err := splitFrontmatter(blob)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(front, &raw); err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}
	hint, ok := raw["type"].(string)
	if !ok {
		return nil, ErrNoType
	}
	kind, err := card.ParseKind(hint)
	if err != nil {
		return nil, err
	}
	if err := p.schema.Validate(kind, raw); err != nil {
		return nil, err
	}

	content := string(body)
	switch kind {
	case card.KindStandard:
		var doc card.Standard
		if err := yaml.Unmarshal(front, &doc); err != nil {
			return nil, fmt.Errorf("standard: %w", err)
		}
		doc.Content = content
		return doc, nil
	case card.KindGuidance:
		var doc card.Guidance
		if err := yaml.Unmarshal(front, &doc); err != nil {
			return nil, fmt.Errorf("guidance: %w", err)
		}
		doc.Content = content
		return doc, nil
	case card.KindTopic:
		var doc card.Topic
		if err := yaml.Unmarshal(front, &doc); err != nil {
			return nil, fmt.Errorf("topic: %w", err)
		}
		doc.Description = content
		return doc, nil
	case card.KindTheme:
		var doc card.Theme
		if err := yaml.Unmarshal(front, &doc); err != nil {
			return nil, fmt.Errorf("theme: %w", err)
		}
		doc.Description = content
		return doc, nil
	case card.KindSection:
		var doc card.Section
		if err := yaml.Unmarshal(front, &doc); err != nil {
			return nil, fmt.Errorf("section: %w", err)
		}
		doc.Content = content
		return doc, nil
	}
	return nil, fmt.Errorf("%s cards are not read from markdown", kind)
}

// ParseLicences parses a JSON array of licences.
func (p *Parser) ParseLicences(blob []byte) ([]card.Licence, error) {
	var list []card.Licence
	if err := p.parseRegistry(blob, card.KindLicence, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ParseOrganisations parses a JSON array of organisations.
func (p *Parser) ParseOrganisations(blob []byte) ([]card.Organisation, error) {
	var list []card.Organisation
	if err := p.parseRegistry(blob, card.KindOrganisation, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseRegistry(blob []byte, kind card.Kind, out any) error {
	var raw []map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return fmt.Errorf("%s list: %w", kind, err)
	}
	for i, entry := range raw {
		if err := p.schema.Validate(kind, entry); err != nil {
			return fmt.Errorf("%s list entry %d: %w", kind, i, err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s list: %w", kind, err)
	}
	return nil
}
