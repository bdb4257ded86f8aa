package source

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/arnau/data-standards-authority/internal/card"
)

//go:embed schema.cue
var schemaSource string

var definitions = map[card.Kind]string{
	card.KindStandard:     "#Standard",
	card.KindGuidance:     "#Guidance",
	card.KindTopic:        "#Topic",
	card.KindTheme:        "#Theme",
	card.KindSection:      "#Section",
	card.KindLicence:      "#Licence",
	card.KindOrganisation: "#Organisation",
}

// Schema validates decoded source documents against the embedded CUE
// definitions. It is not safe for concurrent use.
type Schema struct {
	defs map[card.Kind]cue.Value
}

// LoadSchema compiles the embedded definitions.
func LoadSchema() (*Schema, error) {
	ctx := cuecontext.New()
	value := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	s := &Schema{defs: make(map[card.Kind]cue.Value, len(definitions))}
	for kind, name := range definitions {
		def := value.LookupPath(cue.ParsePath(name))
		if !def.Exists() {
			return nil, fmt.Errorf("schema: definition %s not found", name)
		}
		s.defs[kind] = def
	}
	return s, nil
}

// Validate checks doc, as decoded from YAML or JSON, against the definition
// for kind.
func (s *Schema) Validate(kind card.Kind, doc map[string]any) error {
	def, ok := s.defs[kind]
	if !ok {
		return fmt.Errorf("schema: no definition for %q", kind)
	}

	value := def.Context().Encode(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s does not match schema: %w", kind, err)
	}
	return nil
}
