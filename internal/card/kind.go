package card

import (
	"fmt"

	"github.com/arnau/data-standards-authority/internal/digest"
)

// Kind tags a resource kind. The text form is what the session trail stores.
type Kind string

const (
	KindStandard     Kind = "standard"
	KindGuidance     Kind = "guidance"
	KindLicence      Kind = "licence"
	KindOrganisation Kind = "organisation"
	KindTopic        Kind = "topic"
	KindTheme        Kind = "theme"
	KindSection      Kind = "section"
)

// Kinds lists every kind in sweep order: owners of join rows before the cards
// they point at.
var Kinds = []Kind{
	KindGuidance,
	KindStandard,
	KindTopic,
	KindTheme,
	KindSection,
	KindLicence,
	KindOrganisation,
}

// ParseKind returns the Kind for s or an error for unknown text.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%q is not a valid resource kind", s)
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// Card is implemented by every document the cache stores.
type Card interface {
	digest.Digester
	Identifier() string
	Kind() Kind
}

// Fingerprint returns the content fingerprint of c.
func Fingerprint(c Card) digest.Fingerprint {
	return digest.Of(c)
}
