package card

import (
	"errors"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/digest"
)

// ErrInvalidStatus is returned when text does not name a known status.
// Read back from the store it means the cache is corrupted.
var ErrInvalidStatus = errors.New("invalid status")

// EndorsementStatus is the lifecycle state of a standard.
type EndorsementStatus string

const (
	EndorsementIdentified EndorsementStatus = "identified"
	EndorsementProposed   EndorsementStatus = "proposed"
	EndorsementEndorsed   EndorsementStatus = "endorsed"
	EndorsementRetired    EndorsementStatus = "retired"
	EndorsementDisavowed  EndorsementStatus = "disavowed"
	EndorsementSuperseded EndorsementStatus = "superseded"
)

var endorsementStatuses = []EndorsementStatus{
	EndorsementIdentified,
	EndorsementProposed,
	EndorsementEndorsed,
	EndorsementRetired,
	EndorsementDisavowed,
	EndorsementSuperseded,
}

// ParseEndorsementStatus is strict: unknown text is an error, never a default.
func ParseEndorsementStatus(s string) (EndorsementStatus, error) {
	for _, status := range endorsementStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a valid endorsement status", ErrInvalidStatus, s)
}

func (s EndorsementStatus) String() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s EndorsementStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EndorsementStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseEndorsementStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Digest implements digest.Digester.
func (s EndorsementStatus) Digest(h *digest.Hasher) {
	h.String(string(s))
}

// GuidanceStatus is the editorial state of a guidance note.
type GuidanceStatus string

const (
	GuidanceDraft     GuidanceStatus = "draft"
	GuidancePublished GuidanceStatus = "published"
	GuidanceObsolete  GuidanceStatus = "obsolete"
)

// ParseGuidanceStatus is strict: unknown text is an error, never a default.
func ParseGuidanceStatus(s string) (GuidanceStatus, error) {
	switch GuidanceStatus(s) {
	case GuidanceDraft, GuidancePublished, GuidanceObsolete:
		return GuidanceStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q is not a valid guidance status", ErrInvalidStatus, s)
}

func (s GuidanceStatus) String() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s GuidanceStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *GuidanceStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseGuidanceStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Digest implements digest.Digester.
func (s GuidanceStatus) Digest(h *digest.Hasher) {
	h.String(string(s))
}
