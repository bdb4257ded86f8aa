package store

import (
	"errors"
	"fmt"

	"github.com/arnau/data-standards-authority/internal/card"
)

// ErrClosed is returned when a disconnected Store is used.
var ErrClosed = errors.New("cache is disconnected")

// ErrIntegrity marks a broken cache invariant. It is fatal: retrying cannot
// fix it because the rows were changed outside the synchronisation engine.
var ErrIntegrity = errors.New("cache integrity violated")

// IntegrityError reports a required companion row missing for an existing
// owner, or stored text that no longer decodes.
type IntegrityError struct {
	Kind    card.Kind
	ID      string
	Missing string
	Err     error
}

func (e *IntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %s: %v", e.Kind, e.ID, e.Missing, e.Err)
	}
	return fmt.Sprintf("%s %q: missing %s", e.Kind, e.ID, e.Missing)
}

// Is makes errors.Is(err, ErrIntegrity) hold for every IntegrityError.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
