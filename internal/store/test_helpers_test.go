package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/arnau/data-standards-authority/internal/digest"
)

var testSession = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

// createTestStore creates a new disk store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	return createTestStoreAt(t, filepath.Join(t.TempDir(), "cache.db"), testSession)
}

func createTestStoreAt(t *testing.T, path string, session time.Time) *Store {
	t.Helper()
	s, err := Connect(path, WithSessionTime(session))
	if err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	t.Cleanup(func() { s.Disconnect() })
	return s
}

// update runs fn in a transaction and fails the test on error.
func update(t *testing.T, s *Store, fn func(ctx context.Context, tx *Tx) error) {
	t.Helper()
	ctx := context.Background()
	if err := s.Update(ctx, func(tx *Tx) error { return fn(ctx, tx) }); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
}

func strPtr(s string) *string { return &s }

func testStandard(id string) StandardRecord {
	return StandardRecord{
		ID:            id,
		Checksum:      digest.Fingerprint("checksum-" + id),
		Name:          id,
		TopicID:       "exchange",
		Specification: "https://spec.example/" + id,
		LicenceID:     strPtr("ogl"),
		MaintainerID:  "data-standards-authority",
		Content:       "# " + id,
	}
}

func testEndorsement(id string) EndorsementStateRecord {
	return EndorsementStateRecord{
		StandardID: id,
		Status:     "identified",
		StartDate:  "2021-06-01",
		ReviewDate: "2021-06-01",
	}
}
