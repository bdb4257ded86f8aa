package resource

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnau/data-standards-authority/internal/store"
	"github.com/arnau/data-standards-authority/internal/testutil"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Connect(store.MemoryLocation, store.WithSessionTime(testutil.Epoch))
	require.NoError(t, err)
	t.Cleanup(func() { s.Disconnect() })
	return s
}

// quietLogger captures log output for assertions.
func quietLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// totalChanges returns the rows changed on the store connection so far.
func totalChanges(t *testing.T, s *store.Store) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB().QueryRowContext(context.Background(), "SELECT total_changes()").Scan(&n))
	return n
}

var strPtr = testutil.StrPtr
