package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/resource"
	"github.com/arnau/data-standards-authority/internal/store"
	"github.com/arnau/data-standards-authority/internal/testutil"
)

const catalogue = "testdata/catalogue"

func newTestSet(t *testing.T) *resource.Set {
	t.Helper()
	s, err := store.Connect(store.MemoryLocation, store.WithSessionTime(testutil.Epoch))
	require.NoError(t, err)
	t.Cleanup(func() { s.Disconnect() })
	return resource.NewSet(s)
}

func TestReadCatalogue(t *testing.T) {
	set := newTestSet(t)
	r, err := NewReader(set, WithIgnore("drafts/**"))
	require.NoError(t, err)
	ctx := context.Background()

	summary, err := r.Read(ctx, catalogue)
	require.NoError(t, err)

	assert.Equal(t, 8, summary.Files)
	assert.Equal(t, 9, summary.Cards)
	assert.Equal(t, map[string]int{"created": 9}, summary.Outcomes)
	assert.ElementsMatch(t, []string{
		filepath.Join(catalogue, "README.md"),
		filepath.Join(catalogue, "notes.txt"),
	}, summary.Unprocessed)

	require.Len(t, summary.Failures, 1)
	assert.Equal(t, filepath.Join(catalogue, "broken", "adored.md"), summary.Failures[0].Path)
	assert.False(t, summary.OK())

	vapour, err := set.Standards.Get(ctx, "vapour")
	require.NoError(t, err)
	require.NotNil(t, vapour)
	assert.Equal(t, "# Vapour\n\nThis standard will give you no overhead.\n", vapour.Content)

	for _, hidden := range []struct {
		kind card.Kind
		id   string
	}{
		{card.KindSection, "secret"},
		{card.KindSection, "wip"},
		{card.KindStandard, "adored"},
	} {
		got, err := set.Get(ctx, hidden.kind, hidden.id)
		require.NoError(t, err)
		assert.Nil(t, got, hidden.id)
	}

	licence, err := set.Licences.Get(ctx, "cc-by-4.0")
	require.NoError(t, err)
	require.NotNil(t, licence)
	assert.Nil(t, licence.Acronym)
}

func TestReadTwiceSkips(t *testing.T) {
	set := newTestSet(t)
	r, err := NewReader(set, WithIgnore("drafts/**", "broken/*"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = r.Read(ctx, catalogue)
	require.NoError(t, err)

	summary, err := r.Read(ctx, catalogue)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"skipped": 9}, summary.Outcomes)
	assert.True(t, summary.OK())
}

func TestReadPicksUpChanges(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "about.md")
	write := func(body string) {
		require.NoError(t, os.WriteFile(path, []byte("---\ntype: section\nidentifier: about\nresource_type: section\n---\n"+body), 0o644))
	}

	set := newTestSet(t)
	r, err := NewReader(set)
	require.NoError(t, err)
	ctx := context.Background()

	write("first")
	summary, err := r.Read(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Outcomes["created"])

	write("second")
	summary, err = r.Read(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Outcomes["updated"])

	got, err := set.Sections.Get(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content)
}

func TestReadStopsOnCancel(t *testing.T) {
	r, err := NewReader(newTestSet(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Read(ctx, catalogue)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadStopsOnStorageError(t *testing.T) {
	s, err := store.Connect(store.MemoryLocation)
	require.NoError(t, err)
	require.NoError(t, s.Disconnect())

	r, err := NewReader(resource.NewSet(s))
	require.NoError(t, err)

	_, err = r.Read(context.Background(), catalogue)
	assert.ErrorIs(t, err, store.ErrClosed)
}

func TestReadMissingRoot(t *testing.T) {
	r, err := NewReader(newTestSet(t))
	require.NoError(t, err)

	_, err = r.Read(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNewReaderRejectsBadPattern(t *testing.T) {
	_, err := NewReader(newTestSet(t), WithIgnore("drafts/[unclosed"))
	assert.Error(t, err)
}
