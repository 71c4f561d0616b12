package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-optimizer/internal/sections"
	"github.com/jonathan/profile-optimizer/internal/types"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "session.db"), "default")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	snap := &Snapshot{
		CurrentSection: sections.SectionExperience,
		Entries: sections.EntriesMap{
			sections.SectionExperience: {"Job A", "Job B"},
		},
		EntryIndex: map[sections.SectionType]int{sections.SectionExperience: 1},
		Cache: map[sections.SectionType]*types.StructuredResult{
			sections.SectionHeadline: {
				Section:  sections.SectionHeadline,
				Headline: &types.HeadlineResult{Options: []string{"Staff Engineer"}},
			},
		},
		Editable:   "Job B",
		FullText:   "Experience\nJob A",
		Source:     SourceExtracted,
		Mode:       ModePDF,
		Status:     "ready",
		StatusKind: StatusInfo,
	}
	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, snap.CurrentSection, got.CurrentSection)
	assert.Equal(t, snap.Entries, got.Entries)
	assert.Equal(t, snap.EntryIndex, got.EntryIndex)
	assert.Equal(t, snap.Editable, got.Editable)
	assert.Equal(t, snap.Source, got.Source)
	assert.Equal(t, snap.Mode, got.Mode)
	require.Contains(t, got.Cache, sections.SectionHeadline)
	assert.Equal(t, []string{"Staff Engineer"}, got.Cache[sections.SectionHeadline].Headline.Options)
}

func TestStoreLoadEmptyNamespace(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, got.CurrentSection)
	assert.Nil(t, got.Entries)
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Snapshot{Editable: "first"}))
	require.NoError(t, store.Save(ctx, &Snapshot{Editable: "second"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Editable)
}

func TestStoreNamespacesAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	a, err := OpenStore(path, "alice")
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenStore(path, "bob")
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()
	require.NoError(t, a.Save(ctx, &Snapshot{Editable: "alice content"}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Editable)
}

func TestPersisterDebouncesWrites(t *testing.T) {
	store := openTestStore(t)
	sess := New()
	p := NewPersister(store, sess, 20*time.Millisecond)

	sess.SetEditable("a")
	sess.SetEditable("ab")
	sess.SetEditable("abc")

	require.Eventually(t, func() bool {
		got, err := store.Load(context.Background())
		return err == nil && got.Editable == "abc"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, p.Flush(context.Background()))
}

func TestPersisterWritesWhileTransitionsContinue(t *testing.T) {
	store := openTestStore(t)
	sess := New()
	p := NewPersister(store, sess, time.Millisecond)

	// A single sequential client is enough to overlap transitions with
	// the persister's own snapshot-and-save goroutines. Run under the
	// race detector.
	extraction := sections.EntriesMap{sections.SectionExperience: {"Job A", "Job B"}}
	for i := 0; i < 100; i++ {
		sess.ApplyExtraction(extraction, "Experience\nJob A")
		sess.SelectEntry(sections.SectionExperience, i%2)
		sess.StoreResult(sections.SectionHeadline, headlineResult())
	}
	require.NoError(t, p.Flush(context.Background()))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sections.SectionExperience, got.CurrentSection)
	assert.Equal(t, []string{"Job A", "Job B"}, got.Entries[sections.SectionExperience])
}

func TestPersisterFlushWritesPendingState(t *testing.T) {
	store := openTestStore(t)
	sess := New()
	p := NewPersister(store, sess, time.Hour)

	sess.SetEditable("pending")
	require.NoError(t, p.Flush(context.Background()))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Editable)
}
