package history

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		name    string
		dbPath  string
		wantErr bool
	}{
		{
			name:   "creates database successfully",
			dbPath: filepath.Join(t.TempDir(), "history.db"),
		},
		{
			name:   "handles in-memory database",
			dbPath: ":memory:",
		},
		{
			name:   "creates parent directories if needed",
			dbPath: filepath.Join(t.TempDir(), "nested", "dir", "history.db"),
		},
		{
			name:    "returns error for unwritable path",
			dbPath:  "/proc/lgrep/history.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.dbPath)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, store)
			defer store.Close()

			assert.Equal(t, tt.dbPath, store.Path())

			count, err := store.Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, count)
		})
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, &RunRecord{Patterns: []string{"cat"}, ExitCode: 0}))
	require.NoError(t, store.Close())

	store, err = NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordAssignsIDAndTime(t *testing.T) {
	store := newTestStore(t)

	run := &RunRecord{Patterns: []string{"dog"}, Sources: []string{"-"}, ExitCode: 1}
	before := time.Now()
	require.NoError(t, store.Record(context.Background(), run))

	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.False(t, run.StartedAt.Before(before))
}

func TestRecordRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := &RunRecord{
		ID:             uuid.New(),
		StartedAt:      time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Duration:       1500 * time.Millisecond,
		Patterns:       []string{"cat", `\(a\|b\)`},
		Sources:        []string{"pets.txt", "src"},
		Dialect:        "basic",
		Invert:         true,
		SourcesScanned: 4,
		LinesScanned:   120,
		MatchedLines:   7,
		Errors:         1,
		ExitCode:       0,
	}
	require.NoError(t, store.Record(ctx, want))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.StartedAt.Equal(got.StartedAt), "StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	assert.Equal(t, want.Duration, got.Duration)
	assert.Equal(t, want.Patterns, got.Patterns)
	assert.Equal(t, want.Sources, got.Sources)
	assert.Equal(t, want.Dialect, got.Dialect)
	assert.Equal(t, want.Invert, got.Invert)
	assert.Equal(t, want.SourcesScanned, got.SourcesScanned)
	assert.Equal(t, want.LinesScanned, got.LinesScanned)
	assert.Equal(t, want.MatchedLines, got.MatchedLines)
	assert.Equal(t, want.Errors, got.Errors)
	assert.Equal(t, want.ExitCode, got.ExitCode)
}

func TestRecordEmptyLists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, &RunRecord{ExitCode: 2}))

	runs, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Empty(t, runs[0].Patterns)
	assert.Empty(t, runs[0].Sources)
}

func TestRecordDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, store.Record(ctx, &RunRecord{ID: id}))
	assert.Error(t, store.Record(ctx, &RunRecord{ID: id}))
}

func TestRecentOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, &RunRecord{
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Patterns:  []string{fmt.Sprintf("p%d", i)},
		}))
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{limit: 0, want: nil},
		{limit: -1, want: nil},
		{limit: 2, want: []string{"p4", "p3"}},
		{limit: 10, want: []string{"p4", "p3", "p2", "p1", "p0"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			runs, err := store.Recent(ctx, tt.limit)
			require.NoError(t, err)

			var got []string
			for _, run := range runs {
				got = append(got, run.Patterns[0])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConcurrentStores(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	const writers = 4
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store, err := NewStore(dbPath)
			if err != nil {
				errs <- err
				return
			}
			defer store.Close()
			errs <- store.Record(ctx, &RunRecord{Patterns: []string{fmt.Sprintf("w%d", i)}})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	check, err := NewStore(dbPath)
	require.NoError(t, err)
	defer check.Close()

	count, err := check.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers, count)
}

func TestRunRecordSummary(t *testing.T) {
	run := &RunRecord{
		ID:             uuid.MustParse("0b1c2d3e-4f50-4617-8293-a4b5c6d7e8f9"),
		StartedAt:      time.Now(),
		Patterns:       []string{"cat", "dog"},
		SourcesScanned: 2,
		MatchedLines:   3,
		ExitCode:       0,
	}

	summary := run.Summary()
	assert.True(t, strings.HasPrefix(summary, "0b1c2d3e  "))
	assert.Contains(t, summary, "exit=0")
	assert.Contains(t, summary, "matched=3")
	assert.Contains(t, summary, "sources=2")
	assert.Contains(t, summary, `patterns="cat","dog"`)
}
