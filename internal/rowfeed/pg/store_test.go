package pg_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmeey/expiry-dashboard/internal/rowfeed"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed/pg"
	"github.com/jimmeey/expiry-dashboard/testutil"
)

// newTestStore returns a Store bound to a transaction that is rolled back
// when the test finishes, so tests never see each other's rows.
func newTestStore(t *testing.T) *pg.Store {
	t.Helper()

	pool := testutil.MigratedPool(t)
	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return pg.NewStore(tx)
}

func TestMemberRows_EmptyFeed(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.MemberRows(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSeedAndReadMemberRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seeded := [][]string{
		{"Unique ID", "Member ID"},
		{"U1", "M1", "Jane", "Doe", "jane@x.com"},
		{"U2", "M2"},
	}
	require.NoError(t, store.SeedMemberRows(ctx, seeded))

	rows, err := store.MemberRows(ctx)

	require.NoError(t, err)
	assert.Equal(t, seeded, rows, "rows come back in position order, cells intact")
}

func TestSeedMemberRows_Replaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedMemberRows(ctx, [][]string{{"old header"}, {"U1"}}))
	require.NoError(t, store.SeedMemberRows(ctx, [][]string{{"new header"}}))

	rows, err := store.MemberRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"new header"}}, rows)
}

func TestAnnotationRows_EmptyTableIsHeaderOnly(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.AnnotationRows(context.Background())

	require.NoError(t, err)
	assert.Equal(t, [][]string{rowfeed.AnnotationHeader()}, rows)
}

func TestWriteAndReadAnnotationRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	written := [][]string{
		rowfeed.AnnotationHeader(),
		{"U1", "M1", "jane@x.com", "vip", "call back", "hot, lead", "2025-05-01", "2025-05-01T00:00:00Z", "U1-M1-jane@x.com"},
	}
	require.NoError(t, store.WriteAnnotationRows(ctx, written))

	rows, err := store.AnnotationRows(ctx)

	require.NoError(t, err)
	assert.Equal(t, written, rows)
}

// TestWriteAnnotationRows_Replaces: each write is a whole-store replacement,
// matching the spreadsheet backend's values PUT.
func TestWriteAnnotationRows_Replaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := [][]string{
		rowfeed.AnnotationHeader(),
		{"U1", "", "", "first", "", "", "", "", ""},
		{"U2", "", "", "other", "", "", "", "", ""},
	}
	require.NoError(t, store.WriteAnnotationRows(ctx, first))

	second := [][]string{
		rowfeed.AnnotationHeader(),
		{"U1", "", "", "second", "", "", "", "", ""},
	}
	require.NoError(t, store.WriteAnnotationRows(ctx, second))

	rows, err := store.AnnotationRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, rows)
}
