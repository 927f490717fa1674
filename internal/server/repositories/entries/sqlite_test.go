package entries

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/dmitrijs2005/daybook/internal/server/migrations"
	"github.com/google/go-cmp/cmp"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.SQLiteDir))

	return NewSQLiteRepository(db)
}

func seed(t *testing.T, r *SQLiteRepository, entries ...models.Entry) {
	t.Helper()
	for i := range entries {
		require.NoError(t, r.Insert(context.Background(), &entries[i]))
	}
}

func ids(es []models.Entry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestSQLite_ListOrdersAndFilters(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	seed(t, r,
		models.Entry{ID: "a", DiaryID: "d", DayNumber: models.Ptr(2), Date: "2026-10-02", CreatedAt: base.Add(2 * time.Hour)},
		models.Entry{ID: "b", DiaryID: "d", Date: "2026-10-03", CreatedAt: base.Add(3 * time.Hour)},
		models.Entry{ID: "c", DiaryID: "d", DayNumber: models.Ptr(1), Date: "2026-10-01", CreatedAt: base.Add(1 * time.Hour)},
		models.Entry{ID: "x", DiaryID: "other", DayNumber: models.Ptr(9), Date: "2026-10-01", CreatedAt: base},
	)

	got, err := r.List(ctx, models.EntryQuery{DiaryID: "d", WithDayOnly: true, OrderBy: models.OrderByDayNumber, Ascending: true})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"c", "a"}, ids(got)); diff != "" {
		t.Fatalf("day order mismatch (-want +got):\n%s", diff)
	}

	got, err = r.List(ctx, models.EntryQuery{DiaryID: "d", OrderBy: models.OrderByDate, Limit: 2})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"b", "a"}, ids(got)); diff != "" {
		t.Fatalf("recent order mismatch (-want +got):\n%s", diff)
	}

	got, err = r.List(ctx, models.EntryQuery{DiaryID: "nobody"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSQLite_RoundTripsOptionalFields(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()

	in := models.Entry{
		ID: "e1", DiaryID: "d", DayNumber: models.Ptr(7), Date: "2026-10-15",
		Author: models.Ptr("sam"), Text: models.Ptr("hello"),
		ImageURL: models.Ptr("http://svc/object/public/img/d/1.png"), ImagePath: models.Ptr("d/1.png"),
		PromptID: models.Ptr(7), PromptText: models.Ptr("seventh"),
		CreatedAt: time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC),
	}
	seed(t, r, in)

	got, err := r.List(ctx, models.EntryQuery{DiaryID: "d"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	if diff := cmp.Diff(in, got[0], cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLite_Delete(t *testing.T) {
	r := newSQLiteRepo(t)
	ctx := context.Background()

	seed(t, r, models.Entry{ID: "e1", DiaryID: "d", Date: "2026-10-15", CreatedAt: time.Now().UTC()})

	require.NoError(t, r.Delete(ctx, "e1"))
	require.ErrorIs(t, r.Delete(ctx, "e1"), common.ErrorNotFound)

	got, err := r.List(ctx, models.EntryQuery{DiaryID: "d"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSQLite_InsertDuplicateID(t *testing.T) {
	r := newSQLiteRepo(t)
	e := models.Entry{ID: "e1", DiaryID: "d", Date: "2026-10-15", CreatedAt: time.Now().UTC()}
	seed(t, r, e)

	err := r.Insert(context.Background(), &e)
	require.ErrorContains(t, err, "failed to insert entry")
}
