package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/bnema/tabmatch/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabmatch/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) (context.Context, *sqlite.LazyDB) {
	t.Helper()
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "tabmatch.db"))
	t.Cleanup(func() { _ = lazy.Close() })
	return ctx, lazy
}

func snapshot(id entity.SessionID, savedAt time.Time, uris ...string) *entity.SessionState {
	tabs := make([]entity.TabSnapshot, 0, len(uris))
	for i, uri := range uris {
		tabs = append(tabs, entity.TabSnapshot{ID: entity.TabID(uri), URI: uri, Position: i})
	}
	return &entity.SessionState{
		Version:   entity.SessionStateVersion,
		SessionID: id,
		Tabs:      tabs,
		SavedAt:   savedAt,
	}
}

func TestSessionStateRepository_CRUD(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)

	repo := sqlite.NewSessionStateRepository(db)

	savedAt := time.Date(2025, 12, 22, 8, 0, 0, 0, time.UTC)
	state := snapshot("20251222_080000_abcd", savedAt, "https://example.com/", "https://example.org/a")
	require.NoError(t, repo.SaveSnapshot(ctx, state))

	got, err := repo.GetSnapshot(ctx, state.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state.SessionID, got.SessionID)
	assert.Equal(t, state.Tabs, got.Tabs)
	assert.True(t, got.SavedAt.Equal(savedAt))

	// Saving again replaces the snapshot.
	state.Tabs = state.Tabs[:1]
	require.NoError(t, repo.SaveSnapshot(ctx, state))
	got, err = repo.GetSnapshot(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Len(t, got.Tabs, 1)

	require.NoError(t, repo.DeleteSnapshot(ctx, state.SessionID))
	got, err = repo.GetSnapshot(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing snapshot is not an error.
	require.NoError(t, repo.DeleteSnapshot(ctx, state.SessionID))
}

func TestSessionStateRepository_GetAllSnapshots_MostRecentFirst(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)

	repo := sqlite.NewSessionStateRepository(db)

	base := time.Date(2025, 12, 22, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("old", base)))
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("new", base.Add(500*time.Millisecond))))
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("mid", base.Add(time.Millisecond))))

	// A row that no longer decodes is skipped.
	_, err = db.ExecContext(ctx,
		`INSERT INTO session_states (session_id, state_json, version, tab_count, updated_at) VALUES (?, ?, ?, ?, ?)`,
		"broken", "{not json", 1, 0, base.Add(time.Hour).UnixNano())
	require.NoError(t, err)

	states, err := repo.GetAllSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, entity.SessionID("new"), states[0].SessionID)
	assert.Equal(t, entity.SessionID("mid"), states[1].SessionID)
	assert.Equal(t, entity.SessionID("old"), states[2].SessionID)

	_, err = repo.GetSnapshot(ctx, "broken")
	assert.ErrorIs(t, err, entity.ErrInvalidSessionState)
}

func TestSessionStateRepository_SaveSnapshot_RejectsInvalid(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)

	repo := sqlite.NewSessionStateRepository(db)

	assert.ErrorIs(t, repo.SaveSnapshot(ctx, nil), entity.ErrInvalidSessionState)
	assert.ErrorIs(t, repo.SaveSnapshot(ctx, snapshot("", time.Now())), entity.ErrInvalidSessionState)
}

func TestSessionStateRepository_GetTotalSnapshotsSize(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)

	repo := sqlite.NewSessionStateRepository(db)

	size, err := repo.GetTotalSnapshotsSize(ctx)
	require.NoError(t, err)
	assert.Zero(t, size)

	require.NoError(t, repo.SaveSnapshot(ctx, snapshot("s", time.Now(), "https://example.com/")))

	size, err = repo.GetTotalSnapshotsSize(ctx)
	require.NoError(t, err)
	assert.Positive(t, size)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)

	require.NoError(t, sqlite.RunMigrations(ctx, db))

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	require.Error(t, err)
}
