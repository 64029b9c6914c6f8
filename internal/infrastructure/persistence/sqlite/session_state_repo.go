package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/bnema/tabmatch/internal/domain/repository"
	"github.com/bnema/tabmatch/internal/logging"
)

const (
	upsertSessionStateSQL = `
INSERT INTO session_states (session_id, state_json, version, tab_count, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
    state_json = excluded.state_json,
    version = excluded.version,
    tab_count = excluded.tab_count,
    updated_at = excluded.updated_at`

	getSessionStateSQL = `SELECT state_json FROM session_states WHERE session_id = ?`

	deleteSessionStateSQL = `DELETE FROM session_states WHERE session_id = ?`

	getAllSessionStatesSQL = `
SELECT session_id, state_json FROM session_states
ORDER BY updated_at DESC, session_id`

	totalSessionStatesSizeSQL = `SELECT COALESCE(SUM(LENGTH(state_json)), 0) FROM session_states`
)

type sessionStateRepo struct {
	db *sql.DB
}

// NewSessionStateRepository creates a new session state repository.
func NewSessionStateRepository(db *sql.DB) repository.SessionStateRepository {
	return &sessionStateRepo{db: db}
}

// SaveSnapshot saves or updates a session state snapshot.
func (r *sessionStateRepo) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	log := logging.FromContext(ctx)
	if err := state.Validate(); err != nil {
		return err
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	log.Debug().
		Str("session_id", string(state.SessionID)).
		Int("tab_count", len(state.Tabs)).
		Msg("saving session state snapshot")

	_, err = r.db.ExecContext(ctx, upsertSessionStateSQL,
		string(state.SessionID),
		string(stateJSON),
		state.Version,
		len(state.Tabs),
		state.SavedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert session state: %w", err)
	}
	return nil
}

// GetSnapshot returns the latest snapshot for a session.
func (r *sessionStateRepo) GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	var stateJSON string
	err := r.db.QueryRowContext(ctx, getSessionStateSQL, string(sessionID)).Scan(&stateJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query session state: %w", err)
	}

	var state entity.SessionState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("session_id", string(sessionID)).
			Msg("failed to unmarshal session state")
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidSessionState, err)
	}

	return &state, nil
}

// DeleteSnapshot removes a session's snapshot.
func (r *sessionStateRepo) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	logging.FromContext(ctx).Debug().Str("session_id", string(sessionID)).Msg("deleting session state snapshot")
	if _, err := r.db.ExecContext(ctx, deleteSessionStateSQL, string(sessionID)); err != nil {
		return fmt.Errorf("delete session state: %w", err)
	}
	return nil
}

// GetAllSnapshots returns all snapshots, most recently saved first.
// Rows that no longer decode are skipped.
func (r *sessionStateRepo) GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error) {
	rows, err := r.db.QueryContext(ctx, getAllSessionStatesSQL)
	if err != nil {
		return nil, fmt.Errorf("query session states: %w", err)
	}
	defer rows.Close()

	var states []*entity.SessionState
	for rows.Next() {
		var sessionID, stateJSON string
		if err := rows.Scan(&sessionID, &stateJSON); err != nil {
			return nil, fmt.Errorf("scan session state: %w", err)
		}

		var state entity.SessionState
		if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
			logging.FromContext(ctx).Warn().Err(err).
				Str("session_id", sessionID).
				Msg("skipping corrupted session state")
			continue
		}
		states = append(states, &state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session states: %w", err)
	}

	return states, nil
}

// GetTotalSnapshotsSize returns the total size of all session snapshots in bytes.
func (r *sessionStateRepo) GetTotalSnapshotsSize(ctx context.Context) (int64, error) {
	var size int64
	if err := r.db.QueryRowContext(ctx, totalSessionStatesSizeSQL).Scan(&size); err != nil {
		return 0, fmt.Errorf("sum session states: %w", err)
	}
	return size, nil
}
