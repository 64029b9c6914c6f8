package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/bnema/tabmatch/internal/domain/repository"
)

// ErrSessionNotFound is returned when a session state cannot be found.
var ErrSessionNotFound = errors.New("session not found")

const defaultListLimit = 50

// ListSessionsUseCase handles listing sessions with their state information.
type ListSessionsUseCase struct {
	stateRepo repository.SessionStateRepository
}

// NewListSessionsUseCase creates a new ListSessionsUseCase.
func NewListSessionsUseCase(stateRepo repository.SessionStateRepository) *ListSessionsUseCase {
	return &ListSessionsUseCase{stateRepo: stateRepo}
}

// Execute returns up to limit sessions, most recently saved first.
// A non-positive limit uses the default of 50.
func (uc *ListSessionsUseCase) Execute(ctx context.Context, limit int) ([]entity.SessionInfo, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	states, err := uc.stateRepo.GetAllSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	infos := make([]entity.SessionInfo, 0, len(states))
	for _, state := range states {
		infos = append(infos, sessionInfo(state))
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})

	if len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

// GetSessionInfo returns info for a specific session.
func (uc *ListSessionsUseCase) GetSessionInfo(ctx context.Context, sessionID entity.SessionID) (*entity.SessionInfo, error) {
	state, err := uc.stateRepo.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if state == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	info := sessionInfo(state)
	return &info, nil
}

func sessionInfo(state *entity.SessionState) entity.SessionInfo {
	return entity.SessionInfo{
		State:     state,
		TabCount:  len(state.Tabs),
		UpdatedAt: state.SavedAt,
	}
}

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// GetRelativeTime returns a human-readable relative time string.
func GetRelativeTime(t time.Time) string {
	return relativeTime(time.Now(), t)
}

func relativeTime(now, t time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < hoursPerDay*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < daysPerWeek*hoursPerDay*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/hoursPerDay))
	default:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/hoursPerDay/daysPerWeek))
	}
}

// TotalSize returns the storage used by all snapshots in bytes.
func (uc *ListSessionsUseCase) TotalSize(ctx context.Context) (int64, error) {
	size, err := uc.stateRepo.GetTotalSnapshotsSize(ctx)
	if err != nil {
		return 0, fmt.Errorf("snapshot size: %w", err)
	}
	return size, nil
}
