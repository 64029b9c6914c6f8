package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/bnema/tabmatch/internal/domain/repository"
	"github.com/bnema/tabmatch/internal/logging"
)

// DeleteSessionUseCase removes a saved session.
type DeleteSessionUseCase struct {
	stateRepo repository.SessionStateRepository
}

// NewDeleteSessionUseCase creates a new DeleteSessionUseCase.
func NewDeleteSessionUseCase(stateRepo repository.SessionStateRepository) *DeleteSessionUseCase {
	return &DeleteSessionUseCase{stateRepo: stateRepo}
}

// Execute deletes the session's snapshot. Unknown sessions yield ErrSessionNotFound.
func (uc *DeleteSessionUseCase) Execute(ctx context.Context, sessionID entity.SessionID) error {
	log := logging.FromContext(ctx)

	state, err := uc.stateRepo.GetSnapshot(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if state == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	log.Info().Str("session_id", string(sessionID)).Msg("deleting session")

	if err := uc.stateRepo.DeleteSnapshot(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
