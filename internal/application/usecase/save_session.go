package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/bnema/tabmatch/internal/domain/repository"
	"github.com/bnema/tabmatch/internal/domain/url"
	"github.com/bnema/tabmatch/internal/logging"
)

const sessionIDSuffixLen = 4

// SaveSessionTab is one tab of a session to save.
type SaveSessionTab struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url" validate:"required,url"`
	Pinned bool   `yaml:"pinned"`
}

// SaveSessionInput is a set of tabs to store under SessionID.
// It doubles as the YAML import document.
type SaveSessionInput struct {
	SessionID      entity.SessionID `yaml:"session_id" validate:"required"`
	ActiveTabIndex int              `yaml:"active" validate:"gte=0"`
	Tabs           []SaveSessionTab `yaml:"tabs" validate:"dive"`
}

// SaveSessionUseCase stores tab sets as session snapshots.
type SaveSessionUseCase struct {
	stateRepo repository.SessionStateRepository
	validate  *validator.Validate
	newTabID  entity.IDGenerator
}

// NewSaveSessionUseCase creates a new SaveSessionUseCase.
func NewSaveSessionUseCase(stateRepo repository.SessionStateRepository) *SaveSessionUseCase {
	return &SaveSessionUseCase{
		stateRepo: stateRepo,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		newTabID:  uuid.NewString,
	}
}

// GenerateSessionID returns a sortable session ID such as 20251224_120000_ab12.
func GenerateSessionID(now time.Time) entity.SessionID {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:sessionIDSuffixLen]
	return entity.SessionID(now.Format("20060102_150405") + "_" + suffix)
}

// Execute normalizes and validates the tabs, then persists the snapshot.
func (uc *SaveSessionUseCase) Execute(ctx context.Context, input SaveSessionInput) (*entity.SessionState, error) {
	log := logging.FromContext(ctx)

	for i := range input.Tabs {
		input.Tabs[i].URL = url.NormalizeInput(input.Tabs[i].URL)
	}
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidSessionState, validationError(err))
	}
	if input.ActiveTabIndex > 0 && input.ActiveTabIndex >= len(input.Tabs) {
		return nil, fmt.Errorf("%w: active tab %d out of range for %d tabs",
			entity.ErrInvalidSessionState, input.ActiveTabIndex, len(input.Tabs))
	}

	tabs := entity.NewTabList()
	for i, t := range input.Tabs {
		tab := entity.NewTab(entity.TabID(uc.newTabID()), t.URL)
		tab.Name = t.Name
		tab.IsPinned = t.Pinned
		tabs.Add(tab)
		if i == input.ActiveTabIndex {
			tabs.ActiveTabID = tab.ID
		}
	}

	state := entity.SnapshotFromTabList(input.SessionID, tabs)
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if err := uc.stateRepo.SaveSnapshot(ctx, state); err != nil {
		return nil, fmt.Errorf("save session %s: %w", input.SessionID, err)
	}

	log.Info().
		Str("session_id", string(state.SessionID)).
		Int("tabs", len(state.Tabs)).
		Msg("session saved")
	return state, nil
}

// Import reads a YAML session document from r and saves it.
func (uc *SaveSessionUseCase) Import(ctx context.Context, r io.Reader) (*entity.SessionState, error) {
	var input SaveSessionInput
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", entity.ErrInvalidSessionState)
		}
		return nil, fmt.Errorf("decode session document: %w", err)
	}
	return uc.Execute(ctx, input)
}

// ImportFile is Import for a file on disk.
func (uc *SaveSessionUseCase) ImportFile(ctx context.Context, path string) (*entity.SessionState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session document: %w", err)
	}
	defer f.Close()

	return uc.Import(logging.WithComponent(ctx, "import"), f)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
