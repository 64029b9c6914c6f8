package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/tabmatch/internal/application/port"
	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/bnema/tabmatch/internal/domain/repository"
	"github.com/bnema/tabmatch/internal/domain/url"
	"github.com/bnema/tabmatch/internal/logging"
)

// ErrInvalidKeyURL is returned when the key URL cannot be parsed.
var ErrInvalidKeyURL = errors.New("invalid key url")

// maxConcurrentSessions bounds the scoring goroutines of ExecuteAcrossSessions.
const maxConcurrentSessions = 8

// FindSimilarTabUseCase finds the open tab that best matches a URL.
type FindSimilarTabUseCase struct {
	stateRepo repository.SessionStateRepository
	recorder  port.MatchRecorder
}

// NewFindSimilarTabUseCase creates a new FindSimilarTabUseCase.
// Both dependencies may be nil: without a repository only explicit
// candidates can be scored, without a recorder nothing is reported.
func NewFindSimilarTabUseCase(
	stateRepo repository.SessionStateRepository,
	recorder port.MatchRecorder,
) *FindSimilarTabUseCase {
	return &FindSimilarTabUseCase{
		stateRepo: stateRepo,
		recorder:  recorder,
	}
}

// FindSimilarTabInput describes a lookup.
// Candidates is used when SessionID is empty.
type FindSimilarTabInput struct {
	KeyURL     string
	Laxness    url.Laxness
	Candidates []string
	SessionID  entity.SessionID
}

// FindSimilarTabOutput is the result of a lookup.
type FindSimilarTabOutput struct {
	Result    url.MatchResult
	Config    url.ScorerConfig
	SessionID entity.SessionID

	// CandidateURL is the raw candidate at Result.Index.
	CandidateURL string
	// Tab is set when candidates came from a saved session.
	Tab *entity.TabSnapshot
}

// Found reports whether a candidate matched.
func (o *FindSimilarTabOutput) Found() bool {
	return o != nil && o.Result.Found()
}

// Execute scores the candidates of a single list or session.
func (uc *FindSimilarTabUseCase) Execute(ctx context.Context, input FindSimilarTabInput) (*FindSimilarTabOutput, error) {
	scorer, err := newScorer(input)
	if err != nil {
		return nil, err
	}

	if input.SessionID == "" {
		out := uc.scan(ctx, scorer, input.Candidates)
		return out, nil
	}

	state, err := uc.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	out := uc.scanSession(ctx, scorer, state)
	return out, nil
}

// ExecuteAcrossSessions scores every saved session concurrently and returns
// the best match. Sessions are ranked most recent first, and on equal
// scores the more recent session wins.
func (uc *FindSimilarTabUseCase) ExecuteAcrossSessions(ctx context.Context, input FindSimilarTabInput) (*FindSimilarTabOutput, error) {
	scorer, err := newScorer(input)
	if err != nil {
		return nil, err
	}
	if uc.stateRepo == nil {
		return nil, fmt.Errorf("find similar tab: no session repository configured")
	}

	states, err := uc.stateRepo.GetAllSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	results := make([]url.MatchResult, len(states))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSessions)
	for i, state := range states {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scorer.FindMostSimilar(candidates{src: state.TabList()})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := &FindSimilarTabOutput{
		Result: url.MatchResult{Index: url.NotFound, Score: url.Mismatched},
		Config: scorer.Config(),
	}
	for i, state := range states {
		if results[i].Score > best.Result.Score {
			best = sessionOutput(scorer.Config(), state, results[i])
		}
	}
	uc.record(scorer.Config(), best.Result)

	logMatch(ctx, best, len(states))
	return best, nil
}

func newScorer(input FindSimilarTabInput) (*url.Scorer, error) {
	key, err := url.ParseInput(input.KeyURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyURL, err)
	}
	return url.NewScorer(input.Laxness.Config(key)), nil
}

func (uc *FindSimilarTabUseCase) loadSession(ctx context.Context, id entity.SessionID) (*entity.SessionState, error) {
	if uc.stateRepo == nil {
		return nil, fmt.Errorf("find similar tab: no session repository configured")
	}
	state, err := uc.stateRepo.GetSnapshot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if state == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return state, nil
}

func (uc *FindSimilarTabUseCase) scan(ctx context.Context, scorer *url.Scorer, urls []string) *FindSimilarTabOutput {
	result := scorer.FindMostSimilar(candidates{src: uriList(urls)})
	uc.record(scorer.Config(), result)

	out := &FindSimilarTabOutput{Result: result, Config: scorer.Config()}
	if result.Found() {
		out.CandidateURL = urls[result.Index]
	}
	logMatch(ctx, out, 1)
	return out
}

func (uc *FindSimilarTabUseCase) scanSession(ctx context.Context, scorer *url.Scorer, state *entity.SessionState) *FindSimilarTabOutput {
	result := scorer.FindMostSimilar(candidates{src: state.TabList()})
	uc.record(scorer.Config(), result)

	out := sessionOutput(scorer.Config(), state, result)
	logMatch(ctx, out, 1)
	return out
}

func (uc *FindSimilarTabUseCase) record(cfg url.ScorerConfig, result url.MatchResult) {
	if uc.recorder != nil {
		uc.recorder.RecordMatch(cfg, result)
	}
}

func sessionOutput(cfg url.ScorerConfig, state *entity.SessionState, result url.MatchResult) *FindSimilarTabOutput {
	out := &FindSimilarTabOutput{
		Result:    result,
		Config:    cfg,
		SessionID: state.SessionID,
	}
	if result.Found() {
		tab := state.Tabs[result.Index]
		out.Tab = &tab
		out.CandidateURL = tab.URI
	}
	return out
}

func logMatch(ctx context.Context, out *FindSimilarTabOutput, sessions int) {
	log := logging.FromContext(ctx)
	suffix, _ := out.Config.HistogramStrictnessSuffix()

	event := log.Debug().
		Str("key", out.Config.KeyURL.String()).
		Str("domain", url.ExtractDomain(out.Config.KeyURL.String())).
		Str("strictness", suffix).
		Int("sessions", sessions).
		Int("index", out.Result.Index).
		Int("score", out.Result.Score)
	if out.SessionID != "" {
		event = event.Str("session_id", string(out.SessionID))
	}
	event.Msg("similar tab lookup")
}

// tabSource is the candidate collaborator: a count and a URL per index.
// entity.TabList and uriList implement it.
type tabSource interface {
	Count() int
	URIAt(i int) string
}

var _ tabSource = (*entity.TabList)(nil)

// uriList is a tabSource over explicit candidate URLs.
type uriList []string

func (l uriList) Count() int { return len(l) }

func (l uriList) URIAt(i int) string {
	if i < 0 || i >= len(l) {
		return ""
	}
	return l[i]
}

// candidates parses the URLs of a tabSource lazily. Entries that fail to
// parse are reported as missing so the scorer treats them as mismatched.
type candidates struct {
	src tabSource
}

func (c candidates) Len() int { return c.src.Count() }

func (c candidates) URLAt(i int) (url.URL, bool) {
	raw := c.src.URIAt(i)
	if raw == "" {
		return url.URL{}, false
	}
	u, err := url.ParseInput(raw)
	if err != nil {
		return url.URL{}, false
	}
	return u, true
}
