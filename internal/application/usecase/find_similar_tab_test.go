package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/tabmatch/internal/application/port/mocks"
	"github.com/bnema/tabmatch/internal/application/usecase"
	"github.com/bnema/tabmatch/internal/domain/entity"
	repomocks "github.com/bnema/tabmatch/internal/domain/repository/mocks"
	"github.com/bnema/tabmatch/internal/domain/url"
	"github.com/bnema/tabmatch/internal/infrastructure/metrics"
	"github.com/bnema/tabmatch/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

var laxAll = url.StrictnessLaxUpToPath.Laxness()

func sessionWithURIs(id entity.SessionID, savedAt time.Time, uris ...string) *entity.SessionState {
	tabs := make([]entity.TabSnapshot, 0, len(uris))
	for i, uri := range uris {
		tabs = append(tabs, entity.TabSnapshot{
			ID:       entity.TabID(string(id) + "-" + uri),
			URI:      uri,
			Position: i,
		})
	}
	return &entity.SessionState{
		Version:   entity.SessionStateVersion,
		SessionID: id,
		Tabs:      tabs,
		SavedAt:   savedAt,
	}
}

func TestFindSimilarTabUseCase_Execute_ExplicitCandidates(t *testing.T) {
	ctx := testContext()

	recorder := portmocks.NewMockMatchRecorder(t)
	recorder.EXPECT().RecordMatch(mock.Anything, url.MatchResult{Index: 2, Score: 993}).Return()

	uc := usecase.NewFindSimilarTabUseCase(nil, recorder)

	out, err := uc.Execute(ctx, usecase.FindSimilarTabInput{
		KeyURL:  "https://example.com/",
		Laxness: laxAll,
		Candidates: []string{
			"not a url",
			"https://example.org/",
			"https://www.example.com/",
			"https://example.com/path",
		},
	})
	require.NoError(t, err)
	require.True(t, out.Found())
	assert.Equal(t, 2, out.Result.Index)
	assert.Equal(t, 993, out.Result.Score)
	assert.Equal(t, "https://www.example.com/", out.CandidateURL)
	assert.Nil(t, out.Tab)
}

func TestFindSimilarTabUseCase_Execute_NoCandidates(t *testing.T) {
	ctx := testContext()

	uc := usecase.NewFindSimilarTabUseCase(nil, nil)

	out, err := uc.Execute(ctx, usecase.FindSimilarTabInput{
		KeyURL:  "https://example.com/",
		Laxness: laxAll,
	})
	require.NoError(t, err)
	assert.False(t, out.Found())
	assert.Equal(t, url.NotFound, out.Result.Index)
	assert.Equal(t, url.Mismatched, out.Result.Score)
	assert.Empty(t, out.CandidateURL)
}

func TestFindSimilarTabUseCase_Execute_StrictIgnoresNearMatches(t *testing.T) {
	ctx := testContext()

	uc := usecase.NewFindSimilarTabUseCase(nil, nil)

	out, err := uc.Execute(ctx, usecase.FindSimilarTabInput{
		KeyURL:     "https://example.com/",
		Laxness:    url.StrictnessStrict.Laxness(),
		Candidates: []string{"https://www.example.com/", "https://example.com/"},
	})
	require.NoError(t, err)
	assert.Equal(t, url.MatchResult{Index: 1, Score: url.Exact}, out.Result)
}

func TestFindSimilarTabUseCase_Execute_SchemelessInput(t *testing.T) {
	ctx := testContext()

	uc := usecase.NewFindSimilarTabUseCase(nil, nil)

	out, err := uc.Execute(ctx, usecase.FindSimilarTabInput{
		KeyURL:     "example.com/docs/",
		Laxness:    laxAll,
		Candidates: []string{"example.org/docs/", "  www.example.com/docs/"},
	})
	require.NoError(t, err)
	require.True(t, out.Found())
	assert.Equal(t, url.MatchResult{Index: 1, Score: url.Exact - 7}, out.Result)
	assert.Equal(t, "https://example.com/docs/", out.Config.KeyURL.String())

	out, err = uc.Execute(ctx, usecase.FindSimilarTabInput{
		KeyURL:     "example.com",
		Laxness:    url.StrictnessStrict.Laxness(),
		Candidates: []string{"https://example.com/"},
	})
	require.NoError(t, err)
	assert.Equal(t, url.MatchResult{Index: 0, Score: url.Exact}, out.Result)
}

func TestFindSimilarTabUseCase_Execute_InvalidKey(t *testing.T) {
	ctx := testContext()

	uc := usecase.NewFindSimilarTabUseCase(nil, nil)

	_, err := uc.Execute(ctx, usecase.FindSimilarTabInput{KeyURL: "not a url"})
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrInvalidKeyURL)
	assert.ErrorIs(t, err, url.ErrInvalidURL)
}

func TestFindSimilarTabUseCase_Execute_FromSession(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	sessionID := entity.SessionID("20251224_120000_abc1")
	state := sessionWithURIs(sessionID, time.Now(),
		"https://news.example.org/",
		"https://m.example.com/docs/intro",
	)
	stateRepo.EXPECT().GetSnapshot(ctx, sessionID).Return(state, nil)

	uc := usecase.NewFindSimilarTabUseCase(stateRepo, nil)

	out, err := uc.Execute(ctx, usecase.FindSimilarTabInput{
		KeyURL:    "https://example.com/docs/",
		Laxness:   laxAll,
		SessionID: sessionID,
	})
	require.NoError(t, err)
	require.True(t, out.Found())
	assert.Equal(t, 1, out.Result.Index)
	// One level below the key with a host prefix difference: 983 - 7.
	assert.Equal(t, 976, out.Result.Score)
	require.NotNil(t, out.Tab)
	assert.Equal(t, state.Tabs[1], *out.Tab)
	assert.Equal(t, sessionID, out.SessionID)
}

func TestFindSimilarTabUseCase_Execute_SessionNotFound(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	stateRepo.EXPECT().GetSnapshot(ctx, entity.SessionID("missing")).Return(nil, nil)

	uc := usecase.NewFindSimilarTabUseCase(stateRepo, nil)

	_, err := uc.Execute(ctx, usecase.FindSimilarTabInput{
		KeyURL:    "https://example.com/",
		SessionID: "missing",
	})
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestFindSimilarTabUseCase_ExecuteAcrossSessions_TieKeepsMostRecent(t *testing.T) {
	ctx := testContext()

	now := time.Now()
	stateRepo := repomocks.NewMockSessionStateRepository(t)
	stateRepo.EXPECT().GetAllSnapshots(ctx).Return([]*entity.SessionState{
		sessionWithURIs("recent", now, "https://example.com/docs"),
		sessionWithURIs("older", now.Add(-time.Hour), "https://example.org/", "https://example.com/docs"),
	}, nil)

	recorder := portmocks.NewMockMatchRecorder(t)
	recorder.EXPECT().RecordMatch(mock.Anything, url.MatchResult{Index: 0, Score: 983}).Return().Once()

	uc := usecase.NewFindSimilarTabUseCase(stateRepo, recorder)

	out, err := uc.ExecuteAcrossSessions(ctx, usecase.FindSimilarTabInput{
		KeyURL:  "https://example.com/",
		Laxness: laxAll,
	})
	require.NoError(t, err)
	require.True(t, out.Found())
	assert.Equal(t, entity.SessionID("recent"), out.SessionID)
	assert.Equal(t, url.MatchResult{Index: 0, Score: 983}, out.Result)
}

func TestFindSimilarTabUseCase_ExecuteAcrossSessions_BestScoreWins(t *testing.T) {
	ctx := testContext()

	now := time.Now()
	stateRepo := repomocks.NewMockSessionStateRepository(t)
	stateRepo.EXPECT().GetAllSnapshots(ctx).Return([]*entity.SessionState{
		sessionWithURIs("a", now, "https://www.example.com/docs"),
		sessionWithURIs("b", now.Add(-time.Minute), "https://example.org/"),
		sessionWithURIs("c", now.Add(-time.Hour), "https://example.org/", "https://example.com/"),
	}, nil)

	recorder := portmocks.NewMockMatchRecorder(t)
	recorder.EXPECT().RecordMatch(mock.Anything, url.MatchResult{Index: 1, Score: url.Exact}).Return().Once()

	uc := usecase.NewFindSimilarTabUseCase(stateRepo, recorder)

	out, err := uc.ExecuteAcrossSessions(ctx, usecase.FindSimilarTabInput{
		KeyURL:  "https://example.com/",
		Laxness: laxAll,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionID("c"), out.SessionID)
	assert.Equal(t, url.MatchResult{Index: 1, Score: url.Exact}, out.Result)
	assert.Equal(t, "https://example.com/", out.CandidateURL)
}

func TestFindSimilarTabUseCase_ExecuteAcrossSessions_NoSessions(t *testing.T) {
	ctx := testContext()

	stateRepo := repomocks.NewMockSessionStateRepository(t)
	stateRepo.EXPECT().GetAllSnapshots(ctx).Return(nil, nil)

	uc := usecase.NewFindSimilarTabUseCase(stateRepo, nil)

	out, err := uc.ExecuteAcrossSessions(ctx, usecase.FindSimilarTabInput{
		KeyURL:  "https://example.com/",
		Laxness: laxAll,
	})
	require.NoError(t, err)
	assert.False(t, out.Found())
	assert.Empty(t, out.SessionID)
}

func TestFindSimilarTabUseCase_ExecuteAcrossSessions_RepositoryError(t *testing.T) {
	ctx := testContext()

	boom := errors.New("database is locked")
	stateRepo := repomocks.NewMockSessionStateRepository(t)
	stateRepo.EXPECT().GetAllSnapshots(ctx).Return(nil, boom)

	uc := usecase.NewFindSimilarTabUseCase(stateRepo, nil)

	_, err := uc.ExecuteAcrossSessions(ctx, usecase.FindSimilarTabInput{
		KeyURL:  "https://example.com/",
		Laxness: laxAll,
	})
	assert.ErrorIs(t, err, boom)
}

func TestFindSimilarTabUseCase_ExecuteAcrossSessions_CountsOneLookup(t *testing.T) {
	ctx := testContext()

	now := time.Now()
	stateRepo := repomocks.NewMockSessionStateRepository(t)
	stateRepo.EXPECT().GetAllSnapshots(ctx).Return([]*entity.SessionState{
		sessionWithURIs("a", now, "https://example.org/"),
		sessionWithURIs("b", now.Add(-time.Minute), "https://other.example.net/"),
		sessionWithURIs("c", now.Add(-time.Hour), "https://www.example.com/"),
	}, nil)

	recorder := metrics.NewRecorder()
	uc := usecase.NewFindSimilarTabUseCase(stateRepo, recorder)

	out, err := uc.ExecuteAcrossSessions(ctx, usecase.FindSimilarTabInput{
		KeyURL:  "https://example.com/",
		Laxness: laxAll,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionID("c"), out.SessionID)
	assert.Equal(t, 993, out.Result.Score)

	var buckets strings.Builder
	for le := 0; le <= 900; le += 100 {
		fmt.Fprintf(&buckets, "tabmatch_similarity_score_bucket{strictness=\"LaxUpToPath\",le=\"%d\"} 0\n", le)
	}
	expected := `
# HELP tabmatch_lookups_total Similarity lookups by outcome.
# TYPE tabmatch_lookups_total counter
tabmatch_lookups_total{result="similar"} 1
# HELP tabmatch_similarity_score Best similarity score per lookup, by strictness.
# TYPE tabmatch_similarity_score histogram
` + buckets.String() + `tabmatch_similarity_score_bucket{strictness="LaxUpToPath",le="1000"} 1
tabmatch_similarity_score_bucket{strictness="LaxUpToPath",le="+Inf"} 1
tabmatch_similarity_score_sum{strictness="LaxUpToPath"} 993
tabmatch_similarity_score_count{strictness="LaxUpToPath"} 1
`
	require.NoError(t, testutil.GatherAndCompare(recorder.Registry(), strings.NewReader(expected),
		"tabmatch_lookups_total", "tabmatch_similarity_score"))
}
