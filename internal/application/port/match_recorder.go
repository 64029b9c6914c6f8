// Package port defines the boundaries the use cases depend on.
package port

import "github.com/bnema/tabmatch/internal/domain/url"

// MatchRecorder observes the outcome of a similarity lookup.
type MatchRecorder interface {
	// RecordMatch is called once per completed FindMostSimilar scan.
	RecordMatch(cfg url.ScorerConfig, result url.MatchResult)
}
