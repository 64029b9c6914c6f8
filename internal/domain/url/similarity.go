package url

// Score bounds returned by Scorer.ScoreSimilarity.
const (
	// Mismatched means the candidate is not considered the same page.
	Mismatched = 0
	// Exact means the candidate is identical to the key URL.
	Exact = 1000

	// NotFound is the MatchResult index when no candidate matched.
	NotFound = -1
)

// Penalties applied on top of the path base score.
const (
	hostPrefixPenalty = 7
	refPenalty        = 8
	queryPenalty      = 9

	// Each directory level below the key keeps pathDecayNumerator/1000 of
	// the previous level's base score.
	pathDecayNumerator = 983
	pathDecayDenom     = 1000
	pathBaseFloor      = 20

	// Lowest score a lax match can reach.
	scoreFloor = 10
)

// Histogram suffixes for the ladder-consistent configurations.
const (
	SuffixStrict       = "Strict"
	SuffixLaxUpToRef   = "LaxUpToRef"
	SuffixLaxUpToQuery = "LaxUpToQuery"
	SuffixLaxUpToPath  = "LaxUpToPath"
)

// ScorerConfig holds the key URL and the laxness ladder. The flags are
// meant to be enabled in order: scheme/host, ref, query, path. A flag
// whose predecessor is disabled has no effect.
type ScorerConfig struct {
	KeyURL        URL
	LaxSchemeHost bool
	LaxRef        bool
	LaxQuery      bool
	LaxPath       bool
}

// HistogramStrictnessSuffix names the configuration when it sits on the
// laxness ladder. Any other flag combination has no name.
func (c ScorerConfig) HistogramStrictnessSuffix() (string, bool) {
	switch {
	case !c.LaxSchemeHost && !c.LaxRef && !c.LaxQuery && !c.LaxPath:
		return SuffixStrict, true
	case c.LaxSchemeHost && c.LaxRef && !c.LaxQuery && !c.LaxPath:
		return SuffixLaxUpToRef, true
	case c.LaxSchemeHost && c.LaxRef && c.LaxQuery && !c.LaxPath:
		return SuffixLaxUpToQuery, true
	case c.LaxSchemeHost && c.LaxRef && c.LaxQuery && c.LaxPath:
		return SuffixLaxUpToPath, true
	default:
		return "", false
	}
}

// MatchResult is the outcome of scanning a candidate list.
type MatchResult struct {
	Index int
	Score int
}

// Found reports whether a candidate matched.
func (r MatchResult) Found() bool {
	return r.Index != NotFound
}

// CandidateSource is an ordered list of candidate URLs. URLAt returns false
// for entries that have no usable URL; those never match.
type CandidateSource interface {
	Len() int
	URLAt(i int) (URL, bool)
}

// URLs adapts a slice to CandidateSource.
type URLs []URL

func (u URLs) Len() int { return len(u) }

func (u URLs) URLAt(i int) (URL, bool) {
	if i < 0 || i >= len(u) {
		return URL{}, false
	}
	return u[i], true
}

// Scorer compares candidate URLs against a fixed key URL.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	cfg ScorerConfig

	laxRef   bool
	laxQuery bool
	laxPath  bool

	keyCanonicalHost string
	keyIsDirectory   bool
}

// NewScorer builds a Scorer, resolving the ladder so that each level is lax
// only when every level before it is lax too.
func NewScorer(cfg ScorerConfig) *Scorer {
	laxRef := cfg.LaxSchemeHost && cfg.LaxRef
	laxQuery := laxRef && cfg.LaxQuery
	laxPath := laxQuery && cfg.LaxPath

	return &Scorer{
		cfg:              cfg,
		laxRef:           laxRef,
		laxQuery:         laxQuery,
		laxPath:          laxPath,
		keyCanonicalHost: CanonicalizeHost(cfg.KeyURL.Host),
		keyIsDirectory:   isDirectoryPath(cfg.KeyURL.Path),
	}
}

// Config returns the configuration the scorer was built with.
func (s *Scorer) Config() ScorerConfig {
	return s.cfg
}

// ScoreSimilarity returns Exact for an identical candidate, Mismatched when
// a strict dimension differs or a lax one is incompatible, and a value in
// between otherwise. Closer candidates score higher.
func (s *Scorer) ScoreSimilarity(candidate URL) int {
	key := s.cfg.KeyURL

	if key.Equal(candidate) {
		return Exact
	}
	if !s.cfg.LaxSchemeHost {
		return Mismatched
	}

	if candidate.Scheme != key.Scheme || candidate.EffectivePort() != key.EffectivePort() {
		return Mismatched
	}
	if CanonicalizeHost(candidate.Host) != s.keyCanonicalHost {
		return Mismatched
	}

	penalty := 0
	if candidate.Host != key.Host {
		penalty += hostPrefixPenalty
	}

	// A file key only tolerates host differences.
	laxRef, laxQuery := s.laxRef, s.laxQuery
	if !s.keyIsDirectory {
		laxRef, laxQuery = false, false
	}

	if candidate.Ref != key.Ref {
		if !laxRef {
			return Mismatched
		}
		penalty += refPenalty
	}

	if candidate.Query != key.Query {
		if !laxQuery {
			return Mismatched
		}
		penalty += queryPenalty
	}

	depth, ok := s.pathDepth(candidate.Path)
	if !ok {
		return Mismatched
	}

	score := pathBase(depth) - penalty
	if score < scoreFloor {
		score = scoreFloor
	}
	if score >= Exact {
		// Same page, but not byte-identical.
		score = Exact - 1
	}
	return score
}

// pathDepth returns how far below the key path the candidate path sits.
func (s *Scorer) pathDepth(candidatePath string) (int, bool) {
	keyPath := s.cfg.KeyURL.Path

	if !s.laxPath {
		if candidatePath != keyPath {
			return 0, false
		}
		return 0, true
	}

	// A file key matches its own path only; "/page.html/" is a different
	// resource.
	if !s.keyIsDirectory {
		return 0, candidatePath == keyPath
	}

	return PathAncestralDepth(keyPath, candidatePath)
}

// pathBase decays geometrically with depth down to pathBaseFloor.
func pathBase(depth int) int {
	base := Exact
	for i := 0; i < depth && base > pathBaseFloor; i++ {
		base = base * pathDecayNumerator / pathDecayDenom
	}
	if base < pathBaseFloor {
		base = pathBaseFloor
	}
	return base
}

// FindMostSimilar scans src in order and returns the index and score of
// the highest scoring candidate. Ties keep the earliest candidate. When
// nothing scores above Mismatched the index is NotFound.
func (s *Scorer) FindMostSimilar(src CandidateSource) MatchResult {
	best := MatchResult{Index: NotFound, Score: Mismatched}
	if src == nil {
		return best
	}

	for i := 0; i < src.Len(); i++ {
		candidate, ok := src.URLAt(i)
		if !ok {
			continue
		}
		score := s.ScoreSimilarity(candidate)
		if score > best.Score {
			best = MatchResult{Index: i, Score: score}
			if score == Exact {
				break
			}
		}
	}
	return best
}
