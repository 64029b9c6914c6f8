package url

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrictness is returned by ParseStrictness for unknown names.
var ErrUnknownStrictness = errors.New("unknown strictness")

// Strictness names a rung of the laxness ladder.
type Strictness string

const (
	StrictnessStrict       Strictness = "strict"
	StrictnessLaxUpToRef   Strictness = "lax_up_to_ref"
	StrictnessLaxUpToQuery Strictness = "lax_up_to_query"
	StrictnessLaxUpToPath  Strictness = "lax_up_to_path"
)

// Strictnesses lists the ladder from strictest to laxest.
func Strictnesses() []Strictness {
	return []Strictness{
		StrictnessStrict,
		StrictnessLaxUpToRef,
		StrictnessLaxUpToQuery,
		StrictnessLaxUpToPath,
	}
}

// ParseStrictness accepts the snake_case names and the histogram suffixes,
// case-insensitively.
func ParseStrictness(s string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return StrictnessStrict, nil
	case "lax_up_to_ref", "laxuptoref":
		return StrictnessLaxUpToRef, nil
	case "lax_up_to_query", "laxuptoquery":
		return StrictnessLaxUpToQuery, nil
	case "lax_up_to_path", "laxuptopath", "":
		return StrictnessLaxUpToPath, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrictness, s)
	}
}

// Config builds the ladder-consistent ScorerConfig for key.
func (s Strictness) Config(key URL) ScorerConfig {
	cfg := ScorerConfig{KeyURL: key}
	switch s {
	case StrictnessLaxUpToPath:
		cfg.LaxPath = true
		fallthrough
	case StrictnessLaxUpToQuery:
		cfg.LaxQuery = true
		fallthrough
	case StrictnessLaxUpToRef:
		cfg.LaxRef = true
		cfg.LaxSchemeHost = true
	}
	return cfg
}

// Laxness is the flag half of a ScorerConfig, chosen before the key is known.
type Laxness struct {
	SchemeHost bool `json:"lax_scheme_host"`
	Ref        bool `json:"lax_ref"`
	Query      bool `json:"lax_query"`
	Path       bool `json:"lax_path"`
}

// Laxness returns the flags of the preset.
func (s Strictness) Laxness() Laxness {
	cfg := s.Config(URL{})
	return Laxness{
		SchemeHost: cfg.LaxSchemeHost,
		Ref:        cfg.LaxRef,
		Query:      cfg.LaxQuery,
		Path:       cfg.LaxPath,
	}
}

// Config binds the flags to key.
func (l Laxness) Config(key URL) ScorerConfig {
	return ScorerConfig{
		KeyURL:        key,
		LaxSchemeHost: l.SchemeHost,
		LaxRef:        l.Ref,
		LaxQuery:      l.Query,
		LaxPath:       l.Path,
	}
}
