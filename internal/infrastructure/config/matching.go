package config

import "github.com/bnema/tabmatch/internal/domain/url"

// ScorerFlags resolves the strictness preset and applies any explicit
// lax_* overrides on top of it.
func (c *Config) ScorerFlags() (url.Laxness, error) {
	strictness, err := url.ParseStrictness(c.Matching.Strictness)
	if err != nil {
		return url.Laxness{}, err
	}

	flags := strictness.Laxness()
	override(&flags.SchemeHost, c.Matching.LaxSchemeHost)
	override(&flags.Ref, c.Matching.LaxRef)
	override(&flags.Query, c.Matching.LaxQuery)
	override(&flags.Path, c.Matching.LaxPath)
	return flags, nil
}

func override(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
