package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/tabmatch/internal/application/usecase"
	"github.com/bnema/tabmatch/internal/domain/url"
)

// MatchCLIRenderer renders the output of `tabmatch score` and `tabmatch match`.
type MatchCLIRenderer struct {
	theme *Theme
}

func NewMatchCLIRenderer(theme *Theme) *MatchCLIRenderer {
	return &MatchCLIRenderer{theme: theme}
}

// RenderScore renders a single key/candidate comparison.
func (r *MatchCLIRenderer) RenderScore(key, candidate string, score int, cfg url.ScorerConfig) string {
	var b strings.Builder
	b.WriteString(r.theme.ScoreBadge(score))
	b.WriteString(" ")
	b.WriteString(r.theme.Normal.Render(candidate))
	b.WriteString("\n")
	b.WriteString(r.theme.Subtle.Render(fmt.Sprintf("  %s key %s", IconArrow, key)))
	b.WriteString("\n")
	b.WriteString(r.renderLaxness(cfg))
	return b.String()
}

// RenderMatch renders the best candidate of a lookup, or a no-match line.
func (r *MatchCLIRenderer) RenderMatch(out *usecase.FindSimilarTabOutput) string {
	if !out.Found() {
		return fmt.Sprintf("%s %s\n%s",
			r.theme.ErrorStyle.Render(IconX),
			r.theme.Subtle.Render("No similar tab found."),
			r.renderLaxness(out.Config),
		)
	}

	var b strings.Builder
	b.WriteString(r.theme.SuccessStyle.Render(IconCheck))
	b.WriteString(" ")
	b.WriteString(r.theme.ScoreBadge(out.Result.Score))
	b.WriteString(" ")
	b.WriteString(r.theme.Highlight.Render(out.CandidateURL))
	b.WriteString("\n")

	details := []string{fmt.Sprintf("index %d", out.Result.Index)}
	if out.SessionID != "" {
		details = append(details, "session "+string(out.SessionID))
	}
	if out.Tab != nil && out.Tab.Name != "" {
		details = append(details, fmt.Sprintf("%q", out.Tab.Name))
	}
	if out.Tab != nil && out.Tab.IsPinned {
		details = append(details, IconPin+" pinned")
	}
	b.WriteString(r.theme.Subtle.Render("  " + strings.Join(details, "  ")))
	b.WriteString("\n")
	b.WriteString(r.renderLaxness(out.Config))
	return b.String()
}

func (r *MatchCLIRenderer) renderLaxness(cfg url.ScorerConfig) string {
	name, ok := cfg.HistogramStrictnessSuffix()
	if !ok {
		name = "Custom"
	}
	flags := []struct {
		label string
		on    bool
	}{
		{"scheme/host", cfg.LaxSchemeHost},
		{"ref", cfg.LaxRef},
		{"query", cfg.LaxQuery},
		{"path", cfg.LaxPath},
	}

	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		if f.on {
			parts = append(parts, r.theme.AccentBadge(f.label))
		} else {
			parts = append(parts, r.theme.MutedBadge(f.label))
		}
	}
	return r.theme.Subtle.Render("  "+name+" ") + strings.Join(parts, " ")
}

// RenderError renders an error line.
func (r *MatchCLIRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}
