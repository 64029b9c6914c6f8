package styles

import (
	"fmt"

	"github.com/bnema/tabmatch/internal/domain/url"
)

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// ScoreBadge renders a similarity score. Exact matches use the accent
// color, mismatches the error color.
func (t *Theme) ScoreBadge(score int) string {
	text := fmt.Sprintf("%d", score)
	switch {
	case score == url.Exact:
		return t.Badge.Render(text + " exact")
	case score <= url.Mismatched:
		return t.BadgeMuted.Foreground(t.Error).Render(text + " mismatch")
	default:
		return t.BadgeMuted.Render(text)
	}
}

// CountBadge renders "n unit", pluralizing unit with an s.
func (t *Theme) CountBadge(n int, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return t.BadgeMuted.Render(fmt.Sprintf("%d %s", n, unit))
}
