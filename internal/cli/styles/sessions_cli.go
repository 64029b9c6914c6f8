package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/tabmatch/internal/application/usecase"
	"github.com/bnema/tabmatch/internal/domain/entity"
)

// SessionsCLIRenderer renders non-interactive CLI output for sessions subcommands.
type SessionsCLIRenderer struct {
	theme *Theme
}

func NewSessionsCLIRenderer(theme *Theme) *SessionsCLIRenderer {
	return &SessionsCLIRenderer{theme: theme}
}

func (r *SessionsCLIRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No saved sessions found.")
}

// RenderList renders one line per session and a storage footer.
func (r *SessionsCLIRenderer) RenderList(items []entity.SessionInfo, totalBytes int64) string {
	if len(items) == 0 {
		return r.RenderEmptyList()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n\n", r.theme.Highlight.Render(IconSessionStack), r.theme.Title.Render("Sessions")))

	for _, info := range items {
		b.WriteString(r.renderOne(info))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.theme.Subtle.Render(fmt.Sprintf("%s %s stored", IconDatabase, formatBytes(totalBytes))))
	return b.String()
}

func (r *SessionsCLIRenderer) renderOne(info entity.SessionInfo) string {
	return fmt.Sprintf("%s  %s  %s",
		r.theme.Highlight.Render(string(info.State.SessionID)),
		r.theme.CountBadge(info.TabCount, "tab"),
		r.theme.Subtle.Render(usecase.GetRelativeTime(info.UpdatedAt)),
	)
}

// RenderShow renders the tabs of one session, marking the active one.
func (r *SessionsCLIRenderer) RenderShow(info *entity.SessionInfo) string {
	var b strings.Builder
	b.WriteString(r.renderOne(*info))
	b.WriteString("\n\n")

	for i, tab := range info.State.Tabs {
		marker := " "
		if i == info.State.ActiveTabIndex {
			marker = r.theme.Highlight.Render("●")
		}
		line := fmt.Sprintf("%s %2d  %s", marker, i, r.theme.Normal.Render(tab.URI))
		if tab.Name != "" {
			line += "  " + r.theme.Subtle.Render(tab.Name)
		}
		if tab.IsPinned {
			line += "  " + r.theme.Subtle.Render(IconPin)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *SessionsCLIRenderer) RenderSaved(state *entity.SessionState) string {
	return fmt.Sprintf("%s Session %s saved with %s.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(string(state.SessionID)),
		r.theme.CountBadge(len(state.Tabs), "tab"),
	)
}

func (r *SessionsCLIRenderer) RenderDeleted(sessionID entity.SessionID) string {
	return fmt.Sprintf("%s Session %s deleted.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(string(sessionID)),
	)
}

func (r *SessionsCLIRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
