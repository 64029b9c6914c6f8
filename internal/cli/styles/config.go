package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/tabmatch/internal/domain/url"
)

// ConfigStatus is what `tabmatch config status` reports.
type ConfigStatus struct {
	ConfigFile    string
	DatabaseFile  string
	SchemaVersion int64
	LogDir        string
	FileLogging   bool
	MetricsFile   string
	Laxness       url.Laxness
}

// ConfigRenderer renders config command output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderStatus renders file locations and the effective matching ladder.
func (r *ConfigRenderer) RenderStatus(s ConfigStatus) string {
	key := r.theme.Subtle.Width(10)
	row := func(k, v string) string {
		return key.Render(k) + " " + r.theme.Normal.Render(v)
	}

	logs := "stderr"
	if s.FileLogging {
		logs = s.LogDir
	}
	metricsFile := s.MetricsFile
	if metricsFile == "" {
		metricsFile = "disabled"
	}

	lines := []string{
		r.theme.Title.Render("Configuration"),
		row("config", s.ConfigFile),
		row("database", fmt.Sprintf("%s (schema v%d)", s.DatabaseFile, s.SchemaVersion)),
		row("logs", logs),
		row("metrics", metricsFile),
		key.Render("matching") + " " + NewMatchCLIRenderer(r.theme).renderLaxness(s.Laxness.Config(url.URL{})),
	}
	return strings.Join(lines, "\n")
}
