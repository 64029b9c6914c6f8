package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/tabmatch/internal/application/usecase"
	"github.com/bnema/tabmatch/internal/cli/styles"
	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/bnema/tabmatch/internal/domain/url"
)

// Flag names shared by score and match.
const (
	flagStrictness    = "strictness"
	flagLaxSchemeHost = "lax-scheme-host"
	flagLaxRef        = "lax-ref"
	flagLaxQuery      = "lax-query"
	flagLaxPath       = "lax-path"
)

var (
	matchJSON        bool
	matchSession     string
	matchAllSessions bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <key-url> <candidate-url>",
	Short: "Score how similar a candidate URL is to a key URL",
	Long: `Score a single candidate against a key URL.

The score is 1000 for an identical URL, 0 for a mismatch, and in between
for a lax match. Deeper pages below the key's directory score lower.

Examples:
  tabmatch score https://example.com/docs/ https://www.example.com/docs/api#intro
  tabmatch score --strictness strict https://a.com https://a.com/`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

var matchCmd = &cobra.Command{
	Use:   "match <key-url> [candidate-url...|-]",
	Short: "Pick the candidate most similar to a key URL",
	Long: `Find the best match for a key URL among candidates.

Candidates are read from the arguments, from stdin when the only candidate
is "-", or from saved sessions with --session or --all-sessions. On equal
scores the earlier candidate wins; across sessions the most recently saved
one wins.

Exits with status 1 when nothing matches.

Examples:
  tabmatch match https://example.com/a https://example.com/a?x=1 https://example.com/b
  tabmatch match https://example.com - < tabs.txt
  tabmatch match --all-sessions --json https://news.example.org/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	for _, c := range []*cobra.Command{scoreCmd, matchCmd} {
		addLaxnessFlags(c)
		rootCmd.AddCommand(c)
	}
	scoreCmd.Flags().BoolVar(&matchJSON, "json", false, "output as JSON")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output as JSON")
	matchCmd.Flags().StringVarP(&matchSession, "session", "s", "", "match against the tabs of a saved session")
	matchCmd.Flags().BoolVarP(&matchAllSessions, "all-sessions", "a", false, "match against every saved session")
	matchCmd.MarkFlagsMutuallyExclusive("session", "all-sessions")
}

func addLaxnessFlags(c *cobra.Command) {
	c.Flags().String(flagStrictness, "", "preset: strict, lax_up_to_ref, lax_up_to_query, lax_up_to_path (default from config)")
	c.Flags().Bool(flagLaxSchemeHost, false, "ignore www./m./mobile./touch. host prefixes")
	c.Flags().Bool(flagLaxRef, false, "ignore the fragment")
	c.Flags().Bool(flagLaxQuery, false, "ignore the query string")
	c.Flags().Bool(flagLaxPath, false, "accept pages below the key's directory")
}

// resolveLaxness applies the command's flags on top of base. A --strictness
// preset replaces base, and each --lax-* flag given explicitly overrides
// its rung.
func resolveLaxness(c *cobra.Command, base url.Laxness) (url.Laxness, error) {
	flags := c.Flags()
	lax := base

	if flags.Changed(flagStrictness) {
		name, _ := flags.GetString(flagStrictness)
		strictness, err := url.ParseStrictness(name)
		if err != nil {
			return url.Laxness{}, err
		}
		lax = strictness.Laxness()
	}

	for name, dst := range map[string]*bool{
		flagLaxSchemeHost: &lax.SchemeHost,
		flagLaxRef:        &lax.Ref,
		flagLaxQuery:      &lax.Query,
		flagLaxPath:       &lax.Path,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}
	return lax, nil
}

// readCandidates returns args, or the non-empty lines of in when args is "-".
func readCandidates(args []string, in io.Reader) ([]string, error) {
	if len(args) != 1 || args[0] != "-" {
		return args, nil
	}

	var candidates []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			candidates = append(candidates, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	return candidates, nil
}

func runScore(c *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	base, err := app.Config.ScorerFlags()
	if err != nil {
		return err
	}
	lax, err := resolveLaxness(c, base)
	if err != nil {
		return err
	}
	if _, err := url.ParseInput(args[1]); err != nil {
		return fmt.Errorf("candidate: %w", err)
	}

	out, err := app.FindSimilarUC.Execute(app.Ctx(), usecase.FindSimilarTabInput{
		KeyURL:     args[0],
		Laxness:    lax,
		Candidates: args[1:2],
	})
	if err != nil {
		return err
	}

	if matchJSON {
		return writeJSON(os.Stdout, newMatchJSON(out))
	}
	renderer := styles.NewMatchCLIRenderer(app.Theme)
	fmt.Println(renderer.RenderScore(args[0], args[1], out.Result.Score, out.Config))
	return nil
}

func runMatch(c *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	base, err := app.Config.ScorerFlags()
	if err != nil {
		return err
	}
	lax, err := resolveLaxness(c, base)
	if err != nil {
		return err
	}

	input := usecase.FindSimilarTabInput{
		KeyURL:    args[0],
		Laxness:   lax,
		SessionID: entity.SessionID(matchSession),
	}

	var out *usecase.FindSimilarTabOutput
	switch {
	case matchAllSessions:
		out, err = app.FindSimilarUC.ExecuteAcrossSessions(app.Ctx(), input)
	case matchSession != "":
		out, err = app.FindSimilarUC.Execute(app.Ctx(), input)
	default:
		input.Candidates, err = readCandidates(args[1:], c.InOrStdin())
		if err != nil {
			return err
		}
		if len(input.Candidates) == 0 {
			return fmt.Errorf("no candidates: pass URLs, '-' for stdin, --session or --all-sessions")
		}
		out, err = app.FindSimilarUC.Execute(app.Ctx(), input)
	}
	if err != nil {
		return err
	}

	if matchJSON {
		if err := writeJSON(os.Stdout, newMatchJSON(out)); err != nil {
			return err
		}
	} else {
		renderer := styles.NewMatchCLIRenderer(app.Theme)
		fmt.Println(renderer.RenderMatch(out))
	}

	if !out.Found() {
		return errNoMatch
	}
	return nil
}

// errNoMatch sets a non-zero exit status once the result has been printed.
var errNoMatch = errors.New("no similar tab found")

// matchOutputJSON is the --json output of score and match.
type matchOutputJSON struct {
	Key        string      `json:"key"`
	Found      bool        `json:"found"`
	Index      int         `json:"index"`
	Score      int         `json:"score"`
	URL        string      `json:"url,omitempty"`
	SessionID  string      `json:"session_id,omitempty"`
	TabName    string      `json:"tab_name,omitempty"`
	Strictness string      `json:"strictness,omitempty"`
	Laxness    url.Laxness `json:"laxness"`
}

func newMatchJSON(out *usecase.FindSimilarTabOutput) matchOutputJSON {
	suffix, _ := out.Config.HistogramStrictnessSuffix()
	res := matchOutputJSON{
		Key:        out.Config.KeyURL.String(),
		Found:      out.Found(),
		Index:      out.Result.Index,
		Score:      out.Result.Score,
		URL:        out.CandidateURL,
		SessionID:  string(out.SessionID),
		Strictness: suffix,
		Laxness: url.Laxness{
			SchemeHost: out.Config.LaxSchemeHost,
			Ref:        out.Config.LaxRef,
			Query:      out.Config.LaxQuery,
			Path:       out.Config.LaxPath,
		},
	}
	if out.Tab != nil {
		res.TabName = out.Tab.Name
	}
	return res
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
