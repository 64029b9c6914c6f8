package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tabmatch/internal/application/usecase"
	"github.com/bnema/tabmatch/internal/cli/styles"
	"github.com/bnema/tabmatch/internal/domain/entity"
)

const defaultSessionsLimit = 20

var (
	sessionsJSON   bool
	sessionsLimit  int
	saveSessionID  string
	saveActiveTab  int
	savePinnedTabs []int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved tab sessions",
	Long: `Save, import, list and delete sets of tabs.

A saved session is a candidate list for 'tabmatch match --session' and
'tabmatch match --all-sessions'.

Run without a subcommand to list sessions.`,
	RunE: runSessionsList,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Long:  `List saved sessions, most recently saved first, with their tab counts.`,
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the tabs of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsSaveCmd = &cobra.Command{
	Use:   "save <url>...",
	Short: "Save URLs as a session",
	Long: `Save the given URLs, in order, as the tabs of a session.

Bare domains and paths are normalized (example.com becomes
https://example.com). Saving to an existing session ID replaces it.

Examples:
  tabmatch sessions save https://example.com github.com/bnema
  tabmatch sessions save --id work --active 1 --pin 0 mail.example.com docs.example.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSessionsSave,
}

var sessionsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import a session from YAML",
	Long: `Import a session from a YAML document, or from stdin with "-".

Format:
  session_id: work
  active: 0
  tabs:
    - url: https://mail.example.com
      name: Mail
      pinned: true
    - url: https://docs.example.com/guide/`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionsImport,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved session",
	Args:    cobra.ExactArgs(1),
	RunE:    runSessionsDelete,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsSaveCmd, sessionsImportCmd, sessionsDeleteCmd)

	for _, c := range []*cobra.Command{sessionsCmd, sessionsListCmd} {
		c.Flags().BoolVar(&sessionsJSON, "json", false, "output as JSON")
		c.Flags().IntVar(&sessionsLimit, "limit", defaultSessionsLimit, "maximum sessions to show")
	}
	sessionsShowCmd.Flags().BoolVar(&sessionsJSON, "json", false, "output as JSON")

	sessionsSaveCmd.Flags().StringVar(&saveSessionID, "id", "", "session ID (default: generated from the current time)")
	sessionsSaveCmd.Flags().IntVar(&saveActiveTab, "active", 0, "index of the active tab")
	sessionsSaveCmd.Flags().IntSliceVar(&savePinnedTabs, "pin", nil, "indexes of pinned tabs")
}

func runSessionsList(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	infos, err := app.ListSessionsUC.Execute(app.Ctx(), sessionsLimit)
	if err != nil {
		return err
	}

	if sessionsJSON {
		return writeJSON(os.Stdout, sessionsToJSON(infos))
	}

	renderer := styles.NewSessionsCLIRenderer(app.Theme)
	if len(infos) == 0 {
		fmt.Println(renderer.RenderEmptyList())
		return nil
	}
	size, err := app.ListSessionsUC.TotalSize(app.Ctx())
	if err != nil {
		return err
	}
	fmt.Println(renderer.RenderList(infos, size))
	return nil
}

func runSessionsShow(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	info, err := app.ListSessionsUC.GetSessionInfo(app.Ctx(), entity.SessionID(args[0]))
	if err != nil {
		return err
	}

	if sessionsJSON {
		return writeJSON(os.Stdout, info.State)
	}
	fmt.Println(styles.NewSessionsCLIRenderer(app.Theme).RenderShow(info))
	return nil
}

func runSessionsSave(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	input := usecase.SaveSessionInput{
		SessionID:      entity.SessionID(saveSessionID),
		ActiveTabIndex: saveActiveTab,
		Tabs:           make([]usecase.SaveSessionTab, 0, len(args)),
	}
	if input.SessionID == "" {
		input.SessionID = usecase.GenerateSessionID(time.Now())
	}

	pinned := make(map[int]bool, len(savePinnedTabs))
	for _, i := range savePinnedTabs {
		pinned[i] = true
	}
	for i, raw := range args {
		input.Tabs = append(input.Tabs, usecase.SaveSessionTab{URL: raw, Pinned: pinned[i]})
	}

	state, err := app.SaveSessionUC.Execute(app.Ctx(), input)
	if err != nil {
		return err
	}
	fmt.Println(styles.NewSessionsCLIRenderer(app.Theme).RenderSaved(state))
	return nil
}

func runSessionsImport(c *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	var state *entity.SessionState
	if args[0] == "-" {
		state, err = app.SaveSessionUC.Import(app.Ctx(), c.InOrStdin())
	} else {
		state, err = app.SaveSessionUC.ImportFile(app.Ctx(), args[0])
	}
	if err != nil {
		return err
	}
	fmt.Println(styles.NewSessionsCLIRenderer(app.Theme).RenderSaved(state))
	return nil
}

func runSessionsDelete(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	sessionID := entity.SessionID(args[0])
	if err := app.DeleteUC.Execute(app.Ctx(), sessionID); err != nil {
		return err
	}
	fmt.Println(styles.NewSessionsCLIRenderer(app.Theme).RenderDeleted(sessionID))
	return nil
}

type sessionJSON struct {
	SessionID string    `json:"session_id"`
	TabCount  int       `json:"tab_count"`
	UpdatedAt time.Time `json:"updated_at"`
	URLs      []string  `json:"urls"`
}

func sessionsToJSON(infos []entity.SessionInfo) []sessionJSON {
	out := make([]sessionJSON, 0, len(infos))
	for _, info := range infos {
		out = append(out, sessionJSON{
			SessionID: string(info.State.SessionID),
			TabCount:  info.TabCount,
			UpdatedAt: info.UpdatedAt,
			URLs:      info.State.URIs(),
		})
	}
	return out
}
