package cmd

import (
	"time"

	"github.com/spf13/cobra"

	portalview "github.com/bnema/containerdesk/internal/adapters/render/portal"
	"github.com/bnema/containerdesk/internal/domain"
)

func newShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "show [home|containers|history|chat]",
		Short:     "Print one portal page",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"home", "containers", "history", "chat"},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := string(portalview.PageHome)
			if len(args) == 1 {
				raw = args[0]
			}
			page, err := portalview.ParsePage(raw)
			if err != nil {
				return err
			}

			session, err := resumeSession(cmd, app)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), pageViewModel(page, session, app.now()))
			}

			rendered, err := portalview.Render(page, session, app.renderOptions())
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page data as JSON")

	return cmd
}

func pageViewModel(page portalview.Page, session domain.Session, now time.Time) any {
	switch page {
	case portalview.PageContainers:
		return portalview.BuildContainers(session, now)
	case portalview.PageHistory:
		return portalview.BuildHistory(session)
	case portalview.PageChat:
		return portalview.BuildChat()
	default:
		return portalview.BuildHome(session, now)
	}
}
