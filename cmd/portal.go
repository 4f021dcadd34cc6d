package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bnema/containerdesk/internal/adapters/tui"
)

func newPortalCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "portal",
		Short: "Open the interactive client portal",
		Long:  "Open the interactive client portal. Data refreshes in the background every refresh.interval.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := resumeSession(cmd, app); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			app.portal.Watch(ctx)

			err := tui.Run(ctx, tui.Config{
				Portal:             app.portal,
				Sessions:           app.sessions,
				ObserveTransitions: app.dispatcher.Observe,
				ForwardNotices:     app.notices.forwardTo,
				Now:                app.now,
				Input:              cmd.InOrStdin(),
				Output:             cmd.OutOrStdout(),
			})
			return explainSessionError(err)
		},
	}
}
