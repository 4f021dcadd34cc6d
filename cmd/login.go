package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	portalview "github.com/bnema/containerdesk/internal/adapters/render/portal"
	"github.com/bnema/containerdesk/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <client-id>",
		Short: "Identify as a client and remember the id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ClientID(strings.TrimSpace(args[0]))
			if id == "" {
				return fmt.Errorf("%w: client id must not be blank", domain.ErrIdentityRequired)
			}

			var session domain.Session
			err := runGatewayCall(cmd, app, loadingLabel, func(ctx context.Context) error {
				var err error
				session, err = app.portal.Login(ctx, id)
				return err
			})
			if errors.Is(err, domain.ErrClientNotFound) {
				return fmt.Errorf("client id %q was not found: %w", id, err)
			}
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", session.ClientName, session.ClientID)

			rendered, err := portalview.Render(portalview.PageHome, session, app.renderOptions())
			return writeRendered(cmd, rendered, err)
		},
	}
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored client id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.portal.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}
