package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	portalview "github.com/bnema/containerdesk/internal/adapters/render/portal"
	"github.com/bnema/containerdesk/internal/domain"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		clientID string
		request  string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the single-order status page",
		Long:  "Show the single-order status page for --id or the stored client id. --request swap|removal sends a service request from the page.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind := domain.RequestKind(strings.TrimSpace(request))
			if kind != "" && !kind.Valid() {
				return fmt.Errorf("unknown request %q (want swap or removal)", request)
			}

			id := domain.ClientID(strings.TrimSpace(clientID))
			if id == "" {
				stored, err := app.identity.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("load stored client id: %w", err)
				}
				id = stored
			}
			if id == "" {
				return fmt.Errorf("%w: pass --id or run `cdesk login <client-id>`", domain.ErrIdentityRequired)
			}

			var page domain.StatusPage
			err := runGatewayCall(cmd, app, "Loading status page...", func(ctx context.Context) error {
				var err error
				page, err = app.portal.StatusPage(ctx, id)
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), portalview.BuildStatusPage(page, app.now())); err != nil {
					return err
				}
			} else {
				rendered, err := portalview.RenderStatusPage(page, app.renderOptions())
				if err := writeRendered(cmd, rendered, err); err != nil {
					return err
				}
			}

			if kind == "" {
				return nil
			}
			return runGatewayCall(cmd, app, sendingLabel, func(ctx context.Context) error {
				return app.portal.SendServiceRequest(ctx, id, page.ClientName, kind)
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "id", "", "Client id (defaults to the stored one)")
	cmd.Flags().StringVar(&request, "request", "", "Send a swap or removal request")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page data as JSON")

	return cmd
}
