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

func newAdminCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Dispatcher dashboard",
	}

	cmd.AddCommand(
		newAdminClientsCmd(app),
		newAdminRequestsCmd(app),
		newAdminTemplatesCmd(),
		newAdminNotifyCmd(app),
	)

	return cmd
}

func newAdminClientsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients with active orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var clients []domain.ClientSummary
			err := runGatewayCall(cmd, app, "Loading clients...", func(ctx context.Context) error {
				var err error
				clients, err = app.admin.ActiveClients(ctx)
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), portalview.BuildAdminClients(clients))
			}
			rendered, err := portalview.RenderAdminClients(clients)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the client list as JSON")

	return cmd
}

func newAdminRequestsCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		watch  bool
		count  int
	)

	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Show the latest client requests",
		Long:  "Show the latest client requests. --watch keeps refreshing every admin.refresh_interval until interrupted or --count refreshes were printed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch && asJSON {
				return errors.New("--watch and --json cannot be combined")
			}

			var requests []domain.RequestLogEntry
			err := runGatewayCall(cmd, app, "Loading requests...", func(ctx context.Context) error {
				var err error
				requests, err = app.admin.RecentRequests(ctx)
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), portalview.BuildAdminRequests(requests, app.location))
			}
			if !watch {
				rendered, err := portalview.RenderAdminRequests(requests, app.renderOptions())
				return writeRendered(cmd, rendered, err)
			}

			return watchRequests(cmd, app, requests, count)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the requests as JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep refreshing the request log")
	cmd.Flags().IntVar(&count, "count", 0, "Stop watching after n refreshes (0 means until interrupted)")

	return cmd
}

func watchRequests(cmd *cobra.Command, app *app, initial []domain.RequestLogEntry, count int) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, portalview.AdminRequestsText(initial, app.renderOptions()))

	ctx, cancel := context.WithCancel(cmd.Context())
	updates := make(chan []domain.RequestLogEntry)
	app.admin.WatchRequests(ctx, func(requests []domain.RequestLogEntry) {
		select {
		case updates <- requests:
		case <-ctx.Done():
		}
	})
	defer func() {
		cancel()
		app.admin.StopWatching()
	}()

	for seen := 0; count <= 0 || seen < count; seen++ {
		select {
		case <-ctx.Done():
			return nil
		case requests := <-updates:
			_, _ = fmt.Fprintln(out, portalview.AdminRequestsText(requests, app.renderOptions()))
		}
	}

	return nil
}

func newAdminTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List notification templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, template := range domain.NotificationTemplates {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, template.Title)
			}
			return nil
		},
	}
}

func newAdminNotifyCmd(app *app) *cobra.Command {
	var (
		clientID   string
		clientName string
		template   int
		title      string
		body       string
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a push notification to a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if template > 0 {
				if template > len(domain.NotificationTemplates) {
					return fmt.Errorf("template %d does not exist, there are %d", template, len(domain.NotificationTemplates))
				}
				if strings.TrimSpace(title) != "" || strings.TrimSpace(body) != "" {
					return errors.New("pass either --template or --title/--body, not both")
				}
				title, body = domain.NotificationTemplates[template-1].Fill(clientName)
			}

			id := domain.ClientID(strings.TrimSpace(clientID))
			return runGatewayCall(cmd, app, "Sending notification...", func(ctx context.Context) error {
				return app.admin.SendAdminNotification(ctx, id, title, body)
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client id")
	cmd.Flags().StringVar(&clientName, "name", "", "Client name used by templates")
	cmd.Flags().IntVar(&template, "template", 0, "Use the n-th template (see `cdesk admin templates`)")
	cmd.Flags().StringVar(&title, "title", "", "Notification title")
	cmd.Flags().StringVar(&body, "body", "", "Notification body")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}
