package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/containerdesk/internal/domain"
)

const defaultOrderType = "הזמנת מכולה"

func newRequestCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Send service requests",
	}

	cmd.AddCommand(
		newServiceRequestCmd(app, domain.RequestSwap, "Request a container swap"),
		newServiceRequestCmd(app, domain.RequestRemoval, "Request container removal"),
		newOrderRequestCmd(app),
	)

	return cmd
}

func newServiceRequestCmd(app *app, kind domain.RequestKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := resumeSession(cmd, app); err != nil {
				return err
			}
			return runGatewayCall(cmd, app, sendingLabel, func(ctx context.Context) error {
				return app.portal.RequestService(ctx, kind)
			})
		},
	}
}

func newOrderRequestCmd(app *app) *cobra.Command {
	var (
		req    domain.OrderRequest
		choice int
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Send a free-form order request",
		Long:  "Send a free-form order request. Pick one of your known addresses with --pick (see `cdesk request order --list`) or type a new one with --address.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := resumeSession(cmd, app)
			if err != nil {
				return err
			}

			listOnly, _ := cmd.Flags().GetBool("list")
			if listOnly {
				for i, address := range session.Addresses() {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, address)
				}
				return nil
			}

			if choice > 0 {
				addresses := session.Addresses()
				if choice > len(addresses) {
					return fmt.Errorf("%w: address %d does not exist, you have %d", domain.ErrValidation, choice, len(addresses))
				}
				req.SelectedAddress = addresses[choice-1]
			}

			return runGatewayCall(cmd, app, sendingLabel, func(ctx context.Context) error {
				return app.portal.SubmitOrderRequest(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.ActionType, "type", defaultOrderType, "Request type")
	cmd.Flags().StringVar(&req.Address, "address", "", "New address")
	cmd.Flags().IntVar(&choice, "pick", 0, "Use the n-th known address")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes for the dispatcher")
	cmd.Flags().StringVar(&req.GPS, "gps", "", "GPS coordinates, e.g. 32.0853,34.7818")
	cmd.Flags().Bool("list", false, "List known addresses and exit")

	return cmd
}
