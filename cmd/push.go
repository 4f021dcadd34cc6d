package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPushCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Manage push notification registration",
	}

	cmd.AddCommand(
		newPushSetTokenCmd(app),
		newPushRegisterCmd(app),
		newPushClearCmd(app),
	)

	return cmd
}

func newPushSetTokenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-token <token>",
		Short: "Store the device registration token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(args[0])
			if token == "" {
				return fmt.Errorf("token must not be blank")
			}
			if err := app.secretStore.Put(cmd.Context(), app.pushTokenKey, token); err != nil {
				return fmt.Errorf("store push token: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Stored push token under %s\n", app.pushTokenKey)
			return err
		},
	}
}

func newPushRegisterCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Send the stored registration token to the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := resumeSession(cmd, app); err != nil {
				return err
			}
			return runGatewayCall(cmd, app, "Registering for updates...", app.portal.RegisterPushToken)
		},
	}
}

func newPushClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored registration token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secretStore.Delete(cmd.Context(), app.pushTokenKey); err != nil {
				return fmt.Errorf("delete push token: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Deleted push token")
			return err
		},
	}
}
