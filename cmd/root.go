package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cdesk",
		Short:         "Container desk (cdesk): follow your container orders from the terminal",
		Long:          "cdesk is a terminal client for the container rental portal. It shows your active containers and order history, sends swap, removal and order requests, and gives dispatchers a view of active clients and incoming requests.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		log.SetOutput(cmd.ErrOrStderr())
		app.notices.setOutput(cmd.ErrOrStderr())
		return nil
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newPortalCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newShowCmd(app),
		newRequestCmd(app),
		newChatCmd(app),
		newStatusCmd(app),
		newPushCmd(app),
		newAdminCmd(app),
	)

	return rootCmd
}
