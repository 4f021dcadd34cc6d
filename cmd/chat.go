package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/containerdesk/internal/domain"
)

func newChatCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Message the dispatcher",
	}

	cmd.AddCommand(newChatTemplatesCmd(), newChatSendCmd(app))

	return cmd
}

func newChatTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List quick reply templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, template := range domain.ChatTemplates {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, template)
			}
			return nil
		},
	}
}

func newChatSendCmd(app *app) *cobra.Command {
	var template int

	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send a chat message or a numbered template",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.TrimSpace(strings.Join(args, " "))
			switch {
			case template > 0 && message != "":
				return errors.New("pass either a message or --template, not both")
			case template > len(domain.ChatTemplates):
				return fmt.Errorf("template %d does not exist, there are %d", template, len(domain.ChatTemplates))
			case template > 0:
				message = domain.ChatTemplates[template-1]
			case message == "":
				return fmt.Errorf("%w: message is empty", domain.ErrValidation)
			}

			if _, err := resumeSession(cmd, app); err != nil {
				return err
			}
			return runGatewayCall(cmd, app, sendingLabel, func(ctx context.Context) error {
				return app.portal.SendChatMessage(ctx, message)
			})
		},
	}

	cmd.Flags().IntVar(&template, "template", 0, "Send the n-th template (see `cdesk chat templates`)")

	return cmd
}
