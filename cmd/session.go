package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	portalview "github.com/bnema/containerdesk/internal/adapters/render/portal"
	"github.com/bnema/containerdesk/internal/domain"
)

const (
	loadingLabel = "Loading client data..."
	sendingLabel = "Sending request..."
)

// resumeSession loads the session for the persisted client id.
func resumeSession(cmd *cobra.Command, app *app) (domain.Session, error) {
	var session domain.Session
	err := runGatewayCall(cmd, app, loadingLabel, func(ctx context.Context) error {
		var err error
		session, err = app.portal.Resume(ctx)
		return err
	})
	if err != nil {
		return domain.Session{}, explainSessionError(err)
	}

	return session, nil
}

func explainSessionError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrIdentityRequired):
		return fmt.Errorf("%w: run `cdesk login <client-id>` first", err)
	case errors.Is(err, domain.ErrClientNotFound):
		return fmt.Errorf("%w: the stored client id was cleared, run `cdesk login <client-id>` again", err)
	default:
		return err
	}
}

// now is the wall clock in the display zone, which is also the zone sheet
// dates are read in.
func (a *app) now() time.Time {
	return a.clock.Now().In(a.location)
}

func (a *app) renderOptions() portalview.RenderOptions {
	return portalview.RenderOptions{Now: a.now(), Location: a.location}
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeRendered(cmd *cobra.Command, rendered string, err error) error {
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
