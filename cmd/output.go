package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	partnersrender "github.com/bnema/odoo-partners-cli/internal/adapters/render/partners"
	"github.com/bnema/odoo-partners-cli/internal/application"
	"github.com/bnema/odoo-partners-cli/internal/config"
	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/spf13/cobra"
)

const (
	msgNoPartners        = "No partners found."
	msgNoMatchingPartner = "❌ No matching partners found."
	msgCreated           = "✅ Partner created with ID: %d"
	msgDeleted           = "🗑️ Partner with ID %d deleted."
	msgDeleteFailed      = "❌ Failed to delete partner. Check the ID and your permissions."
)

// runRemote runs call with a spinner on stderr, or silently when quiet is set.
func runRemote(cmd *cobra.Command, app *app, call remoteCall, quiet bool, fn func(context.Context, *application.PartnerService, domain.Session) error) error {
	remote := func(ctx context.Context, step func(target string)) error {
		if app.session == nil {
			step(authenticateTarget)
		}
		partners, session, err := app.authenticated(ctx)
		if err != nil {
			return err
		}
		step(call.target())
		return fn(ctx, partners, session)
	}

	if quiet {
		return remote(cmd.Context(), func(string) {})
	}

	// An invalid --transport surfaces from authenticated; the spinner only
	// needs a name to show.
	transport, err := app.transport(config.TransportXMLRPC)
	if err != nil {
		transport = config.Transport(app.transportFlag)
	}
	return runRemoteCallSpinner(cmd.Context(), cmd.ErrOrStderr(), call, transport, remote)
}

type recordsOutput struct {
	asJSON  bool
	summary bool
}

func writeRecordsOutput(cmd *cobra.Command, app *app, records []domain.Record, emptyMessage string, out recordsOutput) error {
	if out.asJSON {
		if records == nil {
			records = []domain.Record{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	partners, err := application.Partners(records)
	if err != nil {
		return err
	}

	rendered, err := app.partnerRenderer(partners, partnersrender.RenderOptions{
		EmptyMessage: emptyMessage,
		Summary:      out.summary,
	})
	if err != nil {
		return fmt.Errorf("render partners: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
