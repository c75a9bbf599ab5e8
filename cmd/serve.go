package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/odoo-partners-cli/internal/adapters/httpapi"
	"github.com/bnema/odoo-partners-cli/internal/config"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the partner operations as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			transport, err := app.transport(config.TransportJSONRPC)
			if err != nil {
				return err
			}

			addr := app.cfg.Listen
			if listen != "" {
				addr = listen
			}

			client, err := app.newPartnerClient(cmd.Context(), transport)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelInfo}))
			if err := app.cfg.Credentials.Validate(); err != nil && app.cfg.PasswordRef == "" {
				logger.Warn("Odoo credentials incomplete, requests will fail", "error", err)
			}

			handler := httpapi.NewHandler(client.auth, client.partners, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Starting partners API",
				"transport", string(transport),
				"odoo_url", app.cfg.Credentials.ServiceURL,
				"db", app.cfg.Credentials.Database,
			)
			return httpapi.Serve(ctx, addr, httpapi.NewRouter(handler), logger)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: ODP_LISTEN or "+config.DefaultListen+")")

	return cmd
}
