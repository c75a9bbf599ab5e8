package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/odoo-partners-cli/internal/application"
	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool
	var summary bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List partners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return domain.NewFailure(domain.FailureValidation, "list partners", fmt.Errorf("limit must not be negative, got %d", limit))
			}

			query := application.ListPartnersQuery(limit, application.SummaryFields)
			return runPartnerSearch(cmd, app, query, msgNoPartners, recordsOutput{asJSON: asJSON, summary: summary})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", application.DefaultListLimit, "Maximum number of partners to fetch (0: no limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a partner count after the list")

	return cmd
}

func newSearchCmd(app *app) *cobra.Command {
	var asJSON bool
	var summary bool

	cmd := &cobra.Command{
		Use:   "search NAME",
		Short: "Search partners whose name contains NAME (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := application.SearchPartnersQuery{
				Filter: domain.NameFilter(strings.TrimSpace(args[0])),
				Fields: application.SummaryFields,
			}
			return runPartnerSearch(cmd, app, query, msgNoMatchingPartner, recordsOutput{asJSON: asJSON, summary: summary})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a partner count after the matches")

	return cmd
}

func runPartnerSearch(cmd *cobra.Command, app *app, query application.SearchPartnersQuery, emptyMessage string, out recordsOutput) error {
	var records []domain.Record
	err := runRemote(cmd, app, remoteCall{action: "Fetching partners", method: application.MethodSearchRead}, out.asJSON, func(ctx context.Context, partners *application.PartnerService, session domain.Session) error {
		var err error
		records, err = partners.Search(ctx, session, query)
		return err
	})
	if err != nil {
		return err
	}

	return writeRecordsOutput(cmd, app, records, emptyMessage, out)
}

func newGetCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParsePartnerID(args[0])
			if err != nil {
				return err
			}

			fields := application.SummaryFields
			if asJSON {
				fields = application.DetailFields
			}

			var record domain.Record
			var found bool
			err = runRemote(cmd, app, remoteCall{action: "Fetching partner", method: application.MethodSearchRead}, asJSON, func(ctx context.Context, partners *application.PartnerService, session domain.Session) error {
				var err error
				record, found, err = partners.Get(ctx, session, id, fields)
				return err
			})
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("partner %s not found", id)
			}

			return writeRecordsOutput(cmd, app, []domain.Record{record}, msgNoMatchingPartner, recordsOutput{asJSON: asJSON})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output (includes image_1920)")

	return cmd
}

func newCreateCmd(app *app) *cobra.Command {
	var email string
	var imagePath string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := domain.PartnerDraft{
				Name:  strings.TrimSpace(args[0]),
				Email: strings.TrimSpace(email),
			}

			if imagePath != "" {
				image, err := readImageFile(imagePath)
				if err != nil {
					return err
				}
				draft.Image = image
			}

			if err := draft.Validate(); err != nil {
				return err
			}

			var id domain.PartnerID
			err := runRemote(cmd, app, remoteCall{action: "Creating partner", method: application.MethodCreate}, false, func(ctx context.Context, partners *application.PartnerService, session domain.Session) error {
				var err error
				id, err = partners.Create(ctx, session, application.CreatePartnerCommand{Draft: draft})
				return err
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), msgCreated+"\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Partner email")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to an image file stored as the partner picture")

	return cmd
}

func newDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParsePartnerID(args[0])
			if err != nil {
				return err
			}

			var deleted bool
			err = runRemote(cmd, app, remoteCall{action: "Deleting partner", method: application.MethodUnlink}, false, func(ctx context.Context, partners *application.PartnerService, session domain.Session) error {
				var err error
				deleted, err = partners.Delete(ctx, session, application.DeletePartnerCommand{ID: id})
				return err
			})
			if err != nil {
				return err
			}

			if !deleted {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), msgDeleteFailed)
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), msgDeleted+"\n", id)
			return err
		},
	}
}

func readImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image file: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
