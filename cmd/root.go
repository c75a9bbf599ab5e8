package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "odp",
		Short:         "Odoo partners CLI (odp): list, search, create and delete contacts",
		Long:          "odp talks to an Odoo server over XML-RPC or JSON-RPC to manage res.partner records from the terminal, and can serve the same operations as a small JSON HTTP API.",
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

	rootCmd.PersistentFlags().StringVar(&app.transportFlag, "transport", "", "RPC transport: xmlrpc or jsonrpc (default: ODOO_TRANSPORT, then xmlrpc for commands and jsonrpc for serve)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newListCmd(app),
		newSearchCmd(app),
		newGetCmd(app),
		newCreateCmd(app),
		newDeleteCmd(app),
		newServeCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
