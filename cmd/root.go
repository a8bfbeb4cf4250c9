package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd, closeApp := newRootCmd()
	defer closeApp()

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, func()) {
	rootCmd := &cobra.Command{
		Use:           "medconnect",
		Short:         "MedConnect: track medicines and adherence from the terminal",
		Long:          "medconnect keeps local patient accounts, a signed-in session and each account's medicine schedule, and reports how much of today's schedule has been taken.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() {}
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.bootstrap(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newMedicineCmd(app),
		newStatsCmd(app),
	)

	return rootCmd, app.close
}
