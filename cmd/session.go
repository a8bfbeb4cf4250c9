package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/medconnect/internal/application"
	"github.com/bnema/medconnect/internal/domain"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *app) *cobra.Command {
	var email string
	var name string
	var password string
	var age int
	var externalID string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			command := application.RegisterCommand{
				Email:      email,
				Name:       name,
				Credential: password,
				ExternalID: externalID,
			}
			if cmd.Flags().Changed("age") {
				if age < 0 {
					return fmt.Errorf("age must not be negative, got %d", age)
				}
				command.Age = &age
			}

			account, err := app.tracker.RegisterAccount(cmd.Context(), command)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s), signed in as %s\n", account.Name, account.ID, account.Email)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().IntVar(&age, "age", 0, "Age in years")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External identifier, e.g. a medical licence number")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.tracker.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", account.Name, account.Email)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.tracker.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", account.ID, account.Email, account.Name)
			return err
		},
	}
}

func newProfileCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in account's profile card",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard, err := app.tracker.Dashboard(cmd.Context())
			if err != nil {
				return sessionError(err)
			}

			rendered, err := app.renderProfile(dashboard.Account, dashboard.Stats)
			if err != nil {
				return fmt.Errorf("render profile: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func requireSession(cmd *cobra.Command, app *app) (domain.Account, error) {
	account, err := app.tracker.RequireSession(cmd.Context())
	if err != nil {
		return domain.Account{}, sessionError(err)
	}

	return account, nil
}

func sessionError(err error) error {
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return fmt.Errorf("%w: run \"medconnect login\" first", err)
	}

	return err
}
