package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/medconnect/internal/application"
	"github.com/bnema/medconnect/internal/domain"
	"github.com/spf13/cobra"
)

func newMedicineCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "medicine",
		Aliases: []string{"med"},
		Short:   "Manage the signed-in account's medicines",
	}

	cmd.AddCommand(
		newMedicineAddCmd(app),
		newMedicineListCmd(app),
		newMedicineTakeCmd(app),
		newMedicineDeleteCmd(app),
	)

	return cmd
}

func newMedicineAddCmd(app *app) *cobra.Command {
	var name string
	var dosage string
	var scheduledTime string
	var frequency string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a medicine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			medicine, err := app.tracker.AddMedicine(cmd.Context(), application.AddMedicineCommand{
				OwnerID:       account.ID,
				Name:          name,
				Dosage:        dosage,
				ScheduledTime: scheduledTime,
				Frequency:     domain.Frequency(strings.ToLower(strings.TrimSpace(frequency))),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", medicine.Name, medicine.Dosage, medicine.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Medicine name")
	cmd.Flags().StringVar(&dosage, "dosage", "", "Dosage, e.g. 100mg")
	cmd.Flags().StringVar(&scheduledTime, "time", "", "Scheduled time of day (HH:MM, 24-hour)")
	cmd.Flags().StringVar(&frequency, "frequency", string(domain.FrequencyDaily), "Frequency ("+frequencyChoices()+")")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("dosage")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newMedicineListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled medicines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			medicines, err := app.tracker.ListMedicines(cmd.Context(), account.ID)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toMedicineOutputs(medicines))
			}

			rendered, err := app.renderMedicines(medicines)
			if err != nil {
				return fmt.Errorf("render medicines: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newMedicineTakeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "take <id>",
		Short: "Toggle whether a medicine has been taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			id := domain.MedicineID(args[0])
			if err := app.tracker.ToggleMedicineTaken(cmd.Context(), account.ID, id); err != nil {
				return err
			}

			return writeMedicineState(cmd, app, id)
		},
	}
}

func newMedicineDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a scheduled medicine",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			id := domain.MedicineID(args[0])
			medicines, err := app.tracker.ListMedicines(cmd.Context(), account.ID)
			if err != nil {
				return err
			}
			if !domain.ContainsMedicine(medicines, id) {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "No medicine %s, nothing removed\n", id)
				return err
			}

			if err := app.tracker.DeleteMedicine(cmd.Context(), account.ID, id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			return err
		},
	}
}

func writeMedicineState(cmd *cobra.Command, app *app, id domain.MedicineID) error {
	_, set := app.tracker.WorkingSet()
	for _, medicine := range set {
		if medicine.ID != id {
			continue
		}

		state := "not taken"
		if medicine.Taken {
			state = "taken"
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s marked as %s\n", medicine.Name, state)
		return err
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "No medicine %s, nothing changed\n", id)
	return err
}

type medicineOutput struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Dosage        string    `json:"dosage"`
	ScheduledTime string    `json:"scheduled_time"`
	Frequency     string    `json:"frequency"`
	Taken         bool      `json:"taken"`
	CreatedAt     time.Time `json:"created_at"`
}

func toMedicineOutputs(medicines []domain.Medicine) []medicineOutput {
	outputs := make([]medicineOutput, 0, len(medicines))
	for _, medicine := range medicines {
		outputs = append(outputs, medicineOutput{
			ID:            string(medicine.ID),
			Name:          medicine.Name,
			Dosage:        medicine.Dosage,
			ScheduledTime: medicine.ScheduledTime,
			Frequency:     string(medicine.Frequency),
			Taken:         medicine.Taken,
			CreatedAt:     medicine.CreatedAt,
		})
	}

	return outputs
}

func frequencyChoices() string {
	choices := make([]string, 0, len(domain.Frequencies()))
	for _, frequency := range domain.Frequencies() {
		choices = append(choices, string(frequency))
	}

	return strings.Join(choices, "|")
}
