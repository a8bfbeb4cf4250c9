package application

import "github.com/bnema/medconnect/internal/domain"

type RegisterCommand struct {
	Email      string
	Name       string
	Credential string
	Age        *int
	ExternalID string
}

type AddMedicineCommand struct {
	OwnerID       domain.AccountID
	Name          string
	Dosage        string
	ScheduledTime string
	Frequency     domain.Frequency
}
