package kvstore

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bnema/medconnect/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const currentSchemaVersion = 1

const (
	AccountsKey  = "accounts"
	MedicinesKey = "medicines"
	SessionKey   = "session"
)

type accountsDocument struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

type medicinesDocument struct {
	Version   int              `toml:"version"`
	Medicines []medicineSchema `toml:"medicines"`
}

type sessionDocument struct {
	Version int            `toml:"version"`
	Account *accountSchema `toml:"account,omitempty"`
}

type accountSchema struct {
	ID         string `toml:"id"`
	Email      string `toml:"email"`
	Name       string `toml:"name"`
	Credential string `toml:"credential"`
	CreatedAt  string `toml:"created_at"`
	Age        *int   `toml:"age,omitempty"`
	ExternalID string `toml:"external_id,omitempty"`
}

type medicineSchema struct {
	ID            string `toml:"id"`
	OwnerID       string `toml:"owner_id"`
	Name          string `toml:"name"`
	Dosage        string `toml:"dosage"`
	ScheduledTime string `toml:"scheduled_time"`
	Frequency     string `toml:"frequency"`
	Taken         bool   `toml:"taken"`
	CreatedAt     string `toml:"created_at"`
}

func encodeDocument(doc any) (string, error) {
	data, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	// A document that does not decode would read back as empty and be overwritten.
	if !utf8.Valid(data) {
		return "", fmt.Errorf("encode document: %w", domain.ErrInvalidField)
	}

	return string(data), nil
}

func decodeDocument(raw string, doc any, version func() int) error {
	if err := toml.Unmarshal([]byte(raw), doc); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecodeFailure, err)
	}

	if v := version(); v > currentSchemaVersion {
		return fmt.Errorf("%w: %w %d (current %d)", domain.ErrDecodeFailure, domain.ErrUnsupportedSchemaVersion, v, currentSchemaVersion)
	}

	return nil
}

func toAccountSchema(account domain.Account) accountSchema {
	var age *int
	if account.Age != nil {
		value := *account.Age
		age = &value
	}

	return accountSchema{
		ID:         string(account.ID),
		Email:      account.Email,
		Name:       account.Name,
		Credential: account.Credential,
		CreatedAt:  formatTime(account.CreatedAt),
		Age:        age,
		ExternalID: account.ExternalID,
	}
}

func fromAccountSchema(account accountSchema) domain.Account {
	return domain.Account{
		ID:         domain.AccountID(account.ID),
		Email:      account.Email,
		Name:       account.Name,
		Credential: account.Credential,
		CreatedAt:  parseTime(account.CreatedAt),
		Age:        account.Age,
		ExternalID: account.ExternalID,
	}
}

func toMedicineSchema(medicine domain.Medicine) medicineSchema {
	return medicineSchema{
		ID:            string(medicine.ID),
		OwnerID:       string(medicine.OwnerID),
		Name:          medicine.Name,
		Dosage:        medicine.Dosage,
		ScheduledTime: medicine.ScheduledTime,
		Frequency:     string(medicine.Frequency),
		Taken:         medicine.Taken,
		CreatedAt:     formatTime(medicine.CreatedAt),
	}
}

func fromMedicineSchema(medicine medicineSchema) domain.Medicine {
	return domain.Medicine{
		ID:            domain.MedicineID(medicine.ID),
		OwnerID:       domain.AccountID(medicine.OwnerID),
		Name:          medicine.Name,
		Dosage:        medicine.Dosage,
		ScheduledTime: medicine.ScheduledTime,
		Frequency:     domain.Frequency(medicine.Frequency),
		Taken:         medicine.Taken,
		CreatedAt:     parseTime(medicine.CreatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339Nano)
}
