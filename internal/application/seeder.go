package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/logging"
	"github.com/bnema/medconnect/internal/ports"
)

const (
	DemoCredential = "test123"

	demoDoctorID domain.AccountID = "user_demo1"
	demoAdminID  domain.AccountID = "user_demo2"
)

const day = 24 * time.Hour

// Seeder writes the demo data set into a store that has never held accounts.
type Seeder struct {
	accounts  ports.AccountRepository
	medicines ports.MedicineRepository
	scheme    ports.CredentialScheme
	clock     ports.Clock
	logger    logging.Logger
}

func NewSeeder(accounts ports.AccountRepository, medicines ports.MedicineRepository, scheme ports.CredentialScheme, clock ports.Clock, logger logging.Logger) *Seeder {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Seeder{
		accounts:  accounts,
		medicines: medicines,
		scheme:    scheme,
		clock:     clock,
		logger:    logger,
	}
}

// Seed reports whether demo data was written. It does nothing once the
// accounts key exists, even if its value can no longer be decoded.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	initialized, err := s.accounts.Initialized(ctx)
	if err != nil {
		return false, fmt.Errorf("check accounts: %w", err)
	}
	if initialized {
		return false, nil
	}

	credential, err := s.scheme.Encode(DemoCredential)
	if err != nil {
		return false, fmt.Errorf("encode demo credential: %w", err)
	}

	// Accounts go last: their presence marks the store as seeded.
	now := s.clock.Now()
	if err := s.medicines.ReplaceAll(ctx, demoMedicines(now)); err != nil {
		return false, fmt.Errorf("seed medicines: %w", err)
	}
	if err := s.accounts.ReplaceAll(ctx, demoAccounts(now, credential)); err != nil {
		return false, fmt.Errorf("seed accounts: %w", err)
	}

	s.logger.Info(ctx, "demo data seeded", "scheme", s.scheme.Name())

	return true, nil
}

func demoAccounts(now time.Time, credential string) []domain.Account {
	doctorAge, adminAge := 34, 28

	return []domain.Account{
		{
			ID:         demoDoctorID,
			Email:      "doctor@test.com",
			Name:       "Dr. Sarah Johnson",
			Credential: credential,
			CreatedAt:  now.Add(-30 * day),
			Age:        &doctorAge,
			ExternalID: "MD12345",
		},
		{
			ID:         demoAdminID,
			Email:      "admin@test.com",
			Name:       "Admin User",
			Credential: credential,
			CreatedAt:  now.Add(-15 * day),
			Age:        &adminAge,
			ExternalID: "ADM001",
		},
	}
}

func demoMedicines(now time.Time) []domain.Medicine {
	return []domain.Medicine{
		{ID: "med_demo1", OwnerID: demoDoctorID, Name: "Aspirin", Dosage: "100mg", ScheduledTime: "08:00", Frequency: domain.FrequencyDaily, Taken: true, CreatedAt: now},
		{ID: "med_demo2", OwnerID: demoDoctorID, Name: "Vitamin D", Dosage: "1000 IU", ScheduledTime: "12:00", Frequency: domain.FrequencyDaily, CreatedAt: now},
		{ID: "med_demo3", OwnerID: demoDoctorID, Name: "Omega-3", Dosage: "1 capsule", ScheduledTime: "18:00", Frequency: domain.FrequencyDaily, CreatedAt: now},
	}
}
