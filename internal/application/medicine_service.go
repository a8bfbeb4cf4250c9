package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/ports"
)

type MedicineService struct {
	repo  ports.MedicineRepository
	clock ports.Clock
	ids   ports.IDGenerator
}

func NewMedicineService(repo ports.MedicineRepository, clock ports.Clock, ids ports.IDGenerator) *MedicineService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if ids == nil {
		ids = ports.UUIDGenerator{}
	}

	return &MedicineService{repo: repo, clock: clock, ids: ids}
}

func (s *MedicineService) LoadFor(ctx context.Context, ownerID domain.AccountID) ([]domain.Medicine, error) {
	medicines, err := s.repo.LoadFor(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load medicines for %s: %w", ownerID, err)
	}

	return medicines, nil
}

// Add builds a new, untaken medicine record. It is not persisted until the
// owner's working set is saved.
func (s *MedicineService) Add(cmd AddMedicineCommand) (domain.Medicine, error) {
	if err := requireFields(map[string]string{
		"owner":          string(cmd.OwnerID),
		"name":           cmd.Name,
		"dosage":         cmd.Dosage,
		"scheduled time": cmd.ScheduledTime,
	}); err != nil {
		return domain.Medicine{}, err
	}
	if err := validText(map[string]string{
		"owner":  string(cmd.OwnerID),
		"name":   cmd.Name,
		"dosage": cmd.Dosage,
	}); err != nil {
		return domain.Medicine{}, err
	}

	// Stored zero-padded so scheduled times order correctly as strings.
	parsed, err := time.Parse(domain.ScheduledTimeLayout, strings.TrimSpace(cmd.ScheduledTime))
	if err != nil {
		return domain.Medicine{}, fmt.Errorf("%w: %q", domain.ErrInvalidScheduledTime, cmd.ScheduledTime)
	}
	scheduledTime := parsed.Format(domain.ScheduledTimeLayout)

	frequency := cmd.Frequency
	if frequency == "" {
		frequency = domain.FrequencyDaily
	}
	if !frequency.Valid() {
		return domain.Medicine{}, fmt.Errorf("%w: %q", domain.ErrInvalidFrequency, frequency)
	}

	return domain.Medicine{
		ID:            domain.MedicineID(s.ids.NewID()),
		OwnerID:       cmd.OwnerID,
		Name:          cmd.Name,
		Dosage:        cmd.Dosage,
		ScheduledTime: scheduledTime,
		Frequency:     frequency,
		Taken:         false,
		CreatedAt:     s.clock.Now(),
	}, nil
}

func (s *MedicineService) Toggle(workingSet []domain.Medicine, id domain.MedicineID) []domain.Medicine {
	return domain.ToggleTaken(workingSet, id)
}

func (s *MedicineService) Remove(workingSet []domain.Medicine, id domain.MedicineID) []domain.Medicine {
	return domain.RemoveMedicine(workingSet, id)
}

func (s *MedicineService) SaveFor(ctx context.Context, ownerID domain.AccountID, workingSet []domain.Medicine) error {
	if err := s.repo.SaveFor(ctx, ownerID, workingSet); err != nil {
		return fmt.Errorf("save medicines for %s: %w", ownerID, err)
	}

	return nil
}
