package kvstore

import (
	"context"
	"sync"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/logging"
	"github.com/bnema/medconnect/internal/ports"
)

// MedicineRepository keeps every owner's medicines interleaved under one key.
type MedicineRepository struct {
	doc document
	mu  sync.Mutex
}

var _ ports.MedicineRepository = (*MedicineRepository)(nil)

func NewMedicineRepository(store ports.KVStore, logger logging.Logger) *MedicineRepository {
	return &MedicineRepository{doc: newDocument(store, logger)}
}

func (r *MedicineRepository) LoadFor(ctx context.Context, ownerID domain.AccountID) ([]domain.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readMedicines(ctx)
	if err != nil {
		return nil, err
	}

	medicines := make([]domain.Medicine, 0, len(file.Medicines))
	for _, entry := range file.Medicines {
		if entry.OwnerID != string(ownerID) {
			continue
		}
		medicines = append(medicines, fromMedicineSchema(entry))
	}

	return medicines, nil
}

// SaveFor reads the global collection, drops ownerID's records, appends
// medicines (stamped with ownerID) and writes the merged collection back.
func (r *MedicineRepository) SaveFor(ctx context.Context, ownerID domain.AccountID, medicines []domain.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readMedicines(ctx)
	if err != nil {
		return err
	}

	merged := make([]medicineSchema, 0, len(file.Medicines)+len(medicines))
	for _, entry := range file.Medicines {
		if entry.OwnerID == string(ownerID) {
			continue
		}
		merged = append(merged, entry)
	}
	for _, medicine := range medicines {
		medicine.OwnerID = ownerID
		merged = append(merged, toMedicineSchema(medicine))
	}
	file.Medicines = merged

	return r.doc.write(ctx, MedicinesKey, file)
}

func (r *MedicineRepository) ReplaceAll(ctx context.Context, medicines []domain.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file := medicinesDocument{Version: currentSchemaVersion, Medicines: make([]medicineSchema, 0, len(medicines))}
	for _, medicine := range medicines {
		file.Medicines = append(file.Medicines, toMedicineSchema(medicine))
	}

	return r.doc.write(ctx, MedicinesKey, file)
}

func (r *MedicineRepository) readMedicines(ctx context.Context) (medicinesDocument, error) {
	var file medicinesDocument
	ok, err := r.doc.read(ctx, MedicinesKey, &file, func() int { return file.Version })
	if err != nil {
		return medicinesDocument{}, err
	}
	if !ok {
		file = medicinesDocument{}
	}
	file.Version = currentSchemaVersion

	return file, nil
}
