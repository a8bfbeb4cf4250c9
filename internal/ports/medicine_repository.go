package ports

import (
	"context"

	"github.com/bnema/medconnect/internal/domain"
)

type MedicineRepository interface {
	LoadFor(ctx context.Context, ownerID domain.AccountID) ([]domain.Medicine, error)
	// SaveFor replaces every record owned by ownerID with medicines, leaving
	// other owners' records untouched.
	SaveFor(ctx context.Context, ownerID domain.AccountID, medicines []domain.Medicine) error
	ReplaceAll(ctx context.Context, medicines []domain.Medicine) error
}
