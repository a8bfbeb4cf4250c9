package ports

import (
	"context"

	"github.com/bnema/medconnect/internal/domain"
)

type AccountRepository interface {
	// Initialized reports whether an account collection has ever been written.
	Initialized(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]domain.Account, error)
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	// Append adds account to the collection and rewrites it in full.
	Append(ctx context.Context, account domain.Account) error
	ReplaceAll(ctx context.Context, accounts []domain.Account) error
}
