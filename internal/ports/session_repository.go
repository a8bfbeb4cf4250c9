package ports

import (
	"context"

	"github.com/bnema/medconnect/internal/domain"
)

type SessionRepository interface {
	// Load returns domain.ErrNotAuthenticated when no session is stored.
	Load(ctx context.Context) (domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
	Delete(ctx context.Context) error
}
