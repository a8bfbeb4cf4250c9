package kvstore

import (
	"context"
	"fmt"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/logging"
	"github.com/bnema/medconnect/internal/ports"
)

type SessionRepository struct {
	doc document
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(store ports.KVStore, logger logging.Logger) *SessionRepository {
	return &SessionRepository{doc: newDocument(store, logger)}
}

func (r *SessionRepository) Load(ctx context.Context) (domain.Account, error) {
	var file sessionDocument
	ok, err := r.doc.read(ctx, SessionKey, &file, func() int { return file.Version })
	if err != nil {
		return domain.Account{}, err
	}
	if !ok || file.Account == nil {
		return domain.Account{}, domain.ErrNotAuthenticated
	}

	return fromAccountSchema(*file.Account), nil
}

func (r *SessionRepository) Save(ctx context.Context, account domain.Account) error {
	encoded := toAccountSchema(account)

	return r.doc.write(ctx, SessionKey, sessionDocument{Version: currentSchemaVersion, Account: &encoded})
}

func (r *SessionRepository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.doc.store.Remove(ctx, SessionKey); err != nil {
		return fmt.Errorf("remove %s: %w", SessionKey, err)
	}

	return nil
}
