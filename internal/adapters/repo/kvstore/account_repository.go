package kvstore

import (
	"context"
	"sync"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/logging"
	"github.com/bnema/medconnect/internal/ports"
)

type AccountRepository struct {
	doc document
	mu  sync.Mutex
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(store ports.KVStore, logger logging.Logger) *AccountRepository {
	return &AccountRepository{doc: newDocument(store, logger)}
}

func (r *AccountRepository) Initialized(ctx context.Context) (bool, error) {
	return r.doc.exists(ctx, AccountsKey)
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readAccounts(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		accounts = append(accounts, fromAccountSchema(entry))
	}

	return accounts, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	for _, account := range accounts {
		if account.Email == email {
			return account, nil
		}
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *AccountRepository) Append(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readAccounts(ctx)
	if err != nil {
		return err
	}

	file.Accounts = append(file.Accounts, toAccountSchema(account))

	return r.doc.write(ctx, AccountsKey, file)
}

func (r *AccountRepository) ReplaceAll(ctx context.Context, accounts []domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file := accountsDocument{Version: currentSchemaVersion, Accounts: make([]accountSchema, 0, len(accounts))}
	for _, account := range accounts {
		file.Accounts = append(file.Accounts, toAccountSchema(account))
	}

	return r.doc.write(ctx, AccountsKey, file)
}

func (r *AccountRepository) readAccounts(ctx context.Context) (accountsDocument, error) {
	var file accountsDocument
	ok, err := r.doc.read(ctx, AccountsKey, &file, func() int { return file.Version })
	if err != nil {
		return accountsDocument{}, err
	}
	if !ok {
		file = accountsDocument{}
	}
	file.Version = currentSchemaVersion

	return file, nil
}
