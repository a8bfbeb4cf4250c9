package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/ports"
)

const accountIDPrefix = "user_"

type AccountService struct {
	repo   ports.AccountRepository
	scheme ports.CredentialScheme
	clock  ports.Clock
	ids    ports.IDGenerator
}

func NewAccountService(repo ports.AccountRepository, scheme ports.CredentialScheme, clock ports.Clock, ids ports.IDGenerator) *AccountService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if ids == nil {
		ids = ports.UUIDGenerator{}
	}

	return &AccountService{
		repo:   repo,
		scheme: scheme,
		clock:  clock,
		ids:    ids,
	}
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func (s *AccountService) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("find account by email: %w", err)
	}

	return account, nil
}

// Register creates an account with a fresh id and the current time as
// CreatedAt. Emails are matched exactly; an existing one yields
// domain.ErrDuplicateEmail and nothing is written.
func (s *AccountService) Register(ctx context.Context, cmd RegisterCommand) (domain.Account, error) {
	if err := requireFields(map[string]string{
		"email":      cmd.Email,
		"name":       cmd.Name,
		"credential": cmd.Credential,
	}); err != nil {
		return domain.Account{}, err
	}
	if err := validText(map[string]string{
		"email":       cmd.Email,
		"name":        cmd.Name,
		"credential":  cmd.Credential,
		"external id": cmd.ExternalID,
	}); err != nil {
		return domain.Account{}, err
	}

	_, err := s.repo.FindByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, cmd.Email)
	case !errors.Is(err, domain.ErrAccountNotFound):
		return domain.Account{}, fmt.Errorf("find account by email: %w", err)
	}

	credential, err := s.scheme.Encode(cmd.Credential)
	if err != nil {
		return domain.Account{}, fmt.Errorf("encode credential: %w", err)
	}

	account := domain.Account{
		ID:         domain.AccountID(accountIDPrefix + s.ids.NewID()),
		Email:      cmd.Email,
		Name:       cmd.Name,
		Credential: credential,
		CreatedAt:  s.clock.Now(),
		Age:        cmd.Age,
		ExternalID: cmd.ExternalID,
	}

	if err := s.repo.Append(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	return account, nil
}

// Authenticate returns domain.ErrInvalidCredentials for an unknown email and
// for a credential that does not verify, without telling the two apart.
func (s *AccountService) Authenticate(ctx context.Context, email, credential string) (domain.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, domain.ErrInvalidCredentials
		}
		return domain.Account{}, fmt.Errorf("find account by email: %w", err)
	}

	if !s.scheme.Verify(account.Credential, credential) {
		return domain.Account{}, domain.ErrInvalidCredentials
	}

	return account, nil
}

func requireFields(fields map[string]string) error {
	missing := make([]string, 0, len(fields))
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	slices.Sort(missing)

	return fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(missing, ", "))
}

func validText(fields map[string]string) error {
	invalid := make([]string, 0, len(fields))
	for name, value := range fields {
		if !utf8.ValidString(value) {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) == 0 {
		return nil
	}

	slices.Sort(invalid)

	return fmt.Errorf("%w: %s", domain.ErrInvalidField, strings.Join(invalid, ", "))
}
