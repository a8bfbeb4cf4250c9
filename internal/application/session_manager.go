package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/logging"
	"github.com/bnema/medconnect/internal/ports"
)

// SessionManager tracks the signed-in account in memory and mirrors it to
// the session repository.
type SessionManager struct {
	repo   ports.SessionRepository
	logger logging.Logger

	mu      sync.RWMutex
	current *domain.Account
}

func NewSessionManager(repo ports.SessionRepository, logger logging.Logger) *SessionManager {
	if logger == nil {
		logger = logging.Nop()
	}

	return &SessionManager{repo: repo, logger: logger}
}

// Restore reads the persisted session. A missing or unreadable session is
// reported as ok=false with a nil error.
func (m *SessionManager) Restore(ctx context.Context) (domain.Account, bool, error) {
	account, err := m.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			m.set(nil)
			return domain.Account{}, false, nil
		}
		return domain.Account{}, false, fmt.Errorf("load session: %w", err)
	}

	m.set(&account)

	return account, true, nil
}

func (m *SessionManager) Commit(ctx context.Context, account domain.Account) error {
	if err := m.repo.Save(ctx, account); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	m.set(&account)
	m.logger.Info(ctx, "session committed", "account_id", string(account.ID))

	return nil
}

func (m *SessionManager) Clear(ctx context.Context) error {
	if err := m.repo.Delete(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	m.set(nil)
	m.logger.Info(ctx, "session cleared")

	return nil
}

// Current returns the in-memory session without reading the store.
func (m *SessionManager) Current() (domain.Account, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return domain.Account{}, false
	}

	return *m.current, true
}

func (m *SessionManager) set(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = account
}
