package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/logging"
)

var ErrRegisteredNotSignedIn = errors.New("account registered but sign-in failed")

// Tracker is the entry point the CLI drives. Every medicine mutation reloads
// the owner's records, applies the change and saves them back, so separate
// processes sharing a store see each other's writes for other owners.
type Tracker struct {
	accounts  *AccountService
	medicines *MedicineService
	session   *SessionManager
	logger    logging.Logger

	mu         sync.RWMutex
	owner      domain.AccountID
	workingSet []domain.Medicine
}

func NewTracker(accounts *AccountService, medicines *MedicineService, session *SessionManager, logger logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.Nop()
	}

	return &Tracker{
		accounts:  accounts,
		medicines: medicines,
		session:   session,
		logger:    logger,
	}
}

// RegisterAccount creates the account and signs it in. When the account is
// saved but signing in fails, the account is returned alongside
// ErrRegisteredNotSignedIn so the caller can log in instead of registering again.
func (t *Tracker) RegisterAccount(ctx context.Context, cmd RegisterCommand) (domain.Account, error) {
	account, err := t.accounts.Register(ctx, cmd)
	if err != nil {
		return domain.Account{}, err
	}

	if err := t.signIn(ctx, account); err != nil {
		return account, fmt.Errorf("%w: %w", ErrRegisteredNotSignedIn, err)
	}

	return account, nil
}

func (t *Tracker) Login(ctx context.Context, email, credential string) (domain.Account, error) {
	account, err := t.accounts.Authenticate(ctx, email, credential)
	if err != nil {
		t.logger.Debug(ctx, "login rejected", "error", err)
		return domain.Account{}, err
	}

	if err := t.signIn(ctx, account); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (t *Tracker) Logout(ctx context.Context) error {
	if err := t.session.Clear(ctx); err != nil {
		return err
	}

	t.setWorkingSet("", nil)

	return nil
}

// CurrentSession returns the in-memory session, restoring it from the store
// on first use.
func (t *Tracker) CurrentSession(ctx context.Context) (domain.Account, bool, error) {
	if account, ok := t.session.Current(); ok {
		return account, true, nil
	}

	return t.session.Restore(ctx)
}

// RequireSession is CurrentSession for callers that cannot proceed signed out.
func (t *Tracker) RequireSession(ctx context.Context) (domain.Account, error) {
	account, ok, err := t.CurrentSession(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	if !ok {
		return domain.Account{}, domain.ErrNotAuthenticated
	}

	return account, nil
}

func (t *Tracker) ListMedicines(ctx context.Context, ownerID domain.AccountID) ([]domain.Medicine, error) {
	medicines, err := t.medicines.LoadFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	t.setWorkingSet(ownerID, medicines)

	return slices.Clone(medicines), nil
}

func (t *Tracker) AddMedicine(ctx context.Context, cmd AddMedicineCommand) (domain.Medicine, error) {
	medicine, err := t.medicines.Add(cmd)
	if err != nil {
		return domain.Medicine{}, err
	}

	if err := t.update(ctx, cmd.OwnerID, func(set []domain.Medicine) ([]domain.Medicine, bool) {
		return append(set, medicine), true
	}); err != nil {
		return domain.Medicine{}, err
	}

	return medicine, nil
}

// ToggleMedicineTaken flips the taken flag of id. An unknown id is a no-op.
func (t *Tracker) ToggleMedicineTaken(ctx context.Context, ownerID domain.AccountID, id domain.MedicineID) error {
	return t.update(ctx, ownerID, func(set []domain.Medicine) ([]domain.Medicine, bool) {
		if !domain.ContainsMedicine(set, id) {
			return set, false
		}
		return t.medicines.Toggle(set, id), true
	})
}

// DeleteMedicine removes id from the owner's records. An unknown id is a no-op.
func (t *Tracker) DeleteMedicine(ctx context.Context, ownerID domain.AccountID, id domain.MedicineID) error {
	return t.update(ctx, ownerID, func(set []domain.Medicine) ([]domain.Medicine, bool) {
		if !domain.ContainsMedicine(set, id) {
			return set, false
		}
		return t.medicines.Remove(set, id), true
	})
}

func (t *Tracker) Stats(ctx context.Context, ownerID domain.AccountID) (domain.AdherenceStats, error) {
	medicines, err := t.ListMedicines(ctx, ownerID)
	if err != nil {
		return domain.AdherenceStats{}, err
	}

	return domain.ComputeStats(medicines), nil
}

// Dashboard bundles the signed-in account with its medicines and stats.
func (t *Tracker) Dashboard(ctx context.Context) (Dashboard, error) {
	account, err := t.RequireSession(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	medicines, err := t.ListMedicines(ctx, account.ID)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Account:   account,
		Medicines: medicines,
		Stats:     domain.ComputeStats(medicines),
	}, nil
}

// WorkingSet returns a copy of the last loaded or saved records and their owner.
func (t *Tracker) WorkingSet() (domain.AccountID, []domain.Medicine) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.owner, slices.Clone(t.workingSet)
}

func (t *Tracker) signIn(ctx context.Context, account domain.Account) error {
	if err := t.session.Commit(ctx, account); err != nil {
		return err
	}

	if _, err := t.ListMedicines(ctx, account.ID); err != nil {
		return err
	}

	return nil
}

func (t *Tracker) update(ctx context.Context, ownerID domain.AccountID, apply func([]domain.Medicine) ([]domain.Medicine, bool)) error {
	current, err := t.medicines.LoadFor(ctx, ownerID)
	if err != nil {
		return err
	}

	next, changed := apply(current)
	if !changed {
		t.setWorkingSet(ownerID, current)
		return nil
	}

	if err := t.medicines.SaveFor(ctx, ownerID, next); err != nil {
		return fmt.Errorf("update medicines: %w", err)
	}

	t.setWorkingSet(ownerID, next)

	return nil
}

func (t *Tracker) setWorkingSet(ownerID domain.AccountID, medicines []domain.Medicine) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.owner = ownerID
	t.workingSet = slices.Clone(medicines)
}
