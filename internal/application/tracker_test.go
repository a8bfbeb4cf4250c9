package application

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bnema/medconnect/internal/adapters/credentials"
	memorykv "github.com/bnema/medconnect/internal/adapters/kv/memory"
	"github.com/bnema/medconnect/internal/adapters/repo/kvstore"
	"github.com/bnema/medconnect/internal/domain"
	"github.com/bnema/medconnect/internal/logging"
	"github.com/bnema/medconnect/internal/ports"
	"github.com/bnema/medconnect/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, store ports.KVStore, ids ports.IDGenerator) *Tracker {
	t.Helper()

	clock := fixedClock{now: testNow}
	accounts := kvstore.NewAccountRepository(store, nil)
	medicines := kvstore.NewMedicineRepository(store, nil)

	_, err := NewSeeder(accounts, medicines, credentials.Plaintext{}, clock, nil).Seed(context.Background())
	require.NoError(t, err)

	return NewTracker(
		NewAccountService(accounts, credentials.Plaintext{}, clock, ids),
		NewMedicineService(medicines, clock, ids),
		NewSessionManager(kvstore.NewSessionRepository(store, nil), nil),
		nil,
	)
}

func TestTrackerLoginLoadsWorkingSet(t *testing.T) {
	tracker := newTestTracker(t, memorykv.NewStore(), &sequenceIDs{})

	account, err := tracker.Login(context.Background(), "doctor@test.com", DemoCredential)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("user_demo1"), account.ID)

	owner, set := tracker.WorkingSet()
	assert.Equal(t, account.ID, owner)
	assert.Len(t, set, 3)

	session, ok, err := tracker.CurrentSession(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, account, session)
}

func TestTrackerLoginRejectsBadCredentialsWithoutSession(t *testing.T) {
	tracker := newTestTracker(t, memorykv.NewStore(), &sequenceIDs{})

	_, err := tracker.Login(context.Background(), "doctor@test.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, ok, err := tracker.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = tracker.RequireSession(context.Background())
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestTrackerRegisterCommitsSessionAndRejectsDuplicates(t *testing.T) {
	tracker := newTestTracker(t, memorykv.NewStore(), &sequenceIDs{})

	account, err := tracker.RegisterAccount(context.Background(), RegisterCommand{Email: "new@test.com", Name: "New Patient", Credential: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("user_id-1"), account.ID)

	session, err := tracker.RequireSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, account.ID, session.ID)

	_, set := tracker.WorkingSet()
	assert.Empty(t, set)

	_, err = tracker.RegisterAccount(context.Background(), RegisterCommand{Email: "new@test.com", Name: "Again", Credential: "pw"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = tracker.Login(context.Background(), "new@test.com", "pw")
	require.NoError(t, err)
}

func TestTrackerMedicineLifecycle(t *testing.T) {
	tracker := newTestTracker(t, memorykv.NewStore(), &sequenceIDs{})
	ctx := context.Background()
	owner := domain.AccountID("user_demo2")

	added, err := tracker.AddMedicine(ctx, AddMedicineCommand{OwnerID: owner, Name: "Lisinopril", Dosage: "10mg", ScheduledTime: "09:00"})
	require.NoError(t, err)

	medicines, err := tracker.ListMedicines(ctx, owner)
	require.NoError(t, err)
	require.Len(t, medicines, 1)
	assert.Equal(t, added, medicines[0])
	assert.False(t, medicines[0].Taken)

	require.NoError(t, tracker.ToggleMedicineTaken(ctx, owner, added.ID))
	stats, err := tracker.Stats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Taken)
	assert.Equal(t, 100, stats.CompletionRate)
	assert.Nil(t, stats.Next)

	require.NoError(t, tracker.DeleteMedicine(ctx, owner, added.ID))
	medicines, err = tracker.ListMedicines(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, medicines)
}

func TestTrackerStatsOrdersUnpaddedScheduledTimes(t *testing.T) {
	tracker := newTestTracker(t, memorykv.NewStore(), &sequenceIDs{})
	ctx := context.Background()
	owner := domain.AccountID("user_demo2")

	_, err := tracker.AddMedicine(ctx, AddMedicineCommand{OwnerID: owner, Name: "Noon", Dosage: "1", ScheduledTime: "12:00"})
	require.NoError(t, err)
	morning, err := tracker.AddMedicine(ctx, AddMedicineCommand{OwnerID: owner, Name: "Morning", Dosage: "1", ScheduledTime: "8:00"})
	require.NoError(t, err)

	stats, err := tracker.Stats(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, stats.Next)
	assert.Equal(t, morning.ID, stats.Next.ID)
	assert.Equal(t, "08:00", stats.Next.ScheduledTime)
}

func TestTrackerRegisterReturnsAccountWhenSignInFails(t *testing.T) {
	store := memorykv.NewStore()
	clock := fixedClock{now: testNow}
	accountRepo := kvstore.NewAccountRepository(store, nil)
	sessions := mocks.NewMockSessionRepository(t)
	tracker := NewTracker(
		NewAccountService(accountRepo, credentials.Plaintext{}, clock, &sequenceIDs{}),
		NewMedicineService(kvstore.NewMedicineRepository(store, nil), clock, &sequenceIDs{}),
		NewSessionManager(sessions, nil),
		nil,
	)
	ctx := context.Background()
	saveErr := errors.New("session write failed")

	sessions.EXPECT().Save(mockAnyContext(), mock.Anything).Return(saveErr).Once()
	sessions.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil).Once()

	account, err := tracker.RegisterAccount(ctx, RegisterCommand{Email: "late@test.com", Name: "Late", Credential: "pw"})
	require.ErrorIs(t, err, ErrRegisteredNotSignedIn)
	require.ErrorIs(t, err, saveErr)
	assert.Equal(t, domain.AccountID("user_id-1"), account.ID)

	loggedIn, err := tracker.Login(ctx, "late@test.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, account.ID, loggedIn.ID)
}

func TestTrackerRejectedLoginLogOmitsEmail(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New(&logs, "debug", "text")
	require.NoError(t, err)

	store := memorykv.NewStore()
	clock := fixedClock{now: testNow}
	accounts := kvstore.NewAccountRepository(store, nil)
	medicines := kvstore.NewMedicineRepository(store, nil)
	_, err = NewSeeder(accounts, medicines, credentials.Plaintext{}, clock, nil).Seed(context.Background())
	require.NoError(t, err)

	tracker := NewTracker(
		NewAccountService(accounts, credentials.Plaintext{}, clock, &sequenceIDs{}),
		NewMedicineService(medicines, clock, &sequenceIDs{}),
		NewSessionManager(kvstore.NewSessionRepository(store, nil), nil),
		logger,
	)

	_, err = tracker.Login(context.Background(), "doctor@test.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Contains(t, logs.String(), "login rejected")
	assert.NotContains(t, logs.String(), "doctor@test.com")
}

func TestTrackerMutationsLeaveOtherOwnersUntouched(t *testing.T) {
	tracker := newTestTracker(t, memorykv.NewStore(), &sequenceIDs{})
	ctx := context.Background()

	before, err := tracker.ListMedicines(ctx, "user_demo1")
	require.NoError(t, err)

	_, err = tracker.AddMedicine(ctx, AddMedicineCommand{OwnerID: "user_demo2", Name: "Zinc", Dosage: "25mg", ScheduledTime: "20:00"})
	require.NoError(t, err)
	require.NoError(t, tracker.ToggleMedicineTaken(ctx, "user_demo2", "med_demo2"))
	require.NoError(t, tracker.DeleteMedicine(ctx, "user_demo2", "med_demo3"))

	after, err := tracker.ListMedicines(ctx, "user_demo1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTrackerUnknownMedicineIsNoop(t *testing.T) {
	store := memorykv.NewStore()
	tracker := newTestTracker(t, store, &sequenceIDs{})
	ctx := context.Background()

	raw, _, err := store.Get(ctx, kvstore.MedicinesKey)
	require.NoError(t, err)

	require.NoError(t, tracker.ToggleMedicineTaken(ctx, "user_demo1", "missing"))
	require.NoError(t, tracker.DeleteMedicine(ctx, "user_demo1", "missing"))

	after, _, err := store.Get(ctx, kvstore.MedicinesKey)
	require.NoError(t, err)
	assert.Equal(t, raw, after)
}

func TestTrackerWorkingSetIsACopy(t *testing.T) {
	tracker := newTestTracker(t, memorykv.NewStore(), &sequenceIDs{})

	_, err := tracker.ListMedicines(context.Background(), "user_demo1")
	require.NoError(t, err)

	_, set := tracker.WorkingSet()
	set[0].Name = "changed"

	_, again := tracker.WorkingSet()
	assert.Equal(t, "Aspirin", again[0].Name)
}

func TestTrackerLogoutClearsSessionAndWorkingSet(t *testing.T) {
	store := memorykv.NewStore()
	tracker := newTestTracker(t, store, &sequenceIDs{})
	ctx := context.Background()

	_, err := tracker.Login(ctx, "doctor@test.com", DemoCredential)
	require.NoError(t, err)
	require.NoError(t, tracker.Logout(ctx))

	owner, set := tracker.WorkingSet()
	assert.Empty(t, owner)
	assert.Empty(t, set)

	_, found, err := store.Get(ctx, kvstore.SessionKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTrackerSessionSurvivesRestart(t *testing.T) {
	store := memorykv.NewStore()
	ctx := context.Background()

	_, err := newTestTracker(t, store, &sequenceIDs{}).Login(ctx, "doctor@test.com", DemoCredential)
	require.NoError(t, err)

	dashboard, err := newTestTracker(t, store, &sequenceIDs{}).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Johnson", dashboard.Account.Name)
	assert.Len(t, dashboard.Medicines, 3)
	assert.Equal(t, 33, dashboard.Stats.CompletionRate)
	require.NotNil(t, dashboard.Stats.Next)
	assert.Equal(t, domain.MedicineID("med_demo2"), dashboard.Stats.Next.ID)
}
