package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)

	_, statErr := os.Stat(filepath.Join(home, ".medconnect", "store", "accounts"))
	assert.True(t, os.IsNotExist(statErr), "version must not seed the store")
}

func TestAccountListShowsSeededAccounts(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "user_demo1\tdoctor@test.com\tDr. Sarah Johnson")
	assert.Contains(t, stdout, "user_demo2\tadmin@test.com\tAdmin User")
}

func TestSeedDisabledByConfigFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[seed]\nenabled = false\n")

	stdout, _, err := executeCLI(t, home, "account", "list")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestLoginWhoamiLogout(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "login", "--email", "doctor@test.com", "--password", "test123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as Dr. Sarah Johnson <doctor@test.com>")

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "user_demo1\tdoctor@test.com\tDr. Sarah Johnson\n", stdout)

	stdout, _, err = executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out")

	_, _, err = executeCLI(t, home, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active session")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "doctor@test.com", "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")

	_, _, err = executeCLI(t, home, "whoami")
	require.Error(t, err)
}

func TestLoginRequiresPasswordFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "doctor@test.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"password\" not set")
}

func TestRegisterSignsInAndRejectsDuplicate(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"register",
		"--email", "patient@test.com",
		"--name", "Pat Patient",
		"--password", "pw",
		"--age", "52",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Registered Pat Patient (user_")

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "patient@test.com\tPat Patient")

	_, _, err = executeCLI(t, home, "register", "--email", "patient@test.com", "--name", "Other", "--password", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestMedicineCommandsRequireSession(t *testing.T) {
	home := t.TempDir()

	for _, args := range [][]string{
		{"medicine", "list"},
		{"medicine", "add", "--name", "Zinc", "--dosage", "25mg", "--time", "20:00"},
		{"medicine", "take", "med_demo1"},
		{"medicine", "delete", "med_demo1"},
		{"stats"},
		{"profile"},
	} {
		_, _, err := executeCLI(t, home, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "no active session", args)
	}
}

func TestMedicineFlowAcrossInvocations(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "register", "--email", "flow@test.com", "--name", "Flow User", "--password", "pw")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "medicine", "add", "--name", "Metformin", "--dosage", "500mg", "--time", "07:30", "--frequency", "twice-daily")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added Metformin 500mg")

	_, _, err = executeCLI(t, home, "medicine", "add", "--name", "Iron", "--dosage", "65mg", "--time", "21:00")
	require.NoError(t, err)

	medicines := listMedicinesJSON(t, home)
	require.Len(t, medicines, 2)
	assert.Equal(t, "twice-daily", medicines[0].Frequency)
	assert.Equal(t, "daily", medicines[1].Frequency)
	assert.False(t, medicines[0].Taken)

	stdout, _, err = executeCLI(t, home, "medicine", "take", medicines[0].ID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Metformin marked as taken")

	stdout, _, err = executeCLI(t, home, "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "50%")
	assert.Contains(t, stdout, "Fair")
	assert.Contains(t, stdout, "next: Iron 65mg at 9:00 PM")

	stdout, _, err = executeCLI(t, home, "medicine", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "7:30 AM · twice daily")

	stdout, _, err = executeCLI(t, home, "medicine", "delete", medicines[1].ID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed")
	require.Len(t, listMedicinesJSON(t, home), 1)

	stdout, _, err = executeCLI(t, home, "medicine", "delete", "missing")
	require.NoError(t, err)
	assert.Contains(t, stdout, "nothing removed")
}

func TestMedicineAddRejectsInvalidInput(t *testing.T) {
	home := t.TempDir()
	_, _, err := executeCLI(t, home, "login", "--email", "admin@test.com", "--password", "test123")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "medicine", "add", "--name", "Zinc", "--dosage", "25mg", "--time", "8pm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scheduled time")

	_, _, err = executeCLI(t, home, "medicine", "add", "--name", "Zinc", "--dosage", "25mg", "--time", "20:00", "--frequency", "hourly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid medicine frequency")
}

func TestOwnersDoNotSeeEachOthersMedicines(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "admin@test.com", "--password", "test123")
	require.NoError(t, err)
	require.Empty(t, listMedicinesJSON(t, home))

	_, _, err = executeCLI(t, home, "medicine", "add", "--name", "Zinc", "--dosage", "25mg", "--time", "20:00")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "login", "--email", "doctor@test.com", "--password", "test123")
	require.NoError(t, err)

	medicines := listMedicinesJSON(t, home)
	require.Len(t, medicines, 3)
	for _, medicine := range medicines {
		assert.NotEqual(t, "Zinc", medicine.Name)
	}
}

func TestProfileShowsAccountCard(t *testing.T) {
	home := t.TempDir()
	_, _, err := executeCLI(t, home, "login", "--email", "doctor@test.com", "--password", "test123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "profile")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DS")
	assert.Contains(t, stdout, "Dr. Sarah Johnson")
	assert.Contains(t, stdout, "id: MD12345")
	assert.Contains(t, stdout, "Member since")
	assert.Contains(t, stdout, "adherence: 33%")
}

func TestSQLiteBackendPersistsAcrossInvocations(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MEDCONNECT_STORE_BACKEND", "sqlite")

	_, _, err := executeCLI(t, home, "login", "--email", "doctor@test.com", "--password", "test123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "user_demo1")

	_, err = os.Stat(filepath.Join(home, ".medconnect", "medconnect.db"))
	require.NoError(t, err)
}

func TestBcryptSchemeAuthenticatesSeededAccounts(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[credentials]\nscheme = \"bcrypt\"\nbcrypt_cost = 4\n")

	_, _, err := executeCLI(t, home, "login", "--email", "admin@test.com", "--password", "test123")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(home, ".medconnect", "store", "accounts"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "test123")
}

func TestInvalidConfigSurfacesError(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "[store]\nbackend = \"redis\"\n")

	_, _, err := executeCLI(t, home, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

func TestRemovedCommandIsUnknown(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "pool")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"pool\"")
}

type listedMedicine struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Taken     bool   `json:"taken"`
}

func listMedicinesJSON(t *testing.T, home string) []listedMedicine {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "medicine", "list", "--json")
	require.NoError(t, err)

	var medicines []listedMedicine
	require.NoError(t, json.Unmarshal([]byte(stdout), &medicines))
	return medicines
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root, closeApp := newRootCmd()
	defer closeApp()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, home string, contents string) {
	t.Helper()

	configDir := filepath.Join(home, ".medconnect")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(contents), 0o600))
}
