package view

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMedicines() []domain.Medicine {
	return []domain.Medicine{
		{ID: "med_demo1", Name: "Aspirin", Dosage: "100mg", ScheduledTime: "08:00", Frequency: domain.FrequencyDaily, Taken: true},
		{ID: "med_demo2", Name: "Vitamin D", Dosage: "1000 IU", ScheduledTime: "12:00", Frequency: domain.FrequencyTwiceDaily},
		{ID: "med_demo3", Name: "Omega-3", Dosage: "1 capsule", ScheduledTime: "18:30", Frequency: domain.FrequencyAsNeeded},
	}
}

func TestRenderMedicines(t *testing.T) {
	output, err := RenderMedicines(testMedicines())

	require.NoError(t, err)
	assert.Contains(t, output, "scheduled: 3")
	assert.Contains(t, output, "[x]")
	assert.Contains(t, output, "Aspirin")
	assert.Contains(t, output, "8:00 AM · daily · id med_demo1")
	assert.Contains(t, output, "12:00 PM · twice daily")
	assert.Contains(t, output, "6:30 PM · as needed")
	assert.Less(t, strings.Index(output, "Aspirin"), strings.Index(output, "Omega-3"))
}

func TestRenderMedicinesEmpty(t *testing.T) {
	output, err := RenderMedicines(nil)

	require.NoError(t, err)
	assert.Contains(t, output, "scheduled: 0")
	assert.Contains(t, output, "No medicines scheduled.")
}

func TestRenderStats(t *testing.T) {
	output, err := RenderStats(domain.ComputeStats(testMedicines()))

	require.NoError(t, err)
	assert.Contains(t, output, "33%")
	assert.Contains(t, output, "Needs Attention")
	assert.Contains(t, output, "taken: 1 of 3")
	assert.Contains(t, output, "next: Vitamin D 1000 IU at 12:00 PM")
	assert.Contains(t, output, "[========----------------]")
}

func TestRenderStatsAllTaken(t *testing.T) {
	output, err := RenderStats(domain.ComputeStats([]domain.Medicine{{ID: "a", Taken: true}}))

	require.NoError(t, err)
	assert.Contains(t, output, "100%")
	assert.Contains(t, output, "Excellent")
	assert.Contains(t, output, "All medicines taken.")
	assert.Contains(t, output, "["+strings.Repeat("=", progressBarWidth)+"]")
}

func TestRenderProfile(t *testing.T) {
	age := 34
	account := domain.Account{
		Name:       "Dr. Sarah Johnson",
		Email:      "doctor@test.com",
		Age:        &age,
		ExternalID: "MD12345",
		CreatedAt:  time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
	}

	output, err := RenderProfile(account, domain.ComputeStats(testMedicines()))

	require.NoError(t, err)
	assert.Contains(t, output, "DS")
	assert.Contains(t, output, "Dr. Sarah Johnson")
	assert.Contains(t, output, "doctor@test.com")
	assert.Contains(t, output, "age: 34")
	assert.Contains(t, output, "id: MD12345")
	assert.Contains(t, output, "Member since September 1, 2026")
	assert.Contains(t, output, "adherence: 33%")
}

func TestRenderProfileOmitsMissingDetails(t *testing.T) {
	output, err := RenderProfile(domain.Account{Name: "Solo", Email: "solo@test.com"}, domain.AdherenceStats{})

	require.NoError(t, err)
	assert.NotContains(t, output, "age:")
	assert.NotContains(t, output, "Member since")
	assert.Contains(t, output, "medicines: 0")
}

func TestFormatScheduledTime(t *testing.T) {
	testCases := map[string]string{
		"00:05": "12:05 AM",
		"08:00": "8:00 AM",
		"12:00": "12:00 PM",
		"23:59": "11:59 PM",
		"noon":  "noon",
	}

	for raw, want := range testCases {
		assert.Equal(t, want, FormatScheduledTime(raw), raw)
	}
}
