package domain

import (
	"strings"
	"time"
)

type MedicineID string

type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyTwiceDaily Frequency = "twice-daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyAsNeeded   Frequency = "as-needed"
)

// ScheduledTimeLayout is the time-of-day format medicines are scheduled in.
const ScheduledTimeLayout = "15:04"

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily, FrequencyWeekly, FrequencyAsNeeded:
		return true
	default:
		return false
	}
}

func (f Frequency) Label() string {
	return strings.ReplaceAll(string(f), "-", " ")
}

func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyTwiceDaily, FrequencyWeekly, FrequencyAsNeeded}
}

type Medicine struct {
	ID            MedicineID
	OwnerID       AccountID
	Name          string
	Dosage        string
	ScheduledTime string
	Frequency     Frequency
	Taken         bool
	CreatedAt     time.Time
}

// ToggleTaken returns a copy of medicines with the Taken flag of id flipped.
// An unknown id yields an unchanged copy.
func ToggleTaken(medicines []Medicine, id MedicineID) []Medicine {
	result := make([]Medicine, len(medicines))
	copy(result, medicines)

	for i := range result {
		if result[i].ID == id {
			result[i].Taken = !result[i].Taken
		}
	}

	return result
}

// RemoveMedicine returns a copy of medicines without the record for id.
func RemoveMedicine(medicines []Medicine, id MedicineID) []Medicine {
	result := make([]Medicine, 0, len(medicines))
	for _, medicine := range medicines {
		if medicine.ID == id {
			continue
		}
		result = append(result, medicine)
	}

	return result
}

func ContainsMedicine(medicines []Medicine, id MedicineID) bool {
	for _, medicine := range medicines {
		if medicine.ID == id {
			return true
		}
	}

	return false
}
