package domain

import "math"

type AdherenceBadge string

const (
	BadgeExcellent      AdherenceBadge = "Excellent"
	BadgeGood           AdherenceBadge = "Good"
	BadgeFair           AdherenceBadge = "Fair"
	BadgeNeedsAttention AdherenceBadge = "Needs Attention"
)

type AdherenceStats struct {
	Total          int
	Taken          int
	CompletionRate int
	Next           *Medicine
}

func (s AdherenceStats) Badge() AdherenceBadge {
	return BadgeForRate(s.CompletionRate)
}

func BadgeForRate(rate int) AdherenceBadge {
	switch {
	case rate >= 90:
		return BadgeExcellent
	case rate >= 70:
		return BadgeGood
	case rate >= 50:
		return BadgeFair
	default:
		return BadgeNeedsAttention
	}
}

// ComputeStats summarizes an owner's working set. Next is the untaken
// medicine with the earliest scheduled time; ties keep insertion order.
func ComputeStats(medicines []Medicine) AdherenceStats {
	stats := AdherenceStats{Total: len(medicines)}

	for i := range medicines {
		medicine := medicines[i]
		if medicine.Taken {
			stats.Taken++
			continue
		}
		if stats.Next == nil || medicine.ScheduledTime < stats.Next.ScheduledTime {
			next := medicine
			stats.Next = &next
		}
	}

	stats.CompletionRate = CompletionRate(stats.Taken, stats.Total)

	return stats
}

// CompletionRate returns taken/total as a percentage rounded half up.
func CompletionRate(taken, total int) int {
	if total <= 0 {
		return 0
	}

	return int(math.Floor(float64(taken)*100/float64(total) + 0.5))
}
