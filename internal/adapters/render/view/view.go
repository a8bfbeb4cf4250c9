package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/medconnect/internal/domain"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	progressBarWidth = 24
	memberSinceDate  = "January 2, 2006"
	displayTime      = "3:04 PM"
	barFillColor     = "42"
	barEmptyColor    = "238"
)

func renderMedicines(medicines []domain.Medicine, s styles) string {
	lines := []string{
		s.title.Render("Medicines"),
		s.header.Render(fmt.Sprintf("scheduled: %d", len(medicines))),
	}

	if len(medicines) == 0 {
		lines = append(lines, s.empty.Render("No medicines scheduled."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, medicine := range medicines {
		lines = append(lines, s.section.Render(renderMedicine(medicine, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMedicine(medicine domain.Medicine, s styles) string {
	mark := s.pending.Render("[ ]")
	if medicine.Taken {
		mark = s.taken.Render("[x]")
	}

	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		mark,
		" ",
		s.name.Render(medicine.Name),
		" ",
		s.detail.Render(medicine.Dosage),
	)
	meta := s.muted.Render(fmt.Sprintf("    %s · %s · id %s",
		FormatScheduledTime(medicine.ScheduledTime),
		medicine.Frequency.Label(),
		medicine.ID,
	))

	return lipgloss.JoinVertical(lipgloss.Left, title, meta)
}

func renderStats(stats domain.AdherenceStats, s styles) string {
	badge := stats.Badge()
	lines := []string{
		s.title.Render("Today's adherence"),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			renderProgressBar(stats.CompletionRate, progressBarWidth, s),
			" ",
			s.detail.Render(fmt.Sprintf("%d%%", stats.CompletionRate)),
			" ",
			s.badge(badge).Render(string(badge)),
		),
		s.detail.Render(fmt.Sprintf("taken: %d of %d", stats.Taken, stats.Total)),
	}

	switch {
	case stats.Total == 0:
		lines = append(lines, s.empty.Render("No medicines scheduled."))
	case stats.Next == nil:
		lines = append(lines, s.taken.Render("All medicines taken."))
	default:
		lines = append(lines, s.detail.Render(fmt.Sprintf("next: %s %s at %s",
			stats.Next.Name,
			stats.Next.Dosage,
			FormatScheduledTime(stats.Next.ScheduledTime),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProfile(account domain.Account, stats domain.AdherenceStats, s styles) string {
	initials := account.Initials()
	if initials == "" {
		initials = "?"
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Center,
		s.avatar.Render(initials),
		" ",
		lipgloss.JoinVertical(
			lipgloss.Left,
			s.name.Render(account.Name),
			s.muted.Render(account.Email),
		),
	)

	details := make([]string, 0, 4)
	if account.Age != nil {
		details = append(details, s.detail.Render(fmt.Sprintf("age: %d", *account.Age)))
	}
	if strings.TrimSpace(account.ExternalID) != "" {
		details = append(details, s.detail.Render(fmt.Sprintf("id: %s", account.ExternalID)))
	}
	if since := MemberSince(account.CreatedAt); since != "" {
		details = append(details, s.muted.Render(since))
	}
	details = append(details, s.detail.Render(fmt.Sprintf("medicines: %d  taken: %d  adherence: %d%%",
		stats.Total, stats.Taken, stats.CompletionRate)))

	body := append([]string{header, ""}, details...)

	return s.card.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func renderProgressBar(percent int, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	bar := progress.New(
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithSolidFill(barFillColor),
		progress.WithFillCharacters('=', '-'),
	)
	bar.EmptyColor = barEmptyColor

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		bar.ViewAs(float64(clampPercent(percent))/100),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// FormatScheduledTime turns "08:00" into "8:00 AM". Values that do not parse
// are returned unchanged.
func FormatScheduledTime(raw string) string {
	parsed, err := time.Parse(domain.ScheduledTimeLayout, raw)
	if err != nil {
		return raw
	}

	return parsed.Format(displayTime)
}

func MemberSince(createdAt time.Time) string {
	if createdAt.IsZero() {
		return ""
	}

	return "Member since " + createdAt.Format(memberSinceDate)
}
