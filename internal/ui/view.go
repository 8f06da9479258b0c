package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/batchview/internal/batch"
	"github.com/five82/batchview/internal/state"
)

const (
	badgeLive    = "LIVE"
	badgeOffline = "OFFLINE COPY"
	badgeLoading = "LOADING"
	badgeError   = "ERROR"
)

// badgeFor maps a snapshot to its sync badge. Idle has none.
func badgeFor(snap state.Snapshot) string {
	switch snap.Phase {
	case state.PhaseLoading:
		return badgeLoading
	case state.PhaseFailed:
		return badgeError
	case state.PhaseReady:
		if snap.Source == state.SourceFallback {
			return badgeOffline
		}
		return badgeLive
	default:
		return ""
	}
}

func (m Model) renderMain() string {
	sections := []string{m.renderHeader(), m.renderBody()}
	if m.showActivity {
		sections = append(sections, m.renderActivity())
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.AccentText.Bold(true).Render("batchview")}
	if id := m.snapshot.Identifier; id != "" {
		parts = append(parts, styles.Text.Render(truncate(id, 40)))
	}
	if label := badgeFor(m.snapshot); label != "" {
		parts = append(parts, styles.BadgeStyle(label).Render(label))
	}
	return styles.Header.Render(strings.Join(parts, "  "))
}

func (m Model) renderBody() string {
	if m.prompting {
		return m.renderPrompt()
	}

	styles := m.theme.Styles()
	snap := m.snapshot

	if snap.HasRecord() {
		card := m.renderCard(*snap.Record)
		if snap.Phase == state.PhaseFailed && snap.Err != nil {
			warn := styles.WarningText.Render("Refresh failed: " + truncate(snap.Err.Error(), m.cardWidth()-16))
			return lipgloss.JoinVertical(lipgloss.Left, card, " "+warn)
		}
		return card
	}

	var msg string
	switch snap.Phase {
	case state.PhaseLoading:
		msg = styles.InfoText.Render(fmt.Sprintf("Loading batch %s…", snap.Identifier))
	case state.PhaseFailed:
		lines := []string{styles.DangerText.Render("Could not load batch")}
		if snap.Err != nil {
			lines = append(lines, styles.Text.Render(snap.Err.Error()))
		}
		lines = append(lines, styles.MutedText.Render("Press r to retry or / to open another batch."))
		msg = strings.Join(lines, "\n")
	default:
		msg = styles.MutedText.Render("No batch selected. Press / to open one.")
	}
	return styles.Card.Width(m.cardWidth()).Render(msg)
}

func (m Model) renderCard(rec batch.Record) string {
	styles := m.theme.Styles()
	inner := m.cardWidth() - 4

	var b strings.Builder
	b.WriteString(styles.Title.Render(rec.Name))
	b.WriteString("\n")
	if desc := strings.TrimSpace(rec.Description); desc != "" {
		b.WriteString(styles.MutedText.Width(inner).Render(desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := [][2]string{
		{"Class", classLabel(rec.Class)},
		{"Subject", orDash(rec.Subject)},
		{"Teacher", orDash(rec.TeacherName)},
		{"Starts", formatDate(rec.StartDate, rec.ParsedStartDate())},
		{"Ends", formatDate(rec.EndDate, rec.ParsedEndDate())},
		{"Status", orDash(titleCase(rec.Status))},
		{"Students", formatCount(rec.TotalStudents)},
		{"Rating", formatRating(rec.Rating, rec.TotalReviews)},
	}
	label := styles.MutedText.Width(10)
	for _, row := range rows {
		b.WriteString(label.Render(row[0]))
		b.WriteString(styles.Text.Render(row[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(label.Render("Price"))
	b.WriteString(m.renderPrice(rec))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(rec.Progress() / 100))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(fmt.Sprintf("%s / %s lectures",
		formatCount(rec.CompletedLectures), formatCount(rec.TotalLectures))))
	b.WriteString(styles.MutedText.Render("  ·  " + formatPercent(rec.Progress())))

	return styles.Card.Width(m.cardWidth()).Render(b.String())
}

// renderPrice shows the list price struck through only when a real discount
// applies.
func (m Model) renderPrice(rec batch.Record) string {
	styles := m.theme.Styles()
	pays := formatRupees(rec.EffectivePrice())
	if !rec.HasDiscount() {
		return styles.Text.Bold(true).Render(pays)
	}
	return styles.Strike.Render(formatRupees(rec.Price)) + " " + styles.SuccessText.Render(pays)
}

func (m Model) renderPrompt() string {
	styles := m.theme.Styles()
	lines := []string{
		styles.Title.Render("Open batch"),
		m.input.View(),
	}
	if m.promptErr != "" {
		lines = append(lines, styles.DangerText.Render(m.promptErr))
	}
	return styles.Prompt.Width(m.cardWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	width := m.cardWidth()

	var lines []string
	switch {
	case m.logPath == "":
		lines = append(lines, "Activity log disabled")
	case m.activityErr != nil:
		lines = append(lines, styles.DangerText.Render("Activity unavailable: "+m.activityErr.Error()))
	case len(m.activity) == 0:
		lines = append(lines, "No activity yet")
	default:
		for _, e := range m.activity {
			text := truncate(e.String(), width)
			switch e.Level {
			case "error":
				lines = append(lines, styles.DangerText.Render(text))
			case "warn":
				lines = append(lines, styles.WarningText.Render(text))
			default:
				lines = append(lines, text)
			}
		}
	}
	return styles.Activity.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	updated := styles.MutedText.Render(formatLastUpdated(m.snapshot.LastUpdated, m.now()))

	var keys string
	if m.prompting {
		keys = m.help.View(promptKeys{m.keys})
	} else {
		keys = m.help.View(m.keys)
	}
	return styles.Footer.Render(updated + "\n" + keys)
}

func classLabel(class int) string {
	if class <= 0 {
		return "-"
	}
	return fmt.Sprintf("Class %d", class)
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
