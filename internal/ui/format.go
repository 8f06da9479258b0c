package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	rupee      = "₹"
	dateLayout = "2 January 2006"
)

// Prices and counts are grouped the way the Indian storefront shows them.
var printer = message.NewPrinter(language.MustParse("en-IN"))

// formatRupees renders an amount with the rupee sign, dropping the fraction
// when it is whole.
func formatRupees(amount float64) string {
	if amount == math.Trunc(amount) {
		return rupee + printer.Sprintf("%d", int64(amount))
	}
	return rupee + printer.Sprintf("%.2f", amount)
}

// formatCount renders a non-negative count with digit grouping.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatDate renders a long date, or the raw value when it cannot be parsed.
func formatDate(raw string, parsed time.Time) string {
	if parsed.IsZero() {
		if strings.TrimSpace(raw) == "" {
			return "-"
		}
		return raw
	}
	return parsed.Format(dateLayout)
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%% complete", pct)
}

func formatRating(rating float64, reviews int) string {
	return fmt.Sprintf("%.1f ★ (%s reviews)", rating, formatCount(reviews))
}

// formatLastUpdated renders the footer timestamp relative to now.
func formatLastUpdated(at, now time.Time) string {
	if at.IsZero() {
		return "Last updated: never"
	}
	return fmt.Sprintf("Last updated: %s (%s)", at.Local().Format("15:04:05"), humanizeAgo(now.Sub(at)))
}

func humanizeAgo(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh%02dm ago", int(d.Hours()), int(d.Minutes())%60)
	}
}

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

func titleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	runes := []rune(strings.ToLower(value))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
