package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatISK renders an ISK amount with thousands separators and two
// decimals.
func FormatISK(amount float64) string {
	return humanize.CommafWithDigits(amount, 2) + " ISK"
}

// FormatISKShort renders large ISK amounts compactly (1.50B, 25.00M).
func FormatISKShort(amount float64) string {
	abs := math.Abs(amount)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.2fB ISK", amount/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.2fM ISK", amount/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.2fK ISK", amount/1_000)
	default:
		return fmt.Sprintf("%.2f ISK", amount)
	}
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatRate renders a fee rate fraction as a percentage.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// FormatHours renders an hour count, spelling out the never-recovers case.
func FormatHours(h float64) string {
	if math.IsInf(h, 1) {
		return "never"
	}
	if h >= 48 {
		return fmt.Sprintf("%.1f days", h/24)
	}
	return fmt.Sprintf("%.1f hours", h)
}

// FormatRating renders a 0-5 rating as filled and empty stars.
func FormatRating(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
