package cli

import (
	"math"
	"testing"
)

func TestFormatISKShort(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1_500_000_000, "1.50B ISK"},
		{25_000_000, "25.00M ISK"},
		{12_500, "12.50K ISK"},
		{999, "999.00 ISK"},
		{-2_000_000, "-2.00M ISK"},
		{0, "0.00 ISK"},
	}
	for _, tt := range tests {
		if got := FormatISKShort(tt.amount); got != tt.want {
			t.Errorf("FormatISKShort(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatISK(t *testing.T) {
	if got := FormatISK(1234567.5); got != "1,234,567.5 ISK" {
		t.Errorf("FormatISK(1234567.5) = %q", got)
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{math.Inf(1), "never"},
		{3.25, "3.2 hours"},
		{47.9, "47.9 hours"},
		{72, "3.0 days"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatRating(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{3, "★★★☆☆"},
		{5, "★★★★★"},
		{7, "★★★★★"}, // clamped
	}
	for _, tt := range tests {
		if got := FormatRating(tt.rating); got != tt.want {
			t.Errorf("FormatRating(%d) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(0.0485); got != "4.85%" {
		t.Errorf("FormatRate(0.0485) = %q", got)
	}
}
