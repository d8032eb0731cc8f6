package domain

import (
	"testing"
	"time"
)

func TestAgeLabel(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ago      time.Duration
		expected string
	}{
		{"just now", 30 * time.Second, "Just now"},
		{"clock skew", -time.Minute, "Just now"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"hours", 3*time.Hour + 10*time.Minute, "3h ago"},
		{"days", 2*24*time.Hour + time.Hour, "2d ago"},
		{"date after a week", 10 * 24 * time.Hour, "2024-05-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := now.Add(-tt.ago).UnixMilli()
			if got := AgeLabel(ts, now); got != tt.expected {
				t.Errorf("AgeLabel() = %q, want %q", got, tt.expected)
			}
		})
	}
}
