package ledger

import "testing"

func TestDeviationDays(t *testing.T) {
	tests := []struct {
		name      string
		estimated string
		actual    string
		want      int
	}{
		{"late", "2024-05-15", "2024-05-23", 8},
		{"early", "2024-05-15", "2024-05-10", -5},
		{"same day", "2024-05-15", "2024-05-15", 0},
		{"across month boundary", "2024-04-28", "2024-05-02", 4},
		{"across year boundary", "2023-12-30", "2024-01-02", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeviationDays(day(tt.estimated), day(tt.actual))
			if got != tt.want {
				t.Errorf("DeviationDays(%s, %s) = %d, want %d", tt.estimated, tt.actual, got, tt.want)
			}
		})
	}
}

func TestDeviationDaysIgnoresTimeOfDay(t *testing.T) {
	est := day("2024-05-15").Add(23 * 3600 * 1e9) // 23:00
	act := day("2024-05-16")                      // 00:00
	if got := DeviationDays(est, act); got != 1 {
		t.Errorf("DeviationDays = %d, want 1 (calendar-day granularity)", got)
	}
}

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name      string
		committed string
		now       string
		progress  int
		want      bool
	}{
		{"past date incomplete", "2024-05-10", "2024-05-20", 80, true},
		{"past date complete", "2024-05-10", "2024-05-20", 100, false},
		{"same day incomplete", "2024-05-10", "2024-05-10", 0, false},
		{"future date incomplete", "2024-05-10", "2024-05-01", 0, false},
		{"one day past zero progress", "2024-05-10", "2024-05-11", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsOverdue(day(tt.committed), day(tt.now), tt.progress)
			if got != tt.want {
				t.Errorf("IsOverdue(%s, %s, %d) = %v, want %v",
					tt.committed, tt.now, tt.progress, got, tt.want)
			}
		})
	}
}

func TestDeviationSeverity(t *testing.T) {
	tests := []struct {
		days int
		want Severity
	}{
		{-5, SeverityOnTime},
		{0, SeverityOnTime},
		{1, SeverityMinor},
		{3, SeverityMinor},
		{4, SeverityModerate},
		{7, SeverityModerate},
		{8, SeveritySevere},
		{30, SeveritySevere},
	}
	for _, tt := range tests {
		if got := DeviationSeverity(tt.days); got != tt.want {
			t.Errorf("DeviationSeverity(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}
