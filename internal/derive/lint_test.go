package derive

import (
	"testing"

	"specyfikacje/models"
)

func warningCodes(warnings []Warning) []string {
	codes := make([]string, 0, len(warnings))
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	return codes
}

func TestCheckComposition(t *testing.T) {
	t.Parallel()

	choc, milk := chocolateMass(), milkPowder()
	tests := []struct {
		name  string
		lines []models.CompositionLine
		want  []string
	}{
		{name: "empty", want: []string{WarningEmptyComposition}},
		{name: "balanced", lines: []models.CompositionLine{line(1, 60, choc), line(2, 40, milk)}, want: []string{}},
		{name: "within tolerance", lines: []models.CompositionLine{line(1, 60, choc), line(2, 39.95, milk)}, want: []string{}},
		{name: "short", lines: []models.CompositionLine{line(1, 60, choc), line(2, 30, milk)}, want: []string{WarningPercentTotal}},
		{name: "out of range", lines: []models.CompositionLine{line(1, 120, choc), line(2, -20, milk)}, want: []string{WarningPercentRange, WarningPercentRange}},
		{name: "unresolved material", lines: []models.CompositionLine{line(1, 100, nil)}, want: []string{WarningMissingRawMaterial}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := warningCodes(CheckComposition(tt.lines))
			if len(got) != len(tt.want) {
				t.Fatalf("warnings = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("warnings = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCompositionBalancedAndTotal(t *testing.T) {
	t.Parallel()

	lines := []models.CompositionLine{line(1, 70.5, nil), line(2, 29.5, nil)}
	if total := CompositionTotal(lines); total != 100 {
		t.Fatalf("total = %v, want 100", total)
	}
	if !CompositionBalanced(lines) {
		t.Fatal("expected composition to be balanced")
	}
	if CompositionBalanced(lines[:1]) {
		t.Fatal("expected partial composition to be unbalanced")
	}
}
