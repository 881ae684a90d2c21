package metrics

import (
	"testing"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

func score(v float64) *float64 { return &v }

func TestFilterActive(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{
		{ID: "a", Status: diagnostic.StatusActive},
		{ID: "b", Status: diagnostic.StatusPublished},
		{ID: "c", Status: diagnostic.StatusArchived},
		{ID: "d", Status: ""},
	}

	active := FilterActive(rows)
	if len(active) != 3 {
		t.Fatalf("expected 3 active rows, got %d", len(active))
	}
	for _, r := range active {
		if r.ID == "c" {
			t.Errorf("archived row %q survived the filter", r.ID)
		}
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name string
		rows []diagnostic.DiagnosticRow
		want int
	}{
		{
			name: "averages qualifying rows",
			rows: []diagnostic.DiagnosticRow{
				{Responses: 10, AvgScore: score(80)},
				{Responses: 5, AvgScore: score(60)},
			},
			want: 70,
		},
		{
			name: "skips rows without responses or score",
			rows: []diagnostic.DiagnosticRow{
				{Responses: 10, AvgScore: score(80)},
				{Responses: 0, AvgScore: nil},
				{Responses: 3, AvgScore: nil},
			},
			want: 80,
		},
		{
			name: "no qualifying rows yields zero",
			rows: []diagnostic.DiagnosticRow{
				{Responses: 0, AvgScore: nil},
			},
			want: 0,
		},
		{
			name: "empty input yields zero",
			rows: nil,
			want: 0,
		},
		{
			name: "rounds to nearest integer",
			rows: []diagnostic.DiagnosticRow{
				{Responses: 1, AvgScore: score(70)},
				{Responses: 1, AvgScore: score(71)},
			},
			want: 71, // 70.5 rounds up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Readiness(tt.rows); got != tt.want {
				t.Errorf("Readiness() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Archived rows must be excluded before the averaging step: an 80 active
// row with responses plus a 60 archived row yields 80.
func TestReadinessAfterStatusFilter(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{
		{Responses: 10, AvgScore: score(80), Status: diagnostic.StatusActive},
		{Responses: 0, AvgScore: nil, Status: diagnostic.StatusActive},
		{Responses: 5, AvgScore: score(60), Status: diagnostic.StatusArchived},
	}

	if got := Readiness(FilterActive(rows)); got != 80 {
		t.Errorf("Readiness(FilterActive(rows)) = %d, want 80", got)
	}
}

func TestTopWeakTopic(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{
		{WeakTopics: []string{"Fractions", "Decimals"}},
		{WeakTopics: []string{"Decimals"}},
		{WeakTopics: []string{"Decimals", "Ratios"}},
	}

	got, ok := TopWeakTopic(rows)
	if !ok || got != "Decimals" {
		t.Errorf("TopWeakTopic() = %q, %v; want %q, true", got, ok, "Decimals")
	}
}

func TestTopWeakTopicTieBreaksToFirstEncountered(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{
		{WeakTopics: []string{"A"}},
		{WeakTopics: []string{"B"}},
	}

	got, ok := TopWeakTopic(rows)
	if !ok || got != "A" {
		t.Errorf("TopWeakTopic() = %q, %v; want %q, true", got, ok, "A")
	}
}

func TestTopWeakTopicEmpty(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{{WeakTopics: nil}, {}}
	if got, ok := TopWeakTopic(rows); ok {
		t.Errorf("TopWeakTopic() = %q, true; want none", got)
	}
}

func TestStrongestTopicWeighting(t *testing.T) {
	// Row 1: A gets 3, B gets 2. Row 2: B gets 3. B wins 5 to 3.
	rows := []diagnostic.DiagnosticRow{
		{StrongTopics: []string{"A", "B"}},
		{StrongTopics: []string{"B"}},
	}

	got, ok := StrongestTopic(rows)
	if !ok || got != "B" {
		t.Errorf("StrongestTopic() = %q, %v; want %q, true", got, ok, "B")
	}
}

func TestStrongestTopicTieBreaksToFirstEncountered(t *testing.T) {
	// Row 1: A=3, B=2. Row 2: B=1 (third position contributes weight 1).
	// Both finish at 3; A was encountered first and wins.
	rows := []diagnostic.DiagnosticRow{
		{StrongTopics: []string{"A", "B"}},
		{StrongTopics: []string{"X", "Y", "B"}},
	}

	got, ok := StrongestTopic(rows)
	if !ok || got != "A" {
		t.Errorf("StrongestTopic() = %q, %v; want %q (first encountered)", got, ok, "A")
	}
}

func TestStrongestTopicLatePositionsWeighOne(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{
		{StrongTopics: []string{"A", "B", "C"}},
	}

	got, ok := StrongestTopic(rows)
	if !ok || got != "A" {
		t.Errorf("StrongestTopic() = %q, %v; want %q", got, ok, "A")
	}
}

func TestNeedsAttention(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{
		{CompletionPct: 69.9},
		{CompletionPct: 70},
		{CompletionPct: 100},
		{CompletionPct: 0},
	}

	if got := NeedsAttention(rows); got != 2 {
		t.Errorf("NeedsAttention() = %d, want 2", got)
	}
}

func TestCourses(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{
		{Course: "Chemistry"},
		{Course: "Algebra"},
		{Course: "Chemistry"},
		{Course: ""},
	}

	got := Courses(rows)
	if len(got) != 2 || got[0] != "Algebra" || got[1] != "Chemistry" {
		t.Errorf("Courses() = %v, want [Algebra Chemistry]", got)
	}
}

func TestComputeExcludesArchivedEverywhere(t *testing.T) {
	rows := []diagnostic.DiagnosticRow{
		{
			Status:        diagnostic.StatusActive,
			Responses:     10,
			AvgScore:      score(90),
			CompletionPct: 95,
			WeakTopics:    []string{"Limits"},
			StrongTopics:  []string{"Derivatives"},
		},
		{
			Status:        diagnostic.StatusArchived,
			Responses:     20,
			AvgScore:      score(10),
			CompletionPct: 5,
			WeakTopics:    []string{"Integrals", "Integrals"},
			StrongTopics:  []string{"Series"},
		},
	}

	k := Compute(rows)
	if k.Readiness != 90 {
		t.Errorf("Readiness = %d, want 90", k.Readiness)
	}
	if k.NeedsAttention != 0 {
		t.Errorf("NeedsAttention = %d, want 0", k.NeedsAttention)
	}
	if k.TopWeakTopic != "Limits" {
		t.Errorf("TopWeakTopic = %q, want Limits", k.TopWeakTopic)
	}
	if k.StrongestTopic != "Derivatives" {
		t.Errorf("StrongestTopic = %q, want Derivatives", k.StrongestTopic)
	}
	if k.ActiveCount != 1 {
		t.Errorf("ActiveCount = %d, want 1", k.ActiveCount)
	}
}
