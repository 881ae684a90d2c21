// Package metrics computes dashboard KPIs from diagnostic rows.
// Every function here is pure: no network, no mutation of its inputs.
package metrics

import (
	"math"
	"sort"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

// NeedsAttentionThreshold is the completion percentage below which a
// diagnostic is flagged for attention.
const NeedsAttentionThreshold = 70.0

// FilterActive returns the rows that count toward KPIs. Archived rows are
// excluded from every KPI computation, not just the table. Status is
// normalized here so "published" rows are never dropped by accident.
func FilterActive(rows []diagnostic.DiagnosticRow) []diagnostic.DiagnosticRow {
	out := make([]diagnostic.DiagnosticRow, 0, len(rows))
	for _, r := range rows {
		if diagnostic.NormalizeStatus(r.Status) == diagnostic.StatusActive {
			out = append(out, r)
		}
	}
	return out
}

// FilterCourse returns the rows belonging to the given course.
func FilterCourse(rows []diagnostic.DiagnosticRow, course string) []diagnostic.DiagnosticRow {
	out := make([]diagnostic.DiagnosticRow, 0, len(rows))
	for _, r := range rows {
		if r.Course == course {
			out = append(out, r)
		}
	}
	return out
}

// Courses returns the distinct course names across rows, sorted.
func Courses(rows []diagnostic.DiagnosticRow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if r.Course != "" && !seen[r.Course] {
			seen[r.Course] = true
			out = append(out, r.Course)
		}
	}
	sort.Strings(out)
	return out
}

// Readiness is the average score across rows that have at least one
// response and a defined average score, rounded to the nearest integer.
// Returns 0 when no row qualifies.
func Readiness(rows []diagnostic.DiagnosticRow) int {
	var sum float64
	var n int
	for _, r := range rows {
		if r.Responses > 0 && r.AvgScore != nil {
			sum += *r.AvgScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

// TopWeakTopic is the most frequent topic across all rows' weak-topic
// lists. Ties break to the topic encountered first. Returns ("", false)
// when no weak topics exist anywhere.
func TopWeakTopic(rows []diagnostic.DiagnosticRow) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		for _, topic := range r.WeakTopics {
			if _, seen := counts[topic]; !seen {
				order = append(order, topic)
			}
			counts[topic]++
		}
	}
	if len(order) == 0 {
		return "", false
	}

	best := order[0]
	for _, topic := range order[1:] {
		if counts[topic] > counts[best] {
			best = topic
		}
	}
	return best, true
}

// StrongestTopic scores each topic by its position in every row's
// strong-topic list: first-listed contributes 3, second 2, and any later
// position 1. The topic with the highest total wins; ties break to the
// topic encountered first. Returns ("", false) when no strong topics
// exist anywhere.
func StrongestTopic(rows []diagnostic.DiagnosticRow) (string, bool) {
	scores := make(map[string]int)
	var order []string
	for _, r := range rows {
		for pos, topic := range r.StrongTopics {
			weight := 3 - pos
			if weight < 1 {
				weight = 1
			}
			if _, seen := scores[topic]; !seen {
				order = append(order, topic)
			}
			scores[topic] += weight
		}
	}
	if len(order) == 0 {
		return "", false
	}

	best := order[0]
	for _, topic := range order[1:] {
		if scores[topic] > scores[best] {
			best = topic
		}
	}
	return best, true
}

// NeedsAttention counts rows whose completion is below the attention
// threshold.
func NeedsAttention(rows []diagnostic.DiagnosticRow) int {
	n := 0
	for _, r := range rows {
		if r.CompletionPct < NeedsAttentionThreshold {
			n++
		}
	}
	return n
}

// KPIs bundles the derived dashboard metrics for one set of rows.
type KPIs struct {
	Readiness      int
	TopWeakTopic   string
	HasWeakTopic   bool
	StrongestTopic string
	HasStrongTopic bool
	NeedsAttention int
	ActiveCount    int
}

// Compute filters to active rows and derives all KPIs from them.
func Compute(rows []diagnostic.DiagnosticRow) KPIs {
	active := FilterActive(rows)
	k := KPIs{
		Readiness:      Readiness(active),
		NeedsAttention: NeedsAttention(active),
		ActiveCount:    len(active),
	}
	k.TopWeakTopic, k.HasWeakTopic = TopWeakTopic(active)
	k.StrongestTopic, k.HasStrongTopic = StrongestTopic(active)
	return k
}
