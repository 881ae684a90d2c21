package diagnostic

// MaxListedTopics caps the weak/strong topic lists on a dashboard row.
const MaxListedTopics = 3

// NormalizeStatus folds the backend's "published" state into "active".
// Every place that filters diagnostics by status must go through this,
// not just the overview fetch, so list and KPI logic agree.
func NormalizeStatus(s Status) Status {
	if s == StatusPublished {
		return StatusActive
	}
	if s == "" {
		return StatusActive
	}
	return s
}

// ClampPct clamps a percentage into [0, 100].
func ClampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// TruncateTopics returns at most MaxListedTopics entries, preserving order.
// A nil slice becomes an empty one.
func TruncateTopics(topics []string) []string {
	if len(topics) > MaxListedTopics {
		topics = topics[:MaxListedTopics]
	}
	if topics == nil {
		return []string{}
	}
	return topics
}

// NormalizeRow applies all row-level normalizations in one place:
// status folding, completion clamping, and topic-list truncation.
func NormalizeRow(r DiagnosticRow) DiagnosticRow {
	r.Status = NormalizeStatus(r.Status)
	r.CompletionPct = ClampPct(r.CompletionPct)
	r.WeakTopics = TruncateTopics(r.WeakTopics)
	r.StrongTopics = TruncateTopics(r.StrongTopics)
	return r
}
