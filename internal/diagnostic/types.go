package diagnostic

// Topic is a weighted learning objective extracted from a syllabus or
// textbook, used to group generated questions.
type Topic struct {
	// ID uniquely identifies the topic within the working set.
	ID string

	// Name is the display label, e.g. "Stoichiometry".
	Name string

	// Weight is the topic's share of the assessment, in [0, 1].
	// Weights across a working set should sum to 1.0 (see ValidateWeights).
	Weight float64

	// Prereqs lists IDs of topics that should be understood first.
	// May be empty, never nil after normalization.
	Prereqs []string
}

// Difficulty is the backend's difficulty classification for a question.
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyMed  Difficulty = "med"
	DifficultyHard Difficulty = "hard"
)

// Bloom is the Bloom's-taxonomy level of a question.
type Bloom string

const (
	BloomRemember   Bloom = "remember"
	BloomUnderstand Bloom = "understand"
	BloomApply      Bloom = "apply"
	BloomAnalyze    Bloom = "analyze"
)

// Question is a generated multiple-choice question. Questions live only in
// the working session until published; edits before publish mutate them
// in place.
type Question struct {
	ID          string
	Topic       string
	Stem        string
	Options     []string // 3 or 4 options
	AnswerIndex int
	Rationale   string
	Difficulty  Difficulty
	Bloom       Bloom
}

// PublishInfo is the durable record of a successful publish. It is never
// mutated, only replaced wholesale.
type PublishInfo struct {
	FormURL  string `json:"formUrl"`
	FormSlug string `json:"formSlug"`
	FormID   string `json:"formId"`
}

// Complete reports whether the record carries a resolved slug.
func (p PublishInfo) Complete() bool {
	return p.FormSlug != ""
}

// Status is the server-side lifecycle state of a published diagnostic.
type Status string

const (
	StatusActive    Status = "active"
	StatusArchived  Status = "archived"
	StatusPublished Status = "published"
)

// DiagnosticRow is a server-aggregated summary of one published diagnostic.
// The client treats these rows as a cache: it may filter and optimistically
// delete locally, but never authoritatively mutates them.
type DiagnosticRow struct {
	ID             string
	Slug           string
	FormUUID       string
	Name           string
	Course         string
	CreatedAt      string
	Responses      int
	CompletionPct  float64  // clamped into [0, 100]
	WeakTopics     []string // at most 3
	StrongTopics   []string // at most 3
	Status         Status
	AvgScore       *float64 // nil when no submissions have been scored
	LastSubmission string
}

// TopicStat is a read-only per-topic aggregate for one diagnostic.
type TopicStat struct {
	Topic      string
	N          int
	CorrectPct float64
}

// ResultSet is the aggregated result payload for one published form.
type ResultSet struct {
	FormTitle      string
	TotalResponses int
	Topics         []TopicStat
}

// Student is one row of the teacher's student roster.
type Student struct {
	ID             string
	Name           string
	Email          string
	FormsCompleted int
	LastActivity   string
}

// FormInfo is the public description of a published form, shown to a
// student before they start a session.
type FormInfo struct {
	FormID         string
	Title          string
	TotalQuestions int
	Status         Status
}

// Submission is one student's completed answer sheet for a form session.
type Submission struct {
	SessionID string
	Answers   []Answer
}

// Answer is a single selected option for a question.
type Answer struct {
	QuestionID    string
	SelectedIndex int
}

// SubmissionResult is the backend's grading of a submission.
type SubmissionResult struct {
	SessionID      string
	ScorePct       float64
	CorrectAnswers int
	TotalQuestions int
	Message        string
}
