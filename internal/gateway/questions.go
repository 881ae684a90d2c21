package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

// QuestionsPerTopic is the fixed number of questions requested per topic.
// The count argument to GenerateQuestions is accepted for call-site
// compatibility but the request always asks for len(topics)*QuestionsPerTopic
// questions; callers passing other counts have never received them.
// TODO: confirm with product whether callers should control the count,
// then either honor it or drop the parameter.
const QuestionsPerTopic = 3

// AssessmentType selects the generation endpoint.
type AssessmentType string

const (
	AssessmentQuiz   AssessmentType = "quiz"
	AssessmentSurvey AssessmentType = "survey"
)

// wireQuestion is the backend's question representation.
type wireQuestion struct {
	ID          string   `json:"id"`
	Topic       string   `json:"topic"`
	Stem        string   `json:"stem"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Rationale   string   `json:"rationale"`
	Difficulty  string   `json:"difficulty"`
	Bloom       string   `json:"bloom"`
}

func (w wireQuestion) toDomain() diagnostic.Question {
	q := diagnostic.Question{
		ID:          w.ID,
		Topic:       w.Topic,
		Stem:        w.Stem,
		Options:     w.Options,
		AnswerIndex: w.AnswerIndex,
		Rationale:   w.Rationale,
		Difficulty:  diagnostic.Difficulty(w.Difficulty),
		Bloom:       diagnostic.Bloom(w.Bloom),
	}
	if q.ID == "" {
		q.ID = diagnostic.NewQuestionID()
	}
	if q.Difficulty == "" {
		q.Difficulty = diagnostic.DifficultyEasy
	}
	if q.Bloom == "" {
		q.Bloom = diagnostic.BloomRemember
	}
	return q
}

// GenerateQuestions asks the backend to generate multiple-choice questions
// for the given topics. Questions with missing or short option lists are
// rejected rather than padded with placeholder answers.
func (c *Client) GenerateQuestions(ctx context.Context, topics []diagnostic.Topic, count int, assessment AssessmentType, textbookID string) ([]diagnostic.Question, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("no topics to generate questions for")
	}

	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, t.Name)
	}

	// count is ignored; see QuestionsPerTopic.
	totalCount := len(topics) * QuestionsPerTopic

	req := map[string]any{
		"topics":          names,
		"count_per_topic": QuestionsPerTopic,
		"difficulty":      "medium",
		"total_count":     totalCount,
	}
	if textbookID != "" {
		req["textbook_id"] = textbookID
		req["use_textbook"] = true
	}

	path := "/api/questions/generate"
	if assessment == AssessmentSurvey {
		path = "/api/survey/generate"
	}

	raw, err := c.doJSONRaw(ctx, "POST", path, req)
	if err != nil {
		return nil, err
	}
	if err := validatePayload("generate questions", "generate-questions", generateQuestionsSchema, raw); err != nil {
		return nil, err
	}

	var resp struct {
		Questions []wireQuestion `json:"questions"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode generate questions response: %w", err)
	}

	questions := make([]diagnostic.Question, 0, len(resp.Questions))
	for _, w := range resp.Questions {
		q := w.toDomain()
		if err := diagnostic.ValidateQuestion(q); err != nil {
			return nil, &ErrInvalidPayload{Operation: "generate questions", Content: raw, Err: err}
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("backend returned no questions")
	}
	return questions, nil
}
