package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

// CreateForm publishes a titled question set as a shareable student form.
// The public form URL is derived client-side from the returned slug.
func (c *Client) CreateForm(ctx context.Context, title string, questions []diagnostic.Question) (diagnostic.PublishInfo, error) {
	if strings.TrimSpace(title) == "" {
		return diagnostic.PublishInfo{}, fmt.Errorf("form title is empty")
	}
	if len(questions) == 0 {
		return diagnostic.PublishInfo{}, fmt.Errorf("no questions to publish")
	}

	wired := make([]wireQuestion, 0, len(questions))
	for _, q := range questions {
		wired = append(wired, wireQuestion{
			ID:          q.ID,
			Topic:       q.Topic,
			Stem:        q.Stem,
			Options:     q.Options,
			AnswerIndex: q.AnswerIndex,
			Rationale:   q.Rationale,
			Difficulty:  string(q.Difficulty),
			Bloom:       string(q.Bloom),
		})
	}

	req := map[string]any{
		"title":     title,
		"questions": wired,
	}
	if c.teacherEmail != "" {
		req["teacher_email"] = c.teacherEmail
	}
	if c.teacherName != "" {
		req["teacher_name"] = c.teacherName
	}

	var resp struct {
		FormID string `json:"form_id"`
		Slug   string `json:"slug"`
	}
	if err := c.doJSON(ctx, "POST", "/api/forms/publish", nil, req, &resp); err != nil {
		return diagnostic.PublishInfo{}, err
	}
	if resp.Slug == "" {
		return diagnostic.PublishInfo{}, fmt.Errorf("publish response missing slug")
	}

	return diagnostic.PublishInfo{
		FormURL:  c.FormURL(resp.Slug),
		FormSlug: resp.Slug,
		FormID:   resp.FormID,
	}, nil
}

// wireRow is one diagnostic summary in the overview listing.
type wireRow struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	FormUUID       string   `json:"form_uuid"`
	Name           string   `json:"name"`
	Course         string   `json:"course"`
	CreatedAt      string   `json:"created_at"`
	Responses      int      `json:"responses"`
	CompletionPct  float64  `json:"completion_pct"`
	WeakTopics     []string `json:"weak_topics"`
	StrongTopics   []string `json:"strong_topics"`
	Status         string   `json:"status"`
	AvgScore       *float64 `json:"avg_score"`
	LastSubmission string   `json:"last_submission"`
}

// FetchDiagnosticsOverview lists the teacher's published diagnostics.
// Rows are normalized on the way in: completion clamped to [0,100],
// topic lists truncated to 3, and "published" folded into "active".
func (c *Client) FetchDiagnosticsOverview(ctx context.Context) ([]diagnostic.DiagnosticRow, error) {
	query := url.Values{}
	if c.teacherEmail != "" {
		query.Set("teacher_email", c.teacherEmail)
	}

	var resp []wireRow
	if err := c.doJSON(ctx, "GET", "/api/forms", query, nil, &resp); err != nil {
		return nil, err
	}

	rows := make([]diagnostic.DiagnosticRow, 0, len(resp))
	for _, w := range resp {
		rows = append(rows, diagnostic.NormalizeRow(diagnostic.DiagnosticRow{
			ID:             w.ID,
			Slug:           w.Slug,
			FormUUID:       w.FormUUID,
			Name:           w.Name,
			Course:         w.Course,
			CreatedAt:      w.CreatedAt,
			Responses:      w.Responses,
			CompletionPct:  w.CompletionPct,
			WeakTopics:     w.WeakTopics,
			StrongTopics:   w.StrongTopics,
			Status:         diagnostic.Status(w.Status),
			AvgScore:       w.AvgScore,
			LastSubmission: w.LastSubmission,
		}))
	}
	return rows, nil
}

// DeleteForm removes a published form. The caller owns removing the row
// from any locally cached list; no refetch happens here.
func (c *Client) DeleteForm(ctx context.Context, slug string) error {
	if slug == "" {
		return fmt.Errorf("form slug is empty")
	}
	query := url.Values{}
	if c.teacherEmail != "" {
		query.Set("teacher_email", c.teacherEmail)
	}
	return c.doJSON(ctx, "DELETE", "/api/forms/"+url.PathEscape(slug), query, nil, nil)
}

// FormInfo fetches the public description of a published form.
func (c *Client) FormInfo(ctx context.Context, slug string) (diagnostic.FormInfo, error) {
	var resp struct {
		FormID         string `json:"form_id"`
		Title          string `json:"title"`
		TotalQuestions int    `json:"total_questions"`
		Status         string `json:"status"`
	}
	if err := c.doJSON(ctx, "GET", "/api/forms/"+url.PathEscape(slug), nil, nil, &resp); err != nil {
		return diagnostic.FormInfo{}, err
	}
	return diagnostic.FormInfo{
		FormID:         resp.FormID,
		Title:          resp.Title,
		TotalQuestions: resp.TotalQuestions,
		Status:         diagnostic.NormalizeStatus(diagnostic.Status(resp.Status)),
	}, nil
}

// StartFormSession opens a student session on a form, returning the
// session id the submission must carry.
func (c *Client) StartFormSession(ctx context.Context, slug, studentName, studentEmail string) (string, error) {
	if strings.TrimSpace(studentName) == "" || strings.TrimSpace(studentEmail) == "" {
		return "", fmt.Errorf("student name and email are required")
	}
	req := map[string]string{
		"name":  studentName,
		"email": studentEmail,
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := c.doJSON(ctx, "POST", "/api/forms/"+url.PathEscape(slug)+"/start", nil, req, &resp); err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("start session response missing session id")
	}
	return resp.SessionID, nil
}

// FormQuestions fetches the ordered question list for an open session.
func (c *Client) FormQuestions(ctx context.Context, slug string) ([]diagnostic.Question, error) {
	var resp struct {
		Questions []wireQuestion `json:"questions"`
	}
	if err := c.doJSON(ctx, "GET", "/api/forms/"+url.PathEscape(slug)+"/questions", nil, nil, &resp); err != nil {
		return nil, err
	}
	questions := make([]diagnostic.Question, 0, len(resp.Questions))
	for _, w := range resp.Questions {
		questions = append(questions, w.toDomain())
	}
	return questions, nil
}

// SubmitForm submits a completed answer sheet and returns the grading.
func (c *Client) SubmitForm(ctx context.Context, slug string, sub diagnostic.Submission) (diagnostic.SubmissionResult, error) {
	answers := make([]map[string]any, 0, len(sub.Answers))
	for _, a := range sub.Answers {
		answers = append(answers, map[string]any{
			"question_id":           a.QuestionID,
			"selected_option_index": a.SelectedIndex,
		})
	}
	req := map[string]any{
		"session_id": sub.SessionID,
		"answers":    answers,
	}

	var resp struct {
		SessionID      string  `json:"session_id"`
		ScorePct       float64 `json:"score_percentage"`
		CorrectAnswers int     `json:"correct_answers"`
		TotalQuestions int     `json:"total_questions"`
		Message        string  `json:"message"`
	}
	if err := c.doJSON(ctx, "POST", "/api/forms/"+url.PathEscape(slug)+"/submit", nil, req, &resp); err != nil {
		return diagnostic.SubmissionResult{}, err
	}
	return diagnostic.SubmissionResult{
		SessionID:      resp.SessionID,
		ScorePct:       resp.ScorePct,
		CorrectAnswers: resp.CorrectAnswers,
		TotalQuestions: resp.TotalQuestions,
		Message:        resp.Message,
	}, nil
}
