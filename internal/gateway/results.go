package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

// defaultFormTitle fills in when the backend omits a title.
const defaultFormTitle = "Class Diagnostic"

// wireTopicStat tolerates both field spellings the backend has shipped
// for per-topic aggregates.
type wireTopicStat struct {
	TopicName      string   `json:"topic_name"`
	NumStudents    *int     `json:"num_students"`
	TotalResponses *int     `json:"total_responses"`
	CorrectPct     *float64 `json:"correct_pct"`
	CorrectPctLong *float64 `json:"correct_percentage"`
}

func (w wireTopicStat) toDomain() diagnostic.TopicStat {
	s := diagnostic.TopicStat{Topic: w.TopicName}
	switch {
	case w.NumStudents != nil:
		s.N = *w.NumStudents
	case w.TotalResponses != nil:
		s.N = *w.TotalResponses
	}
	switch {
	case w.CorrectPct != nil:
		s.CorrectPct = diagnostic.ClampPct(*w.CorrectPct)
	case w.CorrectPctLong != nil:
		s.CorrectPct = diagnostic.ClampPct(*w.CorrectPctLong)
	}
	return s
}

// FetchResults retrieves the per-topic aggregates for one published form.
// Missing fields in partial backend payloads default to zero values
// rather than failing the whole page.
func (c *Client) FetchResults(ctx context.Context, formID string) (diagnostic.ResultSet, error) {
	if formID == "" {
		return diagnostic.ResultSet{}, fmt.Errorf("form id is empty")
	}

	var resp struct {
		FormTitle      string          `json:"form_title"`
		TotalResponses int             `json:"total_responses"`
		Topics         []wireTopicStat `json:"topics"`
	}
	path := "/api/forms/" + url.PathEscape(formID) + "/stats"
	if err := c.doJSON(ctx, "GET", path, nil, nil, &resp); err != nil {
		return diagnostic.ResultSet{}, err
	}

	rs := diagnostic.ResultSet{
		FormTitle:      resp.FormTitle,
		TotalResponses: resp.TotalResponses,
		Topics:         make([]diagnostic.TopicStat, 0, len(resp.Topics)),
	}
	if rs.FormTitle == "" {
		rs.FormTitle = defaultFormTitle
	}
	if rs.TotalResponses < 0 {
		rs.TotalResponses = 0
	}
	for _, w := range resp.Topics {
		rs.Topics = append(rs.Topics, w.toDomain())
	}
	return rs, nil
}
