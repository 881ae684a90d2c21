package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

// wireTopic is the backend's topic representation.
type wireTopic struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Weight  float64  `json:"weight"`
	Prereqs []string `json:"prereqs"`
}

func (w wireTopic) toDomain() diagnostic.Topic {
	t := diagnostic.Topic{
		ID:      w.ID,
		Name:    w.Name,
		Weight:  w.Weight,
		Prereqs: w.Prereqs,
	}
	if t.ID == "" {
		t.ID = diagnostic.NewTopicID()
	}
	if t.Prereqs == nil {
		t.Prereqs = []string{}
	}
	return t
}

// ParseTopics extracts weighted topics from raw syllabus text.
// Empty input is rejected here before any network traffic.
func (c *Client) ParseTopics(ctx context.Context, syllabusText, courseLevel string) ([]diagnostic.Topic, error) {
	if strings.TrimSpace(syllabusText) == "" {
		return nil, fmt.Errorf("syllabus text is empty")
	}

	req := map[string]any{
		"syllabus_text": syllabusText,
		"course_level":  courseLevel,
	}

	raw, err := c.doJSONRaw(ctx, "POST", "/api/topics/parse", req)
	if err != nil {
		return nil, err
	}
	if err := validatePayload("parse topics", "parse-topics", parseTopicsSchema, raw); err != nil {
		return nil, err
	}

	var resp struct {
		Topics []wireTopic `json:"topics"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode parse topics response: %w", err)
	}

	topics := make([]diagnostic.Topic, 0, len(resp.Topics))
	for _, w := range resp.Topics {
		t := w.toDomain()
		if err := diagnostic.ValidateTopic(t); err != nil {
			return nil, &ErrInvalidPayload{Operation: "parse topics", Content: raw, Err: err}
		}
		topics = append(topics, t)
	}
	return topics, nil
}
