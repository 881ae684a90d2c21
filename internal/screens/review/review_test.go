package review

import (
	"errors"
	"testing"

	"github.com/reteach/reteach-cli/internal/config"
	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/session"
)

func newTestReview(topics ...diagnostic.Topic) (*ReviewScreen, *session.Store) {
	store := session.NewStore(nil)
	store.SetTopics(topics)
	return New(gateway.New(config.DefaultConfig()), store), store
}

func sampleQuestions() []diagnostic.Question {
	return []diagnostic.Question{
		{ID: "q-1", Topic: "Fractions", Stem: "What is 1/2 + 1/4?",
			Options: []string{"3/4", "2/6", "1/8"}, AnswerIndex: 0},
	}
}

func TestGenerateRequiresTopics(t *testing.T) {
	r, _ := newTestReview()

	_, cmd := r.generate()
	if cmd != nil {
		t.Error("generation started with no topics")
	}
	if r.errMsg == "" {
		t.Error("expected an error message")
	}
}

func TestGeneratedQuestionsStoredAndAdvance(t *testing.T) {
	r, store := newTestReview(diagnostic.Topic{ID: "t1", Name: "Fractions"})
	epoch := store.BeginGeneration()
	r.generating = true

	_, cmd := r.Update(questionsGeneratedMsg{Epoch: epoch, Questions: sampleQuestions()})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if got := store.Questions(); len(got) != 1 {
		t.Fatalf("stored questions = %d, want 1", len(got))
	}
	if r.generating {
		t.Error("still marked generating")
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	r, store := newTestReview(diagnostic.Topic{ID: "t1", Name: "Fractions"})
	stale := store.BeginGeneration()
	store.BeginGeneration() // newer attempt supersedes

	_, cmd := r.Update(questionsGeneratedMsg{Epoch: stale, Questions: sampleQuestions()})
	if cmd != nil {
		t.Error("stale response triggered navigation")
	}
	if got := store.Questions(); len(got) != 0 {
		t.Errorf("stale questions stored: %d", len(got))
	}
}

func TestGenerationErrorShown(t *testing.T) {
	r, store := newTestReview(diagnostic.Topic{ID: "t1", Name: "Fractions"})
	epoch := store.BeginGeneration()

	_, cmd := r.Update(questionsGeneratedMsg{Epoch: epoch, Err: errors.New("model unavailable")})
	if cmd != nil {
		t.Error("error response triggered navigation")
	}
	if r.errMsg == "" {
		t.Error("expected an error message")
	}
}
