package preview

import (
	"errors"
	"testing"

	"github.com/reteach/reteach-cli/internal/config"
	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/router"
	"github.com/reteach/reteach-cli/internal/session"
)

func newTestPreview(questions ...diagnostic.Question) (*PreviewScreen, *session.Store) {
	store := session.NewStore(nil)
	store.SetTopics([]diagnostic.Topic{{ID: "t1", Name: "Fractions", Weight: 1}})
	store.SetQuestions(questions)
	return New(gateway.New(config.DefaultConfig()), store), store
}

func sampleQuestion() diagnostic.Question {
	return diagnostic.Question{ID: "q-1", Topic: "Fractions", Stem: "What is 1/2 + 1/4?",
		Options: []string{"3/4", "2/6", "1/8"}, AnswerIndex: 0}
}

func TestPublishSuccessReplacesWithConfirmation(t *testing.T) {
	p, store := newTestPreview(sampleQuestion())
	if !store.TryBeginPublish() {
		t.Fatal("publish guard already held")
	}
	p.publishing = true

	info := diagnostic.PublishInfo{FormURL: "http://localhost:8000/form/frac-1", FormSlug: "frac-1", FormID: "frac-1"}
	_, cmd := p.Update(publishedMsg{Info: info})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("publish confirmation should replace the preview screen")
	}
	if got := store.PublishInfo(); got.FormSlug != "frac-1" {
		t.Errorf("publish info slug = %q, want frac-1", got.FormSlug)
	}
}

func TestPublishErrorStaysAndReleasesGuard(t *testing.T) {
	p, store := newTestPreview(sampleQuestion())
	if !store.TryBeginPublish() {
		t.Fatal("publish guard already held")
	}
	p.publishing = true

	_, cmd := p.Update(publishedMsg{Err: errors.New("backend unavailable")})
	if cmd != nil {
		t.Error("failed publish triggered navigation")
	}
	if p.errMsg == "" {
		t.Error("expected an error message")
	}
	if !store.TryBeginPublish() {
		t.Error("publish guard not released after failure")
	}
}
