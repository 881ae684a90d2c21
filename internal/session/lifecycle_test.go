package session

import (
	"context"
	"net/url"
	"testing"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

func TestStageDerivation(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	if got := s.Stage(); got != StageEmpty {
		t.Fatalf("fresh store stage = %v, want empty", got)
	}

	s.SetTopics(topicSet("a"))
	if got := s.Stage(); got != StageTopicsReady {
		t.Fatalf("stage = %v, want topics-ready", got)
	}

	s.SetQuestions([]diagnostic.Question{{ID: "q1"}})
	if got := s.Stage(); got != StageQuestionsReady {
		t.Fatalf("stage = %v, want questions-ready", got)
	}

	s.SetPublishInfo(ctx, diagnostic.PublishInfo{FormSlug: "abc"})
	if got := s.Stage(); got != StagePublished {
		t.Fatalf("stage = %v, want published", got)
	}
}

func TestGuardRedirectsOnMissingUpstreamState(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(*Store)
		step         Step
		wantOK       bool
		wantRedirect Step
	}{
		{
			name:         "review with no topics redirects to create",
			setup:        func(s *Store) {},
			step:         StepReview,
			wantOK:       false,
			wantRedirect: StepCreate,
		},
		{
			name:         "review with topics is allowed",
			setup:        func(s *Store) { s.SetTopics(topicSet("a")) },
			step:         StepReview,
			wantOK:       true,
			wantRedirect: StepReview,
		},
		{
			name:         "preview with no questions redirects to create",
			setup:        func(s *Store) { s.SetTopics(topicSet("a")) },
			step:         StepPreview,
			wantOK:       false,
			wantRedirect: StepCreate,
		},
		{
			name: "preview with questions is allowed",
			setup: func(s *Store) {
				s.SetQuestions([]diagnostic.Question{{ID: "q1"}})
			},
			step:         StepPreview,
			wantOK:       true,
			wantRedirect: StepPreview,
		},
		{
			name:         "publish with no slug redirects to preview",
			setup:        func(s *Store) {},
			step:         StepPublish,
			wantOK:       false,
			wantRedirect: StepPreview,
		},
		{
			name: "publish with slug is allowed",
			setup: func(s *Store) {
				s.SetPublishInfo(context.Background(), diagnostic.PublishInfo{FormSlug: "abc"})
			},
			step:         StepPublish,
			wantOK:       true,
			wantRedirect: StepPublish,
		},
		{
			name:         "create is always allowed",
			setup:        func(s *Store) {},
			step:         StepCreate,
			wantOK:       true,
			wantRedirect: StepCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil)
			tt.setup(s)
			ok, redirect := s.Guard(tt.step)
			if ok != tt.wantOK || redirect != tt.wantRedirect {
				t.Errorf("Guard(%v) = %v, %v; want %v, %v",
					tt.step, ok, redirect, tt.wantOK, tt.wantRedirect)
			}
		})
	}
}

func TestResolvePublishInfoFromStore(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()
	s.SetPublishInfo(ctx, diagnostic.PublishInfo{FormSlug: "abc123"})

	info, ok := ResolvePublishInfo(ctx, s, url.Values{}, "http://localhost:8000")
	if !ok {
		t.Fatal("expected recovery from store")
	}
	if info.FormURL != "http://localhost:8000/form/abc123" {
		t.Errorf("derived url = %q", info.FormURL)
	}
}

func TestResolvePublishInfoFromQuery(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	query := url.Values{"slug": {"abc123"}}
	info, ok := ResolvePublishInfo(ctx, s, query, "http://localhost:8000")
	if !ok {
		t.Fatal("expected recovery from query")
	}
	if info.FormURL != "http://localhost:8000/form/abc123" {
		t.Errorf("formUrl = %q, want derived from origin", info.FormURL)
	}
	if info.FormID != "abc123" {
		t.Errorf("formId = %q, want slug fallback", info.FormID)
	}
	if got := s.PublishInfo(); got != info {
		t.Errorf("recovered record was not written back to the store: %+v", got)
	}
}

func TestResolvePublishInfoQueryKeepsExplicitFields(t *testing.T) {
	s := NewStore(nil)
	query := url.Values{
		"slug":    {"abc123"},
		"formUrl": {"https://app.example.com/form/abc123"},
		"formId":  {"f-9"},
	}

	info, ok := ResolvePublishInfo(context.Background(), s, query, "http://localhost:8000")
	if !ok {
		t.Fatal("expected recovery from query")
	}
	if info.FormURL != "https://app.example.com/form/abc123" || info.FormID != "f-9" {
		t.Errorf("explicit query fields were overridden: %+v", info)
	}
}

func TestResolvePublishInfoFromMirror(t *testing.T) {
	mirror := &memMirror{}
	ctx := context.Background()
	_ = mirror.SavePublishInfo(ctx, diagnostic.PublishInfo{FormSlug: "abc123", FormID: "f-1"})

	s := NewStore(mirror)
	info, ok := ResolvePublishInfo(ctx, s, url.Values{}, "http://localhost:8000")
	if !ok {
		t.Fatal("expected recovery from mirror")
	}
	if info.FormSlug != "abc123" || info.FormID != "f-1" {
		t.Errorf("recovered %+v", info)
	}
	if info.FormURL != "http://localhost:8000/form/abc123" {
		t.Errorf("derived url = %q", info.FormURL)
	}
}

func TestResolvePublishInfoTierOrder(t *testing.T) {
	// Store beats query beats mirror.
	mirror := &memMirror{}
	ctx := context.Background()
	_ = mirror.SavePublishInfo(ctx, diagnostic.PublishInfo{FormSlug: "from-mirror"})

	s := NewStore(mirror)
	s.SetPublishInfo(ctx, diagnostic.PublishInfo{FormSlug: "from-store", FormURL: "u"})

	query := url.Values{"slug": {"from-query"}}
	info, ok := ResolvePublishInfo(ctx, s, query, "http://localhost:8000")
	if !ok || info.FormSlug != "from-store" {
		t.Errorf("resolved %+v, want the store's record", info)
	}
}

func TestResolvePublishInfoExhausted(t *testing.T) {
	s := NewStore(&memMirror{})

	if _, ok := ResolvePublishInfo(context.Background(), s, url.Values{}, "http://localhost:8000"); ok {
		t.Error("expected recovery to fail with no store, query, or mirror record")
	}
}
