// Package session holds the working state of one diagnostic-creation
// flow: the topic set, the generated questions, and the publish record,
// together with the lifecycle guards that keep the wizard's steps in a
// legal order.
package session

import (
	"context"
	"sync"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

// Mirror persists publish info across restarts. The recovery store
// implements it; tests substitute an in-memory one.
type Mirror interface {
	SavePublishInfo(ctx context.Context, info diagnostic.PublishInfo) error
	LoadPublishInfo(ctx context.Context) (diagnostic.PublishInfo, bool)
	ClearPublishInfo(ctx context.Context) error
}

// Store is the single owner of all working-session entities. It is
// created once at the composition root and passed to every screen;
// there is no package-level instance.
//
// All state other than publish info is intentionally lost on exit:
// downstream steps redirect back to the start of the flow when their
// required upstream state is missing.
type Store struct {
	mu sync.Mutex

	title      string
	assessment string
	topics     []diagnostic.Topic
	questions  []diagnostic.Question
	publish    diagnostic.PublishInfo

	courseName          string
	onboardingCompleted bool

	// genEpoch fences question generation: a response is applied only
	// if no newer generation started after it was requested.
	genEpoch uint64

	// publishing guards against double-submission while a publish
	// request is in flight.
	publishing bool

	mirror Mirror
}

// NewStore creates an empty session store. mirror may be nil; mirror
// write failures are ignored, matching the best-effort durability of
// the publish record.
func NewStore(mirror Mirror) *Store {
	return &Store{mirror: mirror}
}

// Title returns the working diagnostic title.
func (s *Store) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetTitle stores the working diagnostic title.
func (s *Store) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// AssessmentType returns the chosen assessment type ("quiz" or "survey").
func (s *Store) AssessmentType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assessment
}

// SetAssessmentType stores the chosen assessment type.
func (s *Store) SetAssessmentType(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessment = kind
}

// Topics returns a copy of the working topic set.
func (s *Store) Topics() []diagnostic.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]diagnostic.Topic, len(s.topics))
	copy(out, s.topics)
	return out
}

// SetTopics replaces the working topic set.
func (s *Store) SetTopics(topics []diagnostic.Topic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append([]diagnostic.Topic(nil), topics...)
}

// AddTopic appends a topic. Callers are responsible for id uniqueness;
// diagnostic.NewTopicID gives collision-safe ids.
func (s *Store) AddTopic(t diagnostic.Topic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, t)
}

// RemoveTopic drops the topic with the given id. Unknown ids are a no-op.
func (s *Store) RemoveTopic(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.topics[:0]
	for _, t := range s.topics {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.topics = kept
}

// UpdateTopic applies update to the topic with the given id. Returns
// false when no such topic exists.
func (s *Store) UpdateTopic(id string, update func(*diagnostic.Topic)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.topics {
		if s.topics[i].ID == id {
			update(&s.topics[i])
			return true
		}
	}
	return false
}

// Questions returns a copy of the working question list.
func (s *Store) Questions() []diagnostic.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]diagnostic.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// SetQuestions replaces the working question list unconditionally.
// Generation responses should go through SetQuestionsAt instead.
func (s *Store) SetQuestions(questions []diagnostic.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append([]diagnostic.Question(nil), questions...)
}

// UpdateQuestion applies update to the question with the given id.
// Returns false when no such question exists.
func (s *Store) UpdateQuestion(id string, update func(*diagnostic.Question)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			update(&s.questions[i])
			return true
		}
	}
	return false
}

// RemoveQuestion drops the question with the given id.
func (s *Store) RemoveQuestion(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.questions[:0]
	for _, q := range s.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	s.questions = kept
}

// BeginGeneration starts a new generation attempt and returns its epoch.
// Any response carrying an older epoch arrives stale and is discarded.
func (s *Store) BeginGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genEpoch++
	return s.genEpoch
}

// SetQuestionsAt stores a generation response only when epoch is still
// current. Returns false when a newer generation superseded it.
func (s *Store) SetQuestionsAt(epoch uint64, questions []diagnostic.Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.genEpoch {
		return false
	}
	s.questions = append([]diagnostic.Question(nil), questions...)
	return true
}

// PublishInfo returns the current publish record.
func (s *Store) PublishInfo() diagnostic.PublishInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publish
}

// SetPublishInfo stores the publish record and mirrors it for recovery
// across restarts. Mirror failures are ignored.
func (s *Store) SetPublishInfo(ctx context.Context, info diagnostic.PublishInfo) {
	s.mu.Lock()
	s.publish = info
	mirror := s.mirror
	s.mu.Unlock()

	if mirror != nil {
		_ = mirror.SavePublishInfo(ctx, info)
	}
}

// ClearPublishInfo removes the publish record from memory and mirror.
func (s *Store) ClearPublishInfo(ctx context.Context) {
	s.mu.Lock()
	s.publish = diagnostic.PublishInfo{}
	mirror := s.mirror
	s.mu.Unlock()

	if mirror != nil {
		_ = mirror.ClearPublishInfo(ctx)
	}
}

// TryBeginPublish marks a publish request in flight. Returns false when
// one is already in flight; the caller must not submit again.
func (s *Store) TryBeginPublish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.publishing {
		return false
	}
	s.publishing = true
	return true
}

// EndPublish clears the in-flight publish marker.
func (s *Store) EndPublish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishing = false
}

// CourseName returns the teacher's course name, when known.
func (s *Store) CourseName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courseName
}

// SetCourseName stores the teacher's course name.
func (s *Store) SetCourseName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courseName = name
}

// OnboardingCompleted reports whether onboarding has been completed.
func (s *Store) OnboardingCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onboardingCompleted
}

// CompleteOnboarding sets the onboarding flag. This is pure state: the
// caller separately informs the backend.
func (s *Store) CompleteOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onboardingCompleted = true
}

// Reset clears all session state, including the mirrored publish record.
// Called on logout.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.title = ""
	s.assessment = ""
	s.topics = nil
	s.questions = nil
	s.publish = diagnostic.PublishInfo{}
	s.courseName = ""
	s.onboardingCompleted = false
	s.publishing = false
	mirror := s.mirror
	s.mu.Unlock()

	if mirror != nil {
		_ = mirror.ClearPublishInfo(ctx)
	}
}
