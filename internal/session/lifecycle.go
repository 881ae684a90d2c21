package session

// Stage is the lifecycle state of the creation flow. It is derived from
// the store's contents rather than stored, so it can never drift from
// the state that actually gates each step.
type Stage int

const (
	StageEmpty Stage = iota
	StageTopicsReady
	StageQuestionsReady
	StagePublished
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageTopicsReady:
		return "topics-ready"
	case StageQuestionsReady:
		return "questions-ready"
	case StagePublished:
		return "published"
	}
	return "unknown"
}

// Stage derives the current lifecycle stage.
func (s *Store) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.publish.Complete():
		return StagePublished
	case len(s.questions) > 0:
		return StageQuestionsReady
	case len(s.topics) > 0:
		return StageTopicsReady
	default:
		return StageEmpty
	}
}

// Step identifies one screen of the creation flow.
type Step int

const (
	StepCreate Step = iota
	StepReview
	StepPreview
	StepPublish
)

func (s Step) String() string {
	switch s {
	case StepCreate:
		return "create"
	case StepReview:
		return "review"
	case StepPreview:
		return "preview"
	case StepPublish:
		return "publish"
	}
	return "unknown"
}

// Guard checks whether the session is allowed to enter a step. When the
// required upstream state is missing it returns false and the step to
// redirect to, so a step can never render on broken state.
//
// The publish step's guard is stricter than "slug in memory": callers
// run the full recovery protocol (ResolvePublishInfo) first, then guard.
func (s *Store) Guard(step Step) (ok bool, redirect Step) {
	switch step {
	case StepCreate:
		return true, StepCreate
	case StepReview:
		if len(s.Topics()) == 0 {
			return false, StepCreate
		}
		return true, StepReview
	case StepPreview:
		if len(s.Questions()) == 0 {
			return false, StepCreate
		}
		return true, StepPreview
	case StepPublish:
		if !s.PublishInfo().Complete() {
			return false, StepPreview
		}
		return true, StepPublish
	}
	return false, StepCreate
}
