package diagnostic

import "github.com/google/uuid"

// NewTopicID returns a collision-safe id for a manually added topic.
// Timestamp-based ids collide under rapid successive adds, so ids are
// random UUIDs.
func NewTopicID() string {
	return "topic-" + uuid.NewString()
}

// NewQuestionID returns a collision-safe id for a locally created question.
func NewQuestionID() string {
	return "q-" + uuid.NewString()
}
