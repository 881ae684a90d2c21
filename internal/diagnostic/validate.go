package diagnostic

import (
	"fmt"
	"math"
	"strings"
)

// WeightSumTolerance is the allowed deviation of a topic set's summed
// weights from 1.0.
const WeightSumTolerance = 0.01

// ValidateTopic checks a single topic's fields.
func ValidateTopic(t Topic) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("topic %q has an empty name", t.ID)
	}
	if t.Weight < 0 || t.Weight > 1 {
		return fmt.Errorf("topic %q weight %.3f out of range [0, 1]", t.Name, t.Weight)
	}
	return nil
}

// ValidateWeights checks that the weights of a topic set sum to 1.0
// within WeightSumTolerance. Empty sets are rejected.
func ValidateWeights(topics []Topic) error {
	if len(topics) == 0 {
		return fmt.Errorf("topic set is empty")
	}
	var sum float64
	for _, t := range topics {
		sum += t.Weight
	}
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return fmt.Errorf("topic weights sum to %.3f, expected 1.0 ±%.2f", sum, WeightSumTolerance)
	}
	return nil
}

// ValidateQuestion rejects malformed questions at the boundary. The
// backend occasionally omits options; such questions are dropped loudly
// rather than padded with fabricated placeholder answers.
func ValidateQuestion(q Question) error {
	if strings.TrimSpace(q.Stem) == "" {
		return fmt.Errorf("question %q has an empty stem", q.ID)
	}
	if len(q.Options) < 3 || len(q.Options) > 4 {
		return fmt.Errorf("question %q has %d options, want 3 or 4", q.ID, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("question %q option %d is empty", q.ID, i)
		}
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return fmt.Errorf("question %q answer index %d out of range for %d options",
			q.ID, q.AnswerIndex, len(q.Options))
	}
	return nil
}
