package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWeights(t *testing.T) {
	cases := []struct {
		name    string
		weights []float64
		wantErr bool
	}{
		{"exact sum", []float64{0.5, 0.3, 0.2}, false},
		{"within tolerance", []float64{0.5, 0.3, 0.195}, false},
		{"sum too low", []float64{0.4, 0.3}, true},
		{"sum too high", []float64{0.7, 0.7}, true},
		{"empty set", nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var topics []Topic
			for i, w := range tc.weights {
				topics = append(topics, Topic{ID: NewTopicID(), Name: "Topic " + string(rune('A'+i)), Weight: w})
			}
			err := ValidateWeights(topics)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTopic(t *testing.T) {
	require.NoError(t, ValidateTopic(Topic{ID: "t1", Name: "Kinematics", Weight: 0.4}))

	assert.Error(t, ValidateTopic(Topic{ID: "t2", Name: "   ", Weight: 0.4}), "blank name")
	assert.Error(t, ValidateTopic(Topic{ID: "t3", Name: "Kinematics", Weight: -0.1}), "negative weight")
	assert.Error(t, ValidateTopic(Topic{ID: "t4", Name: "Kinematics", Weight: 1.2}), "weight above 1")
}

func TestValidateQuestion(t *testing.T) {
	ok := Question{
		ID:          "q1",
		Stem:        "What is 2+2?",
		Options:     []string{"3", "4", "5"},
		AnswerIndex: 1,
	}
	require.NoError(t, ValidateQuestion(ok))

	blankStem := ok
	blankStem.Stem = "  "
	assert.Error(t, ValidateQuestion(blankStem))

	twoOptions := ok
	twoOptions.Options = []string{"3", "4"}
	assert.Error(t, ValidateQuestion(twoOptions))

	fiveOptions := ok
	fiveOptions.Options = []string{"1", "2", "3", "4", "5"}
	assert.Error(t, ValidateQuestion(fiveOptions))

	blankOption := ok
	blankOption.Options = []string{"3", " ", "5"}
	assert.Error(t, ValidateQuestion(blankOption))

	answerOut := ok
	answerOut.AnswerIndex = 3
	assert.Error(t, ValidateQuestion(answerOut))
}
