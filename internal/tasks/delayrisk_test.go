package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDelayRisk(t *testing.T) {
	var tests = []struct {
		name     string
		priority string
		status   string
		expected string
	}{
		{"high priority todo", PriorityHigh, StatusTodo, RiskHigh},
		{"high priority in progress", PriorityHigh, StatusInProgress, RiskHigh},
		{"high priority done", PriorityHigh, StatusDone, RiskOnTrack},
		{"medium in progress", PriorityMedium, StatusInProgress, RiskPossible},
		{"low in progress", PriorityLow, StatusInProgress, RiskPossible},
		{"medium todo", PriorityMedium, StatusTodo, RiskOnTrack},
		{"low done", PriorityLow, StatusDone, RiskOnTrack},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ClassifyDelayRisk(test.priority, test.status))
		})
	}
}

func TestPredict(t *testing.T) {
	task := Task{
		Description:  "Ship the release",
		AssigneeName: "Dana",
		Priority:     PriorityHigh,
		Status:       StatusInProgress,
	}

	p := Predict(task)

	assert.Equal(t, "Ship the release", p.Task)
	assert.Equal(t, "Dana", p.AssignedTo)
	assert.Equal(t, RiskHigh, p.Prediction)
}
