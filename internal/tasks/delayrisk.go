package tasks

const (
	RiskHigh     = "High Delay Risk"
	RiskPossible = "Possibly Delayed"
	RiskOnTrack  = "On Track"
)

// ClassifyDelayRisk is a pure heuristic over (priority, status). A
// high-priority task that is not done is flagged first; anything still
// in progress is possibly delayed; everything else is on track.
func ClassifyDelayRisk(priority, status string) string {
	switch {
	case priority == PriorityHigh && status != StatusDone:
		return RiskHigh
	case status == StatusInProgress:
		return RiskPossible
	default:
		return RiskOnTrack
	}
}

// Predict builds the read-time delay view of a task.
func Predict(t Task) Prediction {
	return Prediction{
		Task:       t.Description,
		AssignedTo: t.AssigneeName,
		Priority:   t.Priority,
		Status:     t.Status,
		Prediction: ClassifyDelayRisk(t.Priority, t.Status),
	}
}
