package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func explainPrompt(t TaskInfo) string {
	return fmt.Sprintf(`Explain this task in simple terms in 3-5 sentences:

Task: %s
Priority: %s
Status: %s
Subtasks: %s`, t.Description, t.Priority, t.Status, strings.Join(t.Subtasks, "; "))
}

func suggestTasksPrompt(projectDescription string) string {
	return fmt.Sprintf(`You are a project planning assistant that outputs JSON.
Suggest exactly 6 concrete tasks for the following project.

Project: %s

Reply with only valid JSON of the shape {"tasks": ["...", "..."]}.`, projectDescription)
}

func suggestSubtasksPrompt(t TaskInfo) string {
	return fmt.Sprintf(`You are a project planning assistant that outputs JSON.
Suggest exactly 5 short subtasks for the following task.

Task: %s
Priority: %s

Reply with only valid JSON of the shape {"subtasks": ["...", "..."]}.`, t.Description, t.Priority)
}

func chatPrompt(message string) string {
	return fmt.Sprintf(`You are a helpful assistant for a team member working
through assigned tasks. Answer briefly and practically.

Question: %s`, message)
}

// parseList extracts the string array under key from a JSON reply,
// tolerating markdown code fences around the payload. An unparseable or
// empty reply yields nil, which callers turn into the fallback.
func parseList(reply, key string) []string {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload map[string][]string
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil
	}

	items := make([]string, 0, len(payload[key]))
	for _, item := range payload[key] {
		if s := strings.TrimSpace(item); s != "" {
			items = append(items, s)
		}
	}

	return items
}

// --- deterministic fallbacks ---

func fallbackExplain(t TaskInfo) string {
	return fmt.Sprintf("The task '%s' should be completed based on its %s priority. Break it into subtasks and finish step-by-step.",
		t.Description, t.Priority)
}

func fallbackTaskPlan() []string {
	return []string{
		"Gather and document the project requirements",
		"Design the data model and overall architecture",
		"Set up the development environment and repository",
		"Implement the core features",
		"Write tests and fix the defects they uncover",
		"Prepare the deployment and release checklist",
	}
}

func fallbackSubtaskPlan() []string {
	return []string{
		"Clarify the acceptance criteria",
		"Break the work into small steps",
		"Implement the first step",
		"Review and test the result",
		"Update the task status",
	}
}

func fallbackChat() string {
	return "The assistant is currently unavailable. Check your task list and focus on the highest-priority items first."
}
