package tasks

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"intertask/internal/ai"
	"intertask/internal/authmw"
	"intertask/internal/logging"
)

func taskInfo(t Task) ai.TaskInfo {
	return ai.TaskInfo{
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		Subtasks:    t.SubTasks,
	}
}

// handleExplain answers with the cached explanation when one exists,
// otherwise asks the completion service. Only live service replies are
// cached; a fallback sentence stays uncached so a later call can retry.
func handleExplain(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := db.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})

			return
		}
		logging.Logger.Errorf("failed to load task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	explanation := task.Explanation
	if explanation == "" {
		fresh, live := augmenter.ExplainTask(c.Request.Context(), taskInfo(task))
		explanation = fresh
		if live {
			if err := db.SetExplanation(c.Request.Context(), taskID, explanation); err != nil {
				logging.Logger.Errorf("failed to cache explanation: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"task": task.Description, "explanation": explanation})
}

func handleAISuggestions(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description required"})

		return
	}

	suggestions := augmenter.SuggestTasks(c.Request.Context(), req.Description)
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// handleAISubtasks asks the adapter for subtask ideas and appends them
// to the task, in order.
func handleAISubtasks(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := db.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})

			return
		}
		logging.Logger.Errorf("failed to load task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	actor, _ := authmw.Actor(c)
	if task.TeamID != actor.TeamID {
		c.JSON(http.StatusForbidden, gin.H{"error": "task not in your team"})

		return
	}

	suggestions := augmenter.SuggestSubtasks(c.Request.Context(), taskInfo(task))
	for _, s := range suggestions {
		if err := db.AppendSubtask(c.Request.Context(), taskID, s); err != nil {
			logging.Logger.Errorf("failed to append suggested subtask: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

			return
		}
	}

	task, err = db.GetTask(c.Request.Context(), taskID)
	if err != nil {
		logging.Logger.Errorf("failed to reload task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "task": task, "suggestions": suggestions})
}

func handleAIChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})

		return
	}

	reply := augmenter.Chat(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
