package tasks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"intertask/internal/ai"
	"intertask/internal/authmw"
	"intertask/internal/logging"
)

var augmenter *ai.Client

// RegisterRoutes wires the task lifecycle and AI augmentation endpoints
// onto the engine.
func RegisterRoutes(engine *gin.Engine, auth *authmw.SessionAuth, aiClient *ai.Client) {
	augmenter = aiClient

	engine.GET("/", handleHome)
	engine.GET("/task-list", auth.OptionalSession(), handleTaskList)
	engine.GET("/delay-prediction", auth.OptionalSession(), handleDelayPrediction)
	engine.GET("/explain/:taskid", auth.OptionalSession(), handleExplain)

	engine.POST("/add-task", auth.RequireRole(authmw.RoleLead), handleAddTask)
	engine.GET("/update-status/:taskid/:status", auth.RequireRole(authmw.RoleLead), handleUpdateStatus)
	engine.GET("/delete-task/:taskid", auth.RequireRole(authmw.RoleLead), handleDeleteTask)
	engine.GET("/export-csv", auth.RequireRole(authmw.RoleLead), handleExportCSV)
	engine.GET("/lead/dashboard", auth.RequireRole(authmw.RoleLead), handleLeadDashboard)

	engine.GET("/member-mark-done/:taskid", auth.RequireRole(authmw.RoleMember), handleMemberMarkDone)
	engine.GET("/member/dashboard", auth.RequireRole(authmw.RoleMember), handleMemberDashboard)

	// any authenticated caller with the task id may append
	engine.POST("/add-subtask/:taskid", auth.RequireRole(authmw.RoleLead, authmw.RoleMember), handleAddSubtask)

	engine.GET("/ai-suggestions", auth.RequireRole(authmw.RoleLead), handleAISuggestions)
	engine.POST("/ai-suggestions", auth.RequireRole(authmw.RoleLead), handleAISuggestions)
	engine.POST("/add-suggestion", auth.RequireRole(authmw.RoleLead), handleAddTask)
	engine.GET("/ai-subtasks/:taskid", auth.RequireRole(authmw.RoleLead), handleAISubtasks)
	engine.GET("/ai-chat", auth.RequireRole(authmw.RoleMember), handleAIChat)
	engine.POST("/ai-chat", auth.RequireRole(authmw.RoleMember), handleAIChat)
}

func taskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("taskid"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing/invalid taskid"})

		return 0, false
	}

	return id, true
}

// visibleTeam maps the (optional) session onto a listing scope. Leads
// and members see their own team; unauthenticated callers get a nil
// scope and see the whole store (the listing stays publicly readable).
func visibleTeam(c *gin.Context) *int64 {
	actor, ok := authmw.Actor(c)
	if !ok {
		return nil
	}
	teamID := actor.TeamID

	return &teamID
}

func handleHome(c *gin.Context) {
	counts, err := db.StatusCounts(c.Request.Context(), nil)
	if err != nil {
		logging.Logger.Errorf("failed to count tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": counts})
}

func handleTaskList(c *gin.Context) {
	items, err := db.ListTasks(c.Request.Context(), visibleTeam(c))
	if err != nil {
		logging.Logger.Errorf("failed to list tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	for i := range items {
		items[i].DelayRisk = ClassifyDelayRisk(items[i].Priority, items[i].Status)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func handleAddTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

		return
	}

	actor, _ := authmw.Actor(c)
	if actor.TeamID == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "lead has no team"})

		return
	}

	memberTeam, err := db.AssigneeTeam(c.Request.Context(), req.AssignedTo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignee not found"})

			return
		}
		logging.Logger.Errorf("failed to resolve assignee: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}
	if memberTeam != actor.TeamID {
		c.JSON(http.StatusForbidden, gin.H{"error": "assignee not in your team"})

		return
	}

	task, err := db.InsertTask(c.Request.Context(), actor.TeamID, req.Description, req.AssignedTo, req.Priority)
	if err != nil {
		logging.Logger.Errorf("failed to create task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "task": task})
}

func handleAddSubtask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req SubtaskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

		return
	}

	if err := db.AppendSubtask(c.Request.Context(), taskID, req.Subtask); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})

			return
		}
		logging.Logger.Errorf("failed to append subtask: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	task, err := db.GetTask(c.Request.Context(), taskID)
	if err != nil {
		logging.Logger.Errorf("failed to reload task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "task": task})
}

// handleUpdateStatus lets the owning lead set any status value.
func handleUpdateStatus(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}
	status := c.Param("status")
	if !validStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})

		return
	}

	if !mutateOwnTeamTask(c, taskID, status) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleMemberMarkDone is the only status transition a member may make.
func handleMemberMarkDone(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if !mutateOwnTeamTask(c, taskID, StatusDone) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// mutateOwnTeamTask checks the task belongs to the actor's team and
// applies the status change, answering the request on failure.
func mutateOwnTeamTask(c *gin.Context, taskID int64, status string) bool {
	task, err := db.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})

			return false
		}
		logging.Logger.Errorf("failed to load task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return false
	}

	actor, _ := authmw.Actor(c)
	if task.TeamID != actor.TeamID {
		c.JSON(http.StatusForbidden, gin.H{"error": "task not in your team"})

		return false
	}

	if err := db.UpdateStatus(c.Request.Context(), taskID, status); err != nil {
		logging.Logger.Errorf("failed to update status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return false
	}

	return true
}

func handleDeleteTask(c *gin.Context) {
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

	if err := db.DeleteTask(c.Request.Context(), taskID); err != nil {
		logging.Logger.Errorf("failed to delete task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleExportCSV(c *gin.Context) {
	actor, _ := authmw.Actor(c)
	teamID := actor.TeamID

	items, err := db.ListTasks(c.Request.Context(), &teamID)
	if err != nil {
		logging.Logger.Errorf("failed to list tasks for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="tasks.csv"`)
	if err := writeTasksCSV(c.Writer, items); err != nil {
		logging.Logger.Errorf("failed to write csv: %v", err)
	}
}

func handleDelayPrediction(c *gin.Context) {
	items, err := db.ListTasks(c.Request.Context(), visibleTeam(c))
	if err != nil {
		logging.Logger.Errorf("failed to list tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	predictions := make([]Prediction, 0, len(items))
	for _, t := range items {
		predictions = append(predictions, Predict(t))
	}

	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

func handleLeadDashboard(c *gin.Context) {
	teamDashboard(c)
}

func handleMemberDashboard(c *gin.Context) {
	teamDashboard(c)
}

func teamDashboard(c *gin.Context) {
	actor, _ := authmw.Actor(c)
	teamID := actor.TeamID

	counts, err := db.StatusCounts(c.Request.Context(), &teamID)
	if err != nil {
		logging.Logger.Errorf("failed to count tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	items, err := db.ListTasks(c.Request.Context(), &teamID)
	if err != nil {
		logging.Logger.Errorf("failed to list tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}
	for i := range items {
		items[i].DelayRisk = ClassifyDelayRisk(items[i].Priority, items[i].Status)
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": counts, "items": items})
}
