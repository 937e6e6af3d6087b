package submissions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"intertask/internal/authmw"
	"intertask/internal/logging"
)

// RegisterRoutes wires the submission endpoints onto the engine.
func RegisterRoutes(engine *gin.Engine, auth *authmw.SessionAuth) {
	engine.GET("/submit/:taskid", auth.RequireRole(authmw.RoleMember), handleListMine)
	engine.POST("/submit/:taskid", auth.RequireRole(authmw.RoleMember), handleSubmit)
}

func taskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("taskid"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing/invalid taskid"})

		return 0, false
	}

	return id, true
}

// handleSubmit records a work link. The task id is taken as given and
// not checked against the member's team; the row is an audit record
// keyed by whoever submitted it.
func handleSubmit(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

		return
	}

	actor, _ := authmw.Actor(c)

	submission, err := db.InsertSubmission(c.Request.Context(), taskID, actor.UserID, req.GithubLink)
	if err != nil {
		logging.Logger.Errorf("failed to record submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "submission": submission})
}

func handleListMine(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	actor, _ := authmw.Actor(c)

	items, err := db.ListForMember(c.Request.Context(), actor.UserID)
	if err != nil {
		logging.Logger.Errorf("failed to list submissions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"taskid": taskID, "items": items})
}
