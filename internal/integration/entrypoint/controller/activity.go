package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commitly/backend/internal/application/usecase/activity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

// ActivityController handles goal activity endpoints.
type ActivityController struct {
	listUseCase   *activity.ListActivitiesUseCase
	addUseCase    *activity.AddActivityUseCase
	updateUseCase *activity.UpdateActivityUseCase
	deleteUseCase *activity.DeleteActivityUseCase
}

// NewActivityController creates a new activity controller instance.
func NewActivityController(
	listUseCase *activity.ListActivitiesUseCase,
	addUseCase *activity.AddActivityUseCase,
	updateUseCase *activity.UpdateActivityUseCase,
	deleteUseCase *activity.DeleteActivityUseCase,
) *ActivityController {
	return &ActivityController{
		listUseCase:   listUseCase,
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /goals/:id/activities requests.
func (c *ActivityController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), activity.ListActivitiesInput{
		GoalID:   goalID,
		ViewerID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ActivityListResponse{
		Activities: dto.ToActivityResponses(output.Activities),
		Completed:  output.Completed,
		Total:      output.Total,
		Progress:   output.Progress,
	})
}

// Create handles POST /goals/:id/activities requests.
func (c *ActivityController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingActivityFields), err)
		return
	}

	created, err := c.addUseCase.Execute(ctx.Request.Context(), activity.AddActivityInput{
		GoalID: goalID,
		UserID: userID,
		Title:  req.Title,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToActivityResponse(created))
}

// Update handles PATCH /goals/:id/activities/:activity_id requests.
func (c *ActivityController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "activity_id", "activity", string(domainerror.ErrCodeActivityNotFound))
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingActivityFields), err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), activity.UpdateActivityInput{
		GoalID:      goalID,
		ActivityID:  activityID,
		UserID:      userID,
		Title:       req.Title,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	response := dto.UpdateActivityResponse{
		Activity: dto.ToActivityResponse(output.Activity),
		Progress: output.Progress,
	}
	if output.Completion != nil {
		streak := dto.ToStreakResponse(output.Completion.Streak)
		response.Streak = &streak
		response.Milestone = output.Completion.Milestone
	}

	ctx.JSON(http.StatusOK, response)
}

// Delete handles DELETE /goals/:id/activities/:activity_id requests.
func (c *ActivityController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "activity_id", "activity", string(domainerror.ErrCodeActivityNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), activity.DeleteActivityInput{
		GoalID:     goalID,
		ActivityID: activityID,
		UserID:     userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
