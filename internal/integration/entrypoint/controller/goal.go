package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/goal"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

// GoalController handles goal endpoints.
type GoalController struct {
	listUseCase           *goal.ListGoalsUseCase
	createUseCase         *goal.CreateGoalUseCase
	getUseCase            *goal.GetGoalUseCase
	updateUseCase         *goal.UpdateGoalUseCase
	deleteUseCase         *goal.DeleteGoalUseCase
	changeStatusUseCase   *goal.ChangeStatusUseCase
	reportProgressUseCase *goal.ReportProgressUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	changeStatusUseCase *goal.ChangeStatusUseCase,
	reportProgressUseCase *goal.ReportProgressUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:           listUseCase,
		createUseCase:         createUseCase,
		getUseCase:            getUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		changeStatusUseCase:   changeStatusUseCase,
		reportProgressUseCase: reportProgressUseCase,
	}
}

// List handles GET /goals requests.
// Supports owner_id, status, type and tag query parameters.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := goal.ListGoalsInput{
		ViewerID: userID,
		Filter:   adapter.GoalFilter{Tag: ctx.Query("tag")},
	}

	if ownerParam := ctx.Query("owner_id"); ownerParam != "" {
		ownerID, err := uuid.Parse(ownerParam)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid owner ID format",
				Code:  string(domainerror.ErrCodeMissingGoalFields),
			})
			return
		}
		input.OwnerID = &ownerID
	}

	if statusParam := ctx.Query("status"); statusParam != "" {
		status := entity.GoalStatus(statusParam)
		if !entity.IsValidGoalStatus(status) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid goal status",
				Code:  string(domainerror.ErrCodeInvalidGoalStatus),
			})
			return
		}
		input.Filter.Status = &status
	}

	if typeParam := ctx.Query("type"); typeParam != "" {
		goalType := entity.GoalType(typeParam)
		if !entity.IsValidGoalType(goalType) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid goal type",
				Code:  string(domainerror.ErrCodeInvalidGoalType),
			})
			return
		}
		input.Filter.GoalType = &goalType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingGoalFields), err)
		return
	}

	input := goal.CreateGoalInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		GoalType:    entity.GoalType(req.GoalType),
		Tags:        req.Tags,
		Activities:  req.Activities,
	}
	if req.Visibility != nil {
		visibility := entity.GoalVisibility(*req.Visibility)
		input.Visibility = &visibility
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID:   goalID,
		ViewerID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingGoalFields), err)
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:      goalID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Visibility != nil {
		visibility := entity.GoalVisibility(*req.Visibility)
		input.Visibility = &visibility
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ChangeStatus handles POST /goals/:id/status requests.
func (c *GoalController) ChangeStatus(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingGoalFields), err)
		return
	}

	output, err := c.changeStatusUseCase.Execute(ctx.Request.Context(), goal.ChangeStatusInput{
		GoalID: goalID,
		UserID: userID,
		Status: entity.GoalStatus(req.Status),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	// Reload to report progress and edit window alongside the new status
	view, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID:   goalID,
		ViewerID: userID,
	})
	if err != nil {
		view = &goal.GoalOutput{Goal: output.Goal}
	}

	ctx.JSON(http.StatusOK, dto.ChangeStatusResponse{
		Goal:             dto.ToGoalResponse(view),
		PartnersNotified: output.PartnersNotified,
	})
}

// ReportProgress handles POST /goals/:id/progress requests.
func (c *GoalController) ReportProgress(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	var req dto.ReportProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeInvalidReportedProgress), err)
		return
	}

	output, err := c.reportProgressUseCase.Execute(ctx.Request.Context(), goal.ReportProgressInput{
		GoalID:   goalID,
		UserID:   userID,
		Progress: *req.Progress,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output))
}
