package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/commitly/backend/internal/application/usecase/completion"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/domain/valueobject"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

// CompletionController handles check-in and streak endpoints.
type CompletionController struct {
	recordUseCase    *completion.RecordCompletionUseCase
	getStreakUseCase *completion.GetStreakUseCase
	listUseCase      *completion.ListCompletionsUseCase
}

// NewCompletionController creates a new completion controller instance.
func NewCompletionController(
	recordUseCase *completion.RecordCompletionUseCase,
	getStreakUseCase *completion.GetStreakUseCase,
	listUseCase *completion.ListCompletionsUseCase,
) *CompletionController {
	return &CompletionController{
		recordUseCase:    recordUseCase,
		getStreakUseCase: getStreakUseCase,
		listUseCase:      listUseCase,
	}
}

// Record handles POST /goals/:id/completions requests.
func (c *CompletionController) Record(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	// An empty body is a check-in for today
	var req dto.RecordCompletionRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			invalidBody(ctx, string(domainerror.ErrCodeInvalidCompletionDate), err)
			return
		}
	}

	input := completion.RecordCompletionInput{
		GoalID: goalID,
		UserID: userID,
		Source: entity.CompletionSourceCheckIn,
	}
	if req.CompletionDate != nil && *req.CompletionDate != "" {
		date, err := valueobject.ParseDate(*req.CompletionDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Completion date must use the YYYY-MM-DD format",
				Code:  string(domainerror.ErrCodeInvalidCompletionDate),
			})
			return
		}
		input.CompletionDate = &date
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RecordCompletionResponse{
		Completion: dto.ToCompletionResponse(output.Event),
		Streak:     dto.ToStreakResponse(output.Streak),
		Milestone:  output.Milestone,
	})
}

// GetStreak handles GET /goals/:id/streak requests.
func (c *CompletionController) GetStreak(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	output, err := c.getStreakUseCase.Execute(ctx.Request.Context(), completion.GetStreakInput{
		GoalID:   goalID,
		ViewerID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	response := dto.ToStreakResponse(output.Streak)
	response.Alive = &output.Alive
	response.Today = output.Today.String()
	ctx.JSON(http.StatusOK, response)
}

// List handles GET /goals/:id/completions requests.
func (c *CompletionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseUUIDParam(ctx, "id", "goal", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	limit := 0
	if limitParam := ctx.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	events, err := c.listUseCase.Execute(ctx.Request.Context(), completion.ListCompletionsInput{
		GoalID:   goalID,
		ViewerID: userID,
		Limit:    limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompletionListResponse(events))
}
