package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/usecase/partnership"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

// PartnershipController handles accountability partnership endpoints.
type PartnershipController struct {
	listUseCase    *partnership.ListPartnershipsUseCase
	requestUseCase *partnership.RequestPartnershipUseCase
	respondUseCase *partnership.RespondPartnershipUseCase
	removeUseCase  *partnership.RemovePartnershipUseCase
}

// NewPartnershipController creates a new partnership controller instance.
func NewPartnershipController(
	listUseCase *partnership.ListPartnershipsUseCase,
	requestUseCase *partnership.RequestPartnershipUseCase,
	respondUseCase *partnership.RespondPartnershipUseCase,
	removeUseCase *partnership.RemovePartnershipUseCase,
) *PartnershipController {
	return &PartnershipController{
		listUseCase:    listUseCase,
		requestUseCase: requestUseCase,
		respondUseCase: respondUseCase,
		removeUseCase:  removeUseCase,
	}
}

// List handles GET /partnerships requests.
func (c *PartnershipController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PartnershipListResponse{
		Sent:     dto.ToPartnershipResponses(output.Sent),
		Received: dto.ToPartnershipResponses(output.Received),
	})
}

// Create handles POST /partnerships requests.
func (c *PartnershipController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreatePartnershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingPartnershipFields), err)
		return
	}

	input := partnership.RequestPartnershipInput{
		RequesterID:  userID,
		PartnerEmail: req.PartnerEmail,
	}
	if req.GoalID != nil {
		goalID, err := uuid.Parse(*req.GoalID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid goal ID format",
				Code:  string(domainerror.ErrCodeMissingPartnershipFields),
			})
			return
		}
		input.GoalID = &goalID
	}

	created, err := c.requestUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPartnershipResponse(created))
}

// Respond handles POST /partnerships/:id/respond requests.
func (c *PartnershipController) Respond(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	partnershipID, ok := parseUUIDParam(ctx, "id", "partnership", string(domainerror.ErrCodePartnershipNotFound))
	if !ok {
		return
	}

	var req dto.RespondPartnershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingPartnershipFields), err)
		return
	}

	updated, err := c.respondUseCase.Execute(ctx.Request.Context(), partnership.RespondPartnershipInput{
		PartnershipID: partnershipID,
		UserID:        userID,
		Accept:        *req.Accept,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPartnershipResponse(updated))
}

// Delete handles DELETE /partnerships/:id requests.
func (c *PartnershipController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	partnershipID, ok := parseUUIDParam(ctx, "id", "partnership", string(domainerror.ErrCodePartnershipNotFound))
	if !ok {
		return
	}

	err := c.removeUseCase.Execute(ctx.Request.Context(), partnership.RemovePartnershipInput{
		PartnershipID: partnershipID,
		UserID:        userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
