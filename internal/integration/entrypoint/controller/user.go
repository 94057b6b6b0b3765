package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commitly/backend/internal/application/usecase/auth"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

// UserController serves the caller's own account under /me.
type UserController struct {
	profile *auth.GetProfileUseCase
	update  *auth.UpdateProfileUseCase
	remove  *auth.DeleteAccountUseCase
}

func NewUserController(profile *auth.GetProfileUseCase, update *auth.UpdateProfileUseCase, remove *auth.DeleteAccountUseCase) *UserController {
	return &UserController{profile: profile, update: update, remove: remove}
}

// GetProfile handles GET /me.
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	user, err := c.profile.Execute(ctx.Request.Context(), auth.GetProfileInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile handles PATCH /me. Absent fields are left unchanged.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	user, err := c.update.Execute(ctx.Request.Context(), auth.UpdateProfileInput{
		UserID:             userID,
		DisplayName:        req.DisplayName,
		Timezone:           req.Timezone,
		EmailNotifications: req.EmailNotifications,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteAccount handles DELETE /me. The body must repeat the password and carry
// the confirmation word.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	err := c.remove.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
