// Package controller holds the gin handlers of the HTTP API.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commitly/backend/internal/application/usecase/auth"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

// AuthController serves the session endpoints under /auth.
type AuthController struct {
	register *auth.RegisterUserUseCase
	login    *auth.LoginUserUseCase
	refresh  *auth.RefreshTokenUseCase
	logout   *auth.LogoutUserUseCase
}

func NewAuthController(
	register *auth.RegisterUserUseCase,
	login *auth.LoginUserUseCase,
	refresh *auth.RefreshTokenUseCase,
	logout *auth.LogoutUserUseCase,
) *AuthController {
	return &AuthController{register: register, login: login, refresh: refresh, logout: logout}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	session, err := c.register.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Timezone:    req.Timezone,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAuthResponse(session))
}

// Login handles POST /auth/login.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	session, err := c.login.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuthResponse(session))
}

// RefreshToken handles POST /auth/refresh. The presented token is spent.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingToken), err)
		return
	}

	session, err := c.refresh.Execute(ctx.Request.Context(), auth.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

// Logout handles POST /auth/logout by revoking the caller's refresh token.
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingToken), err)
		return
	}

	err := c.logout.Execute(ctx.Request.Context(), auth.LogoutUserInput{UserID: userID, RefreshToken: req.RefreshToken})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
