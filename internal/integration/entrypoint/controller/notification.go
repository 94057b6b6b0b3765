package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/commitly/backend/internal/application/usecase/notification"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

// NotificationController handles in-app notification endpoints.
type NotificationController struct {
	listUseCase        *notification.ListNotificationsUseCase
	unreadCountUseCase *notification.UnreadCountUseCase
	markReadUseCase    *notification.MarkReadUseCase
	markAllReadUseCase *notification.MarkAllReadUseCase
}

// NewNotificationController creates a new notification controller instance.
func NewNotificationController(
	listUseCase *notification.ListNotificationsUseCase,
	unreadCountUseCase *notification.UnreadCountUseCase,
	markReadUseCase *notification.MarkReadUseCase,
	markAllReadUseCase *notification.MarkAllReadUseCase,
) *NotificationController {
	return &NotificationController{
		listUseCase:        listUseCase,
		unreadCountUseCase: unreadCountUseCase,
		markReadUseCase:    markReadUseCase,
		markAllReadUseCase: markAllReadUseCase,
	}
}

// List handles GET /notifications requests.
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := notification.ListNotificationsInput{
		UserID:     userID,
		UnreadOnly: ctx.Query("unread") == "true",
	}
	if limitParam := ctx.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be a non-negative integer",
			})
			return
		}
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationListResponse(output.Notifications, output.UnreadCount))
}

// UnreadCount handles GET /notifications/unread-count requests.
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	count, err := c.unreadCountUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

// MarkRead handles POST /notifications/:id/read requests.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	notificationID, ok := parseUUIDParam(ctx, "id", "notification", string(domainerror.ErrCodeNotificationNotFound))
	if !ok {
		return
	}

	updated, err := c.markReadUseCase.Execute(ctx.Request.Context(), notification.MarkReadInput{
		UserID:         userID,
		NotificationID: notificationID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationResponse(updated))
}

// MarkAllRead handles POST /notifications/read-all requests.
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	updated, err := c.markAllReadUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}
