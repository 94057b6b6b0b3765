package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
	"github.com/commitly/backend/internal/integration/entrypoint/middleware"
)

// codedError is the common shape of the domain error types.
type codedError struct {
	status  int
	code    string
	message string
}

// handleError writes the HTTP response for an error returned by a use case.
func handleError(ctx *gin.Context, err error) {
	if coded, ok := classifyError(err); ok {
		ctx.JSON(coded.status, dto.ErrorResponse{
			Error: coded.message,
			Code:  coded.code,
		})
		return
	}

	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func classifyError(err error) (codedError, bool) {
	var (
		authErr         *domainerror.AuthError
		goalErr         *domainerror.GoalError
		activityErr     *domainerror.ActivityError
		streakErr       *domainerror.StreakError
		partnershipErr  *domainerror.PartnershipError
		notificationErr *domainerror.NotificationError
	)

	switch {
	case errors.As(err, &authErr):
		return codedError{getStatusCodeForAuthError(authErr.Code), string(authErr.Code), authErr.Message}, true
	case errors.As(err, &goalErr):
		return codedError{getStatusCodeForGoalError(goalErr.Code), string(goalErr.Code), goalErr.Message}, true
	case errors.As(err, &activityErr):
		return codedError{getStatusCodeForActivityError(activityErr.Code), string(activityErr.Code), activityErr.Message}, true
	case errors.As(err, &streakErr):
		return codedError{getStatusCodeForStreakError(streakErr.Code), string(streakErr.Code), streakErr.Message}, true
	case errors.As(err, &partnershipErr):
		return codedError{getStatusCodeForPartnershipError(partnershipErr.Code), string(partnershipErr.Code), partnershipErr.Message}, true
	case errors.As(err, &notificationErr):
		return codedError{getStatusCodeForNotificationError(notificationErr.Code), string(notificationErr.Code), notificationErr.Message}, true
	case errors.Is(err, domainerror.ErrStreakOrdering):
		return codedError{http.StatusConflict, string(domainerror.ErrCodeStreakOrdering), err.Error()}, true
	case errors.Is(err, domainerror.ErrInvalidStatusTransition):
		return codedError{http.StatusUnprocessableEntity, string(domainerror.ErrCodeInvalidStatusTransition), err.Error()}, true
	}
	return codedError{}, false
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidTimezone,
		domainerror.ErrCodeInvalidConfirmation:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess, domainerror.ErrCodeEditWindowClosed:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidStatusTransition:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidGoalType,
		domainerror.ErrCodeInvalidGoalVisibility,
		domainerror.ErrCodeInvalidGoalStatus,
		domainerror.ErrCodeGoalTitleRequired,
		domainerror.ErrCodeInvalidReportedProgress,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForActivityError maps activity error codes to HTTP status codes.
func getStatusCodeForActivityError(code domainerror.ActivityErrorCode) int {
	switch code {
	case domainerror.ErrCodeActivityNotFound, domainerror.ErrCodeActivityGoalMismatch:
		return http.StatusNotFound
	case domainerror.ErrCodeSingleGoalHasActivity:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeActivityTitleRequired, domainerror.ErrCodeMissingActivityFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForStreakError maps streak error codes to HTTP status codes.
func getStatusCodeForStreakError(code domainerror.StreakErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCompletionDate, domainerror.ErrCodeCompletionInFuture:
		return http.StatusBadRequest
	case domainerror.ErrCodeStreakOrdering, domainerror.ErrCodeStreakBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForPartnershipError maps partnership error codes to HTTP status codes.
func getStatusCodeForPartnershipError(code domainerror.PartnershipErrorCode) int {
	switch code {
	case domainerror.ErrCodePartnershipNotFound, domainerror.ErrCodePartnerNotRegistered:
		return http.StatusNotFound
	case domainerror.ErrCodePartnershipAlreadyExists, domainerror.ErrCodePartnershipNotPending:
		return http.StatusConflict
	case domainerror.ErrCodeNotInvitedPartner,
		domainerror.ErrCodeNotPartnershipMember,
		domainerror.ErrCodePartnershipGoalNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeCannotPartnerSelf, domainerror.ErrCodeMissingPartnershipFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForNotificationError maps notification error codes to HTTP status codes.
func getStatusCodeForNotificationError(code domainerror.NotificationErrorCode) int {
	switch code {
	case domainerror.ErrCodeNotificationNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotNotificationRecipient:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// requireUserID reads the authenticated user id, answering 401 when it is absent.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUIDParam parses a path parameter as a UUID, answering 400 with code when malformed.
func parseUUIDParam(ctx *gin.Context, name, label, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
			Code:  code,
		})
		return uuid.Nil, false
	}
	return id, true
}

func invalidBody(ctx *gin.Context, code string, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    code,
		Details: err.Error(),
	})
}
