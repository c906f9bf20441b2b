// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dkpharma/asset-registry/internal/apperrors"
)

// APIResponse is the envelope every endpoint returns. Successful list
// responses carry Count, mutations carry Message, failures carry Message plus
// the error classification (never the raw store error string).
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessListResponse(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

func SuccessMessageResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message, errClass string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
		Error:   errClass,
	})
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message, string(apperrors.KindValidation))
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message, string(apperrors.KindNotFound))
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message, string(apperrors.KindConflict))
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, message, string(apperrors.KindInternal))
}

// HandleError maps a classified service error onto the HTTP surface.
func HandleError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindValidation:
			ErrorResponse(c, http.StatusBadRequest, appErr.Message, string(appErr.Kind))
		case apperrors.KindNotFound:
			ErrorResponse(c, http.StatusNotFound, appErr.Message, string(appErr.Kind))
		case apperrors.KindConflict:
			ErrorResponse(c, http.StatusConflict, appErr.Message, string(appErr.Kind))
		case apperrors.KindUpstream:
			ErrorResponse(c, http.StatusBadGateway, appErr.Message, string(appErr.Kind))
		default:
			ErrorResponse(c, http.StatusInternalServerError, appErr.Message, string(apperrors.KindInternal))
		}
		return
	}
	// Unclassified errors stay server-side; clients get the generic message.
	logrus.WithError(err).WithField("path", c.FullPath()).Error("unclassified error")
	InternalErrorResponse(c, "")
}

func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok {
			return id, true
		}
	}
	return 0, false
}

// CurrentUserID returns a pointer suitable for created_by/updated_by columns,
// nil when the request is unauthenticated.
func CurrentUserID(c *gin.Context) *uint {
	if id, ok := GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}
