package response

import (
	"github.com/gin-gonic/gin"

	"artistly/internal/shared/apperrors"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondSuccess wraps a success payload in the standard envelope.
func RespondSuccess(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// RespondError maps a typed service error onto the standard envelope.
func RespondError(c *gin.Context, err error) {
	RespondJSON(c, "error", apperrors.HTTPStatus(err), err.Error(), nil, gin.H{
		"kind": string(apperrors.KindOf(err)),
	})
}
