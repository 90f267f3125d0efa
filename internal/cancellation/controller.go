package cancellation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"artistly/internal/shared/apperrors"
	"artistly/internal/shared/utils/response"
)

// Controller handles HTTP requests for cancellation operations
type Controller struct {
	service Service
}

// NewController creates a new cancellation controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// RequestCancellation handles POST /cancellations
func (cc *Controller) RequestCancellation(ctx *gin.Context) {
	callerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondError(ctx, apperrors.Unauthenticated("invalid user identity"))
		return
	}

	var req CancellationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument("invalid booking id"))
		return
	}

	resp, err := cc.service.RequestCancellation(ctx.Request.Context(), bookingID, callerID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Booking cancelled successfully", resp)
}
