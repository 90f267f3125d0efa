package payouts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artistly/internal/shared/apperrors"
	"artistly/internal/shared/utils/response"
)

// Controller handles HTTP requests for payout operations
type Controller struct {
	service Service
}

// NewController creates a new payout controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CalculatePayouts handles GET /payouts
func (pc *Controller) CalculatePayouts(ctx *gin.Context) {
	payouts, err := pc.service.CalculatePayouts(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "Payouts calculated successfully", payouts)
}

// MarkAsPaid handles POST /payouts/settle
func (pc *Controller) MarkAsPaid(ctx *gin.Context) {
	var req MarkAsPaidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	result, err := pc.service.MarkAsPaid(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	message := "Payout settled successfully"
	if result.AlreadyPaid {
		message = "Payout already settled"
	} else if !result.Settled {
		message = "No eligible bookings to settle"
	}
	response.RespondSuccess(ctx, http.StatusOK, message, result)
}

// ListHistory handles GET /payouts/history
func (pc *Controller) ListHistory(ctx *gin.Context) {
	var query HistoryListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	resp, err := pc.service.ListHistory(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "Settlement history retrieved successfully", resp)
}
