package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"artistly/internal/shared/apperrors"
	"artistly/internal/shared/utils/response"
)

// Controller handles HTTP requests for settings operations
type Controller struct {
	service Service
}

// NewController creates a new settings controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetFinancialSettings handles GET /settings/financial
func (sc *Controller) GetFinancialSettings(ctx *gin.Context) {
	settings, err := sc.service.GetFinancialSettings(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "Settings retrieved successfully", settings)
}

// UpdateFinancialSettings handles PUT /settings/financial
func (sc *Controller) UpdateFinancialSettings(ctx *gin.Context) {
	callerID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondError(ctx, apperrors.Unauthenticated("invalid user identity"))
		return
	}

	var req UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	settings, err := sc.service.UpdateFinancialSettings(ctx.Request.Context(), callerID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "Settings updated successfully", settings)
}
