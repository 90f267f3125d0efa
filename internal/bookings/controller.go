package bookings

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"artistly/internal/shared/apperrors"
	"artistly/internal/shared/utils/response"
)

// Controller handles HTTP requests for booking operations
type Controller struct {
	service Service
}

// NewController creates a new booking controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /bookings
func (bc *Controller) CreateBooking(ctx *gin.Context) {
	callerID, err := currentUserID(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	resp, err := bc.service.CreateBooking(ctx.Request.Context(), callerID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusCreated, "Booking created successfully", resp)
}

// GetBooking handles GET /bookings/:id
func (bc *Controller) GetBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument("invalid booking id"))
		return
	}

	booking, err := bc.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	// Customers may only read their own bookings.
	role := ctx.GetString("user_role")
	if role != "ADMIN" {
		callerID, err := currentUserID(ctx)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		if booking.CustomerID != callerID && !bc.service.IsAssignedArtist(ctx.Request.Context(), booking, callerID) {
			response.RespondError(ctx, apperrors.PermissionDenied("access denied"))
			return
		}
	}

	response.RespondSuccess(ctx, http.StatusOK, "Booking retrieved successfully", booking)
}

// GetMyBookings handles GET /bookings/me
func (bc *Controller) GetMyBookings(ctx *gin.Context) {
	callerID, err := currentUserID(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	resp, err := bc.service.GetUserBookings(ctx.Request.Context(), callerID, query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Bookings retrieved successfully", resp)
}

// GetAllBookings handles GET /bookings (admin)
func (bc *Controller) GetAllBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	resp, err := bc.service.GetAllBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Bookings retrieved successfully", resp)
}

// ClaimJob handles POST /bookings/:id/claim (artist)
func (bc *Controller) ClaimJob(ctx *gin.Context) {
	callerID, err := currentUserID(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument("invalid booking id"))
		return
	}

	resp, err := bc.service.ClaimJob(ctx.Request.Context(), callerID, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Job claimed successfully", resp)
}

// ApproveBooking handles POST /bookings/:id/approve (admin)
func (bc *Controller) ApproveBooking(ctx *gin.Context) {
	bc.transition(ctx, "Booking approved", bc.service.ApproveBooking)
}

// ManualConfirmBooking handles POST /bookings/:id/confirm (admin)
func (bc *Controller) ManualConfirmBooking(ctx *gin.Context) {
	bc.transition(ctx, "Booking confirmed", bc.service.ManualConfirmBooking)
}

// CompleteBooking handles POST /bookings/:id/complete (admin)
func (bc *Controller) CompleteBooking(ctx *gin.Context) {
	bc.transition(ctx, "Booking completed", bc.service.CompleteBooking)
}

// DisputeBooking handles POST /bookings/:id/dispute (admin)
func (bc *Controller) DisputeBooking(ctx *gin.Context) {
	bc.transition(ctx, "Booking disputed", bc.service.DisputeBooking)
}

// AssignArtists handles POST /bookings/:id/assign (admin)
func (bc *Controller) AssignArtists(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument("invalid booking id"))
		return
	}

	var req AssignArtistsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	artistIDs := make([]uuid.UUID, 0, len(req.ArtistIDs))
	for _, raw := range req.ArtistIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(ctx, apperrors.InvalidArgument("invalid artist id"))
			return
		}
		artistIDs = append(artistIDs, id)
	}

	booking, err := bc.service.AssignArtists(ctx.Request.Context(), bookingID, artistIDs)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Artists assigned successfully", booking)
}

// ResolveDispute handles POST /bookings/:id/resolve (admin)
func (bc *Controller) ResolveDispute(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument("invalid booking id"))
		return
	}

	var req struct {
		Outcome string `json:"outcome" binding:"required,oneof=COMPLETE CANCEL"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument(err.Error()))
		return
	}

	booking, err := bc.service.ResolveDispute(ctx.Request.Context(), bookingID, req.Outcome == "COMPLETE")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Dispute resolved successfully", booking)
}

// CancelBooking handles POST /bookings/:id/cancel (admin or assigned artist)
func (bc *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument("invalid booking id"))
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = ctx.ShouldBindJSON(&req)

	var booking *Booking
	if ctx.GetString("user_role") == "ADMIN" {
		booking, err = bc.service.AdminCancelBooking(ctx.Request.Context(), bookingID, req.Reason)
	} else {
		var callerID uuid.UUID
		callerID, err = currentUserID(ctx)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		booking, err = bc.service.ArtistCancelBooking(ctx.Request.Context(), callerID, bookingID, req.Reason)
	}
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "Booking cancelled successfully", booking)
}

// DeleteAllBookings handles DELETE /bookings (super admin)
func (bc *Controller) DeleteAllBookings(ctx *gin.Context) {
	callerID, err := currentUserID(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	deleted, err := bc.service.DeleteAllBookings(ctx.Request.Context(), callerID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, "All bookings deleted", gin.H{
		"deleted_count": deleted,
	})
}

func (bc *Controller) transition(ctx *gin.Context, message string, fn func(context.Context, uuid.UUID) (*Booking, error)) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidArgument("invalid booking id"))
		return
	}

	booking, err := fn(ctx.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondSuccess(ctx, http.StatusOK, message, booking)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, error) {
	raw := ctx.GetString("user_id")
	if raw == "" {
		return uuid.Nil, apperrors.Unauthenticated("authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Unauthenticated("invalid user identity")
	}
	return id, nil
}
