package artists

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"artistly/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateProfile handles POST /api/v1/artists/profile
func (c *Controller) CreateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CreateArtistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	artist, err := c.service.CreateProfile(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Artist profile created", artist, nil)
}

// UpdateProfile handles PUT /api/v1/artists/profile
func (c *Controller) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req UpdateArtistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	artist, err := c.service.UpdateProfile(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Artist profile updated", artist, nil)
}

// GetArtist handles GET /api/v1/artists/:id
func (c *Controller) GetArtist(ctx *gin.Context) {
	artistID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid artist ID", nil, nil)
		return
	}

	artist, err := c.service.GetArtist(ctx.Request.Context(), artistID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Artist retrieved", artist, nil)
}

// ListArtists handles GET /api/v1/artists
func (c *Controller) ListArtists(ctx *gin.Context) {
	list, err := c.service.ListArtists(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Artists retrieved", gin.H{
		"artists": list,
		"count":   len(list),
	}, nil)
}

// GetMyProfile handles GET /api/v1/artists/profile
func (c *Controller) GetMyProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	artist, err := c.service.GetByUserID(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Artist profile retrieved", artist, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userIDStr := ctx.GetString("user_id")
	if userIDStr == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}
