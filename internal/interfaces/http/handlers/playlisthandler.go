// Package handlers provides Gin HTTP handlers for the management API and
// the mirror proxy boundary.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamgate-io/streamgate/internal/application/playlist/dto"
	"github.com/streamgate-io/streamgate/internal/application/playlist/usecases"
	"github.com/streamgate-io/streamgate/internal/shared/logger"
	"github.com/streamgate-io/streamgate/internal/shared/utils"
)

// PlaylistHandler handles playlist management HTTP requests.
type PlaylistHandler struct {
	createUseCase     *usecases.CreatePlaylistUseCase
	getUseCase        *usecases.GetPlaylistUseCase
	getStatusUseCase  *usecases.GetPlaylistStatusUseCase
	listUseCase       *usecases.ListPlaylistsUseCase
	updateUseCase     *usecases.UpdatePlaylistUseCase
	deleteUseCase     *usecases.DeletePlaylistUseCase
	listEventsUseCase *usecases.ListAccessEventsUseCase
	logger            logger.Interface
}

func NewPlaylistHandler(
	createUseCase *usecases.CreatePlaylistUseCase,
	getUseCase *usecases.GetPlaylistUseCase,
	getStatusUseCase *usecases.GetPlaylistStatusUseCase,
	listUseCase *usecases.ListPlaylistsUseCase,
	updateUseCase *usecases.UpdatePlaylistUseCase,
	deleteUseCase *usecases.DeletePlaylistUseCase,
	listEventsUseCase *usecases.ListAccessEventsUseCase,
	logger logger.Interface,
) *PlaylistHandler {
	return &PlaylistHandler{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		getStatusUseCase:  getStatusUseCase,
		listUseCase:       listUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		listEventsUseCase: listEventsUseCase,
		logger:            logger,
	}
}

type createPlaylistRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=128"`
	OriginURL  string `json:"origin_url" validate:"required,url"`
	MaxDevices int    `json:"max_devices" validate:"required,gte=1,lte=10"`
}

// Create handles POST /api/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreatePlaylistCommand{
		Name:       req.Name,
		OriginURL:  req.OriginURL,
		MaxDevices: req.MaxDevices,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToPlaylistDTO(p), "Playlist created successfully")
}

// Get handles GET /api/playlists/:sid
func (h *PlaylistHandler) Get(c *gin.Context) {
	p, err := h.getUseCase.Execute(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToPlaylistDTO(p))
}

// GetStatus handles GET /api/playlists/:sid/status
func (h *PlaylistHandler) GetStatus(c *gin.Context) {
	result, err := h.getStatusUseCase.Execute(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	status := dto.PlaylistStatusDTO{
		PlaylistDTO:   dto.ToPlaylistDTO(result.Playlist),
		ActiveDevices: result.ActiveDevices,
		Sessions:      dto.ToDeviceSessionDTOs(result.Sessions),
	}
	utils.SuccessResponse(c, http.StatusOK, "", status)
}

// List handles GET /api/playlists
func (h *PlaylistHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUseCase.Execute(c.Request.Context(), pagination)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ToPlaylistDTOs(result.Playlists), result.Total,
		pagination.Page, pagination.PageSize)
}

type updatePlaylistRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=128"`
	OriginURL  *string `json:"origin_url" validate:"omitempty,url"`
	MaxDevices *int    `json:"max_devices" validate:"omitempty,gte=1,lte=10"`
}

// Update handles PUT /api/playlists/:sid
func (h *PlaylistHandler) Update(c *gin.Context) {
	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdatePlaylistCommand{
		SID:        c.Param("sid"),
		Name:       req.Name,
		OriginURL:  req.OriginURL,
		MaxDevices: req.MaxDevices,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Playlist updated successfully", dto.ToPlaylistDTO(p))
}

// Delete handles DELETE /api/playlists/:sid
func (h *PlaylistHandler) Delete(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), c.Param("sid")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListEvents handles GET /api/playlists/:sid/events
func (h *PlaylistHandler) ListEvents(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	events, err := h.listEventsUseCase.Execute(c.Request.Context(), c.Param("sid"), pagination.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToAccessEventDTOs(events))
}
