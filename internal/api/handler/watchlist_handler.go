package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

type WatchlistHandler struct {
	watchlistSvc service.WatchlistService
}

func NewWatchlistHandler(watchlistSvc service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistSvc: watchlistSvc}
}

func (s *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	profile, err := s.watchlistSvc.Add(c.Request.Context(), req.Platform, req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *WatchlistHandler) Remove(c *gin.Context) {
	var req dto.RemoveProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.watchlistSvc.Remove(c.Request.Context(), req.Platform, req.Username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *WatchlistHandler) List(c *gin.Context) {
	platform := c.Query("platform")

	profiles, err := s.watchlistSvc.List(c.Request.Context(), platform)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profiles)
}
