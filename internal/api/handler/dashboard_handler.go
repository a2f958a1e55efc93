package handler

import (
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

func (s *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := s.dashboardSvc.GetOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

func (s *DashboardHandler) GetProfileDetail(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("profile_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	detail, err := s.dashboardSvc.GetProfileDetail(c.Request.Context(), profileID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (s *DashboardHandler) GetPostTrend(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	trend, err := s.dashboardSvc.GetPostTrend(c.Request.Context(), postID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trend)
}

func (s *DashboardHandler) ListTopPosts(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, err := s.dashboardSvc.ListTopPosts(c.Request.Context(), days, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *DashboardHandler) ListPlatformRollup(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	rollup, err := s.dashboardSvc.ListPlatformRollup(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rollup)
}

func (s *DashboardHandler) ListViral(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, err := s.dashboardSvc.ListViral(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *DashboardHandler) ListAlerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	alertType := c.Query("type")

	alerts, err := s.dashboardSvc.ListAlerts(c.Request.Context(), alertType, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, alerts)
}
