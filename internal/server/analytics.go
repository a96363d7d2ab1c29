package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /admin/analytics/dashboard
func (s *Server) analyticsDashboard(c *gin.Context) {
	if !s.allowDashboard(c) {
		return
	}

	report, err := s.analyticsSvc.Dashboard(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GET /admin/analytics/export
func (s *Server) analyticsExport(c *gin.Context) {
	if !s.allowDashboard(c) {
		return
	}

	report, err := s.analyticsSvc.Dashboard(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	generatedAt := s.clock.Now()
	doc, err := s.pdfProvider.GenerateDashboardReport(c.Request.Context(), report, generatedAt)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="analytics-report.pdf"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, nil)
}

// allowDashboard applies the per-caller rate limit. A Redis outage
// fails open: losing throttling briefly beats taking the dashboard
// down with it.
func (s *Server) allowDashboard(c *gin.Context) bool {
	if !s.dashboardLimiter.Enabled() {
		return true
	}

	authedUser := currentUser(c)
	if authedUser == nil {
		AbortWithError(c, ErrUnauthorized)
		return false
	}

	allowed, err := s.dashboardLimiter.Allow(c.Request.Context(), authedUser.ID.String())
	if err != nil {
		s.log.Warn("dashboard rate limit check failed", zap.Error(err))
		return true
	}
	if !allowed {
		AbortWithError(c, ErrTooManyRequests)
		return false
	}
	return true
}
