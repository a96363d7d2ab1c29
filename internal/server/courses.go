package server

import (
	"net/http"

	coursedomain "github.com/ascendly/ascendly/internal/course/domain"
	"github.com/gin-gonic/gin"
)

type createCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// GET /courses
func (s *Server) listPublishedCourses(c *gin.Context) {
	courses, err := s.courseSvc.List(c.Request.Context(), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// POST /admin/courses
func (s *Server) createCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	authedUser := currentUser(c)
	if authedUser == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	created, err := s.courseSvc.Create(c.Request.Context(), coursedomain.CreateRequest{
		AuthorID:    authedUser.ID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// POST /admin/courses/:slug/publish
func (s *Server) publishCourse(c *gin.Context) {
	published, err := s.courseSvc.Publish(c.Request.Context(), c.Param("slug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, published)
}
