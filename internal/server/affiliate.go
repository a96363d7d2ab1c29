package server

import (
	"net/http"

	"github.com/ascendly/ascendly/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

// POST /affiliate/referrals
func (s *Server) createReferralCode(c *gin.Context) {
	authedUser := currentUser(c)
	if authedUser == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	created, err := s.referralSvc.CreateCode(c.Request.Context(), authedUser.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":       created.Code,
		"created_at": created.CreatedAt,
	})
}

// GET /affiliate/commissions
func (s *Server) listMyCommissions(c *gin.Context) {
	authedUser := currentUser(c)
	if authedUser == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	items, err := s.commissions.ListByAffiliate(c.Request.Context(), s.db, authedUser.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commissions": items})
}

// GET /admin/users
func (s *Server) listUsers(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	users, info, err := s.users.ListPage(c.Request.Context(), s.db, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "page_info": info})
}
