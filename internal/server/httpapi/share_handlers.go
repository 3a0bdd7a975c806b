package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/gin-gonic/gin"
)

const shareNotFound = "Share link not found"

type createShareRequest struct {
	Type       string `json:"type"`
	Permission string `json:"permission"`
}

func (s *Server) handleCreateShare(c *gin.Context) {
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	t, err := models.ParseShareType(req.Type)
	if err != nil {
		s.respondError(c, err, shareNotFound)
		return
	}

	res, err := s.svc.Shares.Mint(c.Request.Context(), currentUserID(c), t, models.Permission(req.Permission))
	if err != nil {
		s.respondError(c, err, shareNotFound)
		return
	}

	s.logger.Info(c.Request.Context(), "share link minted", "owner", res.Link.OwnerID, "type", res.Link.Type, "permission", res.Link.Permission)
	c.JSON(http.StatusCreated, res)
}

// handleResolveShare is public; any failure to find an active link gets the
// same 404.
func (s *Server) handleResolveShare(c *gin.Context) {
	shared, err := s.svc.Shares.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		s.respondError(c, err, linkUnavailableMessage)
		return
	}
	c.JSON(http.StatusOK, shared)
}

func (s *Server) handleListShares(c *gin.Context) {
	links, err := s.svc.Shares.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err, shareNotFound)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (s *Server) handleDeactivateShare(c *gin.Context) {
	token := c.Param("token")
	if err := s.svc.Shares.Deactivate(c.Request.Context(), currentUserID(c), token); err != nil {
		s.respondError(c, err, shareNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Share link deactivated", "token": token})
}
