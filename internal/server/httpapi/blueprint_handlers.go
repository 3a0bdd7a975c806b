package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/dmitrijs2005/taskcal/internal/server/services"
	"github.com/gin-gonic/gin"
)

const blueprintNotFound = "Task not found or unauthorized"

type blueprintUpdateRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"defaultDescription"`
	Color       *string           `json:"color"`
	TimeOfDay   *models.TimeOfDay `json:"timeOfDay"`
}

func (s *Server) handleListBlueprints(c *gin.Context) {
	bps, err := s.svc.Blueprints.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err, blueprintNotFound)
		return
	}
	c.JSON(http.StatusOK, bps)
}

func (s *Server) handleCreateBlueprint(c *gin.Context) {
	var req services.NewBlueprint
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	bp, err := s.svc.Blueprints.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		s.respondError(c, err, blueprintNotFound)
		return
	}
	c.JSON(http.StatusCreated, bp)
}

func (s *Server) handleUpdateBlueprint(c *gin.Context) {
	var req blueprintUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	bp, err := s.svc.Blueprints.Update(c.Request.Context(), currentUserID(c), c.Param("id"), models.BlueprintPatch{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		TimeOfDay:   req.TimeOfDay,
	})
	if err != nil {
		s.respondError(c, err, blueprintNotFound)
		return
	}
	c.JSON(http.StatusOK, bp)
}

func (s *Server) handleDeleteBlueprint(c *gin.Context) {
	id := c.Param("id")
	if err := s.svc.Blueprints.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		s.respondError(c, err, blueprintNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed from library", "id": id})
}
