package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/dmitrijs2005/taskcal/internal/server/services"
	"github.com/gin-gonic/gin"
)

const entryNotFound = "Entry not found"

type entryUpdateRequest struct {
	Status            *models.EntryStatus  `json:"status"`
	Date              *models.CalendarDate `json:"date"`
	Order             *int                 `json:"order"`
	TimeOfDay         *models.TimeOfDay    `json:"timeOfDay"`
	CustomDescription *string              `json:"customDescription"`
}

func (r entryUpdateRequest) patch() models.EntryPatch {
	return models.EntryPatch{
		Status:            r.Status,
		Date:              r.Date,
		Order:             r.Order,
		TimeOfDay:         r.TimeOfDay,
		CustomDescription: r.CustomDescription,
	}
}

func (s *Server) handleListEntries(c *gin.Context) {
	entries, err := s.svc.Calendar.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err, entryNotFound)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(c *gin.Context) {
	var req services.NewEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := s.svc.Calendar.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		s.respondError(c, err, "Task not found")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleUpdateEntry(c *gin.Context) {
	var req entryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := s.svc.Calendar.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req.patch())
	if err != nil {
		s.respondError(c, err, entryNotFound)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(c *gin.Context) {
	id := c.Param("id")
	if err := s.svc.Calendar.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		s.respondError(c, err, entryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry removed", "id": id})
}

func (s *Server) handleExport(c *gin.Context) {
	res, err := s.svc.Calendar.Export(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err, entryNotFound)
		return
	}
	s.logger.Info(c.Request.Context(), "calendar exported", "key", res.Key, "entries", res.Entries)
	c.JSON(http.StatusOK, res)
}
