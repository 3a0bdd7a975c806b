package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/gin-gonic/gin"
)

const linkUnavailableMessage = "Invalid or expired share link"

// respondError maps service errors onto status codes. Anything unexpected
// is logged and answered with a generic 500.
func (s *Server) respondError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationMessage(err)})
	case errors.Is(err, common.ErrLinkUnavailable):
		c.JSON(http.StatusNotFound, gin.H{"message": linkUnavailableMessage})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "Already exists"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// validationMessage drops the sentinel prefix, leaving e.g.
// "date is required".
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, common.ErrorValidation.Error()+": "); ok {
		return rest
	}
	return msg
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
}
