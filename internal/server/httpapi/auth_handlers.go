package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Preferences map[string]any `json:"preferences"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Preferences: map[string]any{"theme": u.Theme},
	}
}

// setRefreshCookie stores the refresh token in an httpOnly cookie. maxAge -1
// clears it.
func (s *Server) setRefreshCookie(c *gin.Context, token string, maxAge int) {
	if s.secureCookie {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(common.RefreshTokenCookieName, token, maxAge, "/", "", s.secureCookie, true)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, pair, err := s.svc.Users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
			return
		}
		s.respondError(c, err, "")
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", user.ID)
	s.setRefreshCookie(c, pair.RefreshToken, s.cookieMaxAge)
	c.JSON(http.StatusCreated, gin.H{
		"user":        newUserResponse(user),
		"accessToken": pair.AccessToken,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, pair, err := s.svc.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		s.respondError(c, err, "")
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken, s.cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{
		"user":        newUserResponse(user),
		"accessToken": pair.AccessToken,
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	token, err := c.Cookie(common.RefreshTokenCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No refresh token provided"})
		return
	}

	pair, err := s.svc.Users.RefreshToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrRefreshTokenExpired) {
			s.setRefreshCookie(c, "", -1)
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid or expired refresh token"})
			return
		}
		s.respondError(c, err, "")
		return
	}

	s.setRefreshCookie(c, pair.RefreshToken, s.cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(common.RefreshTokenCookieName); err == nil {
		if err := s.svc.Users.Logout(c.Request.Context(), token); err != nil {
			s.logger.Warn(c.Request.Context(), "logout: refresh token not removed", "error", err)
		}
	}
	s.setRefreshCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
