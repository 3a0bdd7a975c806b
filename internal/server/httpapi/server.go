// Package httpapi exposes the REST API over gin: auth, task blueprints,
// calendar entries and share links.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskcal/internal/logging"
	"github.com/dmitrijs2005/taskcal/internal/server/config"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/dmitrijs2005/taskcal/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	AuthenticatedUserID(accessToken string) (string, error)
}

type BlueprintService interface {
	List(ctx context.Context, ownerID string) ([]*models.Blueprint, error)
	Create(ctx context.Context, ownerID string, in services.NewBlueprint) (*models.Blueprint, error)
	Update(ctx context.Context, ownerID, id string, patch models.BlueprintPatch) (*models.Blueprint, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type CalendarService interface {
	List(ctx context.Context, ownerID string) ([]*models.CalendarEntry, error)
	Create(ctx context.Context, ownerID string, in services.NewEntry) (*models.CalendarEntry, error)
	Update(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.CalendarEntry, error)
	Delete(ctx context.Context, ownerID, id string) error
	Export(ctx context.Context, ownerID string) (*services.ExportResult, error)
}

type ShareService interface {
	Mint(ctx context.Context, ownerID string, t models.ShareType, requested models.Permission) (*services.MintResult, error)
	Resolve(ctx context.Context, token string) (*services.SharedCalendar, error)
	List(ctx context.Context, ownerID string) ([]*models.ShareLink, error)
	Deactivate(ctx context.Context, ownerID, token string) error
}

// Services groups the business logic the handlers delegate to.
type Services struct {
	Users      UserService
	Blueprints BlueprintService
	Calendar   CalendarService
	Shares     ShareService
}

// Server is the REST API server.
type Server struct {
	address       string
	logger        logging.Logger
	router        *gin.Engine
	svc           Services
	allowedOrigin string
	cookieMaxAge  int
	secureCookie  bool
}

// ConfigureMode keeps gin's debug output (route dump, warnings) for debug
// logging only. gin's mode is process-wide, so this runs once at startup.
func ConfigureMode(logLevel string) {
	if strings.EqualFold(logLevel, "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}

// NewServer registers all routes. PublicBaseURL is the only CORS origin
// and decides whether the refresh cookie is Secure.
func NewServer(addr string, l logging.Logger, cfg *config.Config, svc Services) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	origin := strings.TrimRight(cfg.PublicBaseURL, "/")
	s := &Server{
		address:       addr,
		logger:        l.With("module", "http_server"),
		router:        router,
		svc:           svc,
		allowedOrigin: origin,
		cookieMaxAge:  int(cfg.RefreshTokenValidityDuration / time.Second),
		secureCookie:  strings.HasPrefix(origin, "https://"),
	}

	router.Use(s.requestLogger(), s.cors())

	router.GET("/health", s.handleHealth)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", s.handleRegister)
		authRoutes.POST("/login", s.handleLogin)
		authRoutes.POST("/refresh", s.handleRefresh)
		authRoutes.POST("/logout", s.handleLogout)
	}

	// public: the token is the credential
	router.GET("/share/:token", s.handleResolveShare)

	protected := router.Group("", s.requireAuth())
	{
		protected.POST("/share", s.handleCreateShare)
		protected.GET("/share", s.handleListShares)
		protected.DELETE("/share/:token", s.handleDeactivateShare)

		protected.GET("/calendar", s.handleListEntries)
		protected.POST("/calendar", s.handleCreateEntry)
		protected.POST("/calendar/export", s.handleExport)
		protected.PUT("/calendar/:id", s.handleUpdateEntry)
		protected.DELETE("/calendar/:id", s.handleDeleteEntry)

		protected.GET("/tasks", s.handleListBlueprints)
		protected.POST("/tasks", s.handleCreateBlueprint)
		protected.PUT("/tasks/:id", s.handleUpdateBlueprint)
		protected.DELETE("/tasks/:id", s.handleDeleteBlueprint)
	}

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(context.Background(), "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Task Manager API is up and running!",
	})
}
