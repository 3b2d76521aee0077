package wire

import (
	"context"
	"net/http"
	"strings"
	"time"

	"airport-api/internal/adaptor"
	"airport-api/internal/clock"
	"airport-api/internal/data/repository"
	"airport-api/internal/usecase"
	"airport-api/pkg/middleware"
	"airport-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Pinger reports database health for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, infra usecase.Infra, db Pinger, config *utils.Config, logger *zap.Logger) *App {
	if infra.Clock == nil {
		infra.Clock = clock.NewSystem()
	}
	service := usecase.NewService(repo, infra, config, logger)
	handler := adaptor.NewHandler(service, config.Media.MaxUploadMB<<20, logger)

	router := setupRouter(handler, repo, db, infra.Clock, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	db Pinger,
	clk clock.Clock,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	auth := middleware.AuthSession(config.JWT.Secret, repo.Session, clk, logger)
	admin := middleware.Admin(logger)

	// Apply routes
	wireUser(r, handler.Auth, handler.User, auth)
	r.Route("/api/airport", func(r chi.Router) {
		wireReference(r, handler, auth, admin)
		wireFlight(r, handler.Flight, auth, admin)
		wireOrder(r, handler.Order, auth, admin)
	})
	wireMedia(r, config.Media)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "database unavailable", nil, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}

// wireMedia serves uploaded images from MEDIA_ROOT under MEDIA_URL.
func wireMedia(r chi.Router, media utils.MediaConfig) {
	prefix := "/" + strings.Trim(media.URL, "/")
	if prefix == "/" || strings.Contains(media.URL, "://") {
		return
	}
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(media.Root)))
	r.Get(prefix+"/*", files.ServeHTTP)
}
