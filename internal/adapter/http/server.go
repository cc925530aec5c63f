// Package adapthttp implements the JSON HTTP API and serves the web client.
package adapthttp

import (
	"net/http"
	"time"

	"github.com/Joshua-Precious/Nutrical/internal/app"
	"github.com/Joshua-Precious/Nutrical/internal/domain"
	"github.com/Joshua-Precious/Nutrical/internal/logger"
)

// Services bundles the application services the API routes to.
type Services struct {
	Profile *app.ProfileService
	FoodLog *app.FoodLogService
	Foods   *app.FoodService
	Water   *app.WaterService
	Weight  *app.WeightService
	Summary *app.SummaryService
	Auth    *app.AuthService
	Reset   *app.ResetService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	profile *app.ProfileService
	foodLog *app.FoodLogService
	foods   *app.FoodService
	water   *app.WaterService
	weight  *app.WeightService
	summary *app.SummaryService
	authSvc *app.AuthService
	reset   *app.ResetService

	oidcConfig  *OIDCConfig
	log         *logger.Logger
	webDir      string
	disableAuth bool
	now         func() time.Time
}

// New creates a Server wired to the given application services. A nil log
// discards output.
func New(svc Services, webDir string, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		profile:    svc.Profile,
		foodLog:    svc.FoodLog,
		foods:      svc.Foods,
		water:      svc.Water,
		weight:     svc.Weight,
		summary:    svc.Summary,
		authSvc:    svc.Auth,
		reset:      svc.Reset,
		oidcConfig: &OIDCConfig{},
		log:        log,
		webDir:     webDir,
		now:        time.Now,
	}
}

// WithoutAuth disables the auth middleware.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithOIDC enables SSO login through cfg.
func (s *Server) WithOIDC(cfg *OIDCConfig) *Server {
	if cfg != nil {
		s.oidcConfig = cfg
	}
	return s
}

func (s *Server) today() string {
	return domain.DayKey(s.now())
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	private := http.NewServeMux()
	private.HandleFunc("/profile", s.handleProfile)
	private.HandleFunc("/profile/targets", s.handleProfileTargets)
	private.HandleFunc("/data", s.handleData)

	private.HandleFunc("/food/log", s.handleFoodLog)
	private.HandleFunc("/food/log/restore", s.handleFoodRestore)
	private.HandleFunc("/food/log/{id}", s.handleFoodEntry)
	private.HandleFunc("/food/day", s.handleFoodDay)

	private.HandleFunc("/foods/custom", s.handleCustomFoods)
	private.HandleFunc("/foods/custom/{id}", s.handleCustomFood)
	private.HandleFunc("/foods/custom/{id}/log", s.handleCustomFoodLog)
	private.HandleFunc("/recipes", s.handleRecipes)
	private.HandleFunc("/recipes/{id}", s.handleRecipe)
	private.HandleFunc("/recipes/{id}/log", s.handleRecipeLog)

	private.HandleFunc("/water/today", s.handleWaterToday)
	private.HandleFunc("/water/event", s.handleWaterEvent)
	private.HandleFunc("/water/glass", s.handleWaterGlass)
	private.HandleFunc("/water/recent", s.handleWaterRecent)
	private.HandleFunc("/water/undo-last", s.handleWaterUndoLast)

	private.HandleFunc("/weight/today", s.handleWeightToday)
	private.HandleFunc("/weight/recent", s.handleWeightRecent)
	private.HandleFunc("/weight/undo-last", s.handleWeightUndoLast)

	private.HandleFunc("/summary/daily", s.handleSummaryDaily)
	private.HandleFunc("/summary/range", s.handleSummaryRange)
	private.HandleFunc("/streak", s.handleStreak)
	private.HandleFunc("/insights", s.handleInsights)
	private.HandleFunc("/recommendations", s.handleRecommendations)

	api.Handle("/", s.authMiddleware(private))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
