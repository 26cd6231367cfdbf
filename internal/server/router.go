// Package server wires repositories, services and handlers into the HTTP
// router.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"foodlog/internal/config"
	"foodlog/internal/handlers"
	"foodlog/internal/metrics"
	mw "foodlog/internal/middleware"
	"foodlog/internal/repository"
	"foodlog/internal/services"
	"foodlog/internal/web"
)

// Form posts allowed per client IP.
const (
	formRate  = 1.0
	formBurst = 10
)

// NewRouter builds the full application handler on top of an open,
// migrated database. Background work started for the router stops when ctx
// is done.
func NewRouter(ctx context.Context, cfg config.Config, db *sqlx.DB, logger *zap.Logger) (http.Handler, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	enc, err := services.NewEncryptionService(cfg.SecretKey)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewLogRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authSvc := services.NewAuthService(userRepo, cfg.AdminEmails)
	diarySvc := services.NewDiaryService(logRepo, foodRepo)
	feedbackSvc := services.NewFeedbackService(feedbackRepo, enc)

	userHandler := handlers.NewUserHandler(authSvc, logger)
	authMW := mw.NewAuthMiddleware([]byte(cfg.SecretKey), cfg.SessionTTL, cfg.IsProduction()).
		WithUserCheck(userHandler.Exists)
	resp := handlers.NewResponder(renderer, authSvc, logger)

	authHandler := handlers.NewAuthHandler(resp, authSvc, authMW)
	homeHandler := handlers.NewHomeHandler(resp, feedbackSvc)
	logHandler := handlers.NewLogHandler(resp, diarySvc)
	foodHandler := handlers.NewFoodHandler(resp, diarySvc)
	adminHandler := handlers.NewAdminHandler(statsRepo, feedbackSvc, logger)

	limitForms := mw.RateLimit(ctx, formRate, formBurst)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.ZapRequestLogger(logger))
	r.Use(mw.ZapRecoverer(logger))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))
	r.Use(authMW.LoadSession)

	r.NotFound(resp.NotFound)

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/", homeHandler.Home)
	r.With(limitForms).Post("/", homeHandler.SubmitFeedback)
	r.Get("/calculator", homeHandler.Static("calculator.html", "Calculator"))
	r.Post("/calculator", homeHandler.Static("calculator.html", "Calculator"))
	r.Get("/terms", homeHandler.Static("terms.html", "Terms"))
	r.Get("/services", homeHandler.Static("services.html", "Services"))
	r.Get("/food", foodHandler.Names)

	r.Get("/signup", authHandler.SignupPage)
	r.With(limitForms).Post("/signup", authHandler.Signup)
	r.Get("/login", authHandler.LoginPage)
	r.With(limitForms).Post("/login", authHandler.Login)

	r.Group(func(pr chi.Router) {
		pr.Use(authMW.RequireAuth)
		pr.Get("/logout", authHandler.Logout)
		pr.Get("/me", userHandler.GetMe)
		pr.Get("/calendar", logHandler.Calendar)
		pr.Post("/create_log", logHandler.Create)
		pr.Get("/view/{logID}", logHandler.View)
		pr.Post("/view/{logID}", logHandler.AddFood)
		pr.Get("/remove_log/{logID}", logHandler.Remove)
		pr.Post("/add_food_to_log/{logID}", logHandler.AddFood)
		pr.Get("/remove_food_from_log/{logID}/{prodID}", logHandler.RemoveFood)
	})

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(authMW.RequireAdmin(userHandler.IsAdmin))
		ar.Get("/overview", adminHandler.Overview)
		ar.Get("/feedback", adminHandler.Feedback)
	})

	return r, nil
}
