package main

import (
	"net/http"

	"github.com/Nivlac17/jwt-pizza-service/internal/api"
	apiMiddleware "github.com/Nivlac17/jwt-pizza-service/internal/api/middleware"
	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(app.metrics.Instrument)

	authHandler := api.NewAuthHandler(app.authService)
	userHandler := api.NewUserHandler(app.userService)
	franchiseHandler := api.NewFranchiseHandler(app.franchiseService)
	orderHandler := api.NewOrderHandler(app.orderService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(app.authLimiter.Handler).Post("/", authHandler.Register)
			r.With(app.authLimiter.Handler).Put("/", authHandler.Login)
			r.With(authMiddleware.Authenticate).Delete("/", authHandler.Logout)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/", userHandler.ListUsers)
			r.Get("/me", userHandler.GetMe)
			r.Put("/{userID}", userHandler.UpdateUser)
			r.Delete("/{userID}", userHandler.DeleteUser)
		})

		r.Route("/franchise", func(r chi.Router) {
			// Public endpoints
			r.Get("/", franchiseHandler.ListFranchises)
			r.Delete("/{franchiseID}", franchiseHandler.DeleteFranchise)
			r.Get("/{franchiseID}/store/{storeID}", franchiseHandler.GetStore)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/", franchiseHandler.CreateFranchise)
				r.Get("/{userID}", franchiseHandler.ListUserFranchises)
				r.Post("/{franchiseID}/store", franchiseHandler.CreateStore)
				r.Delete("/{franchiseID}/store/{storeID}", franchiseHandler.DeleteStore)
			})
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/menu", orderHandler.GetMenu)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Put("/menu", orderHandler.AddMenuItem)
				r.Get("/", orderHandler.ListOrders)
				r.Post("/", orderHandler.CreateOrder)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", app.metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "unknown endpoint")
	})

	return r
}
