package api

import (
	"fxconvert/internal/conversion/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(conversionHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/api/v1/convert", conversionHandler.Convert)
	router.Get("/api/v1/rates/{base:[A-Za-z]{3}}", conversionHandler.GetRecord)
	router.Put("/api/v1/rates/{base:[A-Za-z]{3}}/{target:[A-Za-z]{3}}", conversionHandler.UpsertRate)
	return router
}
