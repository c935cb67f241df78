package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"fxconvert/internal/adapters"
	"fxconvert/internal/conversion"
)

type ConversionService interface {
	Convert(ctx context.Context, fromRaw string, toRaw string, amountRaw string) (conversion.Result, error)
}

type Handler struct {
	service       ConversionService
	store         adapters.RateStore
	canonicalBase string
}

func NewConversionHandler(service ConversionService, store adapters.RateStore, canonicalBase string) *Handler {
	return &Handler{service: service, store: store, canonicalBase: canonicalBase}
}

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeErrorHint(w, statusCode, errorMsg, "")
}

func writeErrorHint(w http.ResponseWriter, statusCode int, errorMsg string, hint string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
		Hint:  hint,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
