package handler

import (
	"encoding/json"
	"net/http"

	"fxconvert/internal/conversion"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type UpsertRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

type UpsertRateResponse struct {
	Base   string          `json:"base"`
	Target string          `json:"target"`
	Rate   decimal.Decimal `json:"rate"`
	AsOf   *string         `json:"asOf"`
}

// UpsertRate handles PUT /rates/{base}/{target}: the administrative write
// path, merging one target->rate entry with a server-assigned asOf stamp.
func (h *Handler) UpsertRate(w http.ResponseWriter, r *http.Request) {
	base := conversion.NormalizeCode(chi.URLParam(r, "base"))
	target := conversion.NormalizeCode(chi.URLParam(r, "target"))

	if len(base) != 3 || len(target) != 3 {
		writeError(w, http.StatusBadRequest, conversion.ErrBadCurrencyCode.Error())
		return
	}
	if base == target {
		writeError(w, http.StatusBadRequest, "base and target must be different")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req UpsertRateRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Rate.IsPositive() {
		writeError(w, http.StatusBadRequest, "rate must be a positive number")
		return
	}

	rec, err := h.store.UpsertRate(r.Context(), base, target, req.Rate)
	if err != nil {
		msg := "failed to store rate"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "UpsertRate", "base": base, "target": target}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, UpsertRateResponse{
		Base:   rec.Base,
		Target: target,
		Rate:   rec.Rates[target],
		AsOf:   rec.AsOf,
	})
}
