package handler

import (
	"errors"
	"net/http"
	"time"

	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type GetRecordResponse struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	AsOf      *string                    `json:"asOf"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

// GetRecord handles GET /rates/{base}: the raw stored record for one base.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	base := conversion.NormalizeCode(chi.URLParam(r, "base"))
	if len(base) != 3 {
		writeError(w, http.StatusBadRequest, conversion.ErrBadCurrencyCode.Error())
		return
	}

	rec, err := h.store.GetByBase(r.Context(), base)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "rate record not found")
			return
		}
		msg := "ups, couldn't read rate record this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRecord", "base": base}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetRecordResponse{
		Base:      rec.Base,
		Rates:     rec.Rates,
		AsOf:      rec.AsOf,
		UpdatedAt: rec.UpdatedAt,
	})
}
