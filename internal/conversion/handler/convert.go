package handler

import (
	"errors"
	"fmt"
	"net/http"

	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"

	"github.com/sirupsen/logrus"
)

// Convert handles GET /convert?from=&to=&amount=.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := conversion.NormalizeCode(q.Get("from"))
	to := conversion.NormalizeCode(q.Get("to"))
	amount := q.Get("amount")

	result, err := h.service.Convert(r.Context(), from, to, amount)
	if err != nil {
		if conversion.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrRateUnavailable) {
			writeErrorHint(w, http.StatusNotFound,
				fmt.Sprintf("cannot compute %s->%s from stored rates", from, to),
				fmt.Sprintf("ensure a record base=%s with %s in rates, or base=%s with both %s and %s present",
					from, to, h.canonicalBase, from, to),
			)
			return
		}
		msg := "ups, couldn't convert this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Convert", "from": from, "to": to}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
