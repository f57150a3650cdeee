package label_legacy_get

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"labelservice/internal/service/migration"
	"labelservice/pkg/logger"
)

type Handler struct {
	log        handlerLogger
	service    Service
	authorizer Authorizer
}

func New(log handlerLogger, service Service, authorizer Authorizer) *Handler {
	return &Handler{
		log:        log.With(),
		service:    service,
		authorizer: authorizer,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["order_id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !h.authorizer.AuthorizeLegacy(r.URL.Query().Get("token"), orderID) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	data, err := h.service.LegacyLabel(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, migration.ErrLegacyLabelNotFound),
			errors.Is(err, migration.ErrNotLegacyLabel):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=0, must-revalidate")

	if _, err = w.Write(data); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("write label response")
	}
}
