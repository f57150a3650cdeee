package label_download_get

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"labelservice/internal/labelstore"
	"labelservice/internal/service/label"
	"labelservice/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]
	token := r.URL.Query().Get("token")

	data, err := h.service.DownloadLabel(r.Context(), filename, token)
	if err != nil {
		switch {
		case errors.Is(err, label.ErrUnauthorized):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, labelstore.ErrNotFound),
			errors.Is(err, labelstore.ErrInvalidFilename):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	// этикетка не должна оседать в разделяемых кешах
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=0, must-revalidate")

	if _, err = w.Write(data); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("write label response")
	}
}
