package label_url_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"labelservice/internal/service/label"
	"labelservice/pkg/logger"
)

type urlResponse struct {
	URL    string `json:"url"`
	Legacy bool   `json:"legacy"`
}

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

// ServeHTTP выписывает свежую ссылку на этикетку: токены короткоживущие,
// в мете заказа ссылка не хранится.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["order_id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	link, err := h.service.LabelURL(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, label.ErrLabelNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := urlResponse{
		Legacy: link.Legacy,
	}
	if link.Legacy {
		response.URL = "/api/v1/orders/" + strconv.FormatInt(link.OrderID, 10) +
			"/label/legacy?token=" + url.QueryEscape(link.Token)
	} else {
		response.URL = "/api/v1/labels/" + url.PathEscape(link.Filename) +
			"?token=" + url.QueryEscape(link.Token)
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
