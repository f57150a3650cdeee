package rates_quote_post

import (
	"encoding/json"
	"net/http"

	"labelservice/internal/service/rates"
	"labelservice/pkg/logger"
)

type quoteRequest struct {
	Weight   float64 `json:"weight"`
	Subtotal float64 `json:"subtotal"`
	Country  string  `json:"country"`
}

type rateDTO struct {
	MethodID string  `json:"method_id"`
	Title    string  `json:"title"`
	Cost     float64 `json:"cost"`
	Free     bool    `json:"free"`
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var quoteDTO quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&quoteDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if quoteDTO.Weight < 0 || quoteDTO.Country == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	quotes := h.service.QuoteAll(rates.Cart{
		Weight:             quoteDTO.Weight,
		Subtotal:           quoteDTO.Subtotal,
		DestinationCountry: quoteDTO.Country,
	})

	response := make([]rateDTO, 0, len(quotes))
	for _, q := range quotes {
		response = append(response, rateDTO{
			MethodID: q.MethodID,
			Title:    q.Title,
			Cost:     q.Cost,
			Free:     q.Free,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
