package label_generate_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"labelservice/internal/carrier/client"
	"labelservice/internal/carrier/request"
	"labelservice/internal/entities"
	"labelservice/internal/service/label"
	"labelservice/pkg/logger"
)

type generateRequest struct {
	Count int `json:"count"`
}

type generateResponse struct {
	Filename      string   `json:"filename"`
	DownloadURL   string   `json:"download_url"`
	TrackingCodes []string `json:"tracking_codes"`
	TrackingURLs  []string `json:"tracking_urls"`
	ParcelIDs     []int64  `json:"parcel_ids"`
}

type Handler struct {
	log     handlerLogger
	service Service
	country string
}

func New(log handlerLogger, service Service, country string) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
		country: country,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["order_id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var generateDTO generateRequest
	if err = json.NewDecoder(r.Body).Decode(&generateDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if generateDTO.Count <= 0 {
		generateDTO.Count = 1
	}

	result, err := h.service.GenerateLabel(r.Context(), orderID, generateDTO.Count)
	if err != nil {
		switch {
		case errors.Is(err, label.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, request.ErrPickupInfoMissing),
			errors.Is(err, request.ErrMissingRegionalFields):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, client.ErrPasswordNotSet):
			w.WriteHeader(http.StatusInternalServerError)
		case errors.Is(err, client.ErrParcelRejected):
			w.WriteHeader(http.StatusUnprocessableEntity)
		case errors.Is(err, client.ErrUnexpectedStatus),
			errors.Is(err, client.ErrMalformedResponse):
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	link, err := h.service.LabelURL(r.Context(), orderID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := generateResponse{
		Filename:      result.Record.Filename,
		DownloadURL:   downloadURL(link),
		TrackingCodes: result.TrackingCodes,
		TrackingURLs:  trackingURLs(h.country, result.TrackingCodes),
		ParcelIDs:     result.ParcelIDs,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(response); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func downloadURL(link *label.LabelLink) string {
	return "/api/v1/labels/" + url.PathEscape(link.Filename) + "?token=" + url.QueryEscape(link.Token)
}

func trackingURLs(country string, codes []string) []string {
	urls := make([]string, 0, len(codes))
	for _, code := range codes {
		urls = append(urls, entities.TrackingURL(country, code))
	}
	return urls
}
