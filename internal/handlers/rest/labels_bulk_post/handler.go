package labels_bulk_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"labelservice/internal/carrier/client"
	"labelservice/internal/carrier/request"
	"labelservice/internal/entities"
	"labelservice/internal/service/label"
	"labelservice/pkg/logger"
)

const (
	modePrint    = "print"
	modeGenerate = "generate"
)

type bulkRequest struct {
	OrderIDs []int64 `json:"order_ids"`
	// Mode: "print" — все посылки одним запросом в общий PDF,
	// "generate" — поштучная печать, отдельный PDF на заказ.
	Mode string `json:"mode"`
}

type parcelFailureDTO struct {
	OrderID int64  `json:"order_id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type printResponse struct {
	Filename    string             `json:"filename"`
	DownloadURL string             `json:"download_url"`
	Printed     []int64            `json:"printed"`
	Failures    []parcelFailureDTO `json:"failures"`
}

type generateResponse struct {
	Generated []int64 `json:"generated"`
	Failed    []int64 `json:"failed"`
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
	var bulkDTO bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&bulkDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if len(bulkDTO.OrderIDs) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch bulkDTO.Mode {
	case modeGenerate:
		h.generate(w, r, bulkDTO.OrderIDs)
	case modePrint, "":
		h.print(w, r, bulkDTO.OrderIDs)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (h *Handler) print(w http.ResponseWriter, r *http.Request, orderIDs []int64) {
	result, err := h.service.PrintLabels(r.Context(), orderIDs)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := printResponse{
		Printed:  result.Printed,
		Failures: toFailureDTOs(result.Failures),
	}

	// перевозчик отклонил все посылки, файла нет
	if result.Record == nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, response)
		return
	}

	response.Filename = result.Record.Filename
	if len(result.Printed) > 0 {
		link, err := h.service.LabelURL(r.Context(), result.Printed[0])
		if err == nil && !link.Legacy {
			response.DownloadURL = "/api/v1/labels/" + url.PathEscape(link.Filename) +
				"?token=" + url.QueryEscape(link.Token)
		}
	}

	h.writeJSON(w, http.StatusCreated, response)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, orderIDs []int64) {
	result, err := h.service.GenerateLabels(r.Context(), orderIDs)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, generateResponse{
		Generated: result.Generated,
		Failed:    result.Failed,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, label.ErrNoOrderIDs),
		errors.Is(err, label.ErrOrderNotFound),
		errors.Is(err, request.ErrNoOrders),
		errors.Is(err, request.ErrPickupInfoMissing),
		errors.Is(err, request.ErrMissingRegionalFields):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, client.ErrPasswordNotSet):
		w.WriteHeader(http.StatusInternalServerError)
	case errors.Is(err, client.ErrUnexpectedStatus),
		errors.Is(err, client.ErrMalformedResponse):
		w.WriteHeader(http.StatusBadGateway)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func toFailureDTOs(failures []entities.ParcelFailure) []parcelFailureDTO {
	dtos := make([]parcelFailureDTO, 0, len(failures))
	for _, f := range failures {
		dtos = append(dtos, parcelFailureDTO{
			OrderID: f.OrderID,
			Code:    f.Code,
			Message: f.Message,
		})
	}
	return dtos
}
