package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"labelservice/internal/carrier/request"
	"labelservice/internal/entities"
	"labelservice/pkg/logger"
)

const (
	productionBaseURL = "https://api.mygls."
	sandboxBaseURL    = "https://api.test.mygls."
	printLabelsPath   = "/ParcelService.svc/json/PrintLabels"

	// RequestTimeout предел ожидания ответа перевозчика.
	RequestTimeout = 60 * time.Second
)

// Client отправляет запросы печати этикеток в API перевозчика.
// Ретраев нет: транспортная ошибка сразу возвращается вызывающему.
type Client struct {
	log        handlerLogger
	httpClient *http.Client
}

func New(log handlerLogger, httpClient *http.Client) *Client {
	clientLog := log.With()

	return &Client{
		log:        clientLog,
		httpClient: httpClient,
	}
}

// Submit отправляет запрос и разбирает пакетный результат.
//
// Отказы перевозчика по отдельным посылкам не считаются ошибкой вызова
// при isBatch=true: они собираются в CarrierResult.Failures, а этикетки
// успешной части остаются пригодными. Для одиночной отправки (isBatch=false)
// первый отказ конвертируется в ошибку - одиночные вызыватели ждут исключения.
func (c *Client) Submit(ctx context.Context, payload *request.Payload, settings entities.Settings, isBatch bool) (*entities.CarrierResult, error) {
	if settings.Password == "" {
		return nil, ErrPasswordNotSet
	}

	authorized := *payload
	authorized.Username = settings.Username
	authorized.Password = PasswordDigest(settings.Password)

	body, err := json.Marshal(&authorized)
	if err != nil {
		return nil, fmt.Errorf("encode carrier request: %w", err)
	}

	url := apiURL(settings)
	start := time.Now()

	parsed, err := c.post(ctx, url, body)
	if err != nil {
		CarrierRequestDuration.WithLabelValues(string(settings.Mode), "transport_error").Observe(time.Since(start).Seconds())
		c.log.With(
			logger.NewField("url", url),
			logger.NewField("error", err),
		).Error("carrier request failed")
		return nil, err
	}

	result := c.toResult(parsed, settings)

	outcome := "ok"
	if len(result.Failures) > 0 {
		outcome = "partial_failure"
	}
	CarrierRequestDuration.WithLabelValues(string(settings.Mode), outcome).Observe(time.Since(start).Seconds())

	if settings.AuditLogging {
		c.auditLog(url, payload, parsed)
	}

	if !isBatch && len(result.Failures) > 0 {
		first := result.Failures[0]
		return nil, fmt.Errorf("%w: %s (code %s)", ErrParcelRejected, first.Message, first.Code)
	}

	return result, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) (*printLabelsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build carrier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var parsed printLabelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &parsed, nil
}

func (c *Client) toResult(parsed *printLabelsResponse, settings entities.Settings) *entities.CarrierResult {
	result := &entities.CarrierResult{
		LabelData: DecodeLabelBytes(parsed.Labels),
	}

	for _, info := range parsed.PrintLabelsInfoList {
		orderID, ok := entities.OrderIDFromReference(settings.ClientReferenceFormat, info.ClientReference)
		if !ok {
			c.log.With(
				logger.NewField("client_reference", info.ClientReference),
			).Warn("carrier returned unrecognized client reference")
		}
		result.Outcomes = append(result.Outcomes, entities.ParcelOutcome{
			ClientReference: info.ClientReference,
			OrderID:         orderID,
			ParcelID:        info.ParcelID,
			TrackingNumber:  strconv.FormatInt(info.ParcelNumber, 10),
		})
	}

	for _, carrierErr := range parsed.PrintLabelsErrorList {
		CarrierParcelFailuresTotal.WithLabelValues(carrierErr.ErrorCode).Inc()

		for _, ref := range carrierErr.ClientReferenceList {
			orderID, _ := entities.OrderIDFromReference(settings.ClientReferenceFormat, ref)
			result.Failures = append(result.Failures, entities.ParcelFailure{
				OrderID: orderID,
				Code:    carrierErr.ErrorCode,
				Message: carrierErr.ErrorDescription,
			})
		}

		c.log.With(
			logger.NewField("error_code", carrierErr.ErrorCode),
			logger.NewField("error", carrierErr.ErrorDescription),
			logger.NewField("client_references", carrierErr.ClientReferenceList),
		).Warn("carrier rejected parcels")
	}

	return result
}

// auditLog пишет запрос и ответ в лог. Байты этикеток вырезаются до
// сериализации: бинарное содержимое в логах бесполезно и огромно.
func (c *Client) auditLog(url string, payload *request.Payload, parsed *printLabelsResponse) {
	redacted := *parsed
	redacted.Labels = nil

	c.log.With(
		logger.NewField("url", url),
		logger.NewField("parcels", len(payload.ParcelList)),
		logger.NewField("response", redacted),
	).Info("carrier request audit")
}

func apiURL(settings entities.Settings) string {
	base := sandboxBaseURL
	if settings.Mode == entities.ModeProduction {
		base = productionBaseURL
	}
	return base + strings.ToLower(settings.Country) + printLabelsPath
}
