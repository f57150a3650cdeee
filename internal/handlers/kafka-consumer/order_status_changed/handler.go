package order_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"labelservice/internal/carrier/client"
	"labelservice/internal/service/label"
	"labelservice/pkg/logger"
)

type statusChangedEvent struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// Handler печатает этикетку автоматически, когда заказ переходит
// в оплаченный статус. Остальные статусы пропускаются.
type Handler struct {
	labelService             Service
	log                      handlerLogger
	triggerStatus            string
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, labelService Service, triggerStatus string, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		labelService:             labelService,
		log:                      handlerLog,
		triggerStatus:            triggerStatus,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("order.status.changed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("order.status.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("order.status.changed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	if event.Status != h.triggerStatus {
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("order.status.changed processing")

	result, err := h.labelService.GenerateLabel(ctx, event.OrderID, 1)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.status.changed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, label.ErrOrderNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.status.changed handler order not found")

		case errors.Is(err, client.ErrParcelRejected):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.status.changed handler carrier rejected parcel")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.status.changed handler failed to print label")
		}
		sess.MarkMessage(message, "")
		return false
	}

	// новая дочка с актуальными полями
	msgLog = h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("filename", result.Record.Filename),
		logger.NewField("offset", message.Offset),
	)
	msgLog.Info("order.status.changed: label printed")

	sess.MarkMessage(message, "")
	return false
}
