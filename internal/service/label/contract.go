package label

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=label_test

import (
	"context"

	"labelservice/internal/carrier/request"
	"labelservice/internal/entities"
	"labelservice/pkg/logger"
)

// OrderStore отдаёт заказы и их метаданные.
type OrderStore interface {
	GetOrder(ctx context.Context, orderID int64) (*entities.Order, error)
	GetMeta(ctx context.Context, orderID int64, key string) (string, error)
	SetMeta(ctx context.Context, orderID int64, key, value string) error
}

// RequestBuilder собирает запрос к перевозчику из заказов и настроек.
type RequestBuilder interface {
	Build(orders []entities.Order, settings entities.Settings) (*request.Payload, error)
	BuildSingle(order entities.Order, count int, settings entities.Settings) (*request.Payload, error)
}

// CarrierAPI выполняет запрос печати этикеток.
type CarrierAPI interface {
	Submit(ctx context.Context, payload *request.Payload, settings entities.Settings, isBatch bool) (*entities.CarrierResult, error)
}

// DocumentStore хранит PDF-файлы этикеток и выдаёт токены доступа к ним.
type DocumentStore interface {
	EnsureReady() error
	Write(data []byte, filename string) (*entities.LabelRecord, error)
	Read(filename string) ([]byte, error)
	Exists(filename string) bool
	MintAccessToken(filename string) string
	Authorize(token, filename string) bool
	MintLegacyToken(orderID int64) string
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}
