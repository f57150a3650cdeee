//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=label_legacy_get_test
package label_legacy_get

import (
	"context"

	"labelservice/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Service читает этикетку, ещё не перенесённую в защищённое хранилище.
type Service interface {
	LegacyLabel(ctx context.Context, orderID int64) ([]byte, error)
}

// Authorizer проверяет токен доступа до любого обращения к файлам.
type Authorizer interface {
	AuthorizeLegacy(token string, orderID int64) bool
}
