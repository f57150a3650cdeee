//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=label_url_get_test
package label_url_get

import (
	"context"

	"labelservice/internal/service/label"
	"labelservice/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	LabelURL(ctx context.Context, orderID int64) (*label.LabelLink, error)
}
