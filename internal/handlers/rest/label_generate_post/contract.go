//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=label_generate_post_test
package label_generate_post

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
	GenerateLabel(ctx context.Context, orderID int64, count int) (*label.GenerateResult, error)
	LabelURL(ctx context.Context, orderID int64) (*label.LabelLink, error)
}
