//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=labels_bulk_post_test
package labels_bulk_post

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
	GenerateLabels(ctx context.Context, orderIDs []int64) (*label.BulkGenerateResult, error)
	PrintLabels(ctx context.Context, orderIDs []int64) (*label.BulkPrintResult, error)
	LabelURL(ctx context.Context, orderID int64) (*label.LabelLink, error)
}
