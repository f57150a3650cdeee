//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=label_download_get_test
package label_download_get

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

type Service interface {
	DownloadLabel(ctx context.Context, filename, token string) ([]byte, error)
}
