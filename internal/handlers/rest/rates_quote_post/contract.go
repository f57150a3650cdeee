//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rates_quote_post_test
package rates_quote_post

import (
	"labelservice/internal/service/rates"
	"labelservice/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	QuoteAll(cart rates.Cart) []rates.Rate
}
