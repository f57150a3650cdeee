package migration

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=migration_test

import (
	"context"
	"time"

	"labelservice/internal/entities"
	"labelservice/pkg/logger"
)

// OrderStore доступ к мете заказов со ссылками на этикетки.
type OrderStore interface {
	HasLegacyLabelRefs(ctx context.Context) (bool, error)
	OrderIDsWithLegacyLabelRefs(ctx context.Context, limit int) ([]int64, error)
	GetMeta(ctx context.Context, orderID int64, key string) (string, error)
	SetMeta(ctx context.Context, orderID int64, key, value string) error
	DeleteMeta(ctx context.Context, orderID int64, key string) error
}

// StateStore персистентное хранилище состояния процесса миграции.
// Состояние переживает рестарты: миграция продолжается с того же места.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// DocumentStore защищённое хранилище, куда переносятся этикетки.
type DocumentStore interface {
	EnsureReady() error
	Exists(filename string) bool
	Write(data []byte, filename string) (*entities.LabelRecord, error)
}

// Scheduler откладывает выполнение очередной порции миграции.
// Контекст запланированного запуска принадлежит планировщику:
// порция должна пережить короткоживущий контекст проверки.
type Scheduler interface {
	Schedule(delay time.Duration, fn func(context.Context) error)
	Pending() bool
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
