package label_migration

import (
	"context"
	"time"
)

// Service продвигает машину состояний миграции этикеток.
type Service interface {
	Check(ctx context.Context) error
}

// LabelMigration периодическая проверка состояния миграции: сам перенос
// идёт отложенными порциями, задача лишь даёт машине состояний шанс
// стартовать или возобновиться после рестарта.
type LabelMigration struct {
	service  Service
	interval time.Duration
}

func NewLabelMigration(service Service, interval time.Duration) *LabelMigration {
	return &LabelMigration{
		service:  service,
		interval: interval,
	}
}

func (m *LabelMigration) TTL() time.Duration {
	return m.interval
}

func (m *LabelMigration) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	return m.service.Check(ctxWithTimeout)
}

func (m *LabelMigration) Info() string {
	return "label migration"
}
