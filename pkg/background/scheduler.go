package background

import (
	"context"
	"sync"
	"time"

	"labelservice/pkg/logger"
)

// Scheduler выполняет отложенный одноразовый запуск функции.
// В отличие от Worker здесь нет периодичности: каждый запуск
// планируется явно, повторное планирование при уже ожидающем
// запуске игнорируется.
//
// Запланированный запуск живёт на контексте самого Scheduler, а не
// вызывающей стороны: вызов Schedule обычно приходит из короткой
// периодической задачи, чей контекст гаснет задолго до delay.
type Scheduler struct {
	ctx  context.Context
	log  handlerLogger
	name string

	mu      sync.Mutex
	pending bool
}

// NewScheduler создаёт Scheduler. ctx ограничивает жизнь всех
// запланированных запусков, ожидаемый срок — время жизни приложения.
func NewScheduler(ctx context.Context, log handlerLogger, name string) *Scheduler {
	return &Scheduler{
		ctx:  ctx,
		log:  log,
		name: name,
	}
}

// Schedule запускает fn через delay. Если запуск уже ожидается,
// вызов игнорируется: одновременно может ожидаться не больше одного.
func (s *Scheduler) Schedule(delay time.Duration, fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		return
	}
	s.pending = true

	s.log.Info("Scheduling run",
		logger.NewField("scheduler", s.name),
		logger.NewField("delay", delay),
	)

	go s.waitAndRun(delay, fn)
}

// Pending true когда запуск уже запланирован и ещё не выполнен.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Scheduler) waitAndRun(delay time.Duration, fn func(context.Context) error) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-s.ctx.Done():
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		s.log.Warn("Scheduled run cancelled (context done)",
			logger.NewField("scheduler", s.name),
		)
		return
	case <-timer.C:
	}

	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Scheduled run panic",
				logger.NewField("scheduler", s.name),
				logger.NewField("recover", r),
			)
		}
	}()

	if err := fn(s.ctx); err != nil {
		s.log.Error("Scheduled run failed",
			logger.NewField("scheduler", s.name),
			logger.NewField("error", err.Error()),
		)
	}
}
