package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"labelservice/internal/entities"
	"labelservice/internal/labelstore"
	"labelservice/pkg/logger"
)

// Ключи состояния миграции в персистентном KV-хранилище.
const (
	StateKey       = "gls_label_migration_status"
	CleanupDoneKey = "gls_label_orphan_cleanup_done"

	cleanupDoneValue = "1"
)

const (
	defaultBatchSize       = 5
	defaultFirstBatchDelay = 10 * time.Second
	defaultBatchDelay      = 30 * time.Second
)

// Config параметры переноса этикеток из публичного каталога загрузок.
type Config struct {
	// UploadsBaseDir корень старого публичного каталога на диске.
	UploadsBaseDir string
	// UploadsBaseURL префикс URL, под которым этот каталог раздавался.
	UploadsBaseURL string

	BatchSize       int
	FirstBatchDelay time.Duration
	BatchDelay      time.Duration
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.FirstBatchDelay <= 0 {
		c.FirstBatchDelay = defaultFirstBatchDelay
	}
	if c.BatchDelay <= 0 {
		c.BatchDelay = defaultBatchDelay
	}
	return c
}

// Coordinator переносит этикетки из публичного каталога в защищённое
// хранилище небольшими порциями, не блокируя остальную работу сервиса.
// Состояние хранится персистентно, поэтому перенос переживает рестарты
// и никогда не запускается повторно после завершения.
type Coordinator struct {
	log       serviceLogger
	orders    OrderStore
	state     StateStore
	store     DocumentStore
	scheduler Scheduler
	cfg       Config
}

func New(
	log serviceLogger,
	orders OrderStore,
	state StateStore,
	store DocumentStore,
	scheduler Scheduler,
	cfg Config,
) *Coordinator {
	return &Coordinator{
		log:       log,
		orders:    orders,
		state:     state,
		store:     store,
		scheduler: scheduler,
		cfg:       cfg.withDefaults(),
	}
}

// Check продвигает машину состояний миграции на один шаг.
// Вызывается периодически; каждый вызов дешёвый и идемпотентный.
func (c *Coordinator) Check(ctx context.Context) error {
	raw, err := c.state.Get(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("get migration state: %w", err)
	}
	state := entities.MigrationState(raw)

	switch {
	case state.Terminal():
		return c.maybeRunOrphanCleanup(ctx)

	case state == entities.MigrationInProgress:
		// после рестарта запланированный запуск теряется, восстанавливаем
		if !c.scheduler.Pending() {
			c.scheduler.Schedule(c.cfg.FirstBatchDelay, c.ProcessBatch)
		}
		return nil

	default:
		return c.start(ctx)
	}
}

func (c *Coordinator) start(ctx context.Context) error {
	has, err := c.orders.HasLegacyLabelRefs(ctx)
	if err != nil {
		return fmt.Errorf("check legacy label refs: %w", err)
	}

	if !has {
		if err = c.state.Set(ctx, StateKey, string(entities.MigrationNotNeeded)); err != nil {
			return fmt.Errorf("set migration state: %w", err)
		}
		return c.maybeRunOrphanCleanup(ctx)
	}

	if err = c.store.EnsureReady(); err != nil {
		return fmt.Errorf("prepare label store: %w", err)
	}
	if err = c.state.Set(ctx, StateKey, string(entities.MigrationInProgress)); err != nil {
		return fmt.Errorf("set migration state: %w", err)
	}

	c.log.Info("миграция этикеток запущена")
	c.scheduler.Schedule(c.cfg.FirstBatchDelay, c.ProcessBatch)
	return nil
}

// ProcessBatch переносит очередную порцию этикеток и планирует следующую.
// Ошибка по одному заказу не прерывает порцию: такая ссылка останется
// в старом формате и попадёт в следующую выборку.
func (c *Coordinator) ProcessBatch(ctx context.Context) error {
	orderIDs, err := c.orders.OrderIDsWithLegacyLabelRefs(ctx, c.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("select legacy label refs: %w", err)
	}

	if len(orderIDs) == 0 {
		return c.finish(ctx)
	}

	if err = c.store.EnsureReady(); err != nil {
		return fmt.Errorf("prepare label store: %w", err)
	}

	for _, orderID := range orderIDs {
		if err = c.migrateOne(ctx, orderID); err != nil {
			MigratedLabelsTotal.WithLabelValues(outcomeFailed).Inc()
			c.log.Error("не удалось перенести этикетку",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err.Error()),
			)
		}
	}

	c.scheduler.Schedule(c.cfg.BatchDelay, c.ProcessBatch)
	return nil
}

func (c *Coordinator) finish(ctx context.Context) error {
	if err := c.maybeRunOrphanCleanup(ctx); err != nil {
		return err
	}
	if err := c.state.Set(ctx, StateKey, string(entities.MigrationCompleted)); err != nil {
		return fmt.Errorf("set migration state: %w", err)
	}
	c.log.Info("миграция этикеток завершена")
	return nil
}

func (c *Coordinator) migrateOne(ctx context.Context, orderID int64) error {
	ref, err := c.orders.GetMeta(ctx, orderID, entities.MetaPrintLabel)
	if err != nil {
		return fmt.Errorf("get label meta: %w", err)
	}
	if ref == "" || !isLegacyRef(ref) {
		return nil
	}

	oldPath := c.legacyPath(ref)
	filename := filepath.Base(oldPath)

	// общий файл пакетной печати переносится один раз,
	// остальным заказам достаточно перекинуть ссылку
	if c.store.Exists(filename) {
		if err = c.orders.SetMeta(ctx, orderID, entities.MetaPrintLabel, filename); err != nil {
			return fmt.Errorf("repoint label meta: %w", err)
		}
		c.removeLegacyFile(oldPath)
		MigratedLabelsTotal.WithLabelValues(outcomeRepointed).Inc()
		return nil
	}

	data, err := os.ReadFile(oldPath)
	if err != nil {
		if os.IsNotExist(err) {
			// файла уже нет, ссылка мертва: чистим мету, миграция по заказу закрыта
			if err = c.orders.DeleteMeta(ctx, orderID, entities.MetaPrintLabel); err != nil {
				return fmt.Errorf("clear dead label meta: %w", err)
			}
			MigratedLabelsTotal.WithLabelValues(outcomeMissing).Inc()
			return nil
		}
		return fmt.Errorf("read legacy label: %w", err)
	}

	if _, err = c.store.Write(data, filename); err != nil {
		return fmt.Errorf("store migrated label: %w", err)
	}
	if err = c.orders.SetMeta(ctx, orderID, entities.MetaPrintLabel, filename); err != nil {
		return fmt.Errorf("repoint label meta: %w", err)
	}
	c.removeLegacyFile(oldPath)

	MigratedLabelsTotal.WithLabelValues(outcomeMigrated).Inc()
	c.log.Info("этикетка перенесена в защищённое хранилище",
		logger.NewField("order_id", orderID),
		logger.NewField("filename", filename),
	)
	return nil
}

// LegacyLabel читает ещё не перенесённую этикетку напрямую из старого каталога.
// Запасной путь на время миграции: новые этикетки читаются из хранилища.
func (c *Coordinator) LegacyLabel(ctx context.Context, orderID int64) ([]byte, error) {
	ref, err := c.orders.GetMeta(ctx, orderID, entities.MetaPrintLabel)
	if err != nil {
		return nil, fmt.Errorf("get label meta: %w", err)
	}
	if ref == "" {
		return nil, ErrLegacyLabelNotFound
	}
	if !isLegacyRef(ref) {
		return nil, ErrNotLegacyLabel
	}

	data, err := os.ReadFile(c.legacyPath(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLegacyLabelNotFound
		}
		return nil, fmt.Errorf("read legacy label: %w", err)
	}
	return data, nil
}

func (c *Coordinator) maybeRunOrphanCleanup(ctx context.Context) error {
	done, err := c.state.Get(ctx, CleanupDoneKey)
	if err != nil {
		return fmt.Errorf("get cleanup state: %w", err)
	}
	if done == cleanupDoneValue {
		return nil
	}

	removed := c.cleanupOrphans()
	if err = c.state.Set(ctx, CleanupDoneKey, cleanupDoneValue); err != nil {
		return fmt.Errorf("set cleanup state: %w", err)
	}

	c.log.Info("очистка осиротевших этикеток завершена",
		logger.NewField("removed", removed),
	)
	return nil
}

// cleanupOrphans удаляет из старого каталога файлы этикеток, на которые
// не осталось ссылок: после переноса всех ссылок любой файл по схеме
// именования этикеток в каталоге загрузок осиротел.
func (c *Coordinator) cleanupOrphans() int {
	pattern := filepath.Join(c.cfg.UploadsBaseDir, "*", "*", labelstore.FilenamePattern)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		c.log.Warn("не удалось перечислить старый каталог",
			logger.NewField("error", err.Error()),
		)
		return 0
	}

	removed := 0
	for _, path := range matches {
		if !labelstore.MatchesNamingScheme(filepath.Base(path)) {
			continue
		}
		if err := os.Remove(path); err != nil {
			c.log.Warn("не удалось удалить осиротевший файл",
				logger.NewField("path", path),
				logger.NewField("error", err.Error()),
			)
			continue
		}
		removed++
		OrphanFilesDeletedTotal.Inc()
	}
	return removed
}

func (c *Coordinator) removeLegacyFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.log.Warn("не удалось удалить старый файл этикетки",
			logger.NewField("path", path),
			logger.NewField("error", err.Error()),
		)
	}
}

func (c *Coordinator) legacyPath(ref string) string {
	if c.cfg.UploadsBaseURL != "" && strings.HasPrefix(ref, c.cfg.UploadsBaseURL) {
		return filepath.Join(c.cfg.UploadsBaseDir, strings.TrimPrefix(ref, c.cfg.UploadsBaseURL))
	}
	// ссылка без известного префикса: вырезаем хвост после маркера каталога
	if idx := strings.Index(ref, entities.LegacyLabelRefMarker); idx >= 0 {
		return filepath.Join(c.cfg.UploadsBaseDir, ref[idx+len(entities.LegacyLabelRefMarker):])
	}
	return filepath.Join(c.cfg.UploadsBaseDir, filepath.Base(ref))
}

func isLegacyRef(ref string) bool {
	return entities.IsLegacyLabelRef(ref)
}
