package label

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"labelservice/internal/entities"
	"labelservice/internal/labelstore"
	"labelservice/pkg/logger"
)

const bulkGenerateConcurrency = 4

// GenerateResult результат печати этикетки одного заказа.
type GenerateResult struct {
	Record        entities.LabelRecord
	TrackingCodes []string
	ParcelIDs     []int64
}

// BulkGenerateResult итог поштучной генерации по списку заказов.
// Отказ одного заказа не останавливает остальные.
type BulkGenerateResult struct {
	Generated []int64
	Failed    []int64
}

// BulkPrintResult итог пакетной печати в общий PDF.
// Record == nil означает, что перевозчик отклонил все посылки
// и файл не сохранялся.
type BulkPrintResult struct {
	Record   *entities.LabelRecord
	Printed  []int64
	Failures []entities.ParcelFailure
}

// LabelLink данные для построения ссылки на скачивание этикетки.
type LabelLink struct {
	Legacy   bool
	Filename string
	OrderID  int64
	Token    string
}

type Service struct {
	log       serviceLogger
	builder   RequestBuilder
	carrier   CarrierAPI
	store     DocumentStore
	orders    OrderStore
	txManager transactionManager
	settings  entities.Settings
	now       func() time.Time
}

func New(
	log serviceLogger,
	builder RequestBuilder,
	carrier CarrierAPI,
	store DocumentStore,
	orders OrderStore,
	txManager transactionManager,
	settings entities.Settings,
) *Service {
	return &Service{
		log:       log,
		builder:   builder,
		carrier:   carrier,
		store:     store,
		orders:    orders,
		txManager: txManager,
		settings:  settings,
		now:       time.Now,
	}
}

// GenerateLabel печатает этикетку одного заказа в count экземплярах.
// Сначала PDF сохраняется на диск, и только потом обновляется мета заказа:
// файл без меты безопаснее меты без файла.
func (s *Service) GenerateLabel(ctx context.Context, orderID int64, count int) (*GenerateResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	payload, err := s.builder.BuildSingle(*order, count, s.settings)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	result, err := s.carrier.Submit(ctx, payload, s.settings, false)
	if err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}
	if len(result.LabelData) == 0 {
		return nil, ErrNoLabelData
	}

	if err = s.store.EnsureReady(); err != nil {
		return nil, fmt.Errorf("prepare label store: %w", err)
	}

	record, err := s.store.Write(result.LabelData, labelstore.SingleFilename(orderID, s.now()))
	if err != nil {
		return nil, fmt.Errorf("store label: %w", err)
	}

	tracking, parcelIDs := collectTracking(result.Outcomes)
	if err = s.saveLabelMeta(ctx, orderID, record.Filename, tracking, parcelIDs); err != nil {
		return nil, fmt.Errorf("save order meta: %w", err)
	}

	s.log.Info("этикетка напечатана",
		logger.NewField("order_id", orderID),
		logger.NewField("filename", record.Filename),
	)

	return &GenerateResult{
		Record:        *record,
		TrackingCodes: tracking,
		ParcelIDs:     parcelIDs,
	}, nil
}

// GenerateLabels поштучно печатает этикетки для каждого заказа из списка.
func (s *Service) GenerateLabels(ctx context.Context, orderIDs []int64) (*BulkGenerateResult, error) {
	if len(orderIDs) == 0 {
		return nil, ErrNoOrderIDs
	}

	var (
		mu     sync.Mutex
		result BulkGenerateResult
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(bulkGenerateConcurrency)

	for _, orderID := range orderIDs {
		orderID := orderID
		group.Go(func() error {
			_, err := s.GenerateLabel(groupCtx, orderID, 1)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Warn("не удалось напечатать этикетку",
					logger.NewField("order_id", orderID),
					logger.NewField("error", err.Error()),
				)
				result.Failed = append(result.Failed, orderID)
				return nil
			}
			result.Generated = append(result.Generated, orderID)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sortIDs(result.Generated)
	sortIDs(result.Failed)
	return &result, nil
}

// PrintLabels пакетная печать: все посылки в одном запросе, один общий PDF.
// Частичный отказ не отменяет печать остальных; если отклонены все посылки,
// ни файл, ни мета не сохраняются.
func (s *Service) PrintLabels(ctx context.Context, orderIDs []int64) (*BulkPrintResult, error) {
	if len(orderIDs) == 0 {
		return nil, ErrNoOrderIDs
	}

	orders := make([]entities.Order, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		order, err := s.orders.GetOrder(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("get order %d: %w", orderID, err)
		}
		orders = append(orders, *order)
	}

	payload, err := s.builder.Build(orders, s.settings)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	result, err := s.carrier.Submit(ctx, payload, s.settings, true)
	if err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}

	if result.AllFailed(len(orders)) || len(result.LabelData) == 0 {
		return &BulkPrintResult{Failures: result.Failures}, nil
	}

	if err = s.store.EnsureReady(); err != nil {
		return nil, fmt.Errorf("prepare label store: %w", err)
	}

	record, err := s.store.Write(result.LabelData, labelstore.BulkFilename(s.now()))
	if err != nil {
		return nil, fmt.Errorf("store label: %w", err)
	}

	printed := make([]int64, 0, len(result.Outcomes))
	for orderID, outcomes := range groupByOrder(result.Outcomes) {
		tracking, parcelIDs := collectTracking(outcomes)
		if err = s.saveLabelMeta(ctx, orderID, record.Filename, tracking, parcelIDs); err != nil {
			return nil, fmt.Errorf("save order %d meta: %w", orderID, err)
		}
		printed = append(printed, orderID)
	}
	sortIDs(printed)

	s.log.Info("пакетная печать завершена",
		logger.NewField("filename", record.Filename),
		logger.NewField("printed", len(printed)),
		logger.NewField("rejected", len(result.Failures)),
	)

	return &BulkPrintResult{
		Record:   record,
		Printed:  printed,
		Failures: result.Failures,
	}, nil
}

// DownloadLabel отдаёт содержимое PDF по имени файла и токену доступа.
// Авторизация выполняется до любого обращения к файловой системе.
func (s *Service) DownloadLabel(_ context.Context, filename, token string) ([]byte, error) {
	if !s.store.Authorize(token, filename) {
		return nil, ErrUnauthorized
	}

	data, err := s.store.Read(filename)
	if err != nil {
		return nil, fmt.Errorf("read label: %w", err)
	}
	return data, nil
}

// LabelURL выписывает свежую ссылку на этикетку заказа.
// Для мигрированных этикеток это имя файла в хранилище, для старых,
// ещё не перенесённых, ссылка ведёт на legacy-эндпоинт.
func (s *Service) LabelURL(ctx context.Context, orderID int64) (*LabelLink, error) {
	ref, err := s.orders.GetMeta(ctx, orderID, entities.MetaPrintLabel)
	if err != nil {
		return nil, fmt.Errorf("get label meta: %w", err)
	}
	if ref == "" {
		return nil, ErrLabelNotFound
	}

	if entities.IsLegacyLabelRef(ref) {
		return &LabelLink{
			Legacy:  true,
			OrderID: orderID,
			Token:   s.store.MintLegacyToken(orderID),
		}, nil
	}

	if !s.store.Exists(ref) {
		return nil, ErrLabelNotFound
	}
	return &LabelLink{
		Filename: ref,
		OrderID:  orderID,
		Token:    s.store.MintAccessToken(ref),
	}, nil
}

func (s *Service) saveLabelMeta(ctx context.Context, orderID int64, filename string, tracking []string, parcelIDs []int64) error {
	trackingJSON, err := json.Marshal(tracking)
	if err != nil {
		return fmt.Errorf("encode tracking codes: %w", err)
	}
	parcelsJSON, err := json.Marshal(parcelIDs)
	if err != nil {
		return fmt.Errorf("encode parcel ids: %w", err)
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.orders.SetMeta(ctx, orderID, entities.MetaPrintLabel, filename); err != nil {
			return err
		}
		if err := s.orders.SetMeta(ctx, orderID, entities.MetaTrackingCodes, string(trackingJSON)); err != nil {
			return err
		}
		return s.orders.SetMeta(ctx, orderID, entities.MetaParcelIDs, string(parcelsJSON))
	})
}

func collectTracking(outcomes []entities.ParcelOutcome) ([]string, []int64) {
	tracking := make([]string, 0, len(outcomes))
	parcelIDs := make([]int64, 0, len(outcomes))
	for _, o := range outcomes {
		tracking = append(tracking, o.TrackingNumber)
		parcelIDs = append(parcelIDs, o.ParcelID)
	}
	return tracking, parcelIDs
}

func groupByOrder(outcomes []entities.ParcelOutcome) map[int64][]entities.ParcelOutcome {
	grouped := make(map[int64][]entities.ParcelOutcome, len(outcomes))
	for _, o := range outcomes {
		grouped[o.OrderID] = append(grouped[o.OrderID], o)
	}
	return grouped
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
