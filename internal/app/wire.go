//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	carrierclient "labelservice/internal/carrier/client"
	"labelservice/internal/carrier/request"
	label_download_get "labelservice/internal/handlers/rest/label_download_get"
	label_generate_post "labelservice/internal/handlers/rest/label_generate_post"
	label_legacy_get "labelservice/internal/handlers/rest/label_legacy_get"
	label_url_get "labelservice/internal/handlers/rest/label_url_get"
	labels_bulk_post "labelservice/internal/handlers/rest/labels_bulk_post"
	rates_quote_post "labelservice/internal/handlers/rest/rates_quote_post"
	"labelservice/internal/handlers/tasks/label_migration"
	"labelservice/internal/labelstore"
	"labelservice/internal/pkg/config"

	orderstoreRepo "labelservice/internal/repository/orderstore"
	procstateRepo "labelservice/internal/repository/procstate"
	labelService "labelservice/internal/service/label"
	migrationService "labelservice/internal/service/migration"
	ratesService "labelservice/internal/service/rates"

	"labelservice/pkg/background"
	"labelservice/pkg/logger"
	"labelservice/pkg/querier"
	"labelservice/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	MigrationCheckInterval time.Duration
)

type Application struct {
	ServiceLabel      ServiceLabel
	ServiceMigration  ServiceMigration
	ServiceRates      ServiceRates
	LabelStore        *labelstore.Store
	BackgroundWorkers *background.Worker
}

type ServiceLabel interface {
	label_generate_post.Service
	labels_bulk_post.Service
	label_download_get.Service
	label_url_get.Service
}

type ServiceMigration interface {
	label_legacy_get.Service
}

type ServiceRates interface {
	rates_quote_post.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideMigrationCheckInterval,

		provideOrderRepository,
		provideProcStateRepository,

		provideTokenIssuer,
		provideLabelStore,
		provideRequestBuilder,
		provideHTTPClient,
		provideCarrierClient,

		provideServiceLabel,
		provideMigrationScheduler,
		provideServiceMigration,
		provideServiceRates,

		provideLabelMigrationTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceLabel), new(*labelService.Service)),
		wire.Bind(new(ServiceMigration), new(*migrationService.Coordinator)),
		wire.Bind(new(ServiceRates), new(*ratesService.Registry)),

		wire.Bind(new(labelService.OrderStore), new(*orderstoreRepo.Repository)),
		wire.Bind(new(labelService.RequestBuilder), new(*request.Builder)),
		wire.Bind(new(labelService.CarrierAPI), new(*carrierclient.Client)),
		wire.Bind(new(labelService.DocumentStore), new(*labelstore.Store)),

		wire.Bind(new(migrationService.OrderStore), new(*orderstoreRepo.Repository)),
		wire.Bind(new(migrationService.StateStore), new(*procstateRepo.Repository)),
		wire.Bind(new(migrationService.DocumentStore), new(*labelstore.Store)),
		wire.Bind(new(migrationService.Scheduler), new(*background.Scheduler)),

		wire.Bind(new(label_migration.Service), new(*migrationService.Coordinator)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	LabelService *labelService.Service
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,

		provideTokenIssuer,
		provideLabelStore,
		provideRequestBuilder,
		provideHTTPClient,
		provideCarrierClient,

		provideServiceLabel,

		wire.Bind(new(labelService.OrderStore), new(*orderstoreRepo.Repository)),
		wire.Bind(new(labelService.RequestBuilder), new(*request.Builder)),
		wire.Bind(new(labelService.CarrierAPI), new(*carrierclient.Client)),
		wire.Bind(new(labelService.DocumentStore), new(*labelstore.Store)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderstoreRepo.Repository {
	return orderstoreRepo.New(querier)
}

func provideProcStateRepository(querier *querier.Querier) *procstateRepo.Repository {
	return procstateRepo.New(querier)
}

func provideTokenIssuer(cfg *config.Config) *labelstore.TokenIssuer {
	return labelstore.NewTokenIssuer([]byte(cfg.Labels.TokenSecret), cfg.Labels.TokenTTL)
}

func provideLabelStore(cfg *config.Config, tokens *labelstore.TokenIssuer) *labelstore.Store {
	return labelstore.New(cfg.Labels.Dir, tokens)
}

func provideRequestBuilder() (*request.Builder, error) {
	return request.NewBuilder()
}

func provideHTTPClient() *http.Client {
	return &http.Client{}
}

func provideCarrierClient(log logger.Logger, httpClient *http.Client) *carrierclient.Client {
	return carrierclient.New(log, httpClient)
}

func provideServiceLabel(
	log logger.Logger,
	builder labelService.RequestBuilder,
	carrier labelService.CarrierAPI,
	store labelService.DocumentStore,
	orders labelService.OrderStore,
	txManager *tx.Manager,
	cfg *config.Config,
) *labelService.Service {
	return labelService.New(log, builder, carrier, store, orders, txManager, cfg.CarrierSettings())
}

func provideMigrationScheduler(ctx context.Context, log logger.Logger) *background.Scheduler {
	return background.NewScheduler(ctx, log, "label-migration")
}

func provideServiceMigration(
	log logger.Logger,
	orders migrationService.OrderStore,
	state migrationService.StateStore,
	store migrationService.DocumentStore,
	scheduler migrationService.Scheduler,
	cfg *config.Config,
) *migrationService.Coordinator {
	return migrationService.New(log, orders, state, store, scheduler, migrationService.Config{
		UploadsBaseDir: cfg.Labels.UploadsBaseDir,
		UploadsBaseURL: cfg.Labels.UploadsBaseURL,
	})
}

func provideServiceRates(cfg *config.Config) (*ratesService.Registry, error) {
	var configs []ratesService.MethodConfig
	if cfg.Rates.MethodsJSON != "" {
		if err := json.Unmarshal([]byte(cfg.Rates.MethodsJSON), &configs); err != nil {
			return nil, fmt.Errorf("parse RATES_METHODS: %w", err)
		}
	}
	return ratesService.NewRegistry(configs)
}

func provideMigrationCheckInterval(cfg *config.Config) MigrationCheckInterval {
	return MigrationCheckInterval(cfg.Tasks.LabelMigrationCheckInterval)
}

func provideLabelMigrationTask(
	migrationService label_migration.Service,
	interval MigrationCheckInterval,
) *label_migration.LabelMigration {
	return label_migration.NewLabelMigration(migrationService, time.Duration(interval))
}

func provideTaskList(
	labelMigrationTask *label_migration.LabelMigration,
) []background.Task {
	return []background.Task{
		labelMigrationTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
