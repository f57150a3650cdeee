package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"labelservice/internal/entities"
)

type (
	Tasks struct {
		LabelMigrationCheckInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	// Carrier настройки интеграции с API перевозчика.
	Carrier struct {
		Username string
		Password string
		ClientID int
		Country  string
		Mode     string

		SenderName    string
		SenderStreet  string
		SenderCity    string
		SenderZipCode string
		SenderCountry string
		SenderPhone   string
		SenderEmail   string

		Service24H          bool
		ExpressDeliveryTime string
		ContactService      bool
		FlexibleDelivery    bool
		FlexibleDeliverySMS bool
		SMSService          bool
		SMSServiceText      string
		SMSPreAdvice        bool
		AddresseeOnly       bool
		Insurance           bool

		SenderIdentityCardNumber string
		Content                  string

		ClientReferenceFormat string
		PrintPosition         int
		TypeOfPrinter         string
		AuditLogging          bool
	}

	// Labels хранилище этикеток и параметры миграции из старого каталога.
	Labels struct {
		Dir            string
		TokenSecret    string
		TokenTTL       time.Duration
		UploadsBaseDir string
		UploadsBaseURL string
	}

	// Rates настройки вариантов доставки: JSON-массив конфигураций методов.
	Rates struct {
		MethodsJSON string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderStatusChanged OrderStatusChanged
	}

	OrderStatusChanged struct {
		ProcessTimeout time.Duration
		TriggerStatus  string
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Carrier  Carrier
		Labels   Labels
		Rates    Rates
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// CarrierSettings собирает неизменяемые настройки перевозчика для операции.
func (c *Config) CarrierSettings() entities.Settings {
	return entities.Settings{
		Username: c.Carrier.Username,
		Password: c.Carrier.Password,
		ClientID: c.Carrier.ClientID,
		Country:  c.Carrier.Country,
		Mode:     entities.CarrierMode(c.Carrier.Mode),

		SenderName:    c.Carrier.SenderName,
		SenderStreet:  c.Carrier.SenderStreet,
		SenderCity:    c.Carrier.SenderCity,
		SenderZipCode: c.Carrier.SenderZipCode,
		SenderCountry: c.Carrier.SenderCountry,
		SenderPhone:   c.Carrier.SenderPhone,
		SenderEmail:   c.Carrier.SenderEmail,

		Service24H:          c.Carrier.Service24H,
		ExpressDeliveryTime: c.Carrier.ExpressDeliveryTime,
		ContactService:      c.Carrier.ContactService,
		FlexibleDelivery:    c.Carrier.FlexibleDelivery,
		FlexibleDeliverySMS: c.Carrier.FlexibleDeliverySMS,
		SMSService:          c.Carrier.SMSService,
		SMSServiceText:      c.Carrier.SMSServiceText,
		SMSPreAdvice:        c.Carrier.SMSPreAdvice,
		AddresseeOnly:       c.Carrier.AddresseeOnly,
		Insurance:           c.Carrier.Insurance,

		SenderIdentityCardNumber: c.Carrier.SenderIdentityCardNumber,
		Content:                  c.Carrier.Content,

		ClientReferenceFormat: c.Carrier.ClientReferenceFormat,
		PrintPosition:         c.Carrier.PrintPosition,
		TypeOfPrinter:         c.Carrier.TypeOfPrinter,
		AuditLogging:          c.Carrier.AuditLogging,
	}
}

func loadFromEnv() (*Config, error) {
	migrationCheckInterval, err := osGetEnvDuration("BACKGROUND_LABEL_MIGRATION_CHECK_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	carrierClientID, err := osGetInt("CARRIER_CLIENT_ID")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	service24H, err := osGetBool("CARRIER_SERVICE_24H")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	contactService, err := osGetBool("CARRIER_SERVICE_CONTACT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	flexibleDelivery, err := osGetBool("CARRIER_SERVICE_FLEXIBLE_DELIVERY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	flexibleDeliverySMS, err := osGetBool("CARRIER_SERVICE_FLEXIBLE_DELIVERY_SMS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	smsService, err := osGetBool("CARRIER_SERVICE_SMS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	smsPreAdvice, err := osGetBool("CARRIER_SERVICE_SMS_PRE_ADVICE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	addresseeOnly, err := osGetBool("CARRIER_SERVICE_ADDRESSEE_ONLY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	insurance, err := osGetBool("CARRIER_SERVICE_INSURANCE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	printPosition, err := osGetInt("CARRIER_PRINT_POSITION")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	auditLogging, err := osGetBool("CARRIER_AUDIT_LOGGING")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	tokenTTL, err := osGetEnvDuration("LABELS_TOKEN_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			LabelMigrationCheckInterval: migrationCheckInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Carrier: Carrier{
			Username: os.Getenv("CARRIER_USERNAME"),
			Password: os.Getenv("CARRIER_PASSWORD"),
			ClientID: carrierClientID,
			Country:  os.Getenv("CARRIER_COUNTRY"),
			Mode:     os.Getenv("CARRIER_MODE"),

			SenderName:    os.Getenv("CARRIER_SENDER_NAME"),
			SenderStreet:  os.Getenv("CARRIER_SENDER_STREET"),
			SenderCity:    os.Getenv("CARRIER_SENDER_CITY"),
			SenderZipCode: os.Getenv("CARRIER_SENDER_ZIPCODE"),
			SenderCountry: os.Getenv("CARRIER_SENDER_COUNTRY"),
			SenderPhone:   os.Getenv("CARRIER_SENDER_PHONE"),
			SenderEmail:   os.Getenv("CARRIER_SENDER_EMAIL"),

			Service24H:          service24H,
			ExpressDeliveryTime: os.Getenv("CARRIER_SERVICE_EXPRESS_DELIVERY_TIME"),
			ContactService:      contactService,
			FlexibleDelivery:    flexibleDelivery,
			FlexibleDeliverySMS: flexibleDeliverySMS,
			SMSService:          smsService,
			SMSServiceText:      os.Getenv("CARRIER_SERVICE_SMS_TEXT"),
			SMSPreAdvice:        smsPreAdvice,
			AddresseeOnly:       addresseeOnly,
			Insurance:           insurance,

			SenderIdentityCardNumber: os.Getenv("CARRIER_SENDER_IDENTITY_CARD_NUMBER"),
			Content:                  os.Getenv("CARRIER_PARCEL_CONTENT"),

			ClientReferenceFormat: os.Getenv("CARRIER_CLIENT_REFERENCE_FORMAT"),
			PrintPosition:         printPosition,
			TypeOfPrinter:         os.Getenv("CARRIER_TYPE_OF_PRINTER"),
			AuditLogging:          auditLogging,
		},
		Rates: Rates{
			MethodsJSON: os.Getenv("RATES_METHODS"),
		},
		Labels: Labels{
			Dir:            os.Getenv("LABELS_DIR"),
			TokenSecret:    os.Getenv("LABELS_TOKEN_SECRET"),
			TokenTTL:       tokenTTL,
			UploadsBaseDir: os.Getenv("LABELS_UPLOADS_BASE_DIR"),
			UploadsBaseURL: os.Getenv("LABELS_UPLOADS_BASE_URL"),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderStatusChanged: OrderStatusChanged{
					ProcessTimeout: orderStatusChangedTimeout,
					TriggerStatus:  os.Getenv("KAFKA_HANDLER_ORDER_STATUS_CHANGED_TRIGGER_STATUS"),
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Tasks.LabelMigrationCheckInterval == time.Duration(0) {
		return errors.New("BACKGROUND_LABEL_MIGRATION_CHECK_INTERVAL is required")
	}

	if cfg.Carrier.Username == "" {
		return errors.New("CARRIER_USERNAME is required")
	}
	if cfg.Carrier.Password == "" {
		return errors.New("CARRIER_PASSWORD is required")
	}
	if cfg.Carrier.ClientID == 0 {
		return errors.New("CARRIER_CLIENT_ID is required")
	}
	if cfg.Carrier.Country == "" {
		return errors.New("CARRIER_COUNTRY is required")
	}
	if mode := entities.CarrierMode(cfg.Carrier.Mode); mode != entities.ModeProduction && mode != entities.ModeSandbox {
		return errors.New("CARRIER_MODE must be production or sandbox")
	}
	if cfg.Carrier.ClientReferenceFormat == "" {
		return errors.New("CARRIER_CLIENT_REFERENCE_FORMAT is required")
	}
	switch cfg.Carrier.ExpressDeliveryTime {
	case "", "T09", "T10", "T12":
	default:
		return errors.New("CARRIER_SERVICE_EXPRESS_DELIVERY_TIME must be empty, T09, T10 or T12")
	}

	if cfg.Labels.Dir == "" {
		return errors.New("LABELS_DIR is required")
	}
	if cfg.Labels.TokenSecret == "" {
		return errors.New("LABELS_TOKEN_SECRET is required")
	}
	if cfg.Labels.TokenTTL == time.Duration(0) {
		return errors.New("LABELS_TOKEN_TTL is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.OrderStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}
	if cfg.Kafka.Handlers.OrderStatusChanged.TriggerStatus == "" {
		return errors.New("KAFKA_HANDLER_ORDER_STATUS_CHANGED_TRIGGER_STATUS is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
