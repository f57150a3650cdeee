package entities

type CarrierMode string

const (
	ModeProduction CarrierMode = "production"
	ModeSandbox    CarrierMode = "sandbox"
)

// Settings конфигурация интеграции с перевозчиком.
// Неизменяема в рамках одной операции: собирается один раз на запрос/задачу.
type Settings struct {
	Username string
	Password string
	ClientID int
	Country  string
	Mode     CarrierMode

	// Адрес отправителя (адрес магазина).
	SenderName    string
	SenderStreet  string
	SenderCity    string
	SenderZipCode string
	SenderCountry string
	SenderPhone   string
	SenderEmail   string

	// Дополнительные услуги.
	Service24H          bool
	ExpressDeliveryTime string // "", "T09", "T10", "T12"
	ContactService      bool
	FlexibleDelivery    bool
	FlexibleDeliverySMS bool
	SMSService          bool
	SMSServiceText      string
	SMSPreAdvice        bool
	AddresseeOnly       bool
	Insurance           bool

	// Обязательные поля для отправлений в RS.
	SenderIdentityCardNumber string
	Content                  string

	ClientReferenceFormat string
	PrintPosition         int
	TypeOfPrinter         string
	AuditLogging          bool
}

// ClientReference подставляет ID заказа в настроенный шаблон.
func (s Settings) ClientReference(orderID int64) string {
	return expandOrderID(s.ClientReferenceFormat, orderID)
}
