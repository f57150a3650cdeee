package request

// Формат тела запроса PrintLabels. Имена полей фиксированы протоколом
// перевозчика, поэтому теги повторяют PascalCase дословно.

type Payload struct {
	Username        string   `json:"Username,omitempty"`
	Password        []int    `json:"Password,omitempty"`
	WebshopEngine   string   `json:"WebshopEngine"`
	ParcelList      []Parcel `json:"ParcelList"`
	PrintPosition   int      `json:"PrintPosition"`
	TypeOfPrinter   string   `json:"TypeOfPrinter"`
	ShowPrintDialog bool     `json:"ShowPrintDialog"`
}

type Parcel struct {
	ClientNumber             int       `json:"ClientNumber"`
	ClientReference          string    `json:"ClientReference"`
	Count                    int       `json:"Count"`
	PickupAddress            Address   `json:"PickupAddress"`
	DeliveryAddress          Address   `json:"DeliveryAddress"`
	ServiceList              []Service `json:"ServiceList"`
	SenderIdentityCardNumber string    `json:"SenderIdentityCardNumber,omitempty"`
	Content                  string    `json:"Content,omitempty"`
	CODAmount                float64   `json:"CODAmount,omitempty"`
	CODReference             string    `json:"CODReference,omitempty"`
}

type Address struct {
	Name           string `json:"Name"`
	Street         string `json:"Street"`
	City           string `json:"City"`
	ZipCode        string `json:"ZipCode"`
	CountryIsoCode string `json:"CountryIsoCode"`
	ContactName    string `json:"ContactName"`
	ContactPhone   string `json:"ContactPhone"`
	ContactEmail   string `json:"ContactEmail"`
}

// Service код услуги с опциональным типизированным параметром.
// У каждой услуги свой именованный параметр, заполняется ровно один.
type Service struct {
	Code         string           `json:"Code"`
	PSDParameter *StringParameter `json:"PSDParameter,omitempty"`
	CS1Parameter *ValueParameter  `json:"CS1Parameter,omitempty"`
	FDSParameter *ValueParameter  `json:"FDSParameter,omitempty"`
	FSSParameter *ValueParameter  `json:"FSSParameter,omitempty"`
	SM1Parameter *ValueParameter  `json:"SM1Parameter,omitempty"`
	SM2Parameter *ValueParameter  `json:"SM2Parameter,omitempty"`
	AOSParameter *ValueParameter  `json:"AOSParameter,omitempty"`
	INSParameter *AmountParameter `json:"INSParameter,omitempty"`
}

type StringParameter struct {
	StringValue string `json:"StringValue"`
}

type ValueParameter struct {
	Value string `json:"Value"`
}

type AmountParameter struct {
	Value float64 `json:"Value"`
}

// Коды услуг перевозчика.
const (
	ServicePickupDelivery   = "PSD"
	ServiceGuaranteed24H    = "24H"
	ServiceContact          = "CS1"
	ServiceFlexibleDelivery = "FDS"
	ServiceFlexibleSMS      = "FSS"
	ServiceSMS              = "SM1"
	ServiceSMSPreAdvice     = "SM2"
	ServiceAddresseeOnly    = "AOS"
	ServiceInsurance        = "INS"
)

const (
	webshopEngine        = "woocommercehr"
	defaultPrintPosition = 1
	defaultPrinterType   = "A4_2x2"
)

// HasService true если в списке услуг посылки присутствует код.
func (p *Parcel) HasService(code string) bool {
	for _, s := range p.ServiceList {
		if s.Code == code {
			return true
		}
	}
	return false
}
