package entities

import (
	"strings"
	"time"
)

type Order struct {
	ID              int64
	ShippingCompany string
	FirstName       string
	LastName        string
	Address1        string
	Address2        string
	City            string
	Postcode        string
	Country         string
	BillingPhone    string
	BillingEmail    string
	PaymentMethod   string
	Total           float64
	ShippingMethods []string
	PickupLocation  *PickupLocation
	CreatedAt       time.Time
}

// RecipientName имя получателя: компания приоритетнее ФИО.
func (o *Order) RecipientName() string {
	if o.ShippingCompany != "" {
		return o.ShippingCompany
	}
	return o.FirstName + " " + o.LastName
}

func (o *Order) ContactName() string {
	return o.FirstName + " " + o.LastName
}

// IsPickupDelivery true если заказ доставляется в постамат/пункт выдачи.
func (o *Order) IsPickupDelivery() bool {
	for _, methodID := range o.ShippingMethods {
		if IsPickupMethod(methodID) {
			return true
		}
	}
	return false
}

// PickupLocation выбранная покупателем точка выдачи (из меты заказа).
type PickupLocation struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Contact PickupContact `json:"contact"`
}

type PickupContact struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
}

// Ключи меты заказа, которыми владеет сервис.
// Перезапись значений идемпотентна: повторная генерация этикетки
// затирает прошлые трекинг-номера, а не дублирует их.
const (
	MetaPrintLabel    = "_gls_print_label"
	MetaTrackingCodes = "_gls_tracking_codes"
	MetaParcelIDs     = "_gls_parcel_ids"
	MetaPickupInfo    = "_gls_pickup_info"
)

// LegacyLabelRefMarker признак старой ссылки на этикетку: значение
// MetaPrintLabel содержит URL внутри публичного каталога загрузок.
// После миграции в мете остаётся только имя файла.
const LegacyLabelRefMarker = "/uploads/"

// IsLegacyLabelRef true когда ссылка на этикетку ещё не перенесена
// в защищённое хранилище.
func IsLegacyLabelRef(ref string) bool {
	return strings.Contains(ref, LegacyLabelRefMarker)
}

const PaymentMethodCOD = "cod"
