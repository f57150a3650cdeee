package orderstore

import "time"

type OrderDB struct {
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
	CreatedAt       time.Time
}
