package orderstore

import "labelservice/internal/entities"

func ToDomain(orderDB *OrderDB) *entities.Order {
	return &entities.Order{
		ID:              orderDB.ID,
		ShippingCompany: orderDB.ShippingCompany,
		FirstName:       orderDB.FirstName,
		LastName:        orderDB.LastName,
		Address1:        orderDB.Address1,
		Address2:        orderDB.Address2,
		City:            orderDB.City,
		Postcode:        orderDB.Postcode,
		Country:         orderDB.Country,
		BillingPhone:    orderDB.BillingPhone,
		BillingEmail:    orderDB.BillingEmail,
		PaymentMethod:   orderDB.PaymentMethod,
		Total:           orderDB.Total,
		ShippingMethods: orderDB.ShippingMethods,
		CreatedAt:       orderDB.CreatedAt,
	}
}
