package request

import (
	"fmt"

	"labelservice/internal/entities"
)

// Builder собирает тело запроса PrintLabels из заказов и настроек.
// Чистое преобразование: единственное чтение извне - встроенная таблица
// экспресс-доставки, загружаемая один раз при создании.
type Builder struct {
	express *ExpressEligibility
}

func NewBuilder() (*Builder, error) {
	express, err := NewExpressEligibility()
	if err != nil {
		return nil, fmt.Errorf("express eligibility table: %w", err)
	}
	return &Builder{express: express}, nil
}

// Build формирует пакетный запрос: по одной посылке на заказ.
func (b *Builder) Build(orders []entities.Order, settings entities.Settings) (*Payload, error) {
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}

	parcels := make([]Parcel, 0, len(orders))
	for i := range orders {
		parcel, err := b.buildParcel(&orders[i], settings, 1)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", orders[i].ID, err)
		}
		parcels = append(parcels, parcel)
	}

	return b.payload(parcels, settings), nil
}

// BuildSingle формирует запрос для одного заказа с указанным числом мест.
func (b *Builder) BuildSingle(order entities.Order, count int, settings entities.Settings) (*Payload, error) {
	if count < 1 {
		count = 1
	}

	parcel, err := b.buildParcel(&order, settings, count)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", order.ID, err)
	}

	return b.payload([]Parcel{parcel}, settings), nil
}

func (b *Builder) payload(parcels []Parcel, settings entities.Settings) *Payload {
	printPosition := settings.PrintPosition
	if printPosition == 0 {
		printPosition = defaultPrintPosition
	}
	printerType := settings.TypeOfPrinter
	if printerType == "" {
		printerType = defaultPrinterType
	}

	return &Payload{
		WebshopEngine:   webshopEngine,
		ParcelList:      parcels,
		PrintPosition:   printPosition,
		TypeOfPrinter:   printerType,
		ShowPrintDialog: false,
	}
}

func (b *Builder) buildParcel(order *entities.Order, settings entities.Settings, count int) (Parcel, error) {
	services, err := b.serviceList(order, settings)
	if err != nil {
		return Parcel{}, err
	}

	parcel := Parcel{
		ClientNumber:    settings.ClientID,
		ClientReference: settings.ClientReference(order.ID),
		Count:           count,
		PickupAddress:   senderAddress(settings),
		DeliveryAddress: deliveryAddress(order),
		ServiceList:     services,
	}

	if order.Country == "RS" {
		if settings.SenderIdentityCardNumber == "" || settings.Content == "" {
			return Parcel{}, ErrMissingRegionalFields
		}
		parcel.SenderIdentityCardNumber = settings.SenderIdentityCardNumber
		parcel.Content = settings.Content
	}

	if order.PaymentMethod == entities.PaymentMethodCOD {
		parcel.CODAmount = order.Total
		parcel.CODReference = fmt.Sprintf("%d", order.ID)
	}

	return parcel, nil
}

// serviceList выбирает дополнительные услуги в порядке приоритета.
// Экспресс-доставка и гибкая доставка взаимоисключающие: выбранный
// экспресс-слот отменяет FDS и FSS, даже если те включены.
func (b *Builder) serviceList(order *entities.Order, settings entities.Settings) ([]Service, error) {
	isPickup := order.IsPickupDelivery()
	expressSelected := false
	services := []Service{}

	if isPickup {
		if order.PickupLocation == nil {
			return nil, ErrPickupInfoMissing
		}
		services = append(services, Service{
			Code:         ServicePickupDelivery,
			PSDParameter: &StringParameter{StringValue: order.PickupLocation.ID},
		})
	}

	if settings.Service24H && order.Country != "RS" {
		services = append(services, Service{Code: ServiceGuaranteed24H})
	}

	if !isPickup && settings.ExpressDeliveryTime != "" &&
		b.express.Supported(settings.ExpressDeliveryTime, settings.Country, order.Postcode) {
		expressSelected = true
		services = append(services, Service{Code: settings.ExpressDeliveryTime})
	}

	if !isPickup && settings.ContactService {
		services = append(services, Service{
			Code:         ServiceContact,
			CS1Parameter: &ValueParameter{Value: order.BillingPhone},
		})
	}

	if !isPickup && settings.FlexibleDelivery && !expressSelected {
		services = append(services, Service{
			Code:         ServiceFlexibleDelivery,
			FDSParameter: &ValueParameter{Value: order.BillingEmail},
		})
	}

	if !isPickup && settings.FlexibleDeliverySMS && settings.FlexibleDelivery && !expressSelected {
		services = append(services, Service{
			Code:         ServiceFlexibleSMS,
			FSSParameter: &ValueParameter{Value: order.BillingPhone},
		})
	}

	if settings.SMSService {
		services = append(services, Service{
			Code:         ServiceSMS,
			SM1Parameter: &ValueParameter{Value: order.BillingPhone + "|" + settings.SMSServiceText},
		})
	}

	if settings.SMSPreAdvice {
		services = append(services, Service{
			Code:         ServiceSMSPreAdvice,
			SM2Parameter: &ValueParameter{Value: order.BillingPhone},
		})
	}

	if !isPickup && settings.AddresseeOnly {
		services = append(services, Service{
			Code:         ServiceAddresseeOnly,
			AOSParameter: &ValueParameter{Value: order.ContactName()},
		})
	}

	if settings.Insurance && InsuranceAllowed(order.Total, settings.Country, order.Country) {
		services = append(services, Service{
			Code:         ServiceInsurance,
			INSParameter: &AmountParameter{Value: order.Total},
		})
	}

	return services, nil
}

func senderAddress(settings entities.Settings) Address {
	return Address{
		Name:           settings.SenderName,
		Street:         settings.SenderStreet,
		City:           settings.SenderCity,
		ZipCode:        settings.SenderZipCode,
		CountryIsoCode: settings.SenderCountry,
		ContactName:    settings.SenderName,
		ContactPhone:   settings.SenderPhone,
		ContactEmail:   settings.SenderEmail,
	}
}

func deliveryAddress(order *entities.Order) Address {
	street := order.Address1
	if order.Address2 != "" {
		street += " " + order.Address2
	}

	return Address{
		Name:           order.RecipientName(),
		Street:         street,
		City:           order.City,
		ZipCode:        order.Postcode,
		CountryIsoCode: order.Country,
		ContactName:    order.ContactName(),
		ContactPhone:   order.BillingPhone,
		ContactEmail:   order.BillingEmail,
	}
}
