package entities

// Идентификаторы вариантов доставки. Зонные варианты считают тариф так же,
// отличаются только способом подключения на витрине.
const (
	MethodDelivery          = "gls_shipping_method"
	MethodDeliveryZones     = "gls_shipping_method_zones"
	MethodParcelShop        = "gls_shipping_method_parcel_shop"
	MethodParcelShopZones   = "gls_shipping_method_parcel_shop_zones"
	MethodParcelLocker      = "gls_shipping_method_parcel_locker"
	MethodParcelLockerZones = "gls_shipping_method_parcel_locker_zones"
)

func IsPickupMethod(methodID string) bool {
	switch methodID {
	case MethodParcelShop, MethodParcelShopZones, MethodParcelLocker, MethodParcelLockerZones:
		return true
	}
	return false
}
