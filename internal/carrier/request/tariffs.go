package request

// Справочники перевозчика: телефонные коды и страховые лимиты по странам.
// Лимиты заданы в локальной валюте страны отправления.

type insuranceBand struct {
	min float64
	max float64
}

var countryCallingCodes = map[string]string{
	"CZ": "+420",
	"HR": "+385",
	"HU": "+36",
	"RO": "+40",
	"SI": "+386",
	"SK": "+421",
	"RS": "+381",
}

var domesticInsurance = map[string]insuranceBand{
	"CZ": {min: 20000, max: 100000},  // CZK
	"HR": {min: 165.9, max: 1659.04}, // EUR
	"HU": {min: 50000, max: 500000},  // HUF
	"RO": {min: 2000, max: 7000},     // RON
	"SI": {min: 200, max: 2000},      // EUR
	"SK": {min: 332, max: 2655},      // EUR
	"RS": {min: 40000, max: 200000},  // RSD
}

var exportInsurance = map[string]insuranceBand{
	"CZ": {min: 20000, max: 100000},  // CZK
	"HR": {min: 165.91, max: 663.61}, // EUR
	"HU": {min: 50000, max: 200000},  // HUF
	"RO": {min: 2000, max: 7000},     // RON
	"SI": {min: 200, max: 2000},      // EUR
	"SK": {min: 332, max: 1000},      // EUR
}

// CallingCode телефонный код страны, пустая строка для неизвестной.
func CallingCode(country string) string {
	return countryCallingCodes[country]
}

// InsuranceAllowed проверяет, попадает ли сумма заказа в страховой диапазон
// (границы включительно). Для неизвестной страны отправления страховка
// недоступна.
func InsuranceAllowed(total float64, originCountry, destinationCountry string) bool {
	bands := exportInsurance
	if originCountry == destinationCountry {
		bands = domesticInsurance
	}

	band, ok := bands[originCountry]
	if !ok {
		return false
	}
	return total >= band.min && total <= band.max
}
