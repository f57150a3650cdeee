package entities

import "strings"

const trackingBaseURL = "https://gls-group.eu/"

// TrackingURL публичная страница отслеживания посылки перевозчика.
func TrackingURL(countryCode, trackingNumber string) string {
	return trackingBaseURL + strings.ToUpper(countryCode) + "/en/parcel-tracking/?match=" + trackingNumber
}
