package entities

import (
	"strconv"
	"strings"
	"time"
)

// LabelRecord ссылка на сохранённый PDF этикетки.
// В мете заказа хранится только имя файла, никогда не полный URL:
// URL с токеном доступа выписывается заново при каждом показе.
type LabelRecord struct {
	Filename  string
	CreatedAt time.Time
}

// ParcelOutcome результат печати одной посылки.
type ParcelOutcome struct {
	ClientReference string
	OrderID         int64
	ParcelID        int64
	TrackingNumber  string
}

// ParcelFailure отказ перевозчика по конкретному заказу.
type ParcelFailure struct {
	OrderID int64
	Code    string
	Message string
}

// CarrierResult разобранный ответ перевозчика на запрос печати.
// Инвариант: заказ не может одновременно присутствовать в Outcomes и Failures.
type CarrierResult struct {
	LabelData []byte
	Outcomes  []ParcelOutcome
	Failures  []ParcelFailure
}

// AllFailed true когда ни одна посылка из запроса не напечатана.
// В этом случае LabelData не имеет смысла и сохранять его нельзя.
func (r *CarrierResult) AllFailed(requested int) bool {
	return requested > 0 && len(r.Failures) >= requested
}

func (r *CarrierResult) FailedOrderIDs() []int64 {
	ids := make([]int64, 0, len(r.Failures))
	for _, f := range r.Failures {
		ids = append(ids, f.OrderID)
	}
	return ids
}

const orderIDPlaceholder = "{{order_id}}"

func expandOrderID(format string, orderID int64) string {
	return strings.ReplaceAll(format, orderIDPlaceholder, strconv.FormatInt(orderID, 10))
}

// OrderIDFromReference обратная операция к ClientReference: вырезает ID заказа
// из клиентской ссылки по тому же шаблону.
func OrderIDFromReference(format, reference string) (int64, bool) {
	idx := strings.Index(format, orderIDPlaceholder)
	if idx < 0 {
		return 0, false
	}

	prefix := format[:idx]
	suffix := format[idx+len(orderIDPlaceholder):]

	if !strings.HasPrefix(reference, prefix) || !strings.HasSuffix(reference, suffix) {
		return 0, false
	}

	raw := reference[len(prefix) : len(reference)-len(suffix)]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
