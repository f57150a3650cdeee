package rates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"labelservice/internal/entities"
)

// Cart то, что известно о корзине на момент расчёта доставки.
type Cart struct {
	Weight             float64
	Subtotal           float64
	DestinationCountry string
}

// Rate рассчитанная стоимость доставки конкретным вариантом.
type Rate struct {
	MethodID string
	Title    string
	Cost     float64
	Free     bool
}

// MethodConfig настройки одного варианта доставки.
// RateTable строки вида "максимальный_вес|цена", по строке на диапазон.
// Десятичный разделитель может быть и точкой, и запятой.
type MethodConfig struct {
	MethodID              string   `json:"method_id"`
	Title                 string   `json:"title"`
	RateTable             string   `json:"rate_table"`
	FreeShippingThreshold *float64 `json:"free_shipping_threshold,omitempty"`
	Countries             []string `json:"countries,omitempty"`
}

type band struct {
	maxWeight float64
	cost      float64
}

// Calculator считает стоимость доставки по таблице весовых диапазонов.
type Calculator struct {
	cfg   MethodConfig
	bands []band
}

func NewCalculator(cfg MethodConfig) (*Calculator, error) {
	bands, err := parseRateTable(cfg.RateTable)
	if err != nil {
		return nil, err
	}
	return &Calculator{
		cfg:   cfg,
		bands: bands,
	}, nil
}

// Quote возвращает тариф для корзины.
// Берётся первый диапазон, в который укладывается вес; корзина тяжелее
// последнего диапазона тарифицируется по нему же. Порог бесплатной
// доставки сравнивается с суммой корзины без стоимости доставки.
func (c *Calculator) Quote(cart Cart) (*Rate, error) {
	if !c.servesCountry(cart.DestinationCountry) {
		return nil, ErrCountryNotServed
	}

	rate := &Rate{
		MethodID: c.cfg.MethodID,
		Title:    c.cfg.Title,
	}

	if c.cfg.FreeShippingThreshold != nil && cart.Subtotal >= *c.cfg.FreeShippingThreshold {
		rate.Free = true
		return rate, nil
	}

	rate.Cost = c.bands[len(c.bands)-1].cost
	for _, b := range c.bands {
		if cart.Weight <= b.maxWeight {
			rate.Cost = b.cost
			break
		}
	}
	return rate, nil
}

func (c *Calculator) servesCountry(country string) bool {
	if len(c.cfg.Countries) == 0 {
		return true
	}
	for _, cc := range c.cfg.Countries {
		if strings.EqualFold(cc, country) {
			return true
		}
	}
	return false
}

func parseRateTable(raw string) ([]band, error) {
	bands := make([]band, 0, 4)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		weightRaw, costRaw, found := strings.Cut(line, "|")
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRow, line)
		}

		maxWeight, err := parseDecimal(weightRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRow, line)
		}
		cost, err := parseDecimal(costRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRow, line)
		}

		bands = append(bands, band{maxWeight: maxWeight, cost: cost})
	}

	if len(bands) == 0 {
		return nil, ErrEmptyRateTable
	}

	sort.Slice(bands, func(i, j int) bool { return bands[i].maxWeight < bands[j].maxWeight })
	return bands, nil
}

func parseDecimal(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	return strconv.ParseFloat(raw, 64)
}

// Registry калькуляторы всех подключённых вариантов доставки.
type Registry struct {
	calculators map[string]*Calculator
}

func NewRegistry(configs []MethodConfig) (*Registry, error) {
	calculators := make(map[string]*Calculator, len(configs))
	for _, cfg := range configs {
		calc, err := NewCalculator(cfg)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", cfg.MethodID, err)
		}
		calculators[cfg.MethodID] = calc
	}
	return &Registry{calculators: calculators}, nil
}

// Quote тариф конкретного варианта доставки для корзины.
func (r *Registry) Quote(methodID string, cart Cart) (*Rate, error) {
	calc, ok := r.calculators[methodID]
	if !ok {
		return nil, ErrUnknownMethod
	}
	return calc.Quote(cart)
}

// QuoteAll тарифы всех вариантов, доступных для страны корзины.
func (r *Registry) QuoteAll(cart Cart) []Rate {
	quotes := make([]Rate, 0, len(r.calculators))
	for _, methodID := range methodOrder {
		calc, ok := r.calculators[methodID]
		if !ok {
			continue
		}
		rate, err := calc.Quote(cart)
		if err != nil {
			continue
		}
		quotes = append(quotes, *rate)
	}
	return quotes
}

// Витринный порядок вариантов: сначала курьерская доставка, затем пункты выдачи.
var methodOrder = []string{
	entities.MethodDelivery,
	entities.MethodDeliveryZones,
	entities.MethodParcelShop,
	entities.MethodParcelShopZones,
	entities.MethodParcelLocker,
	entities.MethodParcelLockerZones,
}
