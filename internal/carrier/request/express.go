package request

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
)

// Таблица доступности экспресс-доставки по парам (страна, индекс).
// Индекс сравнивается как строка, ведущие нули значимы.
//
//go:embed express-service.csv
var expressServiceCSV []byte

type slotFlags struct {
	t12 bool
	t09 bool
	t10 bool
}

type ExpressEligibility struct {
	index map[string]slotFlags
}

func NewExpressEligibility() (*ExpressEligibility, error) {
	reader := csv.NewReader(bytes.NewReader(expressServiceCSV))
	reader.FieldsPerRecord = -1

	// заголовок
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read express service table header: %w", err)
	}

	index := make(map[string]slotFlags)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read express service table: %w", err)
		}
		if len(record) < 5 {
			continue
		}

		index[expressKey(record[0], record[1])] = slotFlags{
			t12: record[2] == "x",
			t09: record[3] == "x",
			t10: record[4] == "x",
		}
	}

	return &ExpressEligibility{index: index}, nil
}

// Supported true если для индекса назначения доступен конкретный слот.
func (e *ExpressEligibility) Supported(slot, originCountry, zipCode string) bool {
	flags, ok := e.index[expressKey(originCountry, zipCode)]
	if !ok {
		return false
	}

	switch slot {
	case "T12":
		return flags.t12
	case "T09":
		return flags.t09
	case "T10":
		return flags.t10
	}
	return false
}

func expressKey(country, zipCode string) string {
	return country + "|" + zipCode
}
