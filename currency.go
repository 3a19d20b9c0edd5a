package tracker

import (
	"encoding/json"
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency is the display currency of a user. Amounts are only relabeled,
// never converted.
type Currency string

const (
	Dollar Currency = "Dollar"
	Euros  Currency = "Euros"
	Reais  Currency = "Reais"
	Kwanza Currency = "Kwanza"
)

// Currencies lists the supported currencies.
var Currencies = []Currency{Dollar, Euros, Reais, Kwanza}

var graphemes = map[Currency]string{
	Dollar: "$",
	Euros:  "€",
	Reais:  "R$ ",
	Kwanza: "Kz ",
}

// ParseCurrency parses a currency name, case insensitively. The empty string is Dollar.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dollar, nil
	}
	for _, c := range Currencies {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", invalid("unknown currency %q want one of %v", s, Currencies)
}

// Symbol returns the prefix of amounts in this currency.
func (c Currency) Symbol() string {
	if g, ok := graphemes[c]; ok {
		return g
	}
	return graphemes[Dollar]
}

// Format formats a with two decimals behind the currency symbol, like "R$ 12.50".
// Negative amounts are prefixed with "-", before the symbol.
func (c Currency) Format(a Amount) string {
	f := money.NewFormatter(2, ".", "", c.Symbol(), "$1")
	return f.Format(a.Round(2).Decimal().Shift(2).IntPart())
}

// UnmarshalJSON accepts any case and maps unknown or empty values to Dollar.
func (c *Currency) UnmarshalJSON(data []byte) error {
	var s string
	if string(data) != "null" {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := ParseCurrency(s)
	if err != nil {
		v = Dollar
	}
	*c = v
	return nil
}
