package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice convierte un precio capturado como texto ("₹12.50", "40/kg") a decimal.
// Descarta todo carácter que no sea dígito ni punto; si lo que queda no es un número válido devuelve 0.
func ParsePrice(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
