package utils

import (
	"fmt"
	"strings"
)

// Roupie sri-lankaise, affichée comme sur la boutique : Rs. 15,000.00
const (
	CurrencySymbol = "Rs."
	CurrencyCode   = "LKR"
)

// FormatPrice rend un montant avec séparateur de milliers et deux décimales.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("%s %s", CurrencySymbol, groupThousands(amount, 2))
}

// FormatPriceShort omet les décimales (affichage compact des listes).
func FormatPriceShort(amount float64) string {
	return fmt.Sprintf("%s %s", CurrencySymbol, groupThousands(amount, 0))
}

func groupThousands(amount float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, amount)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
