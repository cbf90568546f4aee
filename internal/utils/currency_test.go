package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Rs. 0.00", FormatPrice(0))
	assert.Equal(t, "Rs. 500.00", FormatPrice(500))
	assert.Equal(t, "Rs. 5,000.00", FormatPrice(5000))
	assert.Equal(t, "Rs. 15,499.00", FormatPrice(15499))
	assert.Equal(t, "Rs. 1,250,000.50", FormatPrice(1250000.5))
}

func TestFormatPriceShort(t *testing.T) {
	assert.Equal(t, "Rs. 15,000", FormatPriceShort(15000))
	assert.Equal(t, "Rs. 999", FormatPriceShort(999))
}

func TestFormatPriceNegative(t *testing.T) {
	// Un avoir (remboursement) s'affiche avec le signe devant les milliers
	assert.Equal(t, "Rs. -5,000.00", FormatPrice(-5000))
}
