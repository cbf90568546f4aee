package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() ShippingInfo {
	return ShippingInfo{
		FullName:   "Nuwan Perera",
		Email:      "nuwan@example.com",
		Phone:      "+94 77 123 4567",
		Address:    "12 Galle Road",
		City:       "Colombo",
		PostalCode: "00300",
		Country:    "Sri Lanka",
	}
}

func TestShippingCostThreshold(t *testing.T) {
	// Seuil strict : à 15 000 exactement, la livraison reste payante
	assert.Equal(t, 500.0, ShippingCost(14999))
	assert.Equal(t, 500.0, ShippingCost(15000))
	assert.Equal(t, 0.0, ShippingCost(15001))

	assert.Equal(t, 15499.0, 14999+ShippingCost(14999))
	assert.Equal(t, 15001.0, 15001+ShippingCost(15001))
}

func TestValidateReportsFirstMissingField(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*ShippingInfo)
		field string
	}{
		{"nom complet", func(s *ShippingInfo) { s.FullName = "" }, "fullName"},
		{"email", func(s *ShippingInfo) { s.Email = "" }, "email"},
		{"adresse", func(s *ShippingInfo) { s.Address = "" }, "address"},
		{"ville", func(s *ShippingInfo) { s.City = "" }, "city"},
		{"code postal", func(s *ShippingInfo) { s.PostalCode = "" }, "postalCode"},
		{"pays", func(s *ShippingInfo) { s.Country = "" }, "country"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validShipping()
			tc.mut(&s)
			verr := s.Validate()
			require.NotNil(t, verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateFieldOrderIsFixed(t *testing.T) {
	// Plusieurs champs manquants : seul le premier de l'énumération est signalé
	s := validShipping()
	s.FullName = ""
	s.City = ""
	s.Country = ""

	verr := s.Validate()
	require.NotNil(t, verr)
	assert.Equal(t, "fullName", verr.Field)
}

func TestValidateEmailFormat(t *testing.T) {
	for _, bad := range []string{"nuwan", "nuwan@", "@example.com", "nuwan@example", "nu wan@example.com"} {
		s := validShipping()
		s.Email = bad
		verr := s.Validate()
		require.NotNil(t, verr, "email %q devrait être rejeté", bad)
		assert.Equal(t, "email", verr.Field)
	}

	s := validShipping()
	assert.Nil(t, s.Validate())
}

func TestValidatePhoneOptional(t *testing.T) {
	s := validShipping()
	s.Phone = ""
	assert.Nil(t, s.Validate())
}

func TestAddressLine(t *testing.T) {
	s := validShipping()
	assert.Equal(t, "12 Galle Road, Colombo, 00300, Sri Lanka", s.AddressLine())
}
