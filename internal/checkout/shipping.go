package checkout

import (
	"fmt"
	"regexp"
)

// Livraison offerte au-delà de 15 000 Rs. (strictement), sinon forfait de 500 Rs.
const (
	FreeShippingThreshold = 15000.0
	StandardShippingFee   = 500.0
)

// ShippingCost se recalcule toujours depuis le sous-total vivant du panier,
// jamais depuis une valeur mémorisée à une étape précédente.
func ShippingCost(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return StandardShippingFee
}

type ShippingInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// AddressLine concatène l'adresse complète telle qu'elle est enregistrée sur
// la commande.
func (s ShippingInfo) AddressLine() string {
	return fmt.Sprintf("%s, %s, %s, %s", s.Address, s.City, s.PostalCode, s.Country)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError identifie le premier champ manquant ou mal formé. Un seul
// champ est signalé à la fois.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate contrôle les champs requis dans un ordre fixe puis le format de
// l'email. Le téléphone est optionnel.
func (s ShippingInfo) Validate() *ValidationError {
	required := []struct {
		field string
		label string
		value string
	}{
		{"fullName", "le nom complet", s.FullName},
		{"email", "l'email", s.Email},
		{"address", "l'adresse", s.Address},
		{"city", "la ville", s.City},
		{"postalCode", "le code postal", s.PostalCode},
		{"country", "le pays", s.Country},
	}

	for _, r := range required {
		if r.value == "" {
			return &ValidationError{
				Field:   r.field,
				Message: fmt.Sprintf("Veuillez renseigner %s", r.label),
			}
		}
	}

	if !emailPattern.MatchString(s.Email) {
		return &ValidationError{
			Field:   "email",
			Message: "Veuillez saisir une adresse email valide",
		}
	}

	return nil
}
