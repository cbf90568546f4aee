package checkout

import (
	"errors"

	"smartgear_back_end/internal/cart"
)

// Étapes du tunnel de commande. Progression strictement linéaire :
// cart → shipping → payment → confirmation. On n'entre en confirmation que
// par un placement de commande réussi ; elle clôt la commande en cours, et
// seul un nouveau panier permet d'en repartir.
type Step string

const (
	StepCart         Step = "cart"
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

var (
	ErrEmptyCart          = errors.New("le panier est vide")
	ErrInvalidTransition  = errors.New("transition d'étape invalide")
	ErrConfirmationFinale = errors.New("la confirmation est une étape terminale")
)

// Flow porte l'état du tunnel pour une session : l'étape courante, les infos
// de livraison saisies et, après placement, l'identifiant de commande.
type Flow struct {
	Step     Step         `json:"step"`
	Shipping ShippingInfo `json:"shipping"`
	OrderID  string       `json:"order_id,omitempty"`
}

func NewFlow() *Flow {
	return &Flow{Step: StepCart}
}

// SeedEmail pré-remplit l'email de livraison avec celui du compte connecté.
// Ne remplace jamais une saisie du client.
func (f *Flow) SeedEmail(email string) {
	if f.Shipping.Email == "" {
		f.Shipping.Email = email
	}
}

// Next avance d'une étape. Quitter le panier exige un panier non vide ;
// quitter la livraison exige des infos valides. Le passage payment →
// confirmation ne se fait que via PlaceOrder.
func (f *Flow) Next(store *cart.Store) error {
	switch f.Step {
	case StepCart:
		if store.IsEmpty() {
			return ErrEmptyCart
		}
		f.Step = StepShipping
		return nil
	case StepShipping:
		if verr := f.Shipping.Validate(); verr != nil {
			return verr
		}
		f.Step = StepPayment
		return nil
	case StepPayment:
		return ErrInvalidTransition
	case StepConfirmation:
		// La confirmation clôt la commande, pas la session : un nouveau
		// panier relance un tunnel neuf.
		if store.IsEmpty() {
			return ErrConfirmationFinale
		}
		f.Shipping = ShippingInfo{}
		f.OrderID = ""
		f.Step = StepShipping
		return nil
	}
	return ErrInvalidTransition
}

// Back recule d'une étape : shipping → cart et payment → shipping uniquement.
func (f *Flow) Back() error {
	switch f.Step {
	case StepShipping:
		f.Step = StepCart
		return nil
	case StepPayment:
		f.Step = StepShipping
		return nil
	}
	return ErrInvalidTransition
}
