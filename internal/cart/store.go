package cart

// Snapshot produit capturé au moment de l'ajout au panier : le prix, la marque
// et l'image restent ceux vus par le client, même si le catalogue change ensuite.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}

type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Store est le panier d'une session : une ligne au plus par produit, totaux
// dérivés recalculés à la demande. Un seul écrivain logique (la requête qui
// l'a chargé), donc pas de verrou.
type Store struct {
	items  []LineItem
	isOpen bool
}

func NewStore() *Store {
	return &Store{}
}

// NewStoreFrom reconstruit un panier depuis des lignes persistées. Les lignes
// invalides (quantité ≤ 0, produit sans id) sont ignorées plutôt que de faire
// échouer le chargement.
func NewStoreFrom(items []LineItem) *Store {
	s := &Store{}
	for _, it := range items {
		if it.Product.ID == "" || it.Quantity <= 0 {
			continue
		}
		s.items = append(s.items, it)
	}
	return s
}

// AddItem incrémente la ligne existante du produit, ou en crée une avec
// quantité 1. Aucun contrôle de stock ici : il se fait côté fiche produit.
func (s *Store) AddItem(p Product) {
	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			s.items[i].Quantity++
			return
		}
	}
	s.items = append(s.items, LineItem{Product: p, Quantity: 1})
}

// RemoveItem supprime la ligne du produit. No-op si absente.
func (s *Store) RemoveItem(productID string) {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity fixe la quantité d'une ligne. Une quantité ≤ 0 vaut
// suppression.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// Clear vide le panier inconditionnellement.
func (s *Store) Clear() {
	s.items = nil
}

// Items retourne une copie des lignes, dans l'ordre d'ajout.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems est la somme des quantités de toutes les lignes.
func (s *Store) TotalItems() int {
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Subtotal est la somme des (prix unitaire × quantité) avant livraison.
func (s *Store) Subtotal() float64 {
	total := 0.0
	for _, it := range s.items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// IsOpen / SetOpen pilotent l'affichage du tiroir panier côté client. État
// purement UI, aucun invariant métier.
func (s *Store) IsOpen() bool {
	return s.isOpen
}

func (s *Store) SetOpen(open bool) {
	s.isOpen = open
}
