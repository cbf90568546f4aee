package user

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"smartgear_back_end/internal/cache"
	"smartgear_back_end/internal/cart"
	"smartgear_back_end/internal/database"
)

// resolveSessionID identifie le propriétaire du panier : l'utilisateur
// connecté sinon la session invitée passée par le header X-Session-ID.
func resolveSessionID(c *gin.Context) string {
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(string); ok && id != "" {
			return id
		}
	}
	return c.GetHeader("X-Session-ID")
}

func cartPersister() *cart.RedisPersister {
	return cart.NewRedisPersister(database.RedisClient)
}

func cartResponse(ctx context.Context, sessionID string, s *cart.Store) gin.H {
	isOpen, _ := database.RedisClient.Get(ctx, "cart:open:"+sessionID).Bool()
	return gin.H{
		"items":       s.Items(),
		"total_items": s.TotalItems(),
		"subtotal":    s.Subtotal(),
		"is_open":     isOpen,
	}
}

// GetCart retourne le panier de la session avec ses totaux dérivés
func GetCart(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis pour un panier invité"})
		return
	}

	ctx := context.Background()
	store, err := cartPersister().Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ctx, sessionID, store))
}

// AddToCart ajoute un produit au panier. Le produit est relu au catalogue pour
// capturer nom, marque, prix et image au moment de l'ajout.
func AddToCart(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis pour un panier invité"})
		return
	}

	var body struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'product_id' requis"})
		return
	}

	productID, err := uuid.Parse(body.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := context.Background()
	p, err := cache.GetProductFromCache(ctx, gocql.UUID(productID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	persister := cartPersister()
	store, err := persister.Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	imageURL := ""
	if len(p.ImageURLs) > 0 {
		imageURL = p.ImageURLs[0]
	}
	store.AddItem(cart.Product{
		ID:       p.ID.String(),
		Name:     p.Name,
		Brand:    p.Brand,
		Price:    p.Price,
		ImageURL: imageURL,
	})

	if err := persister.Save(ctx, sessionID, store); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	// L'ajout ouvre le tiroir panier côté client
	database.RedisClient.Set(ctx, "cart:open:"+sessionID, true, 30*24*time.Hour)

	c.JSON(http.StatusOK, cartResponse(ctx, sessionID, store))
}

// UpdateCartItem fixe la quantité d'une ligne. Quantité ≤ 0 : la ligne saute.
func UpdateCartItem(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis pour un panier invité"})
		return
	}

	var body struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs 'product_id' et 'quantity' requis"})
		return
	}

	ctx := context.Background()
	persister := cartPersister()
	store, err := persister.Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	store.UpdateQuantity(body.ProductID, body.Quantity)

	if err := persister.Save(ctx, sessionID, store); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ctx, sessionID, store))
}

// RemoveFromCart supprime la ligne d'un produit
func RemoveFromCart(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis pour un panier invité"})
		return
	}

	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit requis"})
		return
	}

	ctx := context.Background()
	persister := cartPersister()
	store, err := persister.Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	store.RemoveItem(productID)

	if err := persister.Save(ctx, sessionID, store); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ctx, sessionID, store))
}

// ClearCart vide le panier de la session
func ClearCart(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis pour un panier invité"})
		return
	}

	ctx := context.Background()
	if err := cartPersister().Delete(ctx, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ctx, sessionID, cart.NewStore()))
}

// SetCartOpen pilote le tiroir panier (état purement UI, partagé entre onglets)
func SetCartOpen(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis pour un panier invité"})
		return
	}

	var body struct {
		Open bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'open' requis"})
		return
	}

	ctx := context.Background()
	database.RedisClient.Set(ctx, "cart:open:"+sessionID, body.Open, 30*24*time.Hour)
	database.RedisClient.Publish(ctx, "cart:"+sessionID, "drawer")

	c.JSON(http.StatusOK, gin.H{"is_open": body.Open})
}
