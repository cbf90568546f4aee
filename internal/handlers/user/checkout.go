package user

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartgear_back_end/internal/checkout"
	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/orders"
	"smartgear_back_end/internal/utils"
)

func flowStore() *checkout.FlowStore {
	return checkout.NewFlowStore(database.RedisClient)
}

func flowResponse(f *checkout.Flow, subtotal float64) gin.H {
	shippingCost := checkout.ShippingCost(subtotal)
	return gin.H{
		"step":          f.Step,
		"shipping":      f.Shipping,
		"order_id":      f.OrderID,
		"subtotal":      subtotal,
		"shipping_cost": shippingCost,
		"total":         subtotal + shippingCost,
	}
}

// GetCheckoutState retourne l'étape courante du tunnel avec les montants
// recalculés depuis le panier vivant.
func GetCheckoutState(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis"})
		return
	}

	ctx := context.Background()
	f := flowStore().Load(ctx, sessionID)
	f.SeedEmail(c.GetString("email"))
	store, err := cartPersister().Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	c.JSON(http.StatusOK, flowResponse(f, store.Subtotal()))
}

// SaveShipping enregistre les infos de livraison saisies, sans les valider :
// la validation bloque au passage d'étape, pas à la frappe.
func SaveShipping(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis"})
		return
	}

	var info checkout.ShippingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()
	fs := flowStore()
	f := fs.Load(ctx, sessionID)
	f.Shipping = info
	f.SeedEmail(c.GetString("email"))

	if err := fs.Save(ctx, sessionID, f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde tunnel"})
		return
	}

	store, err := cartPersister().Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	c.JSON(http.StatusOK, flowResponse(f, store.Subtotal()))
}

// NextStep avance d'une étape dans le tunnel
func NextStep(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis"})
		return
	}

	ctx := context.Background()
	fs := flowStore()
	f := fs.Load(ctx, sessionID)

	store, err := cartPersister().Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	if err := f.Next(store); err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		case errors.Is(err, checkout.ErrConfirmationFinale):
			c.JSON(http.StatusConflict, gin.H{"error": "La commande est déjà confirmée"})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": "Transition d'étape invalide"})
		}
		return
	}

	if err := fs.Save(ctx, sessionID, f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde tunnel"})
		return
	}

	c.JSON(http.StatusOK, flowResponse(f, store.Subtotal()))
}

// BackStep recule d'une étape (shipping → cart, payment → shipping)
func BackStep(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis"})
		return
	}

	ctx := context.Background()
	fs := flowStore()
	f := fs.Load(ctx, sessionID)

	if err := f.Back(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Retour impossible depuis cette étape"})
		return
	}

	if err := fs.Save(ctx, sessionID, f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde tunnel"})
		return
	}

	store, err := cartPersister().Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	c.JSON(http.StatusOK, flowResponse(f, store.Subtotal()))
}

// PlaceOrder déclenche le placement de la commande : paiement simulé, aucune
// passerelle réelle. Verrou Redis contre la double soumission, puis écriture
// de la commande et de ses lignes. Le panier n'est vidé qu'en cas de succès.
func PlaceOrder(c *gin.Context) {
	sessionID := resolveSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Session-ID requis"})
		return
	}

	ctx := context.Background()
	fs := flowStore()

	acquired, err := fs.AcquirePlacementLock(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur verrou placement"})
		return
	}
	if !acquired {
		c.JSON(http.StatusConflict, gin.H{"error": "Une commande est déjà en cours de traitement"})
		return
	}
	defer fs.ReleasePlacementLock(ctx, sessionID)

	f := fs.Load(ctx, sessionID)
	persister := cartPersister()
	store, err := persister.Load(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement panier"})
		return
	}

	var userID *string
	if id, ok := c.Get("user_id"); ok {
		if s, ok := id.(string); ok && s != "" {
			userID = &s
		}
	}

	order, err := f.PlaceOrder(ctx, store, orders.NewScyllaWriter(), userID)
	if err != nil {
		// L'étape a pu changer (retour shipping/cart), on persiste l'état
		if serr := fs.Save(ctx, sessionID, f); serr != nil {
			log.Printf("⚠️ Sauvegarde tunnel après échec impossible pour %s: %v", sessionID, serr)
		}

		var verr *checkout.ValidationError
		var perr *checkout.PartialWriteError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field, "step": f.Step})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide", "step": f.Step})
		case errors.Is(err, checkout.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Le placement n'est possible qu'à l'étape paiement"})
		case errors.As(err, &perr):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "Commande créée mais lignes non enregistrées, contactez le support",
				"order_id": perr.OrderID.String(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur placement commande"})
		}
		return
	}

	// Panier vidé en Redis seulement après le succès complet
	if err := persister.Delete(ctx, sessionID); err != nil {
		log.Printf("⚠️ Panier Redis non vidé pour %s: %v", sessionID, err)
	}
	if err := fs.Save(ctx, sessionID, f); err != nil {
		log.Printf("⚠️ Sauvegarde tunnel après succès impossible pour %s: %v", sessionID, err)
	}

	log.Printf("🚀 Commande %s placée (total %s)", order.ID, utils.FormatPrice(order.Total))

	// Email de confirmation avec reçu PDF, hors du chemin de la réponse
	go utils.SendOrderConfirmation(*order)

	c.JSON(http.StatusCreated, gin.H{
		"order":    order,
		"step":     f.Step,
		"order_id": f.OrderID,
	})
}
