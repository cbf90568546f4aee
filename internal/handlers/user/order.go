package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"smartgear_back_end/internal/orders"
	"smartgear_back_end/internal/utils"
)

// GetMyOrders retourne l'historique de commandes du client connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	list, err := orders.ListByUser(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetMyOrder retourne le détail d'une commande du client connecté
func GetMyOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := orders.GetOrder(context.Background(), gocql.UUID(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.UserID == nil || *order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Commande inaccessible"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// DownloadReceipt génère le reçu PDF d'une commande du client connecté
func DownloadReceipt(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := orders.GetOrder(context.Background(), gocql.UUID(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if order.UserID == nil || *order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Commande inaccessible"})
		return
	}

	pdf, err := utils.GenerateReceiptPDF(*order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération reçu"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="recu_smartgear.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GetOrderTrackingQR retourne le QR code de suivi d'une commande
func GetOrderTrackingQR(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	qr, err := utils.GenerateTrackingQR(orderID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"qr": qr})
}
