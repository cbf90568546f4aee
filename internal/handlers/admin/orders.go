package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"smartgear_back_end/internal/orders"
)

// GetAllOrders liste toutes les commandes pour le back-office
func GetAllOrders(c *gin.Context) {
	list, err := orders.ListAll(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetOrderByID retourne une commande avec ses lignes individuelles
func GetOrderByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx := context.Background()
	order, err := orders.GetOrder(ctx, gocql.UUID(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	items, err := orders.ListItems(ctx, gocql.UUID(orderID))
	if err == nil && len(items) > 0 {
		order.Items = items
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus change le statut d'une commande
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'status' requis"})
		return
	}

	if err := orders.UpdateStatus(context.Background(), gocql.UUID(orderID), body.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID.String(), "status": body.Status})
}

// DeleteOrder supprime une commande et ses lignes
func DeleteOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	if err := orders.Delete(context.Background(), gocql.UUID(orderID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression commande"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commande supprimée"})
}
