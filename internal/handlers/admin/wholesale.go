package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"
)

// ================== CLIENTS GROSSISTES ==================

const wholesaleCustomerColumns = `customer_id, business_name, contact_name, email, phone, discount_percentage, status, notes, created_at, updated_at`

// GetWholesaleCustomers liste les clients grossistes
func GetWholesaleCustomers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + wholesaleCustomerColumns + ` FROM wholesale_customers`).Iter()

	var customers []models.WholesaleCustomer
	for {
		var w models.WholesaleCustomer
		if !iter.Scan(&w.ID, &w.BusinessName, &w.ContactName, &w.Email, &w.Phone,
			&w.DiscountPercentage, &w.Status, &w.Notes, &w.CreatedAt, &w.UpdatedAt) {
			break
		}
		customers = append(customers, w)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture clients grossistes"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// CreateWholesaleCustomer enregistre une demande de compte grossiste
func CreateWholesaleCustomer(c *gin.Context) {
	var w models.WholesaleCustomer
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if w.BusinessName == "" || w.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'business_name' et 'email' sont obligatoires"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	w.ID = gocql.TimeUUID()
	w.Status = models.WholesaleStatusPending
	now := time.Now()
	w.CreatedAt = &now
	w.UpdatedAt = &now

	query := `INSERT INTO wholesale_customers (` + wholesaleCustomerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := session.Query(query, w.ID, w.BusinessName, w.ContactName, w.Email, w.Phone,
		w.DiscountPercentage, w.Status, w.Notes, w.CreatedAt, w.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création client grossiste"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// UpdateWholesaleCustomer met à jour statut, remise et notes d'un grossiste
func UpdateWholesaleCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID client invalide"})
		return
	}

	var body struct {
		Status             *string  `json:"status"`
		DiscountPercentage *float64 `json:"discount_percentage"`
		Notes              *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Status != nil {
		switch *body.Status {
		case models.WholesaleStatusPending, models.WholesaleStatusApproved, models.WholesaleStatusRejected:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + *body.Status})
			return
		}
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	id := gocql.UUID(customerID)
	now := time.Now()

	if body.Status != nil {
		if err := session.Query(`UPDATE wholesale_customers SET status = ?, updated_at = ? WHERE customer_id = ?`,
			*body.Status, now, id).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
			return
		}
	}
	if body.DiscountPercentage != nil {
		if err := session.Query(`UPDATE wholesale_customers SET discount_percentage = ?, updated_at = ? WHERE customer_id = ?`,
			*body.DiscountPercentage, now, id).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour remise"})
			return
		}
	}
	if body.Notes != nil {
		if err := session.Query(`UPDATE wholesale_customers SET notes = ?, updated_at = ? WHERE customer_id = ?`,
			*body.Notes, now, id).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour notes"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client grossiste mis à jour"})
}

// DeleteWholesaleCustomer supprime un client grossiste
func DeleteWholesaleCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID client invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM wholesale_customers WHERE customer_id = ?`, gocql.UUID(customerID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression client grossiste"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client grossiste supprimé"})
}

// ================== TARIFS GROSSISTES ==================

// GetWholesalePricing liste les paliers tarifaires d'un produit
func GetWholesalePricing(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT pricing_id, product_id, min_quantity, price_per_unit, created_at, updated_at
		FROM wholesale_pricing WHERE product_id = ?`, gocql.UUID(productID)).Iter()

	var pricing []models.WholesalePricing
	for {
		var p models.WholesalePricing
		if !iter.Scan(&p.ID, &p.ProductID, &p.MinQuantity, &p.PricePerUnit, &p.CreatedAt, &p.UpdatedAt) {
			break
		}
		pricing = append(pricing, p)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture tarifs"})
		return
	}

	c.JSON(http.StatusOK, pricing)
}

// CreateWholesalePricing ajoute un palier tarifaire à un produit
func CreateWholesalePricing(c *gin.Context) {
	var p models.WholesalePricing
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.MinQuantity <= 0 || p.PricePerUnit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité minimale et prix unitaire doivent être positifs"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p.ID = gocql.TimeUUID()
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now

	if err := session.Query(`INSERT INTO wholesale_pricing (pricing_id, product_id, min_quantity, price_per_unit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.ProductID, p.MinQuantity, p.PricePerUnit, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création palier tarifaire"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteWholesalePricing supprime un palier tarifaire
func DeleteWholesalePricing(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	pricingID, err := uuid.Parse(c.Param("pricingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID palier invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM wholesale_pricing WHERE product_id = ? AND pricing_id = ?`,
		gocql.UUID(productID), gocql.UUID(pricingID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression palier tarifaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Palier tarifaire supprimé"})
}
