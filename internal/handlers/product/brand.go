package product

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"smartgear_back_end/internal/cache"
	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"
)

const brandColumns = `brand_id, name, description, logo_url, is_featured, flash_sale_active, flash_sale_discount, created_at, updated_at`

// Remise par défaut appliquée quand une vente flash est activée sans remise
const defaultFlashSaleDiscount = 15.0

func scanBrand(b *models.Brand) []interface{} {
	return []interface{}{
		&b.ID, &b.Name, &b.Description, &b.LogoURL, &b.IsFeatured,
		&b.FlashSaleActive, &b.FlashSaleDiscount, &b.CreatedAt, &b.UpdatedAt,
	}
}

// GetBrands liste toutes les marques, via le cache Redis
func GetBrands(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "brands:all"

	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Brand
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + brandColumns + ` FROM brands`).WithContext(ctx).Iter()

	var brands []models.Brand
	for {
		var b models.Brand
		if !iter.Scan(scanBrand(&b)...) {
			break
		}
		brands = append(brands, b)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture marques"})
		return
	}

	if data, err := json.Marshal(brands); err == nil {
		database.RedisClient.Set(ctx, cacheKey, data, 30*time.Minute)
	}

	c.JSON(http.StatusOK, brands)
}

// GetFlashSaleBrands liste les marques en vente flash active
func GetFlashSaleBrands(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + brandColumns + ` FROM brands`).Iter()

	active := make([]models.Brand, 0)
	for {
		var b models.Brand
		if !iter.Scan(scanBrand(&b)...) {
			break
		}
		if b.FlashSaleActive {
			active = append(active, b)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture marques"})
		return
	}

	c.JSON(http.StatusOK, active)
}

// CreateBrand crée une marque (admin)
func CreateBrand(c *gin.Context) {
	var b models.Brand
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if b.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	b.ID = gocql.TimeUUID()
	now := time.Now()
	b.CreatedAt = &now
	b.UpdatedAt = &now

	query := `INSERT INTO brands (` + brandColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := session.Query(query, b.ID, b.Name, b.Description, b.LogoURL, b.IsFeatured,
		b.FlashSaleActive, b.FlashSaleDiscount, b.CreatedAt, b.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création marque"})
		return
	}

	cache.InvalidateBrandCache(context.Background())

	c.JSON(http.StatusOK, b)
}

// UpdateBrand met à jour une marque (admin)
func UpdateBrand(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID marque invalide"})
		return
	}

	var b models.Brand
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	b.ID = gocql.UUID(brandID)
	now := time.Now()
	b.UpdatedAt = &now

	query := `UPDATE brands SET name = ?, description = ?, logo_url = ?, is_featured = ?, flash_sale_active = ?, flash_sale_discount = ?, updated_at = ? WHERE brand_id = ?`
	if err := session.Query(query, b.Name, b.Description, b.LogoURL, b.IsFeatured,
		b.FlashSaleActive, b.FlashSaleDiscount, b.UpdatedAt, b.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour marque"})
		return
	}

	cache.InvalidateBrandCache(context.Background())

	c.JSON(http.StatusOK, b)
}

// ToggleFlashSale active ou désactive la vente flash d'une marque. À
// l'activation sans remise fournie, la remise par défaut s'applique ; à la
// désactivation la remise repasse à 0.
func ToggleFlashSale(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID marque invalide"})
		return
	}

	var body struct {
		Active   bool     `json:"active"`
		Discount *float64 `json:"discount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	discount := 0.0
	if body.Active {
		discount = defaultFlashSaleDiscount
		if body.Discount != nil && *body.Discount > 0 {
			discount = *body.Discount
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	query := `UPDATE brands SET flash_sale_active = ?, flash_sale_discount = ?, updated_at = ? WHERE brand_id = ?`
	if err := session.Query(query, body.Active, discount, now, gocql.UUID(brandID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour vente flash"})
		return
	}

	cache.InvalidateBrandCache(context.Background())

	c.JSON(http.StatusOK, gin.H{
		"brand_id":            brandID.String(),
		"flash_sale_active":   body.Active,
		"flash_sale_discount": discount,
	})
}

// DeleteBrand supprime une marque (admin)
func DeleteBrand(c *gin.Context) {
	brandID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID marque invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM brands WHERE brand_id = ?`, gocql.UUID(brandID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression marque"})
		return
	}

	cache.InvalidateBrandCache(context.Background())

	c.JSON(http.StatusOK, gin.H{"message": "Marque supprimée"})
}
