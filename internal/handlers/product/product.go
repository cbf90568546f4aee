package product

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"smartgear_back_end/internal/cache"
	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"
	"smartgear_back_end/internal/services"
)

const productColumns = `product_id, name, description, brand, category, price, original_price, stock_count, image_urls, featured, trending, new_arrival, compatibility, created_at, updated_at`

func scanProduct(p *models.Product) []interface{} {
	return []interface{}{
		&p.ID, &p.Name, &p.Description, &p.Brand, &p.Category, &p.Price,
		&p.OriginalPrice, &p.StockCount, &p.ImageURLs, &p.Featured,
		&p.Trending, &p.NewArrival, &p.Compatibility, &p.CreatedAt, &p.UpdatedAt,
	}
}

// fetchAllProducts lit le catalogue complet, via le cache Redis si possible.
func fetchAllProducts(ctx context.Context) ([]models.Product, error) {
	cacheKey := "products:all"

	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	for {
		var p models.Product
		if !iter.Scan(scanProduct(&p)...) {
			break
		}
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, cacheKey, data, time.Hour)
	}

	return products, nil
}

// GetProducts liste le catalogue avec filtres (marque, catégorie, prix,
// compatibilité, drapeaux) et tri. Une erreur de lecture dégrade en liste
// vide : le parcours boutique n'est pas un chemin critique.
func GetProducts(c *gin.Context) {
	ctx := context.Background()

	products, err := fetchAllProducts(ctx)
	if err != nil {
		c.JSON(http.StatusOK, []models.Product{})
		return
	}

	filtered := make([]models.Product, 0, len(products))
	brand := c.Query("brand")
	category := c.Query("category")
	compat := c.Query("compatibility")
	minPrice, hasMin := parseFloat(c.Query("min_price"))
	maxPrice, hasMax := parseFloat(c.Query("max_price"))

	for _, p := range products {
		if brand != "" && !strings.EqualFold(p.Brand, brand) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if compat != "" && !containsFold(p.Compatibility, compat) {
			continue
		}
		if hasMin && p.Price < minPrice {
			continue
		}
		if hasMax && p.Price > maxPrice {
			continue
		}
		if c.Query("featured") == "true" && !p.Featured {
			continue
		}
		if c.Query("trending") == "true" && !p.Trending {
			continue
		}
		if c.Query("new_arrival") == "true" && !p.NewArrival {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, c.DefaultQuery("sort", "newest"))

	c.JSON(http.StatusOK, filtered)
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []models.Product, by string) {
	switch by {
	case "price-low":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price-high":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case "name":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	default: // newest
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].CreatedAt == nil || products[j].CreatedAt == nil {
				return false
			}
			return products[i].CreatedAt.After(*products[j].CreatedAt)
		})
	}
}

// GetProductByID retourne un produit, via le cache produit
func GetProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := cache.GetProductFromCache(context.Background(), gocql.UUID(productID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetLowStockProducts liste les produits sous le seuil d'alerte du back-office
func GetLowStockProducts(c *gin.Context) {
	threshold := 5
	if t, err := strconv.Atoi(c.DefaultQuery("threshold", "5")); err == nil && t > 0 {
		threshold = t
	}

	products, err := fetchAllProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusOK, []models.Product{})
		return
	}

	low := make([]models.Product, 0)
	for _, p := range products {
		if p.StockCount < threshold {
			low = append(low, p)
		}
	}

	c.JSON(http.StatusOK, low)
}

// CreateProduct crée un produit (admin)
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Brand == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'brand' sont obligatoires"})
		return
	}
	if p.Price < 0 || p.StockCount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix et stock doivent être positifs"})
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

	query := `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := session.Query(query, p.ID, p.Name, p.Description, p.Brand, p.Category,
		p.Price, p.OriginalPrice, p.StockCount, p.ImageURLs, p.Featured, p.Trending,
		p.NewArrival, p.Compatibility, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	cache.InvalidateProductCache(context.Background(), p.ID)

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// UpdateProduct met à jour un produit (admin)
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Price < 0 || p.StockCount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix et stock doivent être positifs"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p.ID = gocql.UUID(productID)
	now := time.Now()
	p.UpdatedAt = &now

	query := `UPDATE products SET name = ?, description = ?, brand = ?, category = ?, price = ?, original_price = ?, stock_count = ?, image_urls = ?, featured = ?, trending = ?, new_arrival = ?, compatibility = ?, updated_at = ? WHERE product_id = ?`
	if err := session.Query(query, p.Name, p.Description, p.Brand, p.Category, p.Price,
		p.OriginalPrice, p.StockCount, p.ImageURLs, p.Featured, p.Trending, p.NewArrival,
		p.Compatibility, p.UpdatedAt, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProductCache(context.Background(), p.ID)
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// DeleteProduct supprime un produit (admin)
func DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, gocql.UUID(productID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	cache.InvalidateProductCache(context.Background(), gocql.UUID(productID))
	go services.RemoveProductFromIndex(productID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
