package product

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"smartgear_back_end/internal/cache"
	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/services"
)

// UploadProductImage pousse une image dans le bucket 🪣 et l'ajoute à la
// galerie du produit.
func UploadProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'image' requis"})
		return
	}

	ctx := context.Background()
	url, err := services.UploadFile(ctx, "products", file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image: " + err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	id := gocql.UUID(productID)
	var urls []string
	if err := session.Query(`SELECT image_urls FROM products WHERE product_id = ?`, id).Scan(&urls); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	urls = append(urls, url)
	now := time.Now()
	if err := session.Query(`UPDATE products SET image_urls = ?, updated_at = ? WHERE product_id = ?`,
		urls, now, id).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProductCache(ctx, id)

	c.JSON(http.StatusOK, gin.H{"url": url, "image_urls": urls})
}

// DeleteProductImage retire une image de la galerie et la supprime du bucket
func DeleteProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var body struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'url' requis"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ctx := context.Background()
	id := gocql.UUID(productID)
	var urls []string
	if err := session.Query(`SELECT image_urls FROM products WHERE product_id = ?`, id).Scan(&urls); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	kept := make([]string, 0, len(urls))
	found := false
	for _, u := range urls {
		if u == body.URL {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image introuvable sur ce produit"})
		return
	}

	now := time.Now()
	if err := session.Query(`UPDATE products SET image_urls = ?, updated_at = ? WHERE product_id = ?`,
		kept, now, id).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	if err := services.DeleteFile(ctx, body.URL); err != nil {
		// L'objet orphelin sera nettoyé plus tard, la galerie est déjà à jour
		c.JSON(http.StatusOK, gin.H{"message": "Image retirée (objet bucket non supprimé)", "image_urls": kept})
		return
	}

	cache.InvalidateProductCache(ctx, id)

	c.JSON(http.StatusOK, gin.H{"message": "Image supprimée", "image_urls": kept})
}
