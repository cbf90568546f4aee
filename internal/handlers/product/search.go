package product

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smartgear_back_end/internal/services"
)

// SearchProducts interroge Elasticsearch (nom, marque, catégorie,
// description, compatibilité) et signe les URLs d'images retournées.
func SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' requis"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
		return
	}

	ctx := context.Background()
	for _, hit := range results {
		urls, ok := hit["image_urls"].([]interface{})
		if !ok {
			continue
		}
		signed := make([]string, 0, len(urls))
		for _, raw := range urls {
			u, ok := raw.(string)
			if !ok {
				continue
			}
			// Si la signature échoue on garde l'URL publique telle quelle
			if s, err := services.GenerateSignedURL(ctx, u, 15*time.Minute); err == nil {
				signed = append(signed, s)
			} else {
				signed = append(signed, u)
			}
		}
		hit["image_urls"] = signed
	}

	c.JSON(http.StatusOK, results)
}
