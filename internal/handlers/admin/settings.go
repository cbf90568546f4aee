package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"
)

// GetSettings retourne tous les réglages du site
func GetSettings(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT key, value, created_at, updated_at FROM site_settings`).Iter()

	settings := make(map[string]string)
	for {
		var s models.SiteSetting
		if !iter.Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt) {
			break
		}
		settings[s.Key] = s.Value
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réglages"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetSetting retourne un réglage par clé
func GetSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clé requise"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var s models.SiteSetting
	s.Key = key
	if err := session.Query(`SELECT value, created_at, updated_at FROM site_settings WHERE key = ?`, key).
		Scan(&s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Réglage introuvable"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// UpsertSetting crée ou remplace un réglage
func UpsertSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clé requise"})
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'value' requis"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	if err := session.Query(`INSERT INTO site_settings (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		key, body.Value, now, now).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement réglage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": body.Value})
}

// DeleteSetting supprime un réglage
func DeleteSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clé requise"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM site_settings WHERE key = ?`, key).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression réglage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Réglage supprimé"})
}
