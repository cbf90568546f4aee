package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"
	"smartgear_back_end/internal/services"
)

// GetMediaLibrary liste les fichiers de la médiathèque, filtrables par nom
func GetMediaLibrary(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT media_id, file_name, file_url, file_type, file_size, created_at FROM media_library`).Iter()

	var items []models.MediaItem
	for {
		var m models.MediaItem
		if !iter.Scan(&m.ID, &m.FileName, &m.FileURL, &m.FileType, &m.FileSize, &m.CreatedAt) {
			break
		}
		items = append(items, m)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture médiathèque"})
		return
	}

	c.JSON(http.StatusOK, filterMediaByName(items, c.Query("name")))
}

// filterMediaByName garde les fichiers dont le nom contient la recherche,
// sans tenir compte de la casse. Recherche vide : tout passe.
func filterMediaByName(items []models.MediaItem, name string) []models.MediaItem {
	if name == "" {
		return items
	}
	needle := strings.ToLower(name)
	filtered := make([]models.MediaItem, 0, len(items))
	for _, m := range items {
		if strings.Contains(strings.ToLower(m.FileName), needle) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// UploadMedia pousse un fichier dans le bucket 🪣 puis l'enregistre en
// médiathèque.
func UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'file' requis"})
		return
	}

	ctx := context.Background()
	url, err := services.UploadFile(ctx, "media", file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload fichier: " + err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	item := models.MediaItem{
		ID:        gocql.TimeUUID(),
		FileName:  file.Filename,
		FileURL:   url,
		FileType:  file.Header.Get("Content-Type"),
		FileSize:  file.Size,
		CreatedAt: &now,
	}

	if err := session.Query(`INSERT INTO media_library (media_id, file_name, file_url, file_type, file_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.FileName, item.FileURL, item.FileType, item.FileSize, item.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement médiathèque"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteMedia retire un fichier de la médiathèque et du bucket
func DeleteMedia(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID média invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	id := gocql.UUID(mediaID)
	var fileURL string
	if err := session.Query(`SELECT file_url FROM media_library WHERE media_id = ?`, id).Scan(&fileURL); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Média introuvable"})
		return
	}

	if err := session.Query(`DELETE FROM media_library WHERE media_id = ?`, id).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression média"})
		return
	}

	if err := services.DeleteFile(context.Background(), fileURL); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Média supprimé (objet bucket non supprimé)"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Média supprimé"})
}
