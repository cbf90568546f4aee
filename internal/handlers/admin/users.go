package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"
)

var userRoles = map[string]bool{
	"customer": true,
	"admin":    true,
}

// GetAllUsers liste tous les comptes pour le back-office
func GetAllUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT user_id, email, name, role, provider, created_at FROM users`).Iter()

	var users []models.User
	for {
		var u models.User
		if !iter.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Provider, &u.CreatedAt) {
			break
		}
		users = append(users, u)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUserRole change le rôle d'un compte
func UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur requis"})
		return
	}

	var body struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'role' requis"})
		return
	}
	if !userRoles[body.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu: " + body.Role})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE users SET role = ? WHERE user_id = ?`, body.Role, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour rôle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": body.Role})
}

// DeleteUser supprime un compte et son index email
func DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur requis"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var email string
	if err := session.Query(`SELECT email FROM users WHERE user_id = ?`, userID).Scan(&email); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if err := session.Query(`DELETE FROM users_by_email WHERE email = ?`, email).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression index email"})
		return
	}
	if err := session.Query(`DELETE FROM users WHERE user_id = ?`, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression utilisateur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé"})
}
