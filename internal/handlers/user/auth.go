package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"
	"smartgear_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	// email déjà pris ?
	var existingID string
	stmt := database.GetPreparedGetUserByEmail()
	if stmt != nil {
		if err := stmt.Bind(input.Email).Scan(&existingID); err == nil && existingID != "" {
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
			return
		}
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hashage mot de passe"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        gocql.TimeUUID().String(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      "customer",
		Provider:  "local",
		CreatedAt: &now,
	}

	if err := insertUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Nouvel utilisateur inscrit: %s", user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := findUserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	// Migration transparente des anciens hash bcrypt vers Argon2id
	if utils.IsBcryptHash(user.Password) {
		if newHash, err := utils.HashPassword(input.Password); err == nil {
			session, serr := database.GetUsersSession()
			if serr == nil {
				if uerr := session.Query(`UPDATE users SET password = ? WHERE user_id = ?`,
					newHash, user.ID).Exec(); uerr == nil {
					log.Printf("🔄 Hash migré vers Argon2id pour %s", user.Email)
				}
			}
		}
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

func Me(c *gin.Context) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	user, err := findUserByID(userID.(string))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":   user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"role":     user.Role,
		"provider": user.Provider,
	})
}

// ================== UTILITAIRES ==================

func insertUser(user models.User) error {
	stmtUser := database.GetPreparedInsertUser()
	stmtEmail := database.GetPreparedInsertUserByEmail()
	if stmtUser == nil || stmtEmail == nil {
		session, err := database.GetUsersSession()
		if err != nil {
			return err
		}
		if err := session.Query(`INSERT INTO users (user_id, email, password, name, role, provider, provider_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			user.ID, user.Email, user.Password, user.Name, user.Role,
			user.Provider, user.ProviderID, user.CreatedAt).Exec(); err != nil {
			return err
		}
		if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
			user.Email, user.ID).Exec(); err != nil {
			log.Printf("⚠️ Index users_by_email non écrit pour %s: %v", user.Email, err)
		}
		return nil
	}

	if err := stmtUser.Bind(user.ID, user.Email, user.Password, user.Name,
		user.Role, user.Provider, user.ProviderID, user.CreatedAt).Exec(); err != nil {
		return err
	}
	if err := stmtEmail.Bind(user.Email, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Index users_by_email non écrit pour %s: %v", user.Email, err)
	}
	return nil
}

func findUserByEmail(email string) (*models.User, error) {
	var userID string
	stmt := database.GetPreparedGetUserByEmail()
	if stmt == nil {
		session, err := database.GetUsersSession()
		if err != nil {
			return nil, err
		}
		if err := session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).Scan(&userID); err != nil {
			return nil, err
		}
	} else if err := stmt.Bind(email).Scan(&userID); err != nil {
		return nil, err
	}
	return findUserByID(userID)
}

func findUserByID(userID string) (*models.User, error) {
	user := models.User{ID: userID}
	stmt := database.GetPreparedGetUserByID()
	if stmt == nil {
		session, err := database.GetUsersSession()
		if err != nil {
			return nil, err
		}
		if err := session.Query(`SELECT email, password, name, role, provider, provider_id, created_at FROM users WHERE user_id = ?`, userID).
			Scan(&user.Email, &user.Password, &user.Name, &user.Role, &user.Provider, &user.ProviderID, &user.CreatedAt); err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err := stmt.Bind(userID).Scan(&user.Email, &user.Password, &user.Name,
		&user.Role, &user.Provider, &user.ProviderID, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
