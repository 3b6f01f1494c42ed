package user

import (
	"net/http"

	"clickstore_back_end/internal/models"
	"clickstore_back_end/internal/repository"
	"clickstore_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users repository.UserStore
}

func NewAuthHandler(users repository.UserStore) *AuthHandler {
	return &AuthHandler{Users: users}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe obligatoires"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	// Les comptes admin sont promus manuellement en base
	u := models.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         "customer",
	}

	created, err := h.Users.Create(c.Request.Context(), u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	token, err := utils.GenerateJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	u, err := h.Users.GetByEmail(c.Request.Context(), input.Email)
	if err != nil || !utils.CheckPassword(u.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	})
}
