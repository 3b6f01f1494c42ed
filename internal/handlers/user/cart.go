package user

import (
	"errors"
	"net/http"

	"clickstore_back_end/internal/models"
	"clickstore_back_end/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// CartHandler manipule le snapshot panier de l'utilisateur connecté.
// Chaque mutation relit le snapshot, l'édite localement et le réécrit en
// entier sous condition de version (un conflit renvoie 409, le front relit).
type CartHandler struct {
	Users    repository.UserStore
	Products repository.ProductStore
}

func NewCartHandler(users repository.UserStore, products repository.ProductStore) *CartHandler {
	return &CartHandler{Users: users, Products: products}
}

// GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart, version, err := h.Users.GetCart(c.Request.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   cart,
		"total":   models.CartTotal(cart),
		"version": version,
	})
}

// POST /api/cart/add
func (h *CartHandler) AddToCart(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	productID, err := gocql.ParseUUID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	product, err := h.Products.GetByID(c.Request.Context(), productID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if !product.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit non disponible"})
		return
	}

	cart, version, err := h.Users.GetCart(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// Le prix est figé au moment de l'ajout
	cart = models.AddItem(cart, models.CartItem{
		ID:       product.ID.String(),
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
	})

	applied, err := h.Users.SaveCart(c.Request.Context(), email, cart, version)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur écriture panier"})
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "Le panier a été modifié entre-temps, réessayez"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

// PUT /api/cart/quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	cart, version, err := h.Users.GetCart(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	cart, changed := models.SetQuantity(cart, input.ItemID, input.Quantity)
	if !changed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article absent du panier"})
		return
	}

	applied, err := h.Users.SaveCart(c.Request.Context(), email, cart, version)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur écriture panier"})
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "Le panier a été modifié entre-temps, réessayez"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantité mise à jour",
		"items":   cart,
	})
}

// DELETE /api/cart/item/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	itemID := c.Param("id")

	cart, version, err := h.Users.GetCart(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	cart = models.RemoveItem(cart, itemID)

	applied, err := h.Users.SaveCart(c.Request.Context(), email, cart, version)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur écriture panier"})
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "Le panier a été modifié entre-temps, réessayez"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   cart,
	})
}

// GET /api/cart/count — badge du panier dans la barre de navigation
func (h *CartHandler) CartCount(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart, _, err := h.Users.GetCart(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": models.CartCount(cart)})
}
