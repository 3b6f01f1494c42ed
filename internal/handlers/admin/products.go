package admin

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"clickstore_back_end/internal/models"
	"clickstore_back_end/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

// ImageUploader pousse l'image dans le stockage fichiers et renvoie son URL
// publique. L'upload précède toujours l'écriture du produit.
type ImageUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// ProductIndexer maintient l'index de recherche à jour après chaque écriture.
type ProductIndexer interface {
	Index(ctx context.Context, p models.Product)
	Remove(ctx context.Context, productID string)
}

// ProductHandler gère l'écran d'administration du catalogue : CRUD produit,
// upload d'image et bascule de disponibilité.
type ProductHandler struct {
	Products repository.ProductStore
	Images   ImageUploader
	Cache    *redis.Client  // optionnel
	Index    ProductIndexer // optionnel
}

func NewProductHandler(products repository.ProductStore, images ImageUploader, cache *redis.Client, index ProductIndexer) *ProductHandler {
	return &ProductHandler{Products: products, Images: images, Cache: cache, Index: index}
}

const productsCacheKey = "products:all"

func (h *ProductHandler) invalidateCache(ctx context.Context) {
	if h.Cache != nil {
		h.Cache.Del(ctx, productsCacheKey)
	}
}

// POST /api/admin/products (multipart)
// L'image est obligatoire à la création ; elle est uploadée avant l'insert.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Une image est obligatoire pour un nouveau produit"})
		return
	}

	imageURL, err := h.Images.Upload(ctx, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'upload de l'image"})
		return
	}

	p := models.Product{
		ID:          gocql.TimeUUID(),
		Name:        name,
		Price:       price,
		ImageURL:    imageURL,
		Category:    c.PostForm("category"),
		Subcategory: c.PostForm("subcategory"),
		IsAvailable: c.DefaultPostForm("is_available", "true") == "true",
		CreatedAt:   time.Now(),
	}

	if err := h.Products.Create(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	h.invalidateCache(ctx)
	if h.Index != nil {
		h.Index.Index(ctx, p)
	}

	c.JSON(http.StatusCreated, p)
}

// PUT /api/admin/products/:id (multipart)
// Un nouveau fichier est optionnel : sans lui l'image existante est conservée.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	existing, err := h.Products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = existing.Name
	}

	price := existing.Price
	if raw := c.PostForm("price"); raw != "" {
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
			return
		}
	}

	imageURL := existing.ImageURL
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err = h.Images.Upload(ctx, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'upload de l'image"})
			return
		}
	}
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Une image est obligatoire"})
		return
	}

	category := c.DefaultPostForm("category", existing.Category)
	subcategory := c.DefaultPostForm("subcategory", existing.Subcategory)

	isAvailable := existing.IsAvailable
	if raw := c.PostForm("is_available"); raw != "" {
		isAvailable = raw == "true"
	}

	p := models.Product{
		ID:          productID,
		Name:        name,
		Price:       price,
		ImageURL:    imageURL,
		Category:    category,
		Subcategory: subcategory,
		IsAvailable: isAvailable,
		CreatedAt:   existing.CreatedAt,
	}

	if err := h.Products.Update(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	h.invalidateCache(ctx)
	if h.Index != nil {
		h.Index.Index(ctx, p)
	}

	c.JSON(http.StatusOK, p)
}

// DELETE /api/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	if err := h.Products.Delete(ctx, productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	h.invalidateCache(ctx)
	if h.Index != nil {
		h.Index.Remove(ctx, productID.String())
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}

// PATCH /api/admin/products/:id/availability
// Mise à jour d'un seul champ, indépendante du formulaire d'édition.
func (h *ProductHandler) ToggleAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		IsAvailable *bool `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.IsAvailable == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'is_available' est obligatoire"})
		return
	}

	existing, err := h.Products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := h.Products.SetAvailability(ctx, productID, *input.IsAvailable); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	h.invalidateCache(ctx)
	if h.Index != nil {
		existing.IsAvailable = *input.IsAvailable
		h.Index.Index(ctx, *existing)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Disponibilité mise à jour",
		"is_available": *input.IsAvailable,
	})
}
