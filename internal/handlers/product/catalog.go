package product

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"clickstore_back_end/internal/models"
	"clickstore_back_end/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ProductSearcher est la recherche plein-texte (Elasticsearch). Optionnelle :
// sans elle le handler filtre la liste complète en mémoire.
type ProductSearcher interface {
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// CatalogHandler sert la boutique : trois dimensions de filtre indépendantes
// (texte libre sur le nom, catégorie, sous-catégorie) et pagination par
// tranches de columns × 6 articles.
type CatalogHandler struct {
	Products   repository.ProductStore
	Categories repository.CategoryStore
	Cache      *redis.Client   // optionnel
	Search     ProductSearcher // optionnel
}

func NewCatalogHandler(products repository.ProductStore, categories repository.CategoryStore, cache *redis.Client, search ProductSearcher) *CatalogHandler {
	return &CatalogHandler{Products: products, Categories: categories, Cache: cache, Search: search}
}

const (
	productsCacheKey   = "products:all"
	categoriesCacheKey = "categories:all"
	catalogCacheTTL    = time.Hour
)

// GET /api/products?q=&category=&subcategory=&page=&columns=
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	q := c.Query("q")
	category := c.Query("category")
	subcategory := c.Query("subcategory")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	columns, _ := strconv.Atoi(c.DefaultQuery("columns", "1"))
	if columns < 1 {
		columns = 1
	}
	if columns > 3 {
		columns = 3
	}
	itemsPerPage := columns * 6

	products, err := h.fetchProducts(ctx, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	products = FilterProducts(products, q, category, subcategory)

	// Plus récent d'abord, quel que soit le chemin de récupération
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	pageItems := Paginate(products, page, itemsPerPage)
	if pageItems == nil {
		pageItems = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"items":          pageItems,
		"total":          len(products),
		"page":           page,
		"items_per_page": itemsPerPage,
		"total_pages":    TotalPages(len(products), itemsPerPage),
	})
}

// fetchProducts interroge Elasticsearch quand une recherche texte est
// demandée, sinon la liste complète (cache Redis puis ScyllaDB).
// Le fallback Elastic → scan complet reprend le filtrage en mémoire.
func (h *CatalogHandler) fetchProducts(ctx context.Context, q string) ([]models.Product, error) {
	if q != "" && h.Search != nil {
		if results, err := h.Search.Search(ctx, q); err == nil {
			return results, nil
		}
		// L'index est indisponible, on retombe sur le scan
	}

	if h.Cache != nil {
		if val, err := h.Cache.Get(ctx, productsCacheKey).Result(); err == nil && val != "" {
			var cached []models.Product
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	products, err := h.Products.List(ctx)
	if err != nil {
		return nil, err
	}

	if h.Cache != nil {
		if data, err := json.Marshal(products); err == nil {
			h.Cache.Set(ctx, productsCacheKey, data, catalogCacheTTL)
		}
	}
	return products, nil
}

// GET /api/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Cache != nil {
		if val, err := h.Cache.Get(ctx, categoriesCacheKey).Result(); err == nil && val != "" {
			var cached []models.Category
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	categories, err := h.Categories.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}
	if categories == nil {
		// Pas de catégories n'est pas une erreur, le front affiche un état vide
		categories = []models.Category{}
	}

	if h.Cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			h.Cache.Set(ctx, categoriesCacheKey, data, catalogCacheTTL)
		}
	}

	c.JSON(http.StatusOK, categories)
}

// FilterProducts applique les trois dimensions de filtre. "All" ou vide
// désactive la dimension, comme les sélecteurs de la boutique.
func FilterProducts(products []models.Product, q, category, subcategory string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			continue
		}
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		if subcategory != "" && subcategory != "All" && p.Subcategory != subcategory {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Paginate renvoie la page k, soit les éléments [(k-1)·n, k·n) bornés à la
// taille de la liste.
func Paginate(products []models.Product, page, perPage int) []models.Product {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + perPage
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

func TotalPages(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
