package product_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clickstore_back_end/internal/handlers/product"
	"clickstore_back_end/internal/models"
	"clickstore_back_end/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"
)

type stubProductStore struct {
	products []models.Product
}

func (s *stubProductStore) List(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *stubProductStore) GetByID(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubProductStore) Create(ctx context.Context, p models.Product) error {
	s.products = append(s.products, p)
	return nil
}

func (s *stubProductStore) Update(ctx context.Context, p models.Product) error  { return nil }
func (s *stubProductStore) Delete(ctx context.Context, id gocql.UUID) error     { return nil }
func (s *stubProductStore) SetAvailability(context.Context, gocql.UUID, bool) error {
	return nil
}

type stubCategoryStore struct {
	categories []models.Category
}

func (s *stubCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func newCatalogRouter(products *stubProductStore, categories *stubCategoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := product.NewCatalogHandler(products, categories, nil, nil)

	r := gin.New()
	r.GET("/api/products", h.GetProducts)
	r.GET("/api/categories", h.GetCategories)
	return r
}

// catalogFixture fabrique n produits horodatés en ordre croissant : l'API doit
// les renvoyer du plus récent au plus ancien.
func catalogFixture(n int) []models.Product {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, models.Product{
			ID:          gocql.TimeUUID(),
			Name:        fmt.Sprintf("Produit %02d", i),
			Price:       float64(10 + i),
			Category:    "Gaming",
			Subcategory: "Consoles",
			IsAvailable: true,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
	}
	return products
}

type productsResponse struct {
	Items        []models.Product `json:"items"`
	Total        int              `json:"total"`
	Page         int              `json:"page"`
	ItemsPerPage int              `json:"items_per_page"`
	TotalPages   int              `json:"total_pages"`
}

func getProducts(t *testing.T, r *gin.Engine, query string) productsResponse {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products"+query, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body productsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetProducts(t *testing.T) {
	fixture := catalogFixture(20)
	r := newCatalogRouter(&stubProductStore{products: fixture}, &stubCategoryStore{})

	t.Run("page size is columns times six", func(t *testing.T) {
		body := getProducts(t, r, "?page=1&columns=2")
		require.Equal(t, 12, body.ItemsPerPage)
		require.Len(t, body.Items, 12)
		require.Equal(t, 20, body.Total)
		require.Equal(t, 2, body.TotalPages)
	})

	t.Run("newest first across pages without overlap", func(t *testing.T) {
		first := getProducts(t, r, "?page=1&columns=2")
		second := getProducts(t, r, "?page=2&columns=2")

		require.Len(t, second.Items, 8) // 20 produits, 12 sur la première page

		// Le plus récent du fixture ouvre la page 1
		require.Equal(t, "Produit 19", first.Items[0].Name)
		// La page 2 reprend exactement là où la page 1 s'arrête
		require.Equal(t, "Produit 07", second.Items[0].Name)

		seen := map[string]bool{}
		for _, p := range append(first.Items, second.Items...) {
			require.False(t, seen[p.Name])
			seen[p.Name] = true
		}
	})

	t.Run("columns is clamped between one and three", func(t *testing.T) {
		require.Equal(t, 6, getProducts(t, r, "?columns=0").ItemsPerPage)
		require.Equal(t, 18, getProducts(t, r, "?columns=9").ItemsPerPage)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		body := getProducts(t, r, "?page=50&columns=1")
		require.NotNil(t, body.Items)
		require.Empty(t, body.Items)
		require.Equal(t, 20, body.Total)
	})

	t.Run("text search matches substrings case-insensitively", func(t *testing.T) {
		body := getProducts(t, r, "?q=produit+0&columns=3")
		require.Equal(t, 10, body.Total) // Produit 00 à 09
	})

	t.Run("category and subcategory filters combine with the search", func(t *testing.T) {
		store := &stubProductStore{products: []models.Product{
			{ID: gocql.TimeUUID(), Name: "PS5 Console", Category: "Gaming", Subcategory: "Consoles"},
			{ID: gocql.TimeUUID(), Name: "PS5 Manette", Category: "Gaming", Subcategory: "Accessoires"},
			{ID: gocql.TimeUUID(), Name: "Clavier", Category: "Informatique", Subcategory: "Accessoires"},
		}}
		rr := newCatalogRouter(store, &stubCategoryStore{})

		require.Equal(t, 2, getProducts(t, rr, "?category=Gaming").Total)
		require.Equal(t, 1, getProducts(t, rr, "?category=Gaming&subcategory=Accessoires").Total)
		require.Equal(t, 1, getProducts(t, rr, "?q=ps5&subcategory=Consoles").Total)
		// "All" désactive la dimension
		require.Equal(t, 3, getProducts(t, rr, "?category=All&subcategory=All").Total)
	})
}

func TestGetCategories(t *testing.T) {
	t.Run("returns the category tree", func(t *testing.T) {
		r := newCatalogRouter(&stubProductStore{}, &stubCategoryStore{categories: []models.Category{
			{Name: "Gaming", Subcategories: []string{"Consoles", "Accessoires"}},
			{Name: "Informatique", Subcategories: []string{"Claviers"}},
		}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body []models.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 2)
		require.Equal(t, []string{"Consoles", "Accessoires"}, body[0].Subcategories)
	})

	t.Run("no categories is an empty list, not null", func(t *testing.T) {
		r := newCatalogRouter(&stubProductStore{}, &stubCategoryStore{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "[]", w.Body.String())
	})
}

func TestPaginate(t *testing.T) {
	fixture := catalogFixture(10)

	t.Run("page k holds elements from (k-1)n to kn", func(t *testing.T) {
		page := product.Paginate(fixture, 2, 4)
		require.Equal(t, fixture[4:8], page)
	})

	t.Run("last page is clipped", func(t *testing.T) {
		page := product.Paginate(fixture, 3, 4)
		require.Equal(t, fixture[8:10], page)
	})

	t.Run("out of range pages are empty", func(t *testing.T) {
		require.Empty(t, product.Paginate(fixture, 4, 4))
		require.Equal(t, fixture[:4], product.Paginate(fixture, 0, 4)) // page < 1 vaut 1
	})
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, product.TotalPages(0, 6))
	require.Equal(t, 1, product.TotalPages(6, 6))
	require.Equal(t, 2, product.TotalPages(7, 6))
}
