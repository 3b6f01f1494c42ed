package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clickstore_back_end/internal/handlers/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(users *mockUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := user.NewAuthHandler(users)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	t.Run("creates a customer account and returns a token", func(t *testing.T) {
		users := newMockUserStore()
		r := newAuthRouter(users)

		w := postJSON(r, "/api/auth/register", mustJSON(gin.H{
			"name":     "Amine",
			"email":    "amine@clickstore.tn",
			"password": "s3cret",
		}))

		require.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Token string `json:"token"`
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotEmpty(t, body.Token)
		require.Equal(t, "amine@clickstore.tn", body.Email)
		require.Equal(t, "customer", body.Role)

		stored := users.users["amine@clickstore.tn"]
		require.Equal(t, "customer", stored.Role)
		require.NotEqual(t, "s3cret", stored.PasswordHash) // jamais en clair
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users := newMockUserStore()
		r := newAuthRouter(users)

		w := postJSON(r, "/api/auth/register", mustJSON(gin.H{
			"email": testEmail, "password": "s3cret",
		}))
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("email and password are mandatory", func(t *testing.T) {
		r := newAuthRouter(newMockUserStore())

		require.Equal(t, http.StatusBadRequest,
			postJSON(r, "/api/auth/register", mustJSON(gin.H{"email": "a@b.tn"})).Code)
		require.Equal(t, http.StatusBadRequest,
			postJSON(r, "/api/auth/register", mustJSON(gin.H{"password": "x"})).Code)
	})
}

func TestLogin(t *testing.T) {
	users := newMockUserStore()
	r := newAuthRouter(users)

	// Compte créé via l'endpoint pour avoir un vrai hash bcrypt
	w := postJSON(r, "/api/auth/register", mustJSON(gin.H{
		"email": "amine@clickstore.tn", "password": "s3cret",
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials return a token", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", mustJSON(gin.H{
			"email": "amine@clickstore.tn", "password": "s3cret",
		}))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotEmpty(t, body.Token)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", mustJSON(gin.H{
			"email": "amine@clickstore.tn", "password": "wrong",
		}))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown account is unauthorized, not a 404", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", mustJSON(gin.H{
			"email": "nobody@clickstore.tn", "password": "x",
		}))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
