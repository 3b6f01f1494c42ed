package user

import (
	"net/http"

	"clickstore_back_end/internal/repository"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Orders repository.OrderStore
}

func NewOrderHandler(orders repository.OrderStore) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// GET /api/orders — commandes de l'utilisateur connecté, plus récentes d'abord
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	orders, err := h.Orders.ListByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
