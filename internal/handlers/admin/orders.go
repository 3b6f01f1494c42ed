package admin

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

// GET /api/admin/orders — toutes les commandes, plus récentes d'abord
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
