package user

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"clickstore_back_end/internal/models"
	"clickstore_back_end/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// DeliveryFee est ajouté une seule fois au moment de la confirmation.
const DeliveryFee = 8.0

// OrderNotifier prévient l'admin qu'une commande vient d'être passée.
// Best-effort : un échec est loggé et jamais réessayé.
type OrderNotifier interface {
	SendOrderNotification(customerEmail string, cart []models.CartItem, totalPrice float64) error
}

type CheckoutHandler struct {
	Users    repository.UserStore
	Orders   repository.OrderStore
	Notifier OrderNotifier
}

func NewCheckoutHandler(users repository.UserStore, orders repository.OrderStore, notifier OrderNotifier) *CheckoutHandler {
	return &CheckoutHandler{Users: users, Orders: orders, Notifier: notifier}
}

// POST /api/checkout/confirm
//
// Lit le snapshot du panier, calcule le total, enregistre la commande puis
// vide le panier. La clé d'idempotence (fournie par le front ou générée ici)
// garantit au plus une commande par tentative de checkout : un rechargement
// de la page de confirmation retombe sur la commande déjà créée.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		CheckoutKey string `json:"checkout_key"`
	}
	// Corps optionnel
	_ = c.ShouldBindJSON(&input)

	checkoutKey := input.CheckoutKey
	if checkoutKey == "" {
		checkoutKey = uuid.NewString()
	}

	cart, version, err := h.Users.GetCart(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	if len(cart) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Panier vide, aucune commande créée"})
		return
	}

	totalPrice := models.CartTotal(cart)
	finalPrice := totalPrice + DeliveryFee

	orderID := gocql.TimeUUID()
	claimed, existingID, err := h.Orders.ClaimCheckout(c.Request.Context(), checkoutKey, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande"})
		return
	}
	if !claimed {
		// Rejeu du même checkout : la commande existe déjà
		c.JSON(http.StatusOK, gin.H{
			"message":      "Commande déjà enregistrée",
			"order_id":     existingID.String(),
			"checkout_key": checkoutKey,
		})
		return
	}

	itemsJSON, err := json.Marshal(cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur encodage panier"})
		return
	}

	order := models.Order{
		ID:          orderID,
		Email:       email,
		Items:       string(itemsJSON),
		TotalPrice:  totalPrice,
		DeliveryFee: DeliveryFee,
		FinalPrice:  finalPrice,
		Status:      models.OrderStatusPending,
		CheckoutKey: checkoutKey,
		CreatedAt:   time.Now(),
	}

	if err := h.Orders.Create(c.Request.Context(), order); err != nil {
		log.Println("❌ Erreur création commande:", err)
		// La clé est rendue : un rejeu doit pouvoir retenter l'insertion au
		// lieu de retomber sur une commande jamais écrite.
		if relErr := h.Orders.ReleaseCheckout(c.Request.Context(), checkoutKey); relErr != nil {
			log.Println("⚠️ Échec libération de la clé de checkout:", relErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande"})
		return
	}

	// Notification admin, échec loggé et ignoré
	if h.Notifier != nil {
		if err := h.Notifier.SendOrderNotification(email, cart, totalPrice); err != nil {
			log.Println("❌ Erreur envoi notification de commande (ignorée):", err)
		}
	}

	// Le panier est vidé quoi qu'il arrive après la création de la commande,
	// même si la notification a échoué.
	if applied, err := h.Users.SaveCart(c.Request.Context(), email, nil, version); err != nil || !applied {
		log.Printf("⚠️ Échec vidage panier pour %s (applied=%v, err=%v)", email, applied, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Commande confirmée",
		"order_id":     orderID.String(),
		"checkout_key": checkoutKey,
		"total_price":  totalPrice,
		"delivery_fee": DeliveryFee,
		"final_price":  finalPrice,
		"status":       order.Status,
	})
}
