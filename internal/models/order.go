package models

import (
	"time"

	"github.com/gocql/gocql"
)

// OrderStatusPending est le statut initial de toute commande. Aucune machine
// à états côté boutique : le statut n'évolue qu'en back-office.
const OrderStatusPending = "pending"

type Order struct {
	ID          gocql.UUID `json:"id"`
	Email       string     `json:"email"`
	Items       string     `json:"items"` // copie sérialisée du panier au moment de la commande
	TotalPrice  float64    `json:"total_price"`
	DeliveryFee float64    `json:"delivery_fee"`
	FinalPrice  float64    `json:"final_price"`
	Status      string     `json:"status"`
	CheckoutKey string     `json:"checkout_key,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
