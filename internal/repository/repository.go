package repository

import (
	"context"
	"errors"

	"clickstore_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ErrNotFound est renvoyé quand l'enregistrement demandé n'existe pas.
var ErrNotFound = errors.New("enregistrement introuvable")

// UserStore gère les comptes et le panier. Le panier est un snapshot complet
// (liste ordonnée de lignes) stocké comme attribut JSON sur la ligne user et
// remplacé en entier à chaque mutation, sous contrôle de version.
type UserStore interface {
	Create(ctx context.Context, u models.User) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetCart renvoie le snapshot et sa version courante. Panier absent → liste vide.
	GetCart(ctx context.Context, email string) ([]models.CartItem, int64, error)
	// SaveCart remplace le snapshot si la version attendue est toujours la
	// version courante (compare-and-swap). items nil vide le panier.
	SaveCart(ctx context.Context, email string, items []models.CartItem, expectedVersion int64) (bool, error)
}

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id gocql.UUID) (*models.Product, error)
	Create(ctx context.Context, p models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id gocql.UUID) error
	SetAvailability(ctx context.Context, id gocql.UUID, available bool) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
}

type OrderStore interface {
	// ClaimCheckout réserve une clé d'idempotence. Si la clé a déjà servi,
	// renvoie false et l'id de la commande existante.
	ClaimCheckout(ctx context.Context, key string, orderID gocql.UUID) (bool, gocql.UUID, error)
	// ReleaseCheckout libère une clé réservée dont la commande n'a pas pu être
	// écrite, pour qu'un rejeu puisse retenter l'insertion.
	ReleaseCheckout(ctx context.Context, key string) error
	Create(ctx context.Context, o models.Order) error
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}
