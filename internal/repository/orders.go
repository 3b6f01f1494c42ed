package repository

import (
	"context"
	"fmt"
	"sort"

	"clickstore_back_end/internal/database"
	"clickstore_back_end/internal/models"

	"github.com/gocql/gocql"
)

type ScyllaOrderStore struct {
	scylla *database.ScyllaManager
}

func NewScyllaOrderStore(scylla *database.ScyllaManager) *ScyllaOrderStore {
	return &ScyllaOrderStore{scylla: scylla}
}

// ClaimCheckout réserve la clé d'idempotence avec un INSERT ... IF NOT EXISTS.
// Au plus une commande par clé : un rechargement de la page de confirmation
// retombe sur la commande déjà créée.
func (s *ScyllaOrderStore) ClaimCheckout(ctx context.Context, key string, orderID gocql.UUID) (bool, gocql.UUID, error) {
	session, err := s.scylla.OrdersSession()
	if err != nil {
		return false, gocql.UUID{}, err
	}

	previous := map[string]interface{}{}
	applied, err := session.Query(
		`INSERT INTO checkout_attempts (checkout_key, order_id) VALUES (?, ?) IF NOT EXISTS`,
		key, orderID,
	).WithContext(ctx).MapScanCAS(previous)
	if err != nil {
		return false, gocql.UUID{}, fmt.Errorf("erreur réservation checkout: %w", err)
	}
	if applied {
		return true, orderID, nil
	}

	existing, _ := previous["order_id"].(gocql.UUID)
	return false, existing, nil
}

// ReleaseCheckout supprime la réservation quand l'insertion de la commande a
// échoué. Sans cela la clé pointerait pour toujours vers une commande fantôme.
func (s *ScyllaOrderStore) ReleaseCheckout(ctx context.Context, key string) error {
	session, err := s.scylla.OrdersSession()
	if err != nil {
		return err
	}

	return session.Query(
		`DELETE FROM checkout_attempts WHERE checkout_key = ?`, key,
	).WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) Create(ctx context.Context, o models.Order) error {
	session, err := s.scylla.OrdersSession()
	if err != nil {
		return err
	}

	return session.Query(
		`INSERT INTO orders (order_id, email, items, total_price, delivery_fee, final_price, status, checkout_key, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Email, o.Items, o.TotalPrice, o.DeliveryFee, o.FinalPrice, o.Status, o.CheckoutKey, o.CreatedAt,
	).WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	session, err := s.scylla.OrdersSession()
	if err != nil {
		return nil, err
	}

	// Pas d'index secondaire sur email, la table est petite
	iter := session.Query(
		`SELECT order_id, email, items, total_price, delivery_fee, final_price, status, checkout_key, created_at
		 FROM orders WHERE email = ? ALLOW FILTERING`, email,
	).WithContext(ctx).Iter()
	return collectOrders(iter)
}

func (s *ScyllaOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	session, err := s.scylla.OrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(
		`SELECT order_id, email, items, total_price, delivery_fee, final_price, status, checkout_key, created_at FROM orders`,
	).WithContext(ctx).Iter()
	return collectOrders(iter)
}

func collectOrders(iter *gocql.Iter) ([]models.Order, error) {
	var orders []models.Order
	var o models.Order
	for iter.Scan(&o.ID, &o.Email, &o.Items, &o.TotalPrice, &o.DeliveryFee, &o.FinalPrice, &o.Status, &o.CheckoutKey, &o.CreatedAt) {
		orders = append(orders, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
