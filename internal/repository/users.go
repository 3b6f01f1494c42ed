package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clickstore_back_end/internal/database"
	"clickstore_back_end/internal/models"

	"github.com/gocql/gocql"
)

type ScyllaUserStore struct {
	scylla *database.ScyllaManager
}

func NewScyllaUserStore(scylla *database.ScyllaManager) *ScyllaUserStore {
	return &ScyllaUserStore{scylla: scylla}
}

// Create insère le compte avec un panier vide (version 0).
// Renvoie false si l'email est déjà pris.
func (s *ScyllaUserStore) Create(ctx context.Context, u models.User) (bool, error) {
	session, err := s.scylla.UsersSession()
	if err != nil {
		return false, err
	}

	previous := map[string]interface{}{}
	applied, err := session.Query(
		`INSERT INTO users (email, name, password_hash, role, cart, cart_version)
		 VALUES (?, ?, ?, ?, null, 0) IF NOT EXISTS`,
		u.Email, u.Name, u.PasswordHash, u.Role,
	).WithContext(ctx).MapScanCAS(previous)
	if err != nil {
		return false, fmt.Errorf("erreur création utilisateur: %w", err)
	}
	return applied, nil
}

func (s *ScyllaUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	session, err := s.scylla.UsersSession()
	if err != nil {
		return nil, err
	}

	var u models.User
	u.Email = email
	err = session.Query(
		`SELECT name, password_hash, role FROM users WHERE email = ?`, email,
	).WithContext(ctx).Scan(&u.Name, &u.PasswordHash, &u.Role)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *ScyllaUserStore) GetCart(ctx context.Context, email string) ([]models.CartItem, int64, error) {
	session, err := s.scylla.UsersSession()
	if err != nil {
		return nil, 0, err
	}

	var cartJSON *string
	var version int64
	err = session.Query(
		`SELECT cart, cart_version FROM users WHERE email = ?`, email,
	).WithContext(ctx).Scan(&cartJSON, &version)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	if cartJSON == nil || *cartJSON == "" {
		return []models.CartItem{}, version, nil
	}

	var cart []models.CartItem
	if err := json.Unmarshal([]byte(*cartJSON), &cart); err != nil {
		return nil, 0, fmt.Errorf("erreur décodage panier: %w", err)
	}
	return cart, version, nil
}

// SaveCart écrit le snapshot complet sous condition de version (LWT).
// Une écriture concurrente a incrémenté la version → false, le client relit.
func (s *ScyllaUserStore) SaveCart(ctx context.Context, email string, items []models.CartItem, expectedVersion int64) (bool, error) {
	session, err := s.scylla.UsersSession()
	if err != nil {
		return false, err
	}

	var cartJSON *string
	if items != nil {
		data, err := json.Marshal(items)
		if err != nil {
			return false, err
		}
		str := string(data)
		cartJSON = &str
	}

	var currentVersion int64
	applied, err := session.Query(
		`UPDATE users SET cart = ?, cart_version = ? WHERE email = ? IF cart_version = ?`,
		cartJSON, expectedVersion+1, email, expectedVersion,
	).WithContext(ctx).ScanCAS(&currentVersion)
	if err != nil {
		return false, fmt.Errorf("erreur écriture panier: %w", err)
	}
	return applied, nil
}
