package repository

import (
	"context"
	"errors"

	"clickstore_back_end/internal/database"
	"clickstore_back_end/internal/models"

	"github.com/gocql/gocql"
)

type ScyllaProductStore struct {
	scylla *database.ScyllaManager
}

func NewScyllaProductStore(scylla *database.ScyllaManager) *ScyllaProductStore {
	return &ScyllaProductStore{scylla: scylla}
}

// List renvoie tout le catalogue, sans ordre garanti (scan de partition).
// Le tri par date est la responsabilité du handler catalogue, qui doit de
// toute façon l'appliquer aussi aux résultats Elasticsearch.
func (s *ScyllaProductStore) List(ctx context.Context) ([]models.Product, error) {
	session, err := s.scylla.ProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(
		`SELECT product_id, name, price, image_url, category, subcategory, is_available, created_at FROM products`,
	).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.Category, &p.Subcategory, &p.IsAvailable, &p.CreatedAt) {
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ScyllaProductStore) GetByID(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	session, err := s.scylla.ProductsSession()
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = session.Query(
		`SELECT product_id, name, price, image_url, category, subcategory, is_available, created_at
		 FROM products WHERE product_id = ?`, id,
	).WithContext(ctx).Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.Category, &p.Subcategory, &p.IsAvailable, &p.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ScyllaProductStore) Create(ctx context.Context, p models.Product) error {
	session, err := s.scylla.ProductsSession()
	if err != nil {
		return err
	}

	return session.Query(
		`INSERT INTO products (product_id, name, price, image_url, category, subcategory, is_available, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price, p.ImageURL, p.Category, p.Subcategory, p.IsAvailable, p.CreatedAt,
	).WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) Update(ctx context.Context, p models.Product) error {
	session, err := s.scylla.ProductsSession()
	if err != nil {
		return err
	}

	return session.Query(
		`UPDATE products SET name = ?, price = ?, image_url = ?, category = ?, subcategory = ?, is_available = ?
		 WHERE product_id = ?`,
		p.Name, p.Price, p.ImageURL, p.Category, p.Subcategory, p.IsAvailable, p.ID,
	).WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) Delete(ctx context.Context, id gocql.UUID) error {
	session, err := s.scylla.ProductsSession()
	if err != nil {
		return err
	}

	return session.Query(`DELETE FROM products WHERE product_id = ?`, id).WithContext(ctx).Exec()
}

// SetAvailability bascule le seul champ is_available, indépendamment du
// formulaire d'édition.
func (s *ScyllaProductStore) SetAvailability(ctx context.Context, id gocql.UUID, available bool) error {
	session, err := s.scylla.ProductsSession()
	if err != nil {
		return err
	}

	return session.Query(
		`UPDATE products SET is_available = ? WHERE product_id = ?`, available, id,
	).WithContext(ctx).Exec()
}
