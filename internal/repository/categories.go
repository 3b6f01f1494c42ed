package repository

import (
	"context"

	"clickstore_back_end/internal/database"
	"clickstore_back_end/internal/models"
)

type ScyllaCategoryStore struct {
	scylla *database.ScyllaManager
}

func NewScyllaCategoryStore(scylla *database.ScyllaManager) *ScyllaCategoryStore {
	return &ScyllaCategoryStore{scylla: scylla}
}

func (s *ScyllaCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	session, err := s.scylla.ProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT name, subcategories FROM categories`).WithContext(ctx).Iter()

	var categories []models.Category
	var c models.Category
	for iter.Scan(&c.Name, &c.Subcategories) {
		categories = append(categories, c)
		c = models.Category{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return categories, nil
}
