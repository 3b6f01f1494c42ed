package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"image_url,omitempty"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	IsAvailable bool       `json:"is_available"`
	CreatedAt   time.Time  `json:"created_at"`
}
