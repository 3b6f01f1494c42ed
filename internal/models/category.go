package models

type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}
