package models

type User struct {
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	PasswordHash string `json:"-"`
	Role         string `json:"role,omitempty"`
}
