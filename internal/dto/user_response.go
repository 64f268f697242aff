package dto

import "time"

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      bool      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  bool   `json:"role"`
	Token string `json:"token"`
}
