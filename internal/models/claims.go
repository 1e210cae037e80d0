package models

import "github.com/golang-jwt/jwt/v5"

// Claims defines the structure of the JWT claims accepted by the API.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
