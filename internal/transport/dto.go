package transport

import (
	"github.com/Skotchmaster/marketplace/internal/es"
	"github.com/Skotchmaster/marketplace/internal/models"
)

type SignupRequest struct {
	Email    string      `json:"email"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	ShopName *string     `json:"shopName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the stored user plus the issued access token.
type LoginResponse struct {
	models.User
	Token string `json:"token"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	SellerID    *uint    `json:"sellerId"`
}

type DeleteProductRequest struct {
	ProductID *uint `json:"productId"`
	SellerID  *uint `json:"sellerId"`
}

type SearchResponse struct {
	Total    int64         `json:"total"`
	Products []es.Document `json:"products"`
}
