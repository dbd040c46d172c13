package auth

import (
	"github.com/openmeeple/meeplevault-backend/internal/users"
)

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

// LoginRequest carries the credential pair. Identifier accepts a username or
// an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// RefreshRequest carries the expired access token plus the refresh token to rotate.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse is returned by register, login, and refresh.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	User         *users.UserDTO `json:"user,omitempty"`
}

// ProfileResponse is the authenticated user's own profile view.
type ProfileResponse struct {
	User            *users.UserDTO `json:"user"`
	CollectionCount int64          `json:"collection_count"`
	WishlistCount   int64          `json:"wishlist_count"`
}
