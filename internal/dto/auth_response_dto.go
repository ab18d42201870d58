package dto

// LoginRequest authenticates an operator with username and password.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token pair. The refresh token is also set
// as an HTTP-only cookie; it appears here for non-browser clients.
type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         UserResponse `json:"user"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleProfile is the subset of the Google userinfo payload the backend uses.
type GoogleProfile struct {
	Email string
	Name  string
}
