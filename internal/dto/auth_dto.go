package dto

import "github.com/famtask/famtask-backend/internal/models"

type RegisterRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Locale    string  `json:"locale"`
	Timezone  string  `json:"timezone"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
}

type RegisterResponse struct {
	User   models.User   `json:"user"`
	Family models.Family `json:"family"`
}
