package dto

import "github.com/yigit/eduadmin/internal/app/models"

// LoginRequest is shared by the admin, teacher and student login endpoints
type LoginRequest struct {
	Login    string `json:"login" binding:"required" example:"teacher1"`
	Password string `json:"password" binding:"required" example:"Password123"`
}

// RefreshTokenRequest carries a refresh token for rotation or logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	AccessToken      string      `json:"accessToken"`
	RefreshToken     string      `json:"refreshToken"`
	TokenType        string      `json:"tokenType" example:"Bearer"`
	ExpiresIn        int         `json:"expiresIn" example:"900"`
	RefreshExpiresIn int         `json:"refreshExpiresIn" example:"2592000"`
	UserID           int64       `json:"userId"`
	Role             models.Role `json:"role" example:"teacher"`
}
