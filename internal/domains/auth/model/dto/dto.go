package dto

import (
	"time"

	"github.com/google/uuid"

	"bunkhouse/infras/jwt"
	userModel "bunkhouse/internal/domains/user/model"
	"bunkhouse/shared/constant"
	gModel "bunkhouse/shared/model"
	"bunkhouse/shared/timezone"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

// ToUserModel builds a user with the default role. Elevated roles are only
// assigned through the user domain by an admin.
func (r *RegisterRequest) ToUserModel(creator, hashedPassword string) userModel.User {
	var phone, fullName *string
	if r.Phone != "" {
		phone = &r.Phone
	}

	if r.FullName != "" {
		fullName = &r.FullName
	}

	return userModel.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     constant.RoleUser,
		Phone:    phone,
		FullName: fullName,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  creator,
			ModifiedBy: creator,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
}

type RegisterResponse struct {
	TokenResponse
}

type LoginResponse struct {
	TokenResponse
}

type RefreshTokenResponse struct {
	TokenResponse
}

type UpdateLastLoginRequest struct {
	LastLogin    time.Time `db:"last_login"`
	RefreshToken string    `db:"refresh_token"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
