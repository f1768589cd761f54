package dto

import (
	"strings"
	"time"

	"hotelos/infras/jwt"
	userModel "hotelos/internal/domains/user/model"
	"hotelos/shared/constant"
	gModel "hotelos/shared/model"
	"hotelos/shared/timezone"

	"github.com/google/uuid"
)

// RegisterRequest creates a front-desk account. Only admins reach this
// endpoint; Role defaults to staff.
type RegisterRequest struct {
	Email    string `json:"email"          validate:"required,email,max=255"`
	Password string `json:"password"       validate:"required,min=8,max=72"`
	FullName string `json:"full_name"      validate:"required,max=100"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin staff"`
}

func (r *RegisterRequest) ToUserModel(createdBy string, hashedPassword string) userModel.User {
	role := r.Role
	if role == "" {
		role = constant.RoleStaff
	}

	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Role:     role,
		FullName: strings.TrimSpace(r.FullName),
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateLastLoginRequest is written through TransformFields on each login.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

// LoginResponse carries the token pair and the role so the desk UI can hide
// admin-only screens.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair, role string) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
	l.Role = role
}

type MeResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
