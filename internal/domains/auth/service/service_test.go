package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotelos/config"
	"hotelos/infras/jwt"
	jwtMocks "hotelos/infras/jwt/mocks"
	"hotelos/infras/otel/mocks"
	"hotelos/internal/domains/auth/model/dto"
	"hotelos/internal/domains/auth/service"
	userMocks "hotelos/internal/domains/user/mocks"
	userModel "hotelos/internal/domains/user/model"
	"hotelos/shared/constant"
	"hotelos/shared/failure"
	gModel "hotelos/shared/model"
	"hotelos/shared/password"
	"hotelos/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newUser(t *testing.T) userModel.User {
	t.Helper()

	hashed, err := password.Hash("password")
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-id-123",
		Email:    "desk@hotel.test",
		Password: hashed,
		Role:     constant.RoleStaff,
		FullName: "Front Desk",
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ContextSystem,
			ModifiedBy: constant.ContextSystem,
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	validReq := dto.RegisterRequest{Email: "desk@hotel.test", Password: "password", FullName: "Front Desk"}

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "success",
			req:  validReq,
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleStaff, user.Role)
						assert.NoError(t, password.Verify("password", user.Password))

						return nil
					})
			},
		},
		{
			name:      "weak password",
			req:       dto.RegisterRequest{Email: "desk@hotel.test", Password: "short", FullName: "Front Desk"},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "email taken",
			req:  validReq,
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "email taken by a concurrent insert",
			req:  validReq,
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Register(context.Background(), tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	validUser := newUser(t)
	tokenPair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).Return(tokenPair, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login update failure does not block login",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).Return(tokenPair, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nobody@hotel.test", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "wrongpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				inactiveUser := validUser
				inactiveUser.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).Return(nil, errors.New("token generation failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "access-token", result.AccessToken)
				assert.Equal(t, "refresh-token", result.RefreshToken)
				assert.Equal(t, constant.RoleStaff, result.Role)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(userMocks.NewMockUser(ctrl), &config.Config{}, mocks.NewOtel(), mockJWT)

	tests := []struct {
		name      string
		req       dto.RefreshTokenRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful token refresh",
			req:  dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens("valid-refresh-token").
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name: "invalid refresh token",
			req:  dto.RefreshTokenRequest{RefreshToken: "invalid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().RefreshTokens("invalid-refresh-token").Return(nil, errors.New("invalid token"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.RefreshToken(context.Background(), tt.req)

			if tt.wantErr {
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "new-access-token", result.AccessToken)
			assert.Equal(t, "new-refresh-token", result.RefreshToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	validUser := newUser(t)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		userID    string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "successful password change",
			req:    dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			userID: validUser.ID,
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "missing user context",
			req:       dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:   "user not found",
			req:    dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			userID: "nonexistent-id",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name:   "wrong current password",
			req:    dto.ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "newpassword123"},
			userID: validUser.ID,
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantErr: true,
		},
		{
			name:   "update password error",
			req:    dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			userID: validUser.ID,
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			if tt.userID != "" {
				ctx = context.WithValue(ctx, constant.ContextKeyUserID, tt.userID)
			}

			err := svc.ChangePassword(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
