package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-compare-api/infrastructure/repository/mocks"
	"github.com/vfg2006/revenue-compare-api/internal/config"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginUser(t *testing.T) {
	log.SetupTestLogger()
	ctx := context.Background()
	cfg := config.Auth{SecretKey: "segredo", TokenTTL: time.Hour}

	activeUser := &domain.User{ID: 3, Name: "Ana", Email: "ana@example.com", PasswordHash: hashed(t, "s3nh4"), Active: true, RoleID: domain.RoleAnalyst}
	disabledUser := &domain.User{ID: 4, Email: "bia@example.com", PasswordHash: hashed(t, "s3nh4"), Active: false}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(repo *mocks.MockUserRepository)
		wantErr   error
		wantCode  string
	}{
		{
			name:      "campos obrigatórios",
			setupMock: func(repo *mocks.MockUserRepository) {},
			wantErr:   ErrMissingRequiredData,
			wantCode:  apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "usuário inexistente",
			email:    "x@example.com",
			password: "s3nh4",
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "x@example.com").Return(nil, nil)
			},
			wantErr:  ErrUserNotFound,
			wantCode: apiErrors.ErrUserNotFound,
		},
		{
			name:     "usuário desativado",
			email:    "bia@example.com",
			password: "s3nh4",
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "bia@example.com").Return(disabledUser, nil)
			},
			wantErr:  ErrUserDisabled,
			wantCode: apiErrors.ErrUserDisabled,
		},
		{
			name:     "senha errada",
			email:    "ana@example.com",
			password: "outra",
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(activeUser, nil)
			},
			wantErr:  ErrInvalidCredentials,
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "erro no banco",
			email:    "ana@example.com",
			password: "s3nh4",
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(nil, errors.New("conn refused"))
			},
			wantCode: apiErrors.ErrDatabaseOperation,
		},
		{
			name:     "sucesso normaliza o e-mail",
			email:    "  Ana@Example.com ",
			password: "s3nh4",
			setupMock: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(activeUser, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockUserRepository(ctrl)
			tt.setupMock(repo)

			service := NewService(repo, cfg)
			token, err := service.LoginUser(ctx, tt.email, tt.password)

			if tt.wantCode != "" {
				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, tt.wantCode, authErr.Code)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 3, claims.UserID)
			assert.Equal(t, domain.RoleAnalyst, claims.UserRoleID)
		})
	}
}

func TestValidateToken(t *testing.T) {
	service := &Service{cfg: config.Auth{SecretKey: "segredo"}, now: time.Now}

	t.Run("assinatura com outro segredo", func(t *testing.T) {
		other := &Service{cfg: config.Auth{SecretKey: "outro"}, now: time.Now}
		token, err := other.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token expirado", func(t *testing.T) {
		past := &Service{
			cfg: config.Auth{SecretKey: "segredo", TokenTTL: time.Minute},
			now: func() time.Time { return time.Now().Add(-time.Hour) },
		}
		token, err := past.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("algoritmo none é rejeitado", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{UserID: 1})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGetUserProfile(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)

	repo.EXPECT().GetUserByID(gomock.Any(), 3).Return(&domain.User{ID: 3, PasswordHash: "hash"}, nil)
	repo.EXPECT().GetUserByID(gomock.Any(), 9).Return(nil, nil)

	service := NewService(repo, config.Auth{})

	user, err := service.GetUserProfile(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = service.GetUserProfile(context.Background(), 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
