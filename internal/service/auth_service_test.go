package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/repository"
	"taskboard/internal/testutil"
	"taskboard/pkg/auth"
)

func setupAuthService(t *testing.T) (*AuthService, *auth.TokenManager) {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(repository.NewUserRepository(db), tokens, zerolog.Nop())
	return svc, tokens
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		email     string
		password  string
		setupFunc func(t *testing.T, svc *AuthService)
		wantErr   error
	}{
		{
			name:     "successful signup",
			userName: "Ada",
			email:    "ada@example.com",
			password: "correct-horse",
		},
		{
			name:     "duplicate email",
			userName: "Imposter",
			email:    "ada@example.com",
			password: "battery-staple",
			setupFunc: func(t *testing.T, svc *AuthService) {
				_, _, err := svc.Signup(context.Background(), "Ada", "ada@example.com", "correct-horse")
				require.NoError(t, err)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:     "missing name",
			userName: "   ",
			email:    "ada@example.com",
			password: "correct-horse",
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "invalid email",
			userName: "Ada",
			email:    "not-an-email",
			password: "correct-horse",
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "password too short",
			userName: "Ada",
			email:    "ada@example.com",
			password: "abc",
			wantErr:  ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, tokens := setupAuthService(t)
			if tt.setupFunc != nil {
				tt.setupFunc(t, svc)
			}

			user, token, err := svc.Signup(context.Background(), tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)

			claims, err := tokens.Validate(token)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
		})
	}
}

func TestAuthService_SignupNormalizesEmail(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "Ada", "  Ada@Example.COM ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	// The normalized form counts as taken.
	_, _, err = svc.Signup(ctx, "Imposter", "ada@example.com", "battery-staple")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens := setupAuthService(t)
	ctx := context.Background()

	created, _, err := svc.Signup(ctx, "Ada", "ada@example.com", "correct-horse")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "ada@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)

		claims, err := tokens.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ada@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "correct-horse")
		// Identical to the wrong-password failure so the two cannot be
		// told apart.
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
