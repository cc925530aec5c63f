package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Joshua-Precious/Nutrical/internal/app"
	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	password := "testpass123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "testuser", PasswordHash: string(hash)}, nil
		},
	}
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			if userID != 1 {
				t.Errorf("expected userID 1, got %d", userID)
			}
			if token == "" {
				t.Error("token should not be empty")
			}
			if userAgent != "test-agent" || ip != "10.0.0.1" {
				t.Errorf("unexpected client info: %q %q", userAgent, ip)
			}
			if time.Until(expiresAt) < 23*time.Hour {
				t.Errorf("expiry too soon: %v", expiresAt)
			}
			return nil
		},
	}

	svc := app.NewAuthService(users, sessions)
	token, err := svc.Login(ctx, "testuser", password, "test-agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token, got empty string")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.MinCost)
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "testuser", PasswordHash: string(hash)}, nil
		},
	}
	svc := app.NewAuthService(users, &mockSessionRepo{})

	_, err := svc.Login(context.Background(), "testuser", "wrongpass", "ua", "ip")
	if !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserAndSSOAccount(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.Login(context.Background(), "ghost", "whatever", "ua", "ip"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}

	sso := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 3, Username: username}, nil
		},
	}
	svc = app.NewAuthService(sso, &mockSessionRepo{})
	if _, err := svc.Login(context.Background(), "ssouser", "", "ua", "ip"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("password-less account: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateSession_Valid(t *testing.T) {
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{Token: tok, UserID: 1, UserAgent: "ua", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "testuser"}, nil
		},
	}

	svc := app.NewAuthService(users, sessions)
	user, err := svc.ValidateSession(context.Background(), "validtoken", "ua")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %s", user.Username)
	}
}

func TestAuthService_ValidateSession_Unknown(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	_, err := svc.ValidateSession(context.Background(), "nope", "ua")
	if !errors.Is(err, app.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_ValidateSession_ExpiredOrWrongAgent(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		agent     string
	}{
		{"expired", time.Now().Add(-time.Hour), "ua"},
		{"different user agent", time.Now().Add(time.Hour), "other"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			deleted := false
			sessions := &mockSessionRepo{
				getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
					return &domain.Session{Token: tok, UserID: 1, UserAgent: "ua", ExpiresAt: tc.expiresAt}, nil
				},
				deleteFn: func(ctx context.Context, tok string) error {
					deleted = true
					return nil
				},
			}
			svc := app.NewAuthService(&mockUserRepo{}, sessions)
			_, err := svc.ValidateSession(context.Background(), "tok", tc.agent)
			if !errors.Is(err, app.ErrSessionExpired) {
				t.Errorf("expected ErrSessionExpired, got %v", err)
			}
			if !deleted {
				t.Error("expected session to be deleted")
			}
		})
	}
}

func TestAuthService_CreateInitialUser_Success(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			if username != "admin" {
				t.Errorf("expected username 'admin', got %s", username)
			}
			if passwordHash == "" || passwordHash == "password123" {
				t.Error("password must be stored hashed")
			}
			return &domain.User{ID: 1, Username: username}, nil
		},
	}

	svc := app.NewAuthService(users, &mockSessionRepo{})
	if err := svc.CreateInitialUser(context.Background(), "admin", "password123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAuthService_CreateInitialUser_UsersExist(t *testing.T) {
	users := &mockUserRepo{
		countFn: func(ctx context.Context) (int, error) { return 1, nil },
	}
	svc := app.NewAuthService(users, &mockSessionRepo{})

	err := svc.CreateInitialUser(context.Background(), "admin", "password123")
	if !errors.Is(err, app.ErrSetupDone) {
		t.Errorf("expected ErrSetupDone, got %v", err)
	}
}

func TestAuthService_CreateInitialUser_ShortPassword(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	err := svc.CreateInitialUser(context.Background(), "admin", "short")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_ValidateForwardAuth_ExistingUser(t *testing.T) {
	created := false
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "ssouser"}, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			created = true
			return nil, errors.New("unexpected create")
		},
	}
	svc := app.NewAuthService(users, &mockSessionRepo{})

	user, err := svc.ValidateForwardAuth(context.Background(), "ssouser")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "ssouser" || created {
		t.Errorf("expected existing user 'ssouser', got %s (created=%v)", user.Username, created)
	}
}

func TestAuthService_ValidateForwardAuth_NewUser(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			if passwordHash != "" {
				t.Errorf("SSO user must not get a password, got %q", passwordHash)
			}
			return &domain.User{ID: 2, Username: username}, nil
		},
	}
	svc := app.NewAuthService(users, &mockSessionRepo{})

	user, err := svc.ValidateForwardAuth(context.Background(), "newssouser")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "newssouser" {
		t.Errorf("expected username 'newssouser', got %s", user.Username)
	}
}

func TestAuthService_ValidateForwardAuth_Empty(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.ValidateForwardAuth(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty header")
	}
}

func TestAuthService_LoginWithUser(t *testing.T) {
	var gotUserID int64
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			gotUserID = userID
			return nil
		},
	}
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			return &domain.User{ID: 9, Username: username}, nil
		},
	}
	svc := app.NewAuthService(users, sessions)

	token, err := svc.LoginWithUser(context.Background(), "oidc-user", "ua", "ip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || gotUserID != 9 {
		t.Fatalf("expected session for user 9, got token=%q user=%d", token, gotUserID)
	}
}

func TestConstantTimeCompare(t *testing.T) {
	if !app.ConstantTimeCompare("abc", "abc") {
		t.Error("expected equal strings to match")
	}
	if app.ConstantTimeCompare("abc", "abd") {
		t.Error("expected different strings not to match")
	}
}
