package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.Username] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func TestAuthService_SignUp_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	user, err := svc.SignUp(context.Background(), "alice", "alice@example.com", "pass12345")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pass12345" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass12345")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.IsStaff {
		t.Fatalf("sign-up must never create staff accounts")
	}
	if !user.IsActive {
		t.Fatalf("new accounts must be active")
	}
}

func TestAuthService_SignUp_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	_, _ = svc.SignUp(context.Background(), "bob", "bob@example.com", "pass12345")
	if _, err := svc.SignUp(context.Background(), "bob", "bob2@example.com", "pass12345"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	if _, err := svc.SignUp(context.Background(), "", "a@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignUp(context.Background(), "carol", "c@example.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	if _, err := svc.SignUp(context.Background(), "carol", "carol@example.com", "s3cret999"); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	tokens, user, err := svc.Login(context.Background(), "carol", "s3cret999")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", tokens)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokens.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims["sub"] != "carol" {
		t.Fatalf("expected subject carol, got %v", claims["sub"])
	}
	if claims["type"] != TokenTypeAccess {
		t.Fatalf("expected access token type, got %v", claims["type"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
	// Role flags must not ride on the token; they are resolved from the
	// store on every request.
	if _, ok := claims["is_staff"]; ok {
		t.Fatalf("token must not carry role flags")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	_, _ = svc.SignUp(context.Background(), "dave", "dave@example.com", "goodpass1")
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	_, _ = svc.SignUp(context.Background(), "eve", "eve@example.com", "goodpass1")
	repo.users["eve"].IsActive = false

	if _, _, err := svc.Login(context.Background(), "eve", "goodpass1"); err != domain.ErrUserInactive {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	_, _ = svc.SignUp(context.Background(), "frank", "frank@example.com", "goodpass1")
	tokens, _, err := svc.Login(context.Background(), "frank", "goodpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	access, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(access, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if claims["type"] != TokenTypeAccess {
		t.Fatalf("refresh must mint an access token, got type %v", claims["type"])
	}

	// An access token must not be accepted as a refresh token.
	if _, err := svc.Refresh(context.Background(), tokens.AccessToken); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong token type, got %v", err)
	}
}

func TestAuthService_Refresh_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 24*time.Hour)

	_, _ = svc.SignUp(context.Background(), "grace", "grace@example.com", "goodpass1")
	tokens, _, err := svc.Login(context.Background(), "grace", "goodpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	repo.users["grace"].IsActive = false
	if _, err := svc.Refresh(context.Background(), tokens.RefreshToken); err != domain.ErrUserInactive {
		t.Fatalf("deactivated account must not refresh, got %v", err)
	}
}
