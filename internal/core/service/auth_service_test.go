package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ucrmp/claims-platform/internal/core/domain"
	"github.com/ucrmp/claims-platform/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailExists
	}
	r.users[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, NewTokenCodec("secret", time.Hour), zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "alice@example.com",
		Password:  "pass1234",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleEmployee {
		t.Fatalf("expected default employee role, got %v", user.Roles)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	input := ports.RegisterInput{Email: "bob@example.com", Password: "pass1234"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

// Registered credentials round-trip: the issued token decodes to the
// registered email and the principal's current roles.
func TestAuthService_LoginIssuesDecodableToken(t *testing.T) {
	repo := newStubUserRepo()
	codec := NewTokenCodec("secret", time.Hour)
	svc := NewAuthService(repo, codec, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected subject a@x.com, got %s", claims.Email)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleEmployee {
		t.Fatalf("token roles do not match principal roles: %v", claims.Roles)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@x.com", "secret124"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown email and wrong password must map to the same error kind.
func TestAuthService_Login_DoesNotLeakUnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	_, unknownErr := svc.Login(context.Background(), "ghost@x.com", "whatever1")

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "real@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, wrongPassErr := svc.Login(context.Background(), "real@x.com", "wrong-pass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) || !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected both failures as ErrInvalidCredentials, got %v and %v", unknownErr, wrongPassErr)
	}
}
