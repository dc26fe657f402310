package credstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/harshanas/peopledesk/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(conn)
}

func TestSignUpAndSignIn(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	acct, err := s.SignUp(ctx, "A@X.com", "secret123", Metadata{FullName: "Ada", RoleHint: "employee"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if acct.Email != "a@x.com" {
		t.Fatalf("email not normalized: %s", acct.Email)
	}
	if acct.PasswordHash == "" || acct.PasswordHash == "secret123" {
		t.Fatal("password not hashed")
	}

	got, err := s.SignIn(ctx, "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if got.ID != acct.ID {
		t.Fatalf("signin returned wrong account")
	}

	if _, err := s.SignIn(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}
	if _, err := s.SignIn(ctx, "nobody@x.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email got %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	if _, err := s.SignUp(ctx, "a@x.com", "secret123", Metadata{}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := s.SignUp(ctx, "a@x.com", "other456", Metadata{}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken got %v", err)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	acct, err := s.AdminCreateUser(ctx, "b@x.com", "secret123", Metadata{RoleHint: "employee"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !s.Exists(ctx, acct.ID) {
		t.Fatal("account should exist")
	}
	if err := s.AdminDeleteUser(ctx, acct.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Exists(ctx, acct.ID) {
		t.Fatal("account should be gone after compensation delete")
	}
	if _, err := s.GetUser(ctx, acct.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestFindOrCreateByEmail(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first, err := s.FindOrCreateByEmail(ctx, "c@x.com", "google", Metadata{FullName: "Cara"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Provider != "google" || first.PasswordHash != "" {
		t.Fatalf("unexpected provider account: %+v", first)
	}
	// Provider accounts cannot password sign-in.
	if _, err := s.SignIn(ctx, "c@x.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}

	second, err := s.FindOrCreateByEmail(ctx, "C@X.COM", "google", Metadata{FullName: "Other"})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("expected same account on repeat call")
	}
	if second.FullName != "Cara" {
		t.Fatalf("existing account overwritten: %s", second.FullName)
	}
}

func TestExchangeCodeRoundTrip(t *testing.T) {
	code, err := SignExchangeCode(ProviderClaims{Email: "d@x.com", FullName: "Dee", Role: "hr"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := ExchangeCode(code)
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if claims.Email != "d@x.com" || claims.Role != "hr" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExchangeCodeRejectsBadTokens(t *testing.T) {
	if _, err := ExchangeCode("not-a-token"); !errors.Is(err, ErrBadExchangeCode) {
		t.Fatalf("expected ErrBadExchangeCode got %v", err)
	}

	expired, err := SignExchangeCode(ProviderClaims{
		Email:            "e@x.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ExchangeCode(expired); !errors.Is(err, ErrBadExchangeCode) {
		t.Fatalf("expected ErrBadExchangeCode for expired token got %v", err)
	}

	noEmail, err := SignExchangeCode(ProviderClaims{FullName: "No Email"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ExchangeCode(noEmail); !errors.Is(err, ErrBadExchangeCode) {
		t.Fatalf("expected ErrBadExchangeCode for missing email got %v", err)
	}
}
