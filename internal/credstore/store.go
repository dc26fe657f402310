// Package credstore owns credential identities: password sign-up/sign-in,
// provider-based identities, and the admin operations used by HR-initiated
// employee creation. It never touches profiles; provisioning is the identity
// package's concern.
package credstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harshanas/peopledesk/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so sign-in does not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("account not found")
)

// Metadata is the sign-up metadata attached to a new identity.
// RoleHint is advisory; the profile row is the authorization source of record.
type Metadata struct {
	FullName string
	RoleHint string
}

type Store struct{ DB *gorm.DB }

func New(db *gorm.DB) *Store { return &Store{DB: db} }

// SignUp creates a password identity. Returns ErrEmailTaken when the email
// is already registered.
func (s *Store) SignUp(ctx context.Context, email, password string, meta Metadata) (*models.Account, error) {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acct := models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     meta.FullName,
		RoleHint:     meta.RoleHint,
		CreatedAt:    time.Now(),
	}
	if err := s.DB.WithContext(ctx).Create(&acct).Error; err != nil {
		var existing models.Account
		if lookupErr := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; lookupErr == nil {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &acct, nil
}

// SignIn verifies email+password and returns the account.
func (s *Store) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	var acct models.Account
	if err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&acct).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if acct.PasswordHash == "" {
		// Provider account with no password set.
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &acct, nil
}

// GetUser looks up an account by id. Returns ErrNotFound when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*models.Account, error) {
	var acct models.Account
	if err := s.DB.WithContext(ctx).First(&acct, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acct, nil
}

// Exists reports whether the account id refers to a live identity.
// Used as the session verifier callback.
func (s *Store) Exists(ctx context.Context, id string) bool {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// AdminCreateUser creates an identity on behalf of another user (HR flow).
// Same semantics as SignUp; no session is involved.
func (s *Store) AdminCreateUser(ctx context.Context, email, password string, meta Metadata) (*models.Account, error) {
	return s.SignUp(ctx, email, password, meta)
}

// AdminDeleteUser removes an identity. Used only as compensation when
// profile creation fails after identity creation.
func (s *Store) AdminDeleteUser(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&models.Account{}, "id = ?", id).Error
}

// FindOrCreateByEmail returns the account for email, creating a password-less
// provider account when none exists. Used by the provider callback.
func (s *Store) FindOrCreateByEmail(ctx context.Context, email, provider string, meta Metadata) (*models.Account, error) {
	email = normalizeEmail(email)
	var acct models.Account
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&acct).Error
	if err == nil {
		return &acct, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	acct = models.Account{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  meta.FullName,
		RoleHint:  meta.RoleHint,
		Provider:  provider,
		CreatedAt: time.Now(),
	}
	if err := s.DB.WithContext(ctx).Create(&acct).Error; err != nil {
		// A concurrent callback may have created it; accept whatever row exists now.
		var existing models.Account
		if lookupErr := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &acct, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
