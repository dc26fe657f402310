package identity

import (
	"context"

	"github.com/harshanas/peopledesk/auth"
	"github.com/harshanas/peopledesk/internal/models"
	"gorm.io/gorm"
)

// Resolver loads the profile belonging to the current request's session.
type Resolver struct{ DB *gorm.DB }

func NewResolver(db *gorm.DB) *Resolver { return &Resolver{DB: db} }

// ResolveProfile returns the profile for the session subject attached to ctx,
// with its career level joined. It returns nil both when the request is
// unauthenticated and when the account has no profile row yet — the latter is
// a transient state during account creation. A lookup failure is treated
// identically to "not found". No side effects, no retries.
func (r *Resolver) ResolveProfile(ctx context.Context) *models.Profile {
	subject, ok := auth.SubjectFromContext(ctx)
	if !ok {
		return nil
	}
	return r.ProfileByID(ctx, subject)
}

// ProfileByID loads one profile with its level. nil when absent or on lookup failure.
func (r *Resolver) ProfileByID(ctx context.Context, id string) *models.Profile {
	var profile models.Profile
	if err := r.DB.WithContext(ctx).Preload("Level").First(&profile, "id = ?", id).Error; err != nil {
		return nil
	}
	return &profile
}
