package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harshanas/peopledesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProvisionInput carries what is known about a freshly authenticated account.
// Email has no column of its own on the profile; it is embedded in the
// free-form contact field.
type ProvisionInput struct {
	FullName string
	Role     Role
	Email    string
}

// Provisioner guarantees a profile row exists for an already-created
// credential identity. It never creates credentials.
type Provisioner struct{ DB *gorm.DB }

func NewProvisioner(db *gorm.DB) *Provisioner { return &Provisioner{DB: db} }

// EnsureProfile is idempotent: an existing row is returned unchanged, and
// calling it twice for the same identity never creates a duplicate or
// overwrites data. The insert is a single authoritative insert-if-absent
// (ON CONFLICT DO NOTHING) followed by a re-read, so a concurrent insert for
// the same identity cannot surface as an error. If the re-read still finds
// nothing the failure is surfaced as a provisioning error.
func (p *Provisioner) EnsureProfile(ctx context.Context, id string, in ProvisionInput) (*models.Profile, error) {
	db := p.DB.WithContext(ctx)

	var existing models.Profile
	if err := db.Preload("Level").First(&existing, "id = ?", id).Error; err == nil {
		return &existing, nil
	}

	role := in.Role
	if _, ok := ParseRole(string(role)); !ok {
		role = RoleEmployee
	}
	row := models.Profile{
		ID:          id,
		FullName:    in.FullName,
		Role:        string(role),
		ContactInfo: contactInfoJSON(in.Email),
		JoinedAt:    time.Now(),
		CreatedAt:   time.Now(),
	}
	if row.FullName == "" {
		row.FullName = displayNameFromEmail(in.Email)
	}
	res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).Create(&row)
	if res.Error == nil && res.RowsAffected > 0 {
		return &row, nil
	}

	// Either the insert conflicted (someone else won) or it failed outright;
	// re-read and accept whatever row exists now.
	var after models.Profile
	if err := db.Preload("Level").First(&after, "id = ?", id).Error; err != nil {
		if res.Error != nil {
			return nil, fmt.Errorf("provisioning profile %s: %w", id, res.Error)
		}
		return nil, fmt.Errorf("provisioning profile %s: row absent after insert", id)
	}
	return &after, nil
}

func contactInfoJSON(email string) string {
	if email == "" {
		return ""
	}
	b, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return ""
	}
	return string(b)
}

func displayNameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	if email != "" {
		return email
	}
	return "User"
}
