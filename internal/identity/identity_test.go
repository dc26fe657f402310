package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harshanas/peopledesk/auth"
	"github.com/harshanas/peopledesk/internal/db"
	"github.com/harshanas/peopledesk/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestResolveRolePrecedence(t *testing.T) {
	hrProfile := &models.Profile{Role: "hr"}
	tests := []struct {
		name     string
		explicit string
		hint     string
		existing *models.Profile
		want     Role
	}{
		{"explicit wins", "hr", "employee", nil, RoleHR},
		{"hint when no explicit", "", "hr", nil, RoleHR},
		{"profile when no hint", "", "", hrProfile, RoleHR},
		{"invalid explicit falls through", "admin", "employee", hrProfile, RoleEmployee},
		{"nothing known defaults to employee", "", "", nil, RoleEmployee},
		{"garbage everywhere defaults to employee", "root", "superuser", &models.Profile{Role: "owner"}, RoleEmployee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRole(tt.explicit, tt.hint, tt.existing); got != tt.want {
				t.Errorf("ResolveRole() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if _, ok := ParseRole(""); ok {
		t.Error("empty string must not parse")
	}
	if _, ok := ParseRole("HR"); ok {
		t.Error("roles are case-sensitive")
	}
	if r, ok := ParseRole("employee"); !ok || r != RoleEmployee {
		t.Error("employee must parse")
	}
}

func TestEnsureProfileIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	p := NewProvisioner(conn)
	ctx := context.Background()
	id := uuid.NewString()

	first, err := p.EnsureProfile(ctx, id, ProvisionInput{FullName: "Ada Lovelace", Role: RoleEmployee, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.Role != "employee" || first.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected profile: %+v", first)
	}

	// Second call with different data must not overwrite or duplicate.
	second, err := p.EnsureProfile(ctx, id, ProvisionInput{FullName: "Someone Else", Role: RoleHR, Email: "other@x.com"})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.FullName != "Ada Lovelace" || second.Role != "employee" {
		t.Fatalf("second call mutated the row: %+v", second)
	}

	var count int64
	conn.Model(&models.Profile{}).Where("id = ?", id).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 row got %d", count)
	}
}

func TestEnsureProfileDefaultsRole(t *testing.T) {
	conn := setupTestDB(t)
	p := NewProvisioner(conn)

	prof, err := p.EnsureProfile(context.Background(), uuid.NewString(), ProvisionInput{Email: "b@x.com"})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if prof.Role != "employee" {
		t.Fatalf("undetermined role must resolve to employee, got %s", prof.Role)
	}
	if prof.FullName != "b" {
		t.Fatalf("expected display name from email local part, got %s", prof.FullName)
	}
	if prof.ContactInfo != `{"email":"b@x.com"}` {
		t.Fatalf("email not embedded in contact info: %s", prof.ContactInfo)
	}
}

func TestEnsureProfileAcceptsRowCreatedElsewhere(t *testing.T) {
	conn := setupTestDB(t)
	p := NewProvisioner(conn)
	id := uuid.NewString()

	// Simulate a row created out-of-band between our existence check and
	// insert by pre-creating it; the conflict path must return that row.
	pre := models.Profile{ID: id, FullName: "Pre Existing", Role: "hr"}
	if err := conn.Create(&pre).Error; err != nil {
		t.Fatalf("pre-create: %v", err)
	}
	got, err := p.EnsureProfile(context.Background(), id, ProvisionInput{FullName: "New", Role: RoleEmployee})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got.FullName != "Pre Existing" || got.Role != "hr" {
		t.Fatalf("expected the pre-existing row back, got %+v", got)
	}
}

func TestResolveProfile(t *testing.T) {
	conn := setupTestDB(t)
	r := NewResolver(conn)

	// Unauthenticated context resolves to nil.
	if got := r.ResolveProfile(context.Background()); got != nil {
		t.Fatalf("expected nil for unauthenticated, got %+v", got)
	}

	// Authenticated but unprovisioned resolves to nil.
	ctx := auth.WithSubject(context.Background(), uuid.NewString())
	if got := r.ResolveProfile(ctx); got != nil {
		t.Fatalf("expected nil for unprovisioned, got %+v", got)
	}

	// Provisioned profile comes back with its level joined.
	level := models.Level{ID: uuid.NewString(), Name: "Senior", OrderIndex: 3}
	if err := conn.Create(&level).Error; err != nil {
		t.Fatalf("create level: %v", err)
	}
	id := uuid.NewString()
	prof := models.Profile{ID: id, FullName: "Joined", Role: "employee", LevelID: &level.ID}
	if err := conn.Create(&prof).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	got := r.ResolveProfile(auth.WithSubject(context.Background(), id))
	if got == nil {
		t.Fatal("expected profile")
	}
	if got.Level == nil || got.Level.Name != "Senior" {
		t.Fatalf("level not joined: %+v", got.Level)
	}
}
