// Package policy wires the rolegate routing table to the application's
// profiles and exposes it as HTTP middleware. Cross-role access silently
// redirects to the subject's own dashboard; the HR-only employee-management
// actions redirect to an explicit unauthorized destination instead. This is
// a deliberate product decision carried over from the original portal.
package policy

import (
	"context"
	"net/http"

	"github.com/harshanas/peopledesk/internal/identity"
	"github.com/harshanas/peopledesk/internal/models"
	"github.com/harshanas/peopledesk/rolegate"
)

// Destinations.
const (
	LoginPath         = "/login"
	UnauthorizedPath  = "/unauthorized"
	HRDashboard       = "/hr/dashboard"
	EmployeeDashboard = "/employee/dashboard"
)

// Destination names registered in the gate. Route handlers reference these
// rather than raw paths so the policy table stays in one place.
const (
	DestHRPages        = "hr-pages"
	DestHREmployeeMgmt = "hr-employee-management"
	DestEmployeePages  = "employee-pages"
)

type profileCtxKey struct{}

// WithProfile stores the resolved profile in the request context.
func WithProfile(ctx context.Context, p *models.Profile) context.Context {
	return context.WithValue(ctx, profileCtxKey{}, p)
}

// ProfileFromContext returns the profile the role middleware resolved.
func ProfileFromContext(ctx context.Context) (*models.Profile, bool) {
	p, ok := ctx.Value(profileCtxKey{}).(*models.Profile)
	return p, ok && p != nil
}

// RoleRouter decides, per request, between rendering and redirecting.
type RoleRouter struct {
	gate     *rolegate.Gate
	resolver *identity.Resolver
}

// NewRoleRouter builds the policy table for the two-role portal.
func NewRoleRouter(resolver *identity.Resolver) *RoleRouter {
	g := rolegate.New(LoginPath, UnauthorizedPath)
	g.RegisterDashboard(rolegate.Role(identity.RoleHR), HRDashboard)
	g.RegisterDashboard(rolegate.Role(identity.RoleEmployee), EmployeeDashboard)

	g.Register(DestHRPages, rolegate.Rule{Require: rolegate.Role(identity.RoleHR)})
	g.Register(DestEmployeePages, rolegate.Rule{Require: rolegate.Role(identity.RoleEmployee)})
	// HR-only management actions: non-HR identities get an explicit
	// unauthorized destination instead of a silent redirect.
	g.Register(DestHREmployeeMgmt, rolegate.Rule{
		Require:    rolegate.Role(identity.RoleHR),
		OnMismatch: rolegate.RedirectUnauthorized,
	})

	return &RoleRouter{gate: g, resolver: resolver}
}

// DashboardFor returns the dashboard path for a role.
func (rr *RoleRouter) DashboardFor(role identity.Role) string {
	return rr.gate.Dashboard(rolegate.Role(role))
}

// Require returns middleware gating a destination. It resolves the profile
// once, applies the policy table, and on success passes the profile to the
// handler through the request context.
func (rr *RoleRouter) Require(destination string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := rr.resolver.ResolveProfile(r.Context())
			var actual rolegate.Role
			if profile != nil {
				actual = rolegate.Role(profile.Role)
			}
			d := rr.gate.Decide(destination, actual)
			if d.Kind == rolegate.Redirect {
				http.Redirect(w, r, d.Target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
		})
	}
}
