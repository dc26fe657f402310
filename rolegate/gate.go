// Package rolegate implements role-based page routing as an explicit policy
// table. Each rule names the role a destination requires and what happens on a
// mismatch: either a silent redirect to the subject's own dashboard, or a
// redirect to a dedicated unauthorized destination for sensitive actions.
// The package has no dependencies on domain models and can be reused across
// different web applications; the host app supplies role names and dashboard
// destinations.
package rolegate

// Role is a closed role identifier as the host application defines it
// (e.g. "hr", "employee").
type Role string

// Mismatch selects the behavior when a subject reaches a destination whose
// required role differs from the subject's role.
type Mismatch int

const (
	// RedirectOwnDashboard silently sends the subject to the dashboard
	// registered for their actual role.
	RedirectOwnDashboard Mismatch = iota
	// RedirectUnauthorized sends the subject to the unauthorized destination.
	RedirectUnauthorized
)

// DecisionKind is the terminal outcome for a request: render or redirect.
// There are no further transitions.
type DecisionKind int

const (
	Allow DecisionKind = iota
	Redirect
)

// Decision is the gate's verdict for one request.
type Decision struct {
	Kind DecisionKind
	// Target is the redirect destination; empty when Kind == Allow.
	Target string
}

// Rule associates a destination with its required role and mismatch behavior.
type Rule struct {
	Require    Role
	OnMismatch Mismatch
}

// Gate is the central routing checkpoint. Register dashboards per role and
// rules per destination, then call Decide for each request.
type Gate struct {
	loginTarget        string
	unauthorizedTarget string
	dashboards         map[Role]string
	rules              map[string]Rule
}

// New creates a Gate with the given login and unauthorized destinations.
func New(loginTarget, unauthorizedTarget string) *Gate {
	return &Gate{
		loginTarget:        loginTarget,
		unauthorizedTarget: unauthorizedTarget,
		dashboards:         make(map[Role]string),
		rules:              make(map[string]Rule),
	}
}

// RegisterDashboard declares the dashboard destination for a role.
// Overwrites any existing registration.
func (g *Gate) RegisterDashboard(role Role, target string) {
	g.dashboards[role] = target
}

// Register adds a rule for a destination name (e.g. a route prefix).
// Overwrites any existing rule for that destination.
func (g *Gate) Register(destination string, r Rule) {
	g.rules[destination] = r
}

// Dashboard returns the registered dashboard for a role, or the login
// destination if the role has none.
func (g *Gate) Dashboard(role Role) string {
	if t, ok := g.dashboards[role]; ok {
		return t
	}
	return g.loginTarget
}

// Decide evaluates the rule for destination against the subject's role.
// An empty actual role means unauthenticated and always redirects to login.
// A destination with no registered rule is treated as requiring
// authentication only.
func (g *Gate) Decide(destination string, actual Role) Decision {
	if actual == "" {
		return Decision{Kind: Redirect, Target: g.loginTarget}
	}
	rule, ok := g.rules[destination]
	if !ok {
		return Decision{Kind: Allow}
	}
	if rule.Require == actual {
		return Decision{Kind: Allow}
	}
	switch rule.OnMismatch {
	case RedirectUnauthorized:
		return Decision{Kind: Redirect, Target: g.unauthorizedTarget}
	default:
		return Decision{Kind: Redirect, Target: g.Dashboard(actual)}
	}
}
