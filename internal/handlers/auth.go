package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/harshanas/peopledesk/auth"
	"github.com/harshanas/peopledesk/httpx"
	"github.com/harshanas/peopledesk/internal/credstore"
	"github.com/harshanas/peopledesk/internal/identity"
	"github.com/harshanas/peopledesk/internal/models"
	"github.com/harshanas/peopledesk/internal/policy"
	"github.com/harshanas/peopledesk/validation"
	"github.com/harshanas/peopledesk/view"
)

type AuthHandler struct {
	Creds       *credstore.Store
	Resolver    *identity.Resolver
	Provisioner *identity.Provisioner
	Router      *policy.RoleRouter
}

func NewAuthHandler(creds *credstore.Store, resolver *identity.Resolver, provisioner *identity.Provisioner, router *policy.RoleRouter) *AuthHandler {
	return &AuthHandler{Creds: creds, Resolver: resolver, Provisioner: provisioner, Router: router}
}

// renderTemplate uses the shared view.Render to ensure layout, partials, funcs, and caching.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name+".html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error")); werr != nil {
			_ = werr
		}
	}
}

func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if profile := h.Resolver.ResolveProfile(r.Context()); profile != nil {
		http.Redirect(w, r, h.Router.DashboardFor(identity.Role(profile.Role)), http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "index", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		// Already logged in with a live account: straight to the dashboard.
		if subject, ok := auth.SubjectFromContext(r.Context()); ok {
			if acct, err := h.Creds.GetUser(r.Context(), subject); err == nil {
				h.redirectByRole(w, r, acct)
				return
			}
			// Stale session: clear and continue to render login
			auth.ClearSession(w)
		}
		data := map[string]any{}
		if r.URL.Query().Get("error") == "callback_failed" {
			data["Error"] = "sign-in with your provider failed, please try again"
		}
		renderTemplate(w, r, "login", data)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	pass := r.FormValue("password")
	if email == "" || pass == "" {
		renderTemplate(w, r, "login", map[string]any{"Error": "email and password required"})
		return
	}
	acct, err := h.Creds.SignIn(r.Context(), email, pass)
	if err != nil {
		renderTemplate(w, r, "login", map[string]any{"Error": "invalid credentials"})
		return
	}
	auth.CreateSession(w, acct.ID)
	h.redirectByRole(w, r, acct)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "register", nil)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	pass := r.FormValue("password")
	fullName := strings.TrimSpace(r.FormValue("full_name"))
	roleChoice := r.FormValue("role")

	v := validation.Violations{}
	validation.Required("email", email, v)
	validation.Email("email", email, v)
	validation.Required("full_name", fullName, v)
	validation.MinLen("password", pass, 8, v)
	if !v.Empty() {
		renderTemplate(w, r, "register", map[string]any{"Error": "please fill all fields (password min 8 chars)", "Violations": v})
		return
	}

	role := identity.ResolveRole(roleChoice, "", nil)
	acct, err := h.Creds.SignUp(r.Context(), email, pass, credstore.Metadata{FullName: fullName, RoleHint: string(role)})
	if err != nil {
		msg := "could not create account"
		if errors.Is(err, credstore.ErrEmailTaken) {
			msg = "email already registered"
		}
		renderTemplate(w, r, "register", map[string]any{"Error": msg})
		return
	}

	profile, err := h.Provisioner.EnsureProfile(r.Context(), acct.ID, identity.ProvisionInput{
		FullName: fullName,
		Role:     role,
		Email:    email,
	})
	if err != nil {
		// Provisioning failure must not block the user; the next access
		// re-checks and self-heals. Fall back to the less-privileged role.
		log.Printf("provisioning failed for %s: %v", acct.ID, err)
		role = identity.RoleEmployee
	} else {
		role = identity.ResolveRole(profile.Role, "", nil)
	}

	auth.CreateSession(w, acct.ID)
	http.Redirect(w, r, h.Router.DashboardFor(role), http.StatusSeeOther)
}

// Callback completes a sign-in-with-provider round trip. The code parameter
// is the provider's signed exchange token; any failure sends the user back
// to login with an error flag.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}
	claims, err := credstore.ExchangeCode(code)
	if err != nil {
		http.Redirect(w, r, policy.LoginPath+"?error=callback_failed", http.StatusSeeOther)
		return
	}
	acct, err := h.Creds.FindOrCreateByEmail(r.Context(), claims.Email, "oauth", credstore.Metadata{
		FullName: claims.FullName,
		RoleHint: claims.Role,
	})
	if err != nil {
		log.Printf("callback account lookup failed for %s: %v", claims.Email, err)
		http.Redirect(w, r, policy.LoginPath+"?error=callback_failed", http.StatusSeeOther)
		return
	}

	existing := h.Resolver.ProfileByID(r.Context(), acct.ID)
	role := identity.ResolveRole("", firstNonEmpty(claims.Role, acct.RoleHint), existing)
	if _, err := h.Provisioner.EnsureProfile(r.Context(), acct.ID, identity.ProvisionInput{
		FullName: firstNonEmpty(claims.FullName, acct.FullName),
		Role:     role,
		Email:    acct.Email,
	}); err != nil {
		log.Printf("callback provisioning failed for %s: %v", acct.ID, err)
		role = identity.RoleEmployee
	}

	auth.CreateSession(w, acct.ID)
	http.Redirect(w, r, h.Router.DashboardFor(role), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	auth.ClearSession(w)
	http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "unauthorized", nil)
}

// redirectByRole sends an authenticated account to its dashboard, resolving
// role from the profile first and the metadata hint second. An account that
// somehow lost its profile gets re-provisioned here so the role middleware
// never sees an authenticated subject without one.
func (h *AuthHandler) redirectByRole(w http.ResponseWriter, r *http.Request, acct *models.Account) {
	existing := h.Resolver.ProfileByID(r.Context(), acct.ID)
	role := identity.ResolveRole("", acct.RoleHint, existing)
	if existing == nil {
		if p, err := h.Provisioner.EnsureProfile(r.Context(), acct.ID, identity.ProvisionInput{
			FullName: acct.FullName,
			Role:     role,
			Email:    acct.Email,
		}); err != nil {
			log.Printf("re-provisioning failed for %s: %v", acct.ID, err)
			role = identity.RoleEmployee
		} else {
			role = identity.ResolveRole(p.Role, "", nil)
		}
	}
	http.Redirect(w, r, h.Router.DashboardFor(role), http.StatusSeeOther)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
