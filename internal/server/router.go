package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/harshanas/peopledesk/auth"
	"github.com/harshanas/peopledesk/httpx"
	"github.com/harshanas/peopledesk/internal/credstore"
	"github.com/harshanas/peopledesk/internal/handlers"
	"github.com/harshanas/peopledesk/internal/identity"
	"github.com/harshanas/peopledesk/internal/policy"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	creds := credstore.New(db)
	resolver := identity.NewResolver(db)
	provisioner := identity.NewProvisioner(db)
	router := policy.NewRoleRouter(resolver)

	// Sessions stay valid only while the account exists.
	auth.SetSubjectVerifier(creds.Exists)

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Public pages ---
	ah := handlers.NewAuthHandler(creds, resolver, provisioner, router)
	mux.HandleFunc("GET /{$}", ah.Landing)
	mux.HandleFunc("/login", ah.Login)
	mux.HandleFunc("/register", ah.Register)
	mux.HandleFunc("POST /logout", ah.Logout)
	mux.HandleFunc("GET /auth/callback", ah.Callback)
	mux.HandleFunc("GET /unauthorized", ah.Unauthorized)

	// --- Employee pages ---
	eh := handlers.NewEmployeeHandler(db)
	employee := router.Require(policy.DestEmployeePages)
	mux.Handle("GET /employee/dashboard", employee(http.HandlerFunc(eh.Dashboard)))
	mux.Handle("GET /employee/attendance", employee(http.HandlerFunc(eh.Attendance)))
	mux.Handle("/employee/skills", employee(http.HandlerFunc(eh.Skills)))
	mux.Handle("GET /employee/training", employee(http.HandlerFunc(eh.Training)))
	mux.Handle("GET /employee/assessments", employee(http.HandlerFunc(eh.Assessments)))
	mux.Handle("GET /employee/schedule", employee(http.HandlerFunc(eh.Schedule)))
	mux.Handle("/employee/profile", employee(http.HandlerFunc(eh.Profile)))

	// --- HR pages ---
	hh := handlers.NewHRHandler(db, resolver)
	hr := router.Require(policy.DestHRPages)
	mgmt := router.Require(policy.DestHREmployeeMgmt)
	mux.Handle("GET /hr/dashboard", hr(http.HandlerFunc(hh.Dashboard)))
	mux.Handle("GET /hr/employees", hr(http.HandlerFunc(hh.Employees)))
	mux.Handle("GET /hr/employees/new", mgmt(http.HandlerFunc(hh.NewEmployee)))
	mux.Handle("/hr/employees/{id}/edit", mgmt(http.HandlerFunc(hh.EditEmployee)))
	mux.Handle("/hr/employees/{id}/rate", mgmt(http.HandlerFunc(hh.RateEmployee)))
	mux.Handle("/hr/attendance", hr(http.HandlerFunc(hh.Attendance)))
	mux.Handle("/hr/skills", hr(http.HandlerFunc(hh.Skills)))
	mux.Handle("/hr/training", hr(http.HandlerFunc(hh.Training)))

	// --- JSON API ---
	api := handlers.NewAPIHandler(db, creds)
	mux.Handle("POST /api/employees", mgmt(http.HandlerFunc(api.CreateEmployee)))

	// --- Static assets ---
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return withRecover(withLogging(auth.Middleware(mux)))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
