package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/harshanas/peopledesk/httpx"
	"github.com/harshanas/peopledesk/internal/credstore"
	"github.com/harshanas/peopledesk/internal/identity"
	"github.com/harshanas/peopledesk/internal/models"
	"github.com/harshanas/peopledesk/validation"
)

// APIHandler serves the JSON endpoints the HR pages call.
type APIHandler struct {
	DB    *gorm.DB
	Creds *credstore.Store
}

func NewAPIHandler(db *gorm.DB, creds *credstore.Store) *APIHandler {
	return &APIHandler{DB: db, Creds: creds}
}

type createEmployeeRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	EmployeeCode  string `json:"employee_code"`
	Department    string `json:"department"`
	Position      string `json:"position"`
	LevelID       string `json:"level_id"`
	Qualification string `json:"qualification"`
	Experience    string `json:"experience"`
	Remarks       string `json:"remarks"`
	ContactInfo   string `json:"contact_info"`
	JoinedAt      string `json:"joined_at"` // YYYY-MM-DD, defaults to today
}

type createEmployeeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// CreateEmployee provisions a credential account plus an employee profile in
// one call. The two stores have no shared transaction, so a profile failure
// compensates by deleting the just-created account; a compensation failure is
// logged and surfaced as an orphan needing manual cleanup.
func (h *APIHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSON(w, http.StatusInternalServerError, createEmployeeResponse{
			Success: false, Message: "invalid request body",
		})
		return
	}

	v := validation.Violations{}
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.MinLen("password", req.Password, 8, v)
	validation.Required("full_name", req.FullName, v)
	if !v.Empty() {
		httpx.JSON(w, http.StatusBadRequest, createEmployeeResponse{
			Success: false, Message: "email, password (min 8 chars) and full_name are required",
		})
		return
	}

	acct, err := h.Creds.AdminCreateUser(r.Context(), req.Email, req.Password, credstore.Metadata{
		FullName: strings.TrimSpace(req.FullName),
		RoleHint: string(identity.RoleEmployee),
	})
	if err != nil {
		msg := "could not create account"
		if errors.Is(err, credstore.ErrEmailTaken) {
			msg = "email already registered"
		}
		httpx.JSON(w, http.StatusBadRequest, createEmployeeResponse{Success: false, Message: msg})
		return
	}

	code := strings.TrimSpace(req.EmployeeCode)
	if code == "" {
		code = generateEmployeeCode()
	}
	joined := time.Now()
	if req.JoinedAt != "" {
		if t, perr := time.Parse("2006-01-02", req.JoinedAt); perr == nil {
			joined = t
		}
	}

	profile := models.Profile{
		ID:            acct.ID,
		FullName:      strings.TrimSpace(req.FullName),
		Role:          string(identity.RoleEmployee),
		EmployeeCode:  &code,
		Department:    strings.TrimSpace(req.Department),
		Position:      strings.TrimSpace(req.Position),
		Qualification: strings.TrimSpace(req.Qualification),
		Experience:    strings.TrimSpace(req.Experience),
		Remarks:       strings.TrimSpace(req.Remarks),
		ContactInfo:   strings.TrimSpace(req.ContactInfo),
		JoinedAt:      joined,
	}
	if req.LevelID != "" {
		levelID := req.LevelID
		profile.LevelID = &levelID
	}

	if err := h.DB.WithContext(r.Context()).Create(&profile).Error; err != nil {
		if delErr := h.Creds.AdminDeleteUser(r.Context(), acct.ID); delErr != nil {
			log.Printf("orphaned account %s: profile insert failed (%v), cleanup failed (%v)", acct.ID, err, delErr)
			httpx.JSON(w, http.StatusInternalServerError, createEmployeeResponse{
				Success: false, Message: "profile creation failed and account cleanup failed, manual cleanup required",
			})
			return
		}
		httpx.JSON(w, http.StatusBadRequest, createEmployeeResponse{
			Success: false, Message: "could not create employee profile (employee code may be taken)",
		})
		return
	}

	httpx.JSON(w, http.StatusOK, createEmployeeResponse{
		Success:    true,
		Message:    "employee created",
		EmployeeID: acct.ID,
	})
}

// generateEmployeeCode derives a short default code from the clock. HR can
// replace it on the edit page; uniqueness is enforced by the database.
func generateEmployeeCode() string {
	ms := time.Now().UnixMilli()
	return fmt.Sprintf("EMP%06d", ms%1000000)
}
