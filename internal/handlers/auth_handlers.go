// File: internal/handlers/auth_handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/carelink/carelink-server/internal/auth"
	"github.com/carelink/carelink-server/internal/domain"
	accountrepo "github.com/carelink/carelink-server/internal/repository/account"
	doctorrepo "github.com/carelink/carelink-server/internal/repository/doctor"
	patientrepo "github.com/carelink/carelink-server/internal/repository/patient"
	"github.com/carelink/carelink-server/internal/services"
)

// AuthHandler owns signup and signin. An account row carries the login
// identity; the matching patient or doctor profile row shares its ID.
type AuthHandler struct {
	accounts  accountrepo.AccountRepository
	patients  patientrepo.PatientRepository
	doctors   doctorrepo.DoctorRepository
	jwtSecret []byte
	logger    services.Logger
}

func NewAuthHandler(
	accounts accountrepo.AccountRepository,
	patients patientrepo.PatientRepository,
	doctors doctorrepo.DoctorRepository,
	jwtSecret []byte,
	logger services.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		patients:  patients,
		doctors:   doctors,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

type signupRequest struct {
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	Role      string            `json:"role"`
	ExtraInfo map[string]string `json:"extra_info"`
}

// Signup creates the account plus exactly one profile row in the doctors
// or patients table, keyed by the generated account ID, carrying the
// caller-supplied extra_info fields.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "email and password are required", http.StatusBadRequest)
		return
	}
	if req.Role != "doctor" && req.Role != "patient" {
		writeError(w, "role must be doctor or patient", http.StatusBadRequest)
		return
	}

	account := &domain.Account{ID: uuid.NewString(), Email: req.Email}
	if err := account.HashPassword(req.Password); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.accounts.Create(r.Context(), account); err != nil {
		h.logger.Error("signup failed creating account", "error", err)
		writeError(w, "could not create account: "+err.Error(), http.StatusBadRequest)
		return
	}

	info := req.ExtraInfo
	if info == nil {
		info = map[string]string{}
	}

	var profileErr error
	if req.Role == "doctor" {
		_, profileErr = h.doctors.Create(r.Context(), &domain.Doctor{
			ID:             account.ID,
			Name:           info["name"],
			Hospital:       info["hospital"],
			Specialization: info["specialization"],
			Email:          req.Email,
		})
	} else {
		_, profileErr = h.patients.Create(r.Context(), &domain.Patient{
			ID:                account.ID,
			Name:              info["name"],
			DOB:               info["dob"],
			Email:             req.Email,
			Phone:             info["phone"],
			Address:           info["address"],
			PreferredLanguage: info["preferredlanguage"],
		})
	}
	if profileErr != nil {
		h.logger.Error("signup failed creating profile", "role", req.Role, "error", profileErr)
		writeError(w, "could not create profile: "+profileErr.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Signup success! You can log in now.",
	})
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signin verifies credentials and resolves the account's role by which
// profile table contains its ID.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	account, err := h.accounts.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, accountrepo.ErrAccountNotFound) {
			writeError(w, "invalid email or password", http.StatusBadRequest)
			return
		}
		writeError(w, "signin failed", http.StatusInternalServerError)
		return
	}
	if err := account.ValidatePassword(req.Password); err != nil {
		writeError(w, "invalid email or password", http.StatusBadRequest)
		return
	}

	role := "unknown"
	if _, err := h.patients.FindByID(r.Context(), account.ID); err == nil {
		role = "patient"
	} else if _, err := h.doctors.FindByID(r.Context(), account.ID); err == nil {
		role = "doctor"
	}

	token, err := auth.GenerateToken(account.ID, h.jwtSecret)
	if err != nil {
		h.logger.Error("signin failed issuing token", "error", err)
		writeError(w, "signin failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Signin success!",
		"user_id": account.ID,
		"role":    role,
		"token":   token,
	})
}
