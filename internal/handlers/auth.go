package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"coursedeck/internal/apperr"
	"coursedeck/internal/auth"
	"coursedeck/internal/models"
	"coursedeck/internal/store"
	"coursedeck/internal/utils"
)

type AuthHandler struct {
	Users     store.UserStore
	JWTSecret string
	Log       *zap.Logger
}

func NewAuthHandler(users store.UserStore, jwtSecret string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, JWTSecret: jwtSecret, Log: log}
}

// ----------- Request/Response DTOs -------------

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	loginReq
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// userPayload is the public user shape returned alongside tokens.
type userPayload struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

func (r loginReq) validate() []utils.FieldError {
	var errs []utils.FieldError
	if !validEmail(r.Email) {
		errs = append(errs, fieldErr("email", "Invalid email format"))
	}
	if len(r.Password) < 6 {
		errs = append(errs, fieldErr("password", "Password must be at least 6 characters"))
	}
	return errs
}

func (r registerReq) validate() []utils.FieldError {
	errs := r.loginReq.validate()
	if r.Name == "" {
		errs = append(errs, fieldErr("name", "Name is required"))
	}
	if r.Role != "" && !r.Role.Valid() {
		errs = append(errs, fieldErr("role", "Role must be ADMIN or USER"))
	}
	return errs
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		utils.JSONFieldErrors(w, errs)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash password", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
		Role:     role,
	}

	if err := h.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, apperr.ErrEmailTaken) {
			utils.JSONError(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.Log.Error("create user", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := auth.IssueToken(identityOf(user), h.JWTSecret)
	if err != nil {
		h.Log.Error("issue token", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   token,
		"user":    payloadOf(user),
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		utils.JSONFieldErrors(w, errs)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		utils.JSONError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		h.Log.Error("find user", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(identityOf(user), h.JWTSecret)
	if err != nil {
		h.Log.Error("issue token", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    payloadOf(user),
	})
}

func identityOf(u *models.User) auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func payloadOf(u *models.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
