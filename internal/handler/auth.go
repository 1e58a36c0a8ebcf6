package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/service"
)

// AuthHandler handles sign-up, sign-in, and the password reset flow.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type signUpRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=3,max=72"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=200"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
	Age         int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type changePasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=3,max=72"`
}

// SignUp handles POST /api/v1/auth/sign-up.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	session, err := h.auth.SignUp(r.Context(), service.SignUpInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Gender:      req.Gender,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, session)
}

// SignIn handles POST /api/v1/auth/sign-in.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, session)
}

// ResetPassword handles POST /api/v1/auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "verification code sent to your email", nil)
}

// VerifyCode handles POST /api/v1/auth/verify-code.
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.auth.VerifyCode(r.Context(), req.Email, req.Code); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "code verified, you may change your password", nil)
}

// ChangePassword handles POST /api/v1/auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), req.Email, req.Password); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "password changed, please sign in again", nil)
}
