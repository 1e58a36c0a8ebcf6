package handler

import (
	"net/http"

	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/middleware"
	"github.com/asalem/souq/internal/service"
)

// UserHandler handles admin account management and the /users/me routes.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=3,max=72"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=200"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
	Age         int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
}

type updateUserRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=3,max=72"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	Active      *bool   `json:"active,omitempty"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=200"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Gender      *string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
}

func (req *updateUserRequest) toInput() service.UpdateUserInput {
	in := service.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Active:      req.Active,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Gender:      req.Gender,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}
	return in
}

// Create handles POST /api/v1/users (admin).
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Gender:      req.Gender,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, user)
}

// Get handles GET /api/v1/users/{id} (admin).
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, user)
}

// Update handles PUT /api/v1/users/{id} (admin).
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.Update(r.Context(), id, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, user)
}

// Delete handles DELETE /api/v1/users/{id} (admin).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "user deleted", nil)
}

// List handles GET /api/v1/users (admin).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	f := domain.UserFilter{
		Name:  values.Get("name"),
		Email: values.Get("email"),
		Role:  domain.Role(values.Get("role")),
	}

	q, err := listQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	users, p, err := h.users.List(r.Context(), q, f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, r, users, p)
}

// GetMe handles GET /api/v1/users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetMe(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, user)
}

// UpdateMe handles PUT /api/v1/users/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.UpdateMe(r.Context(), middleware.GetUserID(r.Context()), req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, user)
}

// DeleteMe handles DELETE /api/v1/users/me.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteMe(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, http.StatusOK, "account deactivated", nil)
}
