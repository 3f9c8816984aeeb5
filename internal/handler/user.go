package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/usersvc/usersvc/internal/handler/dto"
	"github.com/usersvc/usersvc/internal/model"
	"github.com/usersvc/usersvc/internal/repository"
	"github.com/usersvc/usersvc/internal/service"
)

// UserService is what UserHandler needs from the service layer.
type UserService interface {
	CreateUser(ctx context.Context, input service.CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, bool, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// userNotFoundMessage is the fixed body for unknown ids.
const userNotFoundMessage = "User not found"

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /users.
// Every failure, store errors included, is a 400 carrying the raw message.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.CreateUser(r.Context(), service.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.logger.Warn("user_create_failed",
			"error", err,
			"constraint_violation", errors.Is(err, repository.ErrConstraintViolation),
		)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	// ids are int4 serials; anything that does not parse into that range
	// cannot match a row.
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		h.writeError(w, http.StatusNotFound, userNotFoundMessage)
		return
	}

	user, fromCache, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.writeError(w, http.StatusNotFound, userNotFoundMessage)
			return
		}
		h.logger.Error("user_get_failed", "user_id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserLookupResponse(user, fromCache))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("user_list_failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// writeError writes an error response.
func (h *UserHandler) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}
