package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"StockKeeper/internal/auth"
	"StockKeeper/internal/config"
	"StockKeeper/internal/service"
)

// UserHandler обрабатывает регистрацию и вход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewUserHandler создаёт хендлер users
func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register — POST /users. Создаёт пользователя, хеш пароля наружу не отдаётся.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Username) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Username is required")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.FirstName, req.LastName, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, fmt.Sprintf("%s username already exists!", req.Username))
		return
	case err != nil:
		h.Logger.Errorw("Register: service error", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Logger.Infow("user registered", "username", user.Username, "user_id", user.ID)

	// json-теги модели скрывают хеш пароля и служебные поля
	writeJSON(w, http.StatusCreated, user)
}

// Login — POST /users/login. Выдаёт подписанный accessToken.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, "Password is incorrect")
		return
	case errors.Is(err, service.ErrUserNotFound):
		// исходный сервис на неизвестном username падал в 500; код сохранён,
		// но без падения
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	case err != nil:
		h.Logger.Errorw("Login: service error", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := auth.IssueToken(user, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("Login: failed to issue token", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Logger.Infow("user logged in", "username", user.Username)

	writeJSON(w, http.StatusAccepted, map[string]string{"accessToken": token})
}
