package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"StockKeeper/internal/config"
	"StockKeeper/internal/middleware"
	"StockKeeper/internal/model"
	"StockKeeper/internal/service"
)

// ItemHandler обрабатывает CRUD по позициям инвентаря.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger, Config: cfg}
}

type createItemRequest struct {
	ItemName    string `json:"itemName"`
	Description string `json:"description"`
	Quantity    *int   `json:"quantity"`
}

type updateItemRequest struct {
	ItemName    *string `json:"itemName"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
}

// OwnerDTO — минимальная проекция владельца в ответах.
type OwnerDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ItemDTO — позиция инвентаря в ответах API.
type ItemDTO struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	ItemName    string    `json:"itemName"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Owner       *OwnerDTO `json:"owner,omitempty"`
}

func toItemDTO(it *model.Item) ItemDTO {
	dto := ItemDTO{
		ID:          it.ID,
		UserID:      it.UserID,
		ItemName:    it.ItemName,
		Description: it.Description,
		Quantity:    it.Quantity,
	}
	if it.User != nil {
		dto.Owner = &OwnerDTO{ID: it.User.ID, Username: it.User.Username}
	}
	return dto
}

func toItemDTOs(items []model.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toItemDTO(&items[i]))
	}
	return dtos
}

// itemID достаёт числовой id из URL.
func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// List — GET /items. Открытый список всех позиций с владельцами.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.ListAll(r.Context())
	if err != nil {
		h.Logger.Errorw("List: service error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "No items found")
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

// ListByUser — GET /items/user. Позиции владельца из токена.
func (h *ItemHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.ItemService.ListByOwner(r.Context(), claims.UserID)
	if err != nil {
		h.Logger.Errorw("ListByUser: service error", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "No items found")
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

// Get — GET /items/{id}. Открытое чтение одной позиции.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	it, err := h.ItemService.Get(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found")
		return
	case err != nil:
		h.Logger.Errorw("Get: service error", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(it))
}

// Create — POST /items. Порядок проверок как в исходном сервисе:
// сначала структурная валидация тела, затем аутентификация.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	if strings.TrimSpace(req.ItemName) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Item name is required")
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusUnprocessableEntity, "Quantity is required")
		return
	}
	if *req.Quantity < 1 {
		writeError(w, http.StatusUnprocessableEntity, "Quantity must be a non-negative and non-zero number")
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	it, err := h.ItemService.Create(r.Context(), claims.UserID, req.ItemName, req.Description, *req.Quantity)
	if err != nil {
		h.Logger.Errorw("Create: service error", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dto := toItemDTO(it)
	dto.Owner = &OwnerDTO{ID: claims.UserID, Username: claims.Username}
	writeJSON(w, http.StatusCreated, dto)
}

// Update — PUT /items/{id}. Только владелец.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	if req.ItemName != nil && strings.TrimSpace(*req.ItemName) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Item name is required")
		return
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		writeError(w, http.StatusUnprocessableEntity, "Quantity must be a non-negative and non-zero number")
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	patch := service.ItemUpdate{
		ItemName:    req.ItemName,
		Description: req.Description,
		Quantity:    req.Quantity,
	}
	it, err := h.ItemService.Update(r.Context(), id, claims.UserID, patch)
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found")
		return
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	case err != nil:
		h.Logger.Errorw("Update: service error", "id", id, "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(it))
}

// Delete — DELETE /items/{id}. Только владелец.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := itemID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	err = h.ItemService.Delete(r.Context(), id, claims.UserID)
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found")
		return
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	case err != nil:
		h.Logger.Errorw("Delete: service error", "id", id, "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Item deleted successfully"})
}
