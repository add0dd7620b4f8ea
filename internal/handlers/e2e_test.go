package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"StockKeeper/internal/config"
	"StockKeeper/internal/handlers"
	"StockKeeper/internal/model"
	"StockKeeper/internal/repo"
	"StockKeeper/internal/service"
)

// Сквозной сценарий на реальных репозиториях поверх in-memory SQLite:
// регистрация → вход → создание позиции → чужой PUT → свой DELETE.
func TestEndToEnd_ItemLifecycle(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Item{}))

	cfg := &config.Config{AuthSecret: testSecret}
	logger := zap.NewNop().Sugar()
	userSvc := service.NewUserService(repo.NewUserRepository(db))
	itemSvc := service.NewItemService(repo.NewItemRepository(db), logger)
	router := handlers.NewHandler(userSvc, itemSvc, logger, cfg).Router

	post := func(path, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	// регистрация alice — 201 без пароля в ответе
	rr := post("/users", `{"username":"alice","password":"p1","firstName":"A","lastName":"S"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "p1")
	assert.NotContains(t, rr.Body.String(), "password")
	var aliceResp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &aliceResp))

	// в БД лежит хеш, не исходный пароль
	var stored model.User
	require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "p1", stored.Password)

	// вход — 202 с accessToken
	rr = post("/users/login", `{"username":"alice","password":"p1"}`, "")
	require.Equal(t, http.StatusAccepted, rr.Code)
	var loginResp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.AccessToken)
	aliceToken := loginResp.AccessToken

	// неверный пароль — 400
	rr = post("/users/login", `{"username":"alice","password":"nope"}`, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// создание позиции — 201, владелец из токена
	rr = post("/items", `{"itemName":"Pen","quantity":3}`, aliceToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created handlers.ItemDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, aliceResp.ID, created.UserID)
	assert.Equal(t, "Pen", created.ItemName)

	// открытый список — 200, позиция с проекцией владельца
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []handlers.ItemDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Owner)
	assert.Equal(t, "alice", listed[0].Owner.Username)

	// второй пользователь
	rr = post("/users", `{"username":"bob","password":"p2","firstName":"B","lastName":"J"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = post("/users/login", `{"username":"bob","password":"p2"}`, "")
	require.Equal(t, http.StatusAccepted, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	bobToken := loginResp.AccessToken

	// PUT чужим токеном — запрещено
	itemPath := fmt.Sprintf("/items/%d", created.ID)
	req = httptest.NewRequest(http.MethodPut, itemPath, strings.NewReader(`{"quantity":99}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bobToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// PUT своим токеном — 200 и обновлённое количество
	req = httptest.NewRequest(http.MethodPut, itemPath, strings.NewReader(`{"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated handlers.ItemDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, 5, updated.Quantity)

	// DELETE чужим токеном — запрещено
	req = httptest.NewRequest(http.MethodDelete, itemPath, nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// DELETE владельцем — 202 с сообщением
	req = httptest.NewRequest(http.MethodDelete, itemPath, nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusAccepted, rr.Code)
	var msg struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	assert.Equal(t, "Item deleted successfully", msg.Message)

	// повторный DELETE — позиции больше нет
	req = httptest.NewRequest(http.MethodDelete, itemPath, nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// список пуст — 404
	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
