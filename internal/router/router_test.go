package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/zempo1/bookKeeper/internal/config"
	"github.com/zempo1/bookKeeper/internal/database"

	"github.com/gin-gonic/gin"
)

// envelope 统一响应结构
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func performRequest(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func performJSON(r http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	return performRequest(r, method, path, bytes.NewReader(b))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope failed: %v, body=%s", err, rec.Body.String())
	}
	return env
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test_bookkeeper.db")},
		Security: config.SecurityConfig{BcryptCost: 4}, // 测试用最低 cost
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		t.Fatalf("init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return SetupRouter(cfg, db)
}

// registerUser 注册用户并返回分配的 id
func registerUser(t *testing.T, r http.Handler, username, password string) uint {
	t.Helper()
	rec := performJSON(r, http.MethodPost, "/api/auth/register",
		map[string]string{"username": username, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("register %q failed: status=%d body=%s", username, rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var user struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &user); err != nil || user.ID == 0 {
		t.Fatalf("register %q: bad user payload %s", username, env.Data)
	}
	return user.ID
}

// TestAuthFlow 注册/登录全流程和错误码
func TestAuthFlow(t *testing.T) {
	r := setupTestServer(t)

	aliceID := registerUser(t, r, "alice", "pw1secret")

	// 注册响应里不能带密码字段
	rec := performJSON(r, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "alice", "password": "pw1secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: status=%d body=%s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success || env.Code != 200 {
		t.Errorf("login envelope = %+v, want success 200", env)
	}
	if bytes.Contains(env.Data, []byte("pw1secret")) || bytes.Contains(env.Data, []byte("password")) {
		t.Errorf("login response leaks credential: %s", env.Data)
	}
	var user struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("decode user failed: %v", err)
	}
	if user.ID != aliceID || user.Username != "alice" {
		t.Errorf("login user = %+v, want id=%d username=alice", user, aliceID)
	}

	// 重复注册 -> 400
	rec = performJSON(r, http.MethodPost, "/api/auth/register",
		map[string]string{"username": "alice", "password": "pw2secret"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", rec.Code)
	}
	env = decodeEnvelope(t, rec)
	if env.Success || env.Code != 400 {
		t.Errorf("duplicate register envelope = %+v, want failure 400", env)
	}

	// 密码错误 -> 401
	rec = performJSON(r, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "alice", "password": "wrongpass"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rec.Code)
	}
	env = decodeEnvelope(t, rec)
	if env.Success || env.Code != 401 {
		t.Errorf("bad login envelope = %+v, want failure 401", env)
	}
}

// TestCategoryFlow 分类的创建、按用户/类型查询和归属校验
func TestCategoryFlow(t *testing.T) {
	r := setupTestServer(t)

	aliceID := registerUser(t, r, "alice", "pw1secret")
	bobID := registerUser(t, r, "bob", "pw2secret")

	// 创建分类
	rec := performJSON(r, http.MethodPost, "/api/categories", map[string]interface{}{
		"userId": aliceID, "name": "餐饮", "type": "EXPENSE", "icon": "food",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create category failed: status=%d body=%s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var cat struct {
		ID     uint   `json:"id"`
		UserID uint   `json:"userId"`
		Type   string `json:"type"`
	}
	if err := json.Unmarshal(env.Data, &cat); err != nil || cat.ID == 0 {
		t.Fatalf("bad category payload: %s", env.Data)
	}

	// 引用不存在的用户 -> 422
	rec = performJSON(r, http.MethodPost, "/api/categories", map[string]interface{}{
		"userId": 9999, "name": "餐饮", "type": "EXPENSE",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("create with unknown user status = %d, want 422", rec.Code)
	}

	// 按用户查询
	rec = performRequest(r, http.MethodGet, fmt.Sprintf("/api/categories?userId=%d", aliceID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list categories failed: status=%d", rec.Code)
	}
	env = decodeEnvelope(t, rec)
	var cats []json.RawMessage
	if err := json.Unmarshal(env.Data, &cats); err != nil {
		t.Fatalf("decode categories failed: %v", err)
	}
	if len(cats) != 1 {
		t.Errorf("alice categories = %d, want 1", len(cats))
	}

	// bob 删 alice 的分类 -> 403
	rec = performRequest(r, http.MethodDelete,
		fmt.Sprintf("/api/categories/%d?userId=%d", cat.ID, bobID), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete by non-owner status = %d, want 403", rec.Code)
	}

	// alice 自己删 -> 200；再删 -> 404
	rec = performRequest(r, http.MethodDelete,
		fmt.Sprintf("/api/categories/%d?userId=%d", cat.ID, aliceID), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete by owner status = %d, want 200", rec.Code)
	}
	rec = performRequest(r, http.MethodDelete,
		fmt.Sprintf("/api/categories/%d?userId=%d", cat.ID, aliceID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete deleted id status = %d, want 404", rec.Code)
	}
}

// TestRecordFlow 记录 CRUD、日期区间查询和更新策略
func TestRecordFlow(t *testing.T) {
	r := setupTestServer(t)

	aliceID := registerUser(t, r, "alice", "pw1secret")

	// 创建：{userId, recordDate:"2024-01-15", amount:50}
	rec := performJSON(r, http.MethodPost, "/api/records", map[string]interface{}{
		"userId": aliceID, "type": "EXPENSE", "amount": 50, "recordDate": "2024-01-15",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create record failed: status=%d body=%s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var created struct {
		ID         uint   `json:"id"`
		AmountCent int64  `json:"amountCent"`
		Amount     string `json:"amount"`
		RecordDate string `json:"recordDate"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == 0 {
		t.Fatalf("bad record payload: %s", env.Data)
	}
	if created.AmountCent != 5000 || created.Amount != "50.00" {
		t.Errorf("created amount = %s (%d cent), want 50.00 (5000 cent)", created.Amount, created.AmountCent)
	}
	if created.RecordDate != "2024-01-15" {
		t.Errorf("created recordDate = %q, want 2024-01-15", created.RecordDate)
	}

	// 覆盖日期的区间 -> 包含该记录
	rec = performRequest(r, http.MethodGet,
		fmt.Sprintf("/api/records?userId=%d&startDate=2024-01-01&endDate=2024-01-31", aliceID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list records failed: status=%d body=%s", rec.Code, rec.Body.String())
	}
	env = decodeEnvelope(t, rec)
	var items []struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode records failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Errorf("january range = %+v, want only record %d", items, created.ID)
	}

	// 不覆盖的区间 -> 空列表
	rec = performRequest(r, http.MethodGet,
		fmt.Sprintf("/api/records?userId=%d&startDate=2024-02-01&endDate=2024-02-28", aliceID), nil)
	env = decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode records failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("february range = %+v, want empty", items)
	}

	// 区间反了 -> 422
	rec = performRequest(r, http.MethodGet,
		fmt.Sprintf("/api/records?userId=%d&startDate=2024-01-31&endDate=2024-01-01", aliceID), nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("reversed range status = %d, want 422", rec.Code)
	}

	// 更新：payload 里的 id 被路径 id 覆盖
	rec = performJSON(r, http.MethodPut, fmt.Sprintf("/api/records/%d", created.ID),
		map[string]interface{}{
			"id": 888, "userId": aliceID, "type": "INCOME",
			"amount": 99, "recordDate": "2024-01-16", "description": "updated",
		})
	if rec.Code != http.StatusOK {
		t.Fatalf("update record failed: status=%d body=%s", rec.Code, rec.Body.String())
	}
	env = decodeEnvelope(t, rec)
	var updated struct {
		ID     uint   `json:"id"`
		Type   string `json:"type"`
		Amount string `json:"amount"`
	}
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode updated record failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("updated id = %d, want %d (path id wins)", updated.ID, created.ID)
	}
	if updated.Type != "INCOME" || updated.Amount != "99.00" {
		t.Errorf("updated record = %+v, want payload values", updated)
	}

	// 严格更新：不存在的 id -> 404，而不是插入
	rec = performJSON(r, http.MethodPut, "/api/records/9999",
		map[string]interface{}{
			"userId": aliceID, "type": "EXPENSE", "amount": 1, "recordDate": "2024-01-16",
		})
	if rec.Code != http.StatusNotFound {
		t.Errorf("update unknown id status = %d, want 404", rec.Code)
	}

	// 删除 -> 200；再删 -> 404
	rec = performRequest(r, http.MethodDelete,
		fmt.Sprintf("/api/records/%d?userId=%d", created.ID, aliceID), nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete record status = %d, want 200", rec.Code)
	}
	rec = performRequest(r, http.MethodDelete,
		fmt.Sprintf("/api/records/%d?userId=%d", created.ID, aliceID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete deleted record status = %d, want 404", rec.Code)
	}
}

// TestExportCSV 导出接口复用区间查询的参数和校验
func TestExportCSV(t *testing.T) {
	r := setupTestServer(t)

	aliceID := registerUser(t, r, "alice", "pw1secret")
	performJSON(r, http.MethodPost, "/api/records", map[string]interface{}{
		"userId": aliceID, "type": "EXPENSE", "amount": 12.34, "recordDate": "2024-01-15", "description": "午饭",
	})

	rec := performRequest(r, http.MethodGet,
		fmt.Sprintf("/api/records/export/csv?userId=%d&startDate=2024-01-01&endDate=2024-01-31", aliceID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export csv failed: status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !bytes.Contains([]byte(body), []byte("12.34")) {
		t.Errorf("csv does not contain record amount: %q", body)
	}

	// 区间反了 -> 422
	rec = performRequest(r, http.MethodGet,
		fmt.Sprintf("/api/records/export/csv?userId=%d&startDate=2024-01-31&endDate=2024-01-01", aliceID), nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("export reversed range status = %d, want 422", rec.Code)
	}
}

// TestRequestIDHeader 每个响应都带 X-Request-ID
func TestRequestIDHeader(t *testing.T) {
	r := setupTestServer(t)

	rec := performRequest(r, http.MethodGet, "/api/categories?userId=1", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}

	// 透传调用方带来的 id
	req, _ := http.NewRequest(http.MethodGet, "/api/categories?userId=1", nil)
	req.Header.Set("X-Request-ID", "test-rid-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "test-rid-123" {
		t.Errorf("X-Request-ID = %q, want test-rid-123", got)
	}
}
