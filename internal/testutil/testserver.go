package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/database"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/app"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/config"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"

	"gorm.io/gorm"
)

// TestDatabaseEnv - DSN тестовой БД; без нее интеграционные тесты пропускаются
const TestDatabaseEnv = "TEST_DATABASE_URL"

type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Services *services.ServiceContainer
}

// NewTestServer поднимает приложение поверх тестовой БД с локальным хранилищем во временной папке
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv(TestDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s is not set, skipping integration test", TestDatabaseEnv)
	}

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.RequestTimeout = 10 * time.Second
	cfg.Database.DSN = dsn
	cfg.Database.MaxOpenConns = 5
	cfg.Database.MaxIdleConns = 2
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/uploads"
	cfg.Storage.MaxSize = 1 << 20
	cfg.Workers.PositionCloseInterval = time.Hour

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Не удалось получить *sql.DB из GORM: %v", err)
	}

	router, container := app.SetupRouter(context.Background(), cfg, db, sqlDB)
	ts := &TestServer{
		Server:   httptest.NewServer(router),
		DB:       db,
		Services: container,
	}
	ts.ClearTables(t)
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// ClearTables очищает все таблицы конвейера найма
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	err := ts.DB.Exec("TRUNCATE TABLE interviews, applications, candidate_profiles, job_positions RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("Не удалось очистить таблицы: %v", err)
	}
}

// SendRequest отправляет JSON-запрос и возвращает ответ с прочитанным телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	return res, string(resBody)
}

// DecodeJSON разбирает тело ответа в dst
func DecodeJSON(t *testing.T, body string, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("Не удалось распарсить JSON: %v\n%s", err, body)
	}
}
