package database

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bigkaa/billboard-acp/internal/config"
)

// setupTestDB запускает MongoDB в Docker-контейнере через testcontainers.
// Возвращает конфиг, указывающий на контейнер.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := mongodb.Run(ctx,
		"docker.io/mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithOccurrence(1).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить MongoDB контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить строку подключения: %v", err)
	}

	t.Setenv("ACP_MONGO_URI", uri)
	t.Setenv("ACP_MONGO_DATABASE", "billboard_test")
	t.Setenv("ACP_OAUTH_CLIENT_ID", "test")
	t.Setenv("ACP_OAUTH_CLIENT_SECRET", "test")
	t.Setenv("ACP_OAUTH_CALLBACK_URI", "http://localhost:3000/auth/google/callback")
	t.Setenv("ACP_IMAGE_API_BASE_URI", "http://localhost:9000")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// TestConnect проверяет подключение к MongoDB.
func TestConnect(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()

	client, err := Connect(ctx, cfg, testLogger())
	if err != nil {
		t.Fatalf("Connect() вернул ошибку: %v", err)
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("client.Ping() вернул ошибку: %v", err)
	}
}

// TestEnsureIndexes проверяет создание индексов и уникальность users.id.
func TestEnsureIndexes(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()

	client, err := Connect(ctx, cfg, testLogger())
	if err != nil {
		t.Fatalf("Connect() вернул ошибку: %v", err)
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	db := client.Database(cfg.MongoDatabase)

	if err := EnsureIndexes(ctx, db, testLogger()); err != nil {
		t.Fatalf("EnsureIndexes() вернул ошибку: %v", err)
	}
	// Повторный вызов — без ошибки
	if err := EnsureIndexes(ctx, db, testLogger()); err != nil {
		t.Fatalf("Повторный EnsureIndexes() вернул ошибку: %v", err)
	}

	users := db.Collection(CollectionUsers)
	if _, err := users.InsertOne(ctx, bson.M{"id": "u1", "name": "A", "email": "a@example.com"}); err != nil {
		t.Fatalf("InsertOne() вернул ошибку: %v", err)
	}
	_, err = users.InsertOne(ctx, bson.M{"id": "u1", "name": "B", "email": "b@example.com"})
	if !mongo.IsDuplicateKeyError(err) {
		t.Errorf("InsertOne() с повторным id: ошибка = %v, ожидается duplicate key", err)
	}
}

// TestReadinessChecker проверяет ReadinessChecker.
func TestReadinessChecker(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()

	client, err := Connect(ctx, cfg, testLogger())
	if err != nil {
		t.Fatalf("Connect() вернул ошибку: %v", err)
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	checker := NewReadinessChecker(client)

	status, msg := checker.CheckReady()
	if status != "ok" {
		t.Errorf("CheckReady() status = %q, message = %q; ожидали status = %q",
			status, msg, "ok")
	}
}
