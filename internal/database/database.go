// Пакет database — подключение к MongoDB, создание индексов
// и проверка готовности.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bigkaa/billboard-acp/internal/config"
)

// Имена коллекций.
const (
	CollectionUsers       = "users"
	CollectionProfessors  = "professors"
	CollectionDepartments = "departments"
	CollectionBanners     = "banners"
)

// Connect создаёт клиент MongoDB и проверяет доступность через ping.
// Пул подключений клиента разделяется всеми запросами до Disconnect.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("billboard-acp").
		SetServerSelectionTimeout(cfg.MongoConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MongoDB: %w", err)
	}

	// Проверяем подключение
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ошибка подключения к MongoDB: %w", err)
	}

	logger.Info("Подключение к MongoDB установлено",
		slog.String("uri", cfg.MongoURIRedacted()),
		slog.String("database", cfg.MongoDatabase),
	)

	return client, nil
}

// EnsureIndexes создаёт индексы по полю id во всех коллекциях.
// В users индекс уникальный. Повторный вызов безопасен.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	collections := []struct {
		name   string
		unique bool
	}{
		{CollectionUsers, true},
		{CollectionProfessors, false},
		{CollectionDepartments, false},
		{CollectionBanners, false},
	}

	for _, c := range collections {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("id_1").SetUnique(c.unique),
		}
		if _, err := db.Collection(c.name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("ошибка создания индекса %s.id: %w", c.name, err)
		}
	}

	// Вход выполняется по email — отдельный неуникальный индекс
	emailIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_1"),
	}
	if _, err := db.Collection(CollectionUsers).Indexes().CreateOne(ctx, emailIdx); err != nil {
		return fmt.Errorf("ошибка создания индекса users.email: %w", err)
	}

	logger.Info("Индексы MongoDB проверены", slog.Int("collections", len(collections)))
	return nil
}

// ReadinessChecker — проверка готовности MongoDB для health endpoint.
// Реализует интерфейс handlers.ReadinessChecker.
type ReadinessChecker struct {
	client *mongo.Client
}

// NewReadinessChecker создаёт проверку готовности MongoDB.
func NewReadinessChecker(client *mongo.Client) *ReadinessChecker {
	return &ReadinessChecker{client: client}
}

// CheckReady проверяет подключение к MongoDB через ping.
// Возвращает статус ("ok", "fail") и сообщение.
func (c *ReadinessChecker) CheckReady() (status string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return "fail", fmt.Sprintf("MongoDB недоступен: %v", err)
	}
	return "ok", "подключение активно"
}
