// Пакет repository — слой доступа к данным MongoDB.
// Каждая сущность хранится в своей коллекции и адресуется полем id
// (внутренний _id MongoDB наружу не выдаётся).
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict — конфликт уникальности (дублирующийся id).
	ErrConflict = errors.New("конфликт — запись уже существует")
)

// CRUD — общий набор точечных операций над коллекцией сущностей T.
// Транзакций и join'ов нет: связи между сущностями разрешает вызывающий.
type CRUD[T any] interface {
	// List возвращает все записи в порядке хранения.
	List(ctx context.Context) ([]T, error)
	// GetByID возвращает запись по id или ErrNotFound.
	GetByID(ctx context.Context, id string) (*T, error)
	// Create добавляет новую запись. ID должен быть назначен заранее.
	Create(ctx context.Context, doc *T) error
	// Update перезаписывает все поля записи с указанным id.
	// Если запись не найдена — ErrNotFound, данные не меняются.
	Update(ctx context.Context, id string, doc *T) error
	// Delete удаляет запись по id. Удаление отсутствующей записи не ошибка.
	Delete(ctx context.Context, id string) error
}

// mongoCollection — реализация CRUD поверх коллекции MongoDB.
type mongoCollection[T any] struct {
	coll *mongo.Collection
	// entity — имя сущности для сообщений об ошибках
	entity string
}

func newMongoCollection[T any](db *mongo.Database, name, entity string) *mongoCollection[T] {
	return &mongoCollection[T]{coll: db.Collection(name), entity: entity}
}

func (c *mongoCollection[T]) List(ctx context.Context) ([]T, error) {
	cursor, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка %s: %w", c.entity, err)
	}
	defer cursor.Close(ctx)

	result := make([]T, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("ошибка чтения списка %s: %w", c.entity, err)
	}
	return result, nil
}

func (c *mongoCollection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return c.findOne(ctx, bson.M{"id": id})
}

// findOne возвращает первую запись по фильтру или ErrNotFound.
func (c *mongoCollection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	doc := new(T)
	err := c.coll.FindOne(ctx, filter).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения %s: %w", c.entity, err)
	}
	return doc, nil
}

func (c *mongoCollection[T]) Create(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s с таким id уже существует", ErrConflict, c.entity)
		}
		return fmt.Errorf("ошибка создания %s: %w", c.entity, err)
	}
	return nil
}

func (c *mongoCollection[T]) Update(ctx context.Context, id string, doc *T) error {
	res, err := c.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("ошибка обновления %s: %w", c.entity, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection[T]) Delete(ctx context.Context, id string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("ошибка удаления %s: %w", c.entity, err)
	}
	return nil
}
