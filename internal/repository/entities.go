package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bigkaa/billboard-acp/internal/database"
	"github.com/bigkaa/billboard-acp/internal/domain/model"
)

// UserRepository — доступ к коллекции users.
type UserRepository interface {
	CRUD[model.User]
	// GetByEmail возвращает администратора по email или ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProfessorRepository — доступ к коллекции professors.
type ProfessorRepository interface {
	CRUD[model.Professor]
}

// DepartmentRepository — доступ к коллекции departments.
type DepartmentRepository interface {
	CRUD[model.Department]
}

// BannerRepository — доступ к коллекции banners.
type BannerRepository interface {
	CRUD[model.Banner]
}

// userRepo — реализация UserRepository.
type userRepo struct {
	*mongoCollection[model.User]
}

// NewUserRepository создаёт репозиторий администраторов.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepo{newMongoCollection[model.User](db, database.CollectionUsers, "пользователя")}
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// NewProfessorRepository создаёт репозиторий преподавателей.
func NewProfessorRepository(db *mongo.Database) ProfessorRepository {
	return newMongoCollection[model.Professor](db, database.CollectionProfessors, "преподавателя")
}

// NewDepartmentRepository создаёт репозиторий кафедр.
func NewDepartmentRepository(db *mongo.Database) DepartmentRepository {
	return newMongoCollection[model.Department](db, database.CollectionDepartments, "кафедры")
}

// NewBannerRepository создаёт репозиторий баннеров.
func NewBannerRepository(db *mongo.Database) BannerRepository {
	return newMongoCollection[model.Banner](db, database.CollectionBanners, "баннера")
}
