package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/bigkaa/billboard-acp/internal/domain/model"
	"github.com/bigkaa/billboard-acp/internal/repository"
)

func TestTable_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewDepartments()

	engr := &model.Department{ID: "d1", Name: "Engineering", ShortName: "ENGR"}
	if err := store.Create(ctx, engr); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	if err := store.Create(ctx, engr); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Create() с повторным id: ошибка = %v, хотели ErrConflict", err)
	}

	// Изменение исходной структуры не влияет на хранимую запись
	engr.Name = "mutated"
	got, err := store.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.Name != "Engineering" {
		t.Errorf("GetByID().Name = %q, хотели Engineering", got.Name)
	}

	if err := store.Update(ctx, "d1", &model.Department{ID: "d1", Name: "Eng", ShortName: "EN"}); err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	got, _ = store.GetByID(ctx, "d1")
	if got.ShortName != "EN" {
		t.Errorf("После Update ShortName = %q, хотели EN", got.ShortName)
	}

	if err := store.Update(ctx, "missing", &model.Department{ID: "missing"}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update() отсутствующей записи: ошибка = %v, хотели ErrNotFound", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d после Update отсутствующей записи, хотели 1", store.Len())
	}

	if err := store.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}
	if err := store.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Повторный Delete() ошибка: %v", err)
	}
	if _, err := store.GetByID(ctx, "d1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("После Delete ожидали ErrNotFound, получили: %v", err)
	}
}

func TestTable_ListKeepsInsertOrder(t *testing.T) {
	ctx := context.Background()
	store := NewBanners()

	for _, id := range []string{"c", "a", "b"} {
		if err := store.Create(ctx, &model.Banner{ID: id, Name: id}); err != nil {
			t.Fatalf("Create(%s) ошибка: %v", id, err)
		}
	}
	_ = store.Delete(ctx, "a")

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Errorf("List() = %+v, хотели [c b]", list)
	}
}

func TestUsers_GetByEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUsers()
	_ = store.Create(ctx, &model.User{ID: "u1", Name: "Ada", Email: "ada@example.com"})

	got, err := store.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() ошибка: %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("GetByEmail().ID = %q, хотели u1", got.ID)
	}

	if _, err := store.GetByEmail(ctx, "ADA@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByEmail() в другом регистре: ошибка = %v, хотели ErrNotFound", err)
	}
}
