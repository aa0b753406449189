// Пакет model — доменные модели Billboard ACP.
// Все сущности идентифицируются строковым ID (UUIDv7), который
// назначается при создании и не совпадает с внутренним _id MongoDB.
package model

import "github.com/google/uuid"

// User — администратор ACP.
// Хранится в коллекции users. Email — ключ сопоставления с внешней
// учётной записью при входе через OAuth2.
type User struct {
	// ID — UUIDv7 записи (уникальный индекс)
	ID string `bson:"id" json:"id"`
	// Name — отображаемое имя
	Name string `bson:"name" json:"name"`
	// Email — адрес электронной почты (по нему разрешается вход)
	Email string `bson:"email" json:"email"`
}

// NewID генерирует новый идентификатор сущности.
// UUIDv7 упорядочен по времени создания, поэтому строковое
// сравнение ID совпадает с порядком создания.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 возвращает ошибку только при сбое источника случайности
		return uuid.NewString()
	}
	return id.String()
}
