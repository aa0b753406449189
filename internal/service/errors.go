// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrImageUpload — Image API не принял изображение при создании баннера.
	ErrImageUpload = errors.New("ошибка загрузки изображения")
	// ErrNotProvisioned — внешняя учётная запись не сопоставлена ни одному администратору.
	ErrNotProvisioned = errors.New("учётная запись не зарегистрирована в ACP")
)
