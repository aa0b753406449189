package model

// Banner — рекламный баннер с изображением во внешнем Image API.
// Хранится в коллекции banners.
type Banner struct {
	// ID — UUIDv7 записи
	ID string `bson:"id" json:"id"`
	// Name — подпись баннера
	Name string `bson:"name" json:"name"`
	// ImageName — имя изображения в Image API; пусто, если изображение не загружалось
	ImageName string `bson:"image_name" json:"image_name"`
}

// HasImage сообщает, ссылается ли баннер на изображение.
func (b *Banner) HasImage() bool {
	return b.ImageName != ""
}
