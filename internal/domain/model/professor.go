package model

// Professor — карточка преподавателя для экрана билборда.
// Хранится в коллекции professors.
type Professor struct {
	// ID — UUIDv7 записи
	ID string `bson:"id" json:"id"`
	// Name — ФИО преподавателя
	Name string `bson:"name" json:"name"`
	// Email — адрес электронной почты
	Email string `bson:"email" json:"email"`
	// Hours — часы консультаций (свободный текст)
	Hours string `bson:"hours" json:"hours"`
	// Room — номер кабинета
	Room string `bson:"room" json:"room"`
	// Phone — телефон
	Phone string `bson:"phone" json:"phone"`
	// Website — персональная страница
	Website string `bson:"website" json:"website"`
	// Department — ID кафедры (Department.ID), ссылочная целостность не проверяется
	Department string `bson:"department" json:"department"`
}

// Department — кафедра.
// Хранится в коллекции departments.
type Department struct {
	// ID — UUIDv7 записи
	ID string `bson:"id" json:"id"`
	// Name — полное название
	Name string `bson:"name" json:"name"`
	// ShortName — краткий код для отображения (ENGR, MATH)
	ShortName string `bson:"short_name" json:"short_name"`
}
