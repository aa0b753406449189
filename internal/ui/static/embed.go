// Пакет static — встроенные статические ресурсы ACP (таблица стилей).
// Файлы встраиваются в бинарник через //go:embed и раздаются по /static/*.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

// content — встроенная файловая система со статическими ресурсами.
//
//go:embed css/*.css
var content embed.FS

// FileSystem возвращает http.FileSystem для обработки запросов к /static/*.
// Файлы доступны по путям вида /static/css/acp.css.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// FS возвращает fs.FS для прямого доступа к встроенным файлам.
func FS() fs.FS {
	return content
}
