package i18n

import "embed"

// LocaleFS — встроенные каталоги переводов: плоский JSON ключ → строка,
// по файлу на язык. Ключи всех каталогов совпадают.
//
//go:embed locales/*.json
var LocaleFS embed.FS
