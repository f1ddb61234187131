// Package sl содержит вспомогательные функции для структурированного
// логирования через slog.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error" для единообразного
// вывода ошибок в логах сервиса.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
