// Package sl — мелкие помощники для структурированного логирования через slog.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут лога под единым ключом "error",
// чтобы записи об ошибках во всех слоях выглядели одинаково:
//
//	log.Error("failed to create user", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
