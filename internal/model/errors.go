package model

import (
	"errors"
	"fmt"
)

// ErrNoteNotFound возвращается, когда заметка не найдена
var ErrNoteNotFound = errors.New("note not found")

// ValidationError описывает невалидные входные данные
// (пустой заголовок, битая строка импорта и т.п.)
type ValidationError struct {
	Reason string
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError создает ValidationError с форматированным сообщением
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError проверяет, является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
