package model

import (
	"strings"
	"time"
)

// MaxTitleLength максимальная длина заголовка заметки
const MaxTitleLength = 100

// Note представляет заметку (доменная модель)
type Note struct {
	ID        int64     // Идентификатор заметки (назначается хранилищем)
	Title     string    // Заголовок заметки
	Content   string    // Содержание заметки
	Tags      []string  // Метки заметки (порядок сохраняется как передал клиент)
	CreatedAt time.Time // Дата создания
	UpdatedAt time.Time // Дата последнего обновления
}

// Validate проверяет валидность заметки
func (n *Note) Validate() error {
	if err := ValidateTitle(n.Title); err != nil {
		return err
	}
	// Инвариант временных меток: created_at <= updated_at
	if !n.CreatedAt.IsZero() && !n.UpdatedAt.IsZero() && n.UpdatedAt.Before(n.CreatedAt) {
		return NewValidationError("updated_at cannot be earlier than created_at")
	}
	return nil
}

// IsEmpty проверяет, пуста ли заметка
func (n *Note) IsEmpty() bool {
	return n.ID == 0 && n.Title == "" && n.Content == "" && len(n.Tags) == 0
}

// ValidateTitle проверяет заголовок по общим правилам:
// непустой после обрезки пробелов и не длиннее MaxTitleLength символов
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return NewValidationError("title cannot be empty")
	}
	if len([]rune(trimmed)) > MaxTitleLength {
		return NewValidationError("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// NotePatch описывает частичное обновление заметки.
// Поля-указатели позволяют отличать "поле не передано" (nil)
// от "поле передано пустым" (указатель на пустое значение)
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// IsEmpty проверяет, что в патче нет ни одного поля
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}

// Apply применяет патч к заметке: меняются только переданные поля
func (p NotePatch) Apply(note *Note) {
	if p.Title != nil {
		note.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		note.Content = *p.Content
	}
	if p.Tags != nil {
		note.Tags = *p.Tags
	}
}
