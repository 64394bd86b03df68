package service

import (
	"context"

	"notes-api/internal/model"
)

// NoteService интерфейс для бизнес-логики работы с заметками
type NoteService interface {
	// Create создает новую заметку с указанными title, content и tags
	Create(ctx context.Context, title, content string, tags []string) (model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id int64) (model.Note, error)

	// List возвращает все заметки от новых к старым
	List(ctx context.Context) ([]model.Note, error)

	// Update применяет частичное обновление к заметке с указанным ID
	Update(ctx context.Context, id int64, patch model.NotePatch) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id int64) error

	// Import заменяет все заметки на переданный набор и возвращает
	// количество импортированных заметок. Вся пачка либо принимается,
	// либо отклоняется целиком
	Import(ctx context.Context, notes []model.Note) (int, error)
}
