package repository

import (
	"context"

	"notes-api/internal/model"
)

// NoteRepository интерфейс для работы с заметками в хранилище
type NoteRepository interface {
	// Create создает новую заметку и возвращает созданную заметку с ID.
	// Ненулевые временные метки сохраняются как есть (нужно для импорта и сидера)
	Create(ctx context.Context, note model.Note) (model.Note, error)

	// GetByID возвращает заметку по её ID
	GetByID(ctx context.Context, id int64) (model.Note, error)

	// List возвращает все заметки, отсортированные от новых к старым
	// (created_at по убыванию, при равенстве id по убыванию)
	List(ctx context.Context) ([]model.Note, error)

	// Update обновляет существующую заметку и возвращает обновленную заметку
	Update(ctx context.Context, note model.Note) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id int64) error

	// ReplaceAll атомарно заменяет все заметки на переданный набор
	// и возвращает количество вставленных заметок.
	// ID из входных заметок игнорируются: хранилище назначает новые
	ReplaceAll(ctx context.Context, notes []model.Note) (int, error)

	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error
}
