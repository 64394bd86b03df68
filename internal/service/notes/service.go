package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notes-api/internal/model"
	"notes-api/internal/repository"
	svc "notes-api/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(noteRepository repository.NoteRepository) svc.NoteService {
	return &service{
		noteRepository: noteRepository,
	}
}

// Create создает новую заметку с указанными title, content и tags
func (s *service) Create(ctx context.Context, title, content string, tags []string) (model.Note, error) {
	// Валидация: title непустой и не длиннее лимита
	title = strings.TrimSpace(title)
	if err := model.ValidateTitle(title); err != nil {
		return model.Note{}, err
	}

	if tags == nil {
		tags = []string{}
	}

	// Создаем новую заметку, обе метки равны моменту создания
	now := time.Now().UTC()
	note := model.Note{
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Сохраняем через репозиторий (ID назначает хранилище)
	createdNote, err := s.noteRepository.Create(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	return createdNote, nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id int64) (model.Note, error) {
	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// List возвращает все заметки от новых к старым
func (s *service) List(ctx context.Context) ([]model.Note, error) {
	notes, err := s.noteRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// Update применяет частичное обновление к заметке с указанным ID.
// Меняются только переданные поля; updated_at обновляется всегда,
// в том числе для пустого патча
func (s *service) Update(ctx context.Context, id int64, patch model.NotePatch) (model.Note, error) {
	// Получаем существующую заметку
	existingNote, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	// Применяем только переданные поля
	patch.Apply(&existingNote)

	// Валидация обновленной заметки
	if err := existingNote.Validate(); err != nil {
		return model.Note{}, err
	}

	// Обновляем временную метку
	existingNote.UpdatedAt = time.Now().UTC()

	// Сохраняем через репозиторий
	updatedNote, err := s.noteRepository.Update(ctx, existingNote)
	if err != nil {
		return model.Note{}, err
	}

	return updatedNote, nil
}

// Delete удаляет заметку по ID
func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.noteRepository.Delete(ctx, id)
	if err != nil {
		return err
	}

	return nil
}

// Import заменяет все заметки на переданный набор.
// Если хотя бы одна заметка невалидна, не сохраняется ни одна
func (s *service) Import(ctx context.Context, importedNotes []model.Note) (int, error) {
	// Валидация всей пачки до записи
	for i, note := range importedNotes {
		if err := note.Validate(); err != nil {
			return 0, model.NewValidationError("note %d: %v", i+1, err)
		}
	}

	// Нормализуем заметки перед записью
	prepared := make([]model.Note, len(importedNotes))
	for i, note := range importedNotes {
		note.Title = strings.TrimSpace(note.Title)
		if note.Tags == nil {
			note.Tags = []string{}
		}
		// Если передан только updated_at, created_at подтягивается к нему,
		// иначе хранилище поставило бы created_at = now позже updated_at
		if note.CreatedAt.IsZero() && !note.UpdatedAt.IsZero() {
			note.CreatedAt = note.UpdatedAt
		}
		prepared[i] = note
	}

	count, err := s.noteRepository.ReplaceAll(ctx, prepared)
	if err != nil {
		return 0, fmt.Errorf("replace notes: %w", err)
	}

	return count, nil
}
