package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"notes-api/internal/model"
	"notes-api/internal/repository"
)

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	mu     sync.RWMutex
	notes  map[int64]model.Note
	nextID int64 // Монотонный счетчик: ID не переиспользуются после удаления
}

// NewRepository создает новый экземпляр in-memory репозитория на основе map.
// Используется в тестах как быстрая замена SQLite
func NewRepository() repository.NoteRepository {
	return &repo{
		notes:  make(map[int64]model.Note),
		nextID: 1,
	}
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *repo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insert(note), nil
}

// insert вставляет заметку под новым ID. Вызывается под блокировкой
func (r *repo) insert(note model.Note) model.Note {
	note.ID = r.nextID
	r.nextID++

	// Устанавливаем временные метки, если не переданы
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}

	r.notes[note.ID] = note
	return note
}

// GetByID возвращает заметку по её ID
func (r *repo) GetByID(ctx context.Context, id int64) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, model.ErrNoteNotFound
	}

	return note, nil
}

// List возвращает все заметки от новых к старым
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.notes))
	for _, note := range r.notes {
		notes = append(notes, note)
	}

	// Та же сортировка, что и в SQLite-репозитории: created_at DESC, id DESC
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID > notes[j].ID
	})

	return notes, nil
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *repo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; !exists {
		return model.Note{}, model.ErrNoteNotFound
	}

	r.notes[note.ID] = note

	return note, nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return model.ErrNoteNotFound
	}

	delete(r.notes, id)

	return nil
}

// ReplaceAll атомарно заменяет все заметки на переданный набор
func (r *repo) ReplaceAll(ctx context.Context, notes []model.Note) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = make(map[int64]model.Note, len(notes))
	for _, note := range notes {
		r.insert(note)
	}

	return len(notes), nil
}

// Ping проверяет доступность хранилища
func (r *repo) Ping(ctx context.Context) error {
	return ctx.Err()
}
