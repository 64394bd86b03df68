package converter

import (
	"time"

	"notes-api/internal/model"
)

// NoteResponse публичное JSON-представление заметки
type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ModelToResponse конвертирует domain модель Note в публичное представление
func ModelToResponse(note model.Note) NoteResponse {
	tags := note.Tags
	if tags == nil {
		// В JSON всегда отдаем массив, а не null
		tags = []string{}
	}

	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// ModelsToResponses конвертирует слайс domain моделей в публичные представления
func ModelsToResponses(notes []model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ModelToResponse(note)
	}

	return responses
}
