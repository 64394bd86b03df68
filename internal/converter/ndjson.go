package converter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"notes-api/internal/model"
)

// ContentTypeNDJSON MIME-тип для построчного JSON
const ContentTypeNDJSON = "application/x-ndjson"

// maxLineSize максимальный размер одной строки импорта (1 МиБ).
// Дефолтный буфер bufio.Scanner (64 КиБ) мал для заметок с длинным content
const maxLineSize = 1 << 20

// noteLine формат одной строки NDJSON при импорте.
// ID и временные метки опциональны: ID при импорте игнорируется,
// отсутствующие метки назначает хранилище
type noteLine struct {
	ID        *int64     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// EncodeNDJSON пишет заметки в w по одной на строку,
// каждая строка - самодостаточный JSON-объект публичной формы
func EncodeNDJSON(w io.Writer, notes []model.Note) error {
	enc := json.NewEncoder(w)
	for _, note := range notes {
		// json.Encoder добавляет перевод строки после каждого объекта
		if err := enc.Encode(ModelToResponse(note)); err != nil {
			return fmt.Errorf("encode note %d: %w", note.ID, err)
		}
	}

	return nil
}

// DecodeNDJSON читает заметки из r построчно.
// Битая строка (невалидный JSON или заметка, не проходящая валидацию)
// прерывает разбор ошибкой валидации с номером строки.
// Пустые строки пропускаются, но учитываются в нумерации
func DecodeNDJSON(r io.Reader) ([]model.Note, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var notes []model.Note
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var parsed noteLine
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			return nil, model.NewValidationError("line %d: invalid JSON", lineNo)
		}

		note := lineToModel(parsed)
		if err := note.Validate(); err != nil {
			return nil, model.NewValidationError("line %d: %v", lineNo, err)
		}

		notes = append(notes, note)
	}
	if err := scanner.Err(); err != nil {
		return nil, model.NewValidationError("line %d: %v", lineNo+1, err)
	}

	return notes, nil
}

func lineToModel(line noteLine) model.Note {
	note := model.Note{
		Title:   line.Title,
		Content: line.Content,
		Tags:    line.Tags,
	}
	if line.ID != nil {
		note.ID = *line.ID
	}
	if line.CreatedAt != nil {
		note.CreatedAt = *line.CreatedAt
	}
	if line.UpdatedAt != nil {
		note.UpdatedAt = *line.UpdatedAt
	}

	return note
}
