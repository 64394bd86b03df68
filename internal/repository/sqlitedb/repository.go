package sqlitedb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notes-api/internal/model"
	"notes-api/internal/repository"
)

// noteRecord строка таблицы notes.
// Временные метки управляются сервисным слоем, поэтому
// автоматические метки GORM отключены
type noteRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"size:100;not null"`
	Content   string    `gorm:"not null"`
	Tags      []string  `gorm:"serializer:json;type:text"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName задает имя таблицы
func (noteRecord) TableName() string {
	return "notes"
}

// Open открывает SQLite базу по пути из конфигурации и применяет схему.
// Для файловой базы создается родительская директория (как ./data у приложения)
func Open(path string) (*gorm.DB, error) {
	if path == "" {
		path = "data/app.db"
	}

	// Для in-memory базы директория не нужна
	if !strings.Contains(path, ":memory:") {
		dir := filepath.Dir(path)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir %s: %w", dir, err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&noteRecord{}); err != nil {
		return nil, fmt.Errorf("migrate notes table: %w", err)
	}

	return db, nil
}

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	db *gorm.DB
}

// NewRepository создает новый экземпляр SQLite-репозитория поверх GORM
func NewRepository(db *gorm.DB) repository.NoteRepository {
	return &repo{db: db}
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *repo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	rec := toRecord(note)
	rec.ID = 0 // ID назначает SQLite (AUTOINCREMENT, без переиспользования)

	// Устанавливаем временные метки, если не переданы
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}

	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.Note{}, fmt.Errorf("insert note: %w", err)
	}

	return toModel(rec), nil
}

// GetByID возвращает заметку по её ID
func (r *repo) GetByID(ctx context.Context, id int64) (model.Note, error) {
	var rec noteRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Note{}, model.ErrNoteNotFound
		}
		return model.Note{}, fmt.Errorf("select note %d: %w", id, err)
	}

	return toModel(rec), nil
}

// List возвращает все заметки от новых к старым
// (created_at по убыванию, при равенстве id по убыванию)
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	var recs []noteRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}

	notes := make([]model.Note, len(recs))
	for i, rec := range recs {
		notes[i] = toModel(rec)
	}

	return notes, nil
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *repo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	rec := toRecord(note)

	// Select принуждает записывать и пустые значения (пустой content, пустые теги)
	res := r.db.WithContext(ctx).
		Model(&noteRecord{}).
		Where("id = ?", rec.ID).
		Select("title", "content", "tags", "updated_at").
		Updates(rec)
	if res.Error != nil {
		return model.Note{}, fmt.Errorf("update note %d: %w", rec.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return model.Note{}, model.ErrNoteNotFound
	}

	return note, nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&noteRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete note %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNoteNotFound
	}

	return nil
}

// ReplaceAll атомарно заменяет все заметки на переданный набор.
// Выполняется одной транзакцией: либо заменяется всё, либо ничего
func (r *repo) ReplaceAll(ctx context.Context, notes []model.Note) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&noteRecord{}).Error; err != nil {
			return fmt.Errorf("clear notes: %w", err)
		}

		now := time.Now().UTC()
		for _, note := range notes {
			rec := toRecord(note)
			rec.ID = 0 // ID из импорта игнорируются, SQLite назначает новые
			if rec.CreatedAt.IsZero() {
				rec.CreatedAt = now
			}
			if rec.UpdatedAt.IsZero() {
				rec.UpdatedAt = rec.CreatedAt
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("insert imported note: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(notes), nil
}

// Ping проверяет доступность базы данных
func (r *repo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func toRecord(note model.Note) noteRecord {
	return noteRecord{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      note.Tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func toModel(rec noteRecord) model.Note {
	return model.Note{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		Tags:      rec.Tags,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
