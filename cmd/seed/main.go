package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"notes-api/internal/model"
	"notes-api/internal/repository"
	"notes-api/internal/repository/sqlitedb"
)

// Пулы слов для генерации заголовков, текста и тегов
var words = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel",
	"india", "juliet", "kilo", "lima", "mike", "november", "oscar", "papa",
	"quebec", "romeo", "sierra", "tango", "uniform", "victor", "whiskey",
	"xray", "yankee", "zulu", "cloud", "system", "design", "pattern",
	"service", "note", "feature", "bug", "release", "idea", "draft",
	"project", "reading",
}

var tagsPool = []string{
	"work", "personal", "ideas", "todo", "research",
	"draft", "inbox", "reading", "project", "journal",
}

func main() {
	var (
		count    int
		reset    bool
		daysBack int
		dbPath   string
	)

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Заполняет базу заметок сгенерированными данными",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), dbPath, count, reset, daysBack)
		},
	}

	rootCmd.Flags().IntVar(&count, "count", 50, "количество заметок для вставки")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "удалить существующие заметки перед заполнением")
	rootCmd.Flags().IntVar(&daysBack, "days-back", 90, "ограничить created_at последними N днями")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "путь к базе (по умолчанию DATABASE_URL или data/app.db)")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Seed error: %v", err)
	}
}

func runSeed(ctx context.Context, dbPath string, count int, reset bool, daysBack int) error {
	path := resolveDBPath(dbPath)

	// Open применяет схему, поэтому сидер работает и на пустой базе
	db, err := sqlitedb.Open(path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	noteRepo := sqlitedb.NewRepository(db)

	generated := make([]model.Note, count)
	for i := range generated {
		generated[i] = genNote(daysBack)
	}

	deleted := 0
	inserted := 0
	if reset {
		// ReplaceAll удаляет старые заметки и вставляет новые одной транзакцией
		existing, err := noteRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("count existing notes: %w", err)
		}
		deleted = len(existing)

		inserted, err = noteRepo.ReplaceAll(ctx, generated)
		if err != nil {
			return fmt.Errorf("replace notes: %w", err)
		}
	} else {
		inserted, err = appendNotes(ctx, noteRepo, generated)
		if err != nil {
			return err
		}
	}

	fmt.Printf("deleted=%d inserted=%d db=%s\n", deleted, inserted, path)
	return nil
}

func appendNotes(ctx context.Context, noteRepo repository.NoteRepository, notes []model.Note) (int, error) {
	for i, note := range notes {
		if _, err := noteRepo.Create(ctx, note); err != nil {
			return i, fmt.Errorf("insert note: %w", err)
		}
	}
	return len(notes), nil
}

func resolveDBPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if envPath := os.Getenv("DATABASE_URL"); envPath != "" {
		return envPath
	}
	return "data/app.db"
}

// genNote генерирует одну заметку со случайными полями
// и временными метками в пределах последних daysBack дней
func genNote(daysBack int) model.Note {
	createdAt, updatedAt := randTimestamps(daysBack)
	return model.Note{
		Title:     genTitle(),
		Content:   genContent(),
		Tags:      genTags(),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// genTitle собирает заголовок из 3-8 случайных слов, не длиннее лимита
func genTitle() string {
	parts := sampleWords(3 + rand.Intn(6))
	for i, w := range parts {
		parts[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	title := strings.Join(parts, " ")
	if len(title) > model.MaxTitleLength {
		title = strings.TrimSpace(title[:model.MaxTitleLength])
	}
	return title
}

// genContent собирает 2-4 предложения по 12-20 слов
func genContent() string {
	sentences := make([]string, 2+rand.Intn(3))
	for i := range sentences {
		sentences[i] = genSentence()
	}
	return strings.Join(sentences, " ")
}

func genSentence() string {
	n := 12 + rand.Intn(9)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rand.Intn(len(words))]
	}
	parts[0] = strings.ToUpper(parts[0][:1]) + parts[0][1:]
	return strings.Join(parts, " ") + "."
}

// genTags выбирает 0-3 тега из пула
func genTags() []string {
	k := rand.Intn(4)
	if k == 0 {
		return []string{}
	}

	perm := rand.Perm(len(tagsPool))
	tags := make([]string, k)
	for i := range tags {
		tags[i] = tagsPool[perm[i]]
	}
	return tags
}

// randTimestamps возвращает случайную пару меток с инвариантом
// created_at <= updated_at <= now
func randTimestamps(daysBack int) (time.Time, time.Time) {
	now := time.Now().UTC()
	if daysBack < 0 {
		daysBack = 0
	}

	back := time.Duration(rand.Intn(daysBack+1))*24*time.Hour +
		time.Duration(rand.Intn(86400))*time.Second
	created := now.Add(-back)

	updated := created
	if rand.Intn(2) == 1 {
		delta := int(now.Sub(created) / time.Second)
		if delta > 0 {
			updated = created.Add(time.Duration(rand.Intn(delta+1)) * time.Second)
		}
	}

	return created, updated
}

// sampleWords возвращает n разных случайных слов из пула
func sampleWords(n int) []string {
	if n > len(words) {
		n = len(words)
	}

	perm := rand.Perm(len(words))
	sample := make([]string, n)
	for i := range sample {
		sample[i] = words[perm[i]]
	}
	return sample
}
