package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/internal/model"
	"notes-api/internal/repository/memory"
	notesService "notes-api/internal/service/notes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockNoteService - мок сервиса для тестирования маппинга ошибок
type mockNoteService struct {
	createFunc func(ctx context.Context, title, content string, tags []string) (model.Note, error)
	getFunc    func(ctx context.Context, id int64) (model.Note, error)
	listFunc   func(ctx context.Context) ([]model.Note, error)
	updateFunc func(ctx context.Context, id int64, patch model.NotePatch) (model.Note, error)
	deleteFunc func(ctx context.Context, id int64) error
	importFunc func(ctx context.Context, notes []model.Note) (int, error)
}

func (m *mockNoteService) Create(ctx context.Context, title, content string, tags []string) (model.Note, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, title, content, tags)
	}
	return model.Note{}, nil
}

func (m *mockNoteService) Get(ctx context.Context, id int64) (model.Note, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return model.Note{}, nil
}

func (m *mockNoteService) List(ctx context.Context) ([]model.Note, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockNoteService) Update(ctx context.Context, id int64, patch model.NotePatch) (model.Note, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return model.Note{}, nil
}

func (m *mockNoteService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockNoteService) Import(ctx context.Context, notes []model.Note) (int, error) {
	if m.importFunc != nil {
		return m.importFunc(ctx, notes)
	}
	return len(notes), nil
}

// newTestRouter собирает роутер поверх настоящего сервиса
// и in-memory репозитория
func newTestRouter() *gin.Engine {
	noteRepo := memory.NewRepository()
	noteSvc := notesService.NewNoteService(noteRepo)
	return NewRouter(NewHandler(noteSvc))
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// TestNotesScenario прогоняет полный сценарий:
// создание -> список -> частичное обновление -> удаление -> 404
func TestNotesScenario(t *testing.T) {
	router := newTestRouter()

	// POST /notes -> 201 c назначенным id
	w := doRequest(router, http.MethodPost, "/notes", `{"title":"Hello","content":"World","tags":["demo"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "Hello", created["title"])
	assert.Equal(t, "World", created["content"])
	assert.Equal(t, []any{"demo"}, created["tags"])
	assert.Equal(t, created["created_at"], created["updated_at"])

	// GET /notes -> обертка items
	w = doRequest(router, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Items, 1)
	assert.Equal(t, float64(1), listed.Items[0]["id"])

	// PATCH меняет только title
	w = doRequest(router, http.MethodPatch, "/notes/1", `{"title":"Updated"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var patched map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	assert.Equal(t, "Updated", patched["title"])
	assert.Equal(t, "World", patched["content"])
	assert.Equal(t, []any{"demo"}, patched["tags"])
	assert.NotEqual(t, patched["created_at"], patched["updated_at"])

	// DELETE -> 204 без тела
	w = doRequest(router, http.MethodDelete, "/notes/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// GET удаленной -> 404 с кодом not_found
	w = doRequest(router, http.MethodGet, "/notes/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, CodeNotFound, resp.Code)
}

func TestCreateNote_EmptyTitle(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/notes", `{"title":"  "}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, CodeValidationError, resp.Code)
	assert.NotEmpty(t, resp.Detail)
}

func TestCreateNote_MalformedBody(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/notes", `{"title": 42}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, CodeValidationError, decodeErrorResponse(t, w).Code)
}

func TestGetNote_NonNumericID(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/notes/abc", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, CodeValidationError, decodeErrorResponse(t, w).Code)
}

func TestDeleteNote_NotFound(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodDelete, "/notes/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, decodeErrorResponse(t, w).Code)
}

func TestListNotes_NewestFirst(t *testing.T) {
	router := newTestRouter()

	for _, title := range []string{"first", "second", "third"} {
		w := doRequest(router, http.MethodPost, "/notes", `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(router, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Items, 3)

	// Новые впереди: при равных created_at побеждает больший id
	assert.Equal(t, "third", listed.Items[0]["title"])
	assert.Equal(t, "second", listed.Items[1]["title"])
	assert.Equal(t, "first", listed.Items[2]["title"])
}

func TestExportImport_RoundTrip(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/notes", `{"title":"One","content":"first body","tags":["a","b"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(router, http.MethodPost, "/notes", `{"title":"Two","content":"second body"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Экспорт: по одной заметке на строку, в порядке списка
	w = doRequest(router, http.MethodGet, "/notes/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))

	exported := strings.TrimRight(w.Body.String(), "\n")
	lines := strings.Split(exported, "\n")
	require.Len(t, lines, 2)

	var firstLine map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &firstLine))
	assert.Equal(t, "Two", firstLine["title"]) // экспорт тоже от новых к старым

	// Импорт выгрузки обратно
	w = doRequest(router, http.MethodPost, "/notes/import", w.Body.String())
	require.Equal(t, http.StatusOK, w.Code)

	var importResp struct {
		Imported int `json:"imported"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &importResp))
	assert.Equal(t, 2, importResp.Imported)

	// Набор воспроизведен с точностью до переназначения id
	w = doRequest(router, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Items, 2)
	assert.Equal(t, "Two", listed.Items[0]["title"])
	assert.Equal(t, "first body", listed.Items[1]["content"])
	assert.Equal(t, []any{"a", "b"}, listed.Items[1]["tags"])
}

func TestImportNotes_InvalidLineRejectsWholeBatch(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/notes", `{"title":"Existing"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Строка 3 из 5 битая: не импортируется ничего
	body := strings.Join([]string{
		`{"title":"n1"}`,
		`{"title":"n2"}`,
		`{"title":""}`,
		`{"title":"n4"}`,
		`{"title":"n5"}`,
	}, "\n")

	w = doRequest(router, http.MethodPost, "/notes/import", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, CodeValidationError, resp.Code)
	assert.Contains(t, resp.Detail, "line 3")

	// Таблица осталась в состоянии до импорта
	w = doRequest(router, http.MethodGet, "/notes", "")
	var listed struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Items, 1)
	assert.Equal(t, "Existing", listed.Items[0]["title"])
}

func TestImportNotes_UpdatedBeforeCreatedRejected(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/notes", `{"title":"Existing"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Импорт не принимает заметку с updated_at раньше created_at
	body := `{"title":"Bad clock","created_at":"2025-06-01T00:00:00Z","updated_at":"2020-01-01T00:00:00Z"}`
	w = doRequest(router, http.MethodPost, "/notes/import", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, CodeValidationError, resp.Code)
	assert.Contains(t, resp.Detail, "line 1")

	// Таблица не тронута, инвариант created_at <= updated_at сохранен
	w = doRequest(router, http.MethodGet, "/notes", "")
	var listed struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Items, 1)
	assert.Equal(t, "Existing", listed.Items[0]["title"])
}

func TestImportNotes_InvalidJSONLine(t *testing.T) {
	router := newTestRouter()

	body := "{\"title\":\"ok\"}\nnot json at all\n"
	w := doRequest(router, http.MethodPost, "/notes/import", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, CodeValidationError, resp.Code)
	assert.Contains(t, resp.Detail, "line 2")
}

func TestHealthAndPing(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestHandler_UnexpectedErrorHidesDetails(t *testing.T) {
	// Неожиданная ошибка хранилища -> 500 с нейтральным сообщением
	mockSvc := &mockNoteService{
		listFunc: func(ctx context.Context) ([]model.Note, error) {
			return nil, errors.New("disk corrupted at sector 42")
		},
	}
	router := NewRouter(NewHandler(mockSvc))

	w := doRequest(router, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, CodeInternalError, resp.Code)
	assert.NotContains(t, resp.Detail, "sector")
}

func TestHandler_PatchPassesPresenceThrough(t *testing.T) {
	// Проверяем, что "поле не передано" и "поле пустое" доходят
	// до сервиса разными патчами
	var captured model.NotePatch
	mockSvc := &mockNoteService{
		updateFunc: func(ctx context.Context, id int64, patch model.NotePatch) (model.Note, error) {
			captured = patch
			return model.Note{ID: id, Title: "t"}, nil
		},
	}
	router := NewRouter(NewHandler(mockSvc))

	w := doRequest(router, http.MethodPatch, "/notes/1", `{"content":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Nil(t, captured.Title)
	require.NotNil(t, captured.Content)
	assert.Equal(t, "", *captured.Content)
	assert.Nil(t, captured.Tags)
}

func TestExportNotes_EmptyTable(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/notes/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
