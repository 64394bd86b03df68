package rest

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notes-api/internal/converter"
	"notes-api/internal/model"
	svc "notes-api/internal/service"
)

// Handler реализует REST API для работы с заметками
type Handler struct {
	noteService svc.NoteService
}

// NewHandler создает новый экземпляр REST хэндлера
func NewHandler(noteService svc.NoteService) *Handler {
	return &Handler{
		noteService: noteService,
	}
}

// Register регистрирует маршруты API на gin-роутере
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/ping", h.Ping)

	r.POST("/notes", h.CreateNote)
	r.GET("/notes", h.ListNotes)
	r.GET("/notes/export", h.ExportNotes)
	r.POST("/notes/import", h.ImportNotes)
	r.GET("/notes/:id", h.GetNote)
	r.PATCH("/notes/:id", h.UpdateNote)
	r.DELETE("/notes/:id", h.DeleteNote)
}

// createNoteRequest тело запроса на создание заметки
type createNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// updateNoteRequest тело частичного обновления.
// Указатели отличают отсутствующее поле от переданного пустым
type updateNoteRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// listNotesResponse обертка списка заметок.
// Объект с одним полем вместо голого массива, чтобы форма ответа
// могла расширяться без ломающих изменений
type listNotesResponse struct {
	Items []converter.NoteResponse `json:"items"`
}

// importNotesResponse результат импорта
type importNotesResponse struct {
	Imported int `json:"imported"`
}

// CreateNote обрабатывает POST /notes
func (h *Handler) CreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "invalid request body")
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), req.Title, req.Content, req.Tags)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, converter.ModelToResponse(note))
}

// ListNotes обрабатывает GET /notes
func (h *Handler) ListNotes(c *gin.Context) {
	notes, err := h.noteService.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, listNotesResponse{
		Items: converter.ModelsToResponses(notes),
	})
}

// GetNote обрабатывает GET /notes/:id
func (h *Handler) GetNote(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.noteService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.ModelToResponse(note))
}

// UpdateNote обрабатывает PATCH /notes/:id
func (h *Handler) UpdateNote(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "invalid request body")
		return
	}

	patch := model.NotePatch{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}

	note, err := h.noteService.Update(c.Request.Context(), id, patch)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, converter.ModelToResponse(note))
}

// DeleteNote обрабатывает DELETE /notes/:id
func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportNotes обрабатывает GET /notes/export.
// Отдает все заметки построчно (NDJSON) в том же порядке, что и список
func (h *Handler) ExportNotes(c *gin.Context) {
	notes, err := h.noteService.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Type", converter.ContentTypeNDJSON)
	c.Status(http.StatusOK)

	if err := converter.EncodeNDJSON(c.Writer, notes); err != nil {
		// Статус уже отправлен, остается только залогировать
		log.Printf("[HTTP] Export write error: %v", err)
	}
}

// ImportNotes обрабатывает POST /notes/import.
// Импорт полностью заменяет таблицу; битая строка отклоняет всю пачку
func (h *Handler) ImportNotes(c *gin.Context) {
	importedNotes, err := converter.DecodeNDJSON(c.Request.Body)
	if err != nil {
		handleError(c, err)
		return
	}

	count, err := h.noteService.Import(c.Request.Context(), importedNotes)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, importNotesResponse{Imported: count})
}

// Health обрабатывает GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ping обрабатывает GET /ping
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// parseNoteID разбирает параметр пути :id.
// Нечисловой id считается ошибкой валидации (422), как и в остальных
// случаях некорректного входа
func parseNoteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		validationError(c, "note id must be an integer")
		return 0, false
	}

	return id, true
}
