package rest

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"notes-api/internal/model"
)

// Машиночитаемые коды ошибок в конверте ответа.
// CodeRateLimited выставляется rate limiting middleware
const (
	CodeValidationError = "validation_error"
	CodeNotFound        = "not_found"
	CodeInternalError   = "internal_error"
	CodeRateLimited     = "rate_limited"
)

// ErrorResponse единый конверт ошибки для всех 4xx/5xx ответов
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// handleError транслирует ошибку бизнес-логики в HTTP ответ.
// Ошибки валидации -> 422, "не найдено" -> 404, всё остальное -> 500
// с нейтральным сообщением без деталей хранилища
func handleError(c *gin.Context, err error) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Detail: vErr.Reason,
			Code:   CodeValidationError,
		})
	case errors.Is(err, model.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Detail: "note not found",
			Code:   CodeNotFound,
		})
	default:
		// Детали внутренней ошибки остаются в логе, не в ответе
		log.Printf("[HTTP] Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Detail: "internal server error",
			Code:   CodeInternalError,
		})
	}
}

// validationError отвечает 422 с переданным сообщением
func validationError(c *gin.Context, detail string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Detail: detail,
		Code:   CodeValidationError,
	})
}
