package rest

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter создает gin-роутер с зарегистрированными маршрутами API
func NewRouter(handler *Handler) *gin.Engine {
	engine := gin.New()
	engine.Use(recovery())

	handler.Register(engine)

	return engine
}

// recovery перехватывает панику в хэндлере и отвечает
// единым конвертом ошибки вместо пустого 500
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[HTTP] Panic recovered: %v", rec)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Detail: "internal server error",
					Code:   CodeInternalError,
				})
			}
		}()

		c.Next()
	}
}
