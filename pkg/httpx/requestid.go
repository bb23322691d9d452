package httpx

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
)

const maxRequestIDLen = 128

// RequestIDMiddleware:
// - принимает X-Request-ID от клиента или пира, пустой/слишком длинный/непечатаемый заменяет UUID
// - кладёт request_id и узел-отправитель (X-Swarm-Node) в контекст
// - возвращает request_id в ответном заголовке
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(ctxmeta.HeaderRequestID))
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(ctxmeta.HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		ctx = ctxmeta.WithPeerNode(ctx, strings.TrimSpace(c.GetHeader(ctxmeta.HeaderPeerNode)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
