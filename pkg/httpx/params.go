package httpx

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// QueryList — значения параметра как списком через запятую, так и повторами (?k=a,b&k=c).
// Пустые элементы отбрасываются.
func QueryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// ParseTimeout — timeout_ms из query в границах [minMs, def]; клиент может только сократить таймаут.
func ParseTimeout(c *gin.Context, def time.Duration, minMs int) time.Duration {
	raw, ok := c.GetQuery("timeout_ms")
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	maxMs := int(def / time.Millisecond)
	if maxMs < minMs {
		return def
	}
	return time.Duration(ClampInt(v, minMs, maxMs)) * time.Millisecond
}
