package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"stream-ledger.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the in-progress marker is held
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is replayable
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key instead of re-executing the handler. The settlement
// operations are idempotent on their own keys as well; this only spares
// the transaction churn of obvious retries.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		accountID, _ := GetAccountID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", c.FullPath(), accountID, key)
		ctx := c.Request.Context()

		if val, err := redisGet(ctx, storageKey); err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"code":    "ERR_IDEMPOTENCY_CONFLICT",
					"message": "Request already in progress",
				})
				return
			}
			var cached cachedResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.Header("X-Idempotent-Replay", "true")
				c.Data(cached.Status, "application/json", []byte(cached.Body))
				c.Abort()
				return
			}
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			// Redis unavailable or lost the race; fall through, the
			// settlement layer still guarantees correctness.
			c.Next()
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			// Do not pin a transient failure; let the retry re-execute.
			_ = redisDel(ctx, storageKey)
			return
		}

		payload, err := json.Marshal(cachedResponse{Status: status, Body: recorder.body.String()})
		if err != nil {
			_ = redisDel(ctx, storageKey)
			return
		}
		_ = redisSet(ctx, storageKey, string(payload), RetentionDuration)
	}
}
