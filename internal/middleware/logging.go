// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yunai-stage-go/pkg/log"
)

// bodyLogWriter 用于捕获响应体。事件流响应无界，首次写入时根据
// Content-Type 决定是否跳过捕获。
type bodyLogWriter struct {
	gin.ResponseWriter
	body    *bytes.Buffer
	checked bool
	skip    bool
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	if !w.checked {
		w.checked = true
		ct := w.ResponseWriter.Header().Get("Content-Type")
		w.skip = strings.HasPrefix(ct, "text/event-stream")
	}
	if !w.skip {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// RequestLogger 是一个 Gin 中间件，为每个请求生成 requestID 并记录请求与响应日志。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := uuid.NewString()
		c.Set("requestID", requestID)

		// 读取并重新缓存请求体，便于后续处理函数正常读取
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		blw := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		latency := time.Since(startTime)
		log.Infow("HTTP Request Log",
			"requestID", requestID,
			"statusCode", c.Writer.Status(),
			"latency", latency.String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestBody", string(requestBody),
			"responseBody", blw.body.String(),
		)
	}
}
