package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xiebiao/bookshop/pkg/tracing"
)

// RequestIDHeader 请求ID响应头
const RequestIDHeader = "X-Request-ID"

// RequestLogger 请求日志中间件
//
//  1. 生成请求ID（客户端传了X-Request-ID就沿用），写回响应头
//  2. 把带request_id、trace_id的子logger放进request context，
//     后续handler/用例用zerolog.Ctx(ctx)取到同一个logger
//  3. 请求结束后记录方法、路径、状态码、耗时
//
// 不记录请求体
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		logCtx := base.With().Str("request_id", requestID)
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			logCtx = logCtx.Str("trace_id", traceID)
		}
		log := logCtx.Logger()
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("请求完成")

		// 慢请求
		if latency > 3*time.Second {
			log.Warn().Str("path", c.Request.URL.Path).Dur("latency", latency).Msg("慢请求")
		}
	}
}
