package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// redactedQueryParams never reach the logs
var redactedQueryParams = map[string]bool{
	"token": true, "auth_token": true, "password": true, "secret": true,
	"key": true, "auth": true, "code": true,
}

// ObservabilityMiddleware records request metrics and writes one access log
// line per request
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		// route template keeps label cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		duration := metrics.MeasureDuration(start)
		status := c.Writer.Status()
		statusLabel := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, route, statusLabel).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, statusLabel).Inc()

		fields := []zap.Field{
			zap.String("route", route),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("response_size", c.Writer.Size()),
		}
		if id := c.GetString(WorkspaceIDContextKey); id != "" {
			fields = append(fields, zap.String("workspace_id", id))
		}
		if status >= 400 || len(c.Errors) > 0 {
			fields = append(fields, failureFields(c)...)
		}

		logger.LogHTTPRequest(method, c.Request.URL.Path, status, duration, fields...)
	}
}

// failureFields adds route params, sanitized query and handler errors
func failureFields(c *gin.Context) []zap.Field {
	var fields []zap.Field

	if len(c.Params) > 0 {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		fields = append(fields, zap.Any("route_params", params))
	}

	query := c.Request.URL.Query()
	sanitized := make(map[string]string, len(query))
	for k, v := range query {
		if len(v) > 0 && !redactedQueryParams[strings.ToLower(k)] {
			sanitized[k] = v[0]
		}
	}
	if len(sanitized) > 0 {
		fields = append(fields, zap.Any("query_params", sanitized))
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}
	return fields
}
