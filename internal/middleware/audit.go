package middleware

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/services"
)

// Audit records write operations (POST/PUT/DELETE) to the audit log. Only
// successful requests produce entries.
func Audit(audit *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		// Only audit write operations
		if method != "POST" && method != "PUT" && method != "DELETE" {
			c.Next()
			return
		}

		// Capture request body (up to 2000 chars)
		var bodySnippet string
		if c.Request.Body != nil {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			bodySnippet = string(bodyBytes)
			if len(bodySnippet) > 2000 {
				bodySnippet = bodySnippet[:2000] + "...[truncated]"
			}
			bodySnippet = maskSensitiveFields(bodySnippet)
		}

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		action := routeAction(c.FullPath(), method)
		if action == "" {
			return
		}

		var uid *uint
		if userID := GetUserID(c); userID > 0 {
			uid = &userID
		}

		var pid *uint
		if idParam := c.Param("id"); idParam != "" && strings.Contains(c.FullPath(), "/projects/") {
			if v, err := strconv.ParseUint(idParam, 10, 32); err == nil {
				projectID := uint(v)
				pid = &projectID
			}
		}

		audit.Record(action, map[string]interface{}{
			"method": method,
			"path":   c.Request.URL.Path,
			"status": status,
			"body":   bodySnippet,
		}, uid, pid, c.ClientIP())
	}
}

// routeAction maps a Gin route pattern and method to a semantic audit
// action. Routes with no mapping are not audited.
func routeAction(fullPath, method string) string {
	switch {
	case fullPath == "/api/auth/register":
		return services.ActionUserRegistered
	case fullPath == "/api/auth/login":
		return services.ActionUserLogin
	case fullPath == "/api/auth/change-password":
		return services.ActionPasswordChanged
	case strings.HasPrefix(fullPath, "/api/users"):
		switch method {
		case "PUT":
			return services.ActionUserUpdated
		case "DELETE":
			return services.ActionUserDeleted
		}
	case strings.HasSuffix(fullPath, "/members"):
		return services.ActionMemberAdded
	case strings.HasSuffix(fullPath, "/branches"):
		return services.ActionBranchCreated
	case strings.Contains(fullPath, "/pulls"):
		if method == "POST" {
			return services.ActionPullRequestOpened
		}
		return services.ActionPullRequestUpdate
	case strings.HasSuffix(fullPath, "/scans"):
		return services.ActionScanTriggered
	case strings.HasPrefix(fullPath, "/api/projects"):
		switch method {
		case "POST":
			return services.ActionProjectCreated
		case "PUT":
			return services.ActionProjectUpdated
		case "DELETE":
			return services.ActionProjectDeleted
		}
	}
	return ""
}

// maskSensitiveFields replaces sensitive values in JSON body
func maskSensitiveFields(body string) string {
	sensitiveKeys := []string{"password", "old_password", "new_password", "secret", "token"}
	lower := strings.ToLower(body)
	for _, key := range sensitiveKeys {
		if strings.Contains(lower, key) {
			body = maskJSONValue(body, key)
		}
	}
	return body
}

// maskJSONValue does a best-effort mask of JSON string values for a given key
func maskJSONValue(body, key string) string {
	lower := strings.ToLower(body)
	idx := strings.Index(lower, "\""+key+"\"")
	if idx == -1 {
		return body
	}

	colonIdx := strings.Index(body[idx+len(key)+2:], ":")
	if colonIdx == -1 {
		return body
	}
	valueStart := idx + len(key) + 2 + colonIdx + 1

	for valueStart < len(body) && (body[valueStart] == ' ' || body[valueStart] == '\t') {
		valueStart++
	}

	if valueStart >= len(body) {
		return body
	}

	if body[valueStart] == '"' {
		endQuote := strings.Index(body[valueStart+1:], "\"")
		if endQuote == -1 {
			return body
		}
		return body[:valueStart+1] + "***" + body[valueStart+1+endQuote:]
	}

	return body
}
